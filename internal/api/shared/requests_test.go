package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		requestBody string
		wantErr     string
	}{
		{name: "valid json", requestBody: `{"name": "test", "count": 30}`},
		{name: "invalid json", requestBody: `{"name": "test", "count": 30,}`, wantErr: "is not valid JSON"},
		{name: "empty body", requestBody: "", wantErr: "cannot be empty"},
		{name: "unknown field", requestBody: `{"name": "test", "admin": true}`, wantErr: "is not valid JSON"},
		{name: "trailing object", requestBody: `{"name": "a"}{"name": "b"}`, wantErr: "single JSON object"},
		{
			name:        "too large",
			requestBody: `{"name": "` + strings.Repeat("x", MaxBodyBytes) + `"}`,
			wantErr:     "must not exceed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tc.requestBody))
			var target decodeTarget

			err := DecodeJSON(httptest.NewRecorder(), req, &target)

			if tc.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, decodeTarget{Name: "test", Count: 30}, target)
				return
			}
			require.Error(t, err)
			assert.True(t, domain.IsValidationError(err))
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

type taggedRequest struct {
	WordIDs []string `json:"word_ids" validate:"required,min=1"`
	Amount  int      `json:"amount" validate:"gte=1"`
}

type selfValidating struct{ ok bool }

func (s selfValidating) Validate() error {
	if !s.ok {
		return domain.NewValidationError("self", "invalid", nil)
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(&taggedRequest{WordIDs: []string{"a"}, Amount: 1}))
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := ValidateRequest(&taggedRequest{Amount: 1})
		require.Error(t, err)

		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, "word_ids", verrs[0].Field())
		assert.Equal(t, "required", verrs[0].Tag())
	})

	t.Run("uses Validate method", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
		assert.True(t, domain.IsValidationError(ValidateRequest(selfValidating{})))
	})
}
