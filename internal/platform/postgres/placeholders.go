package postgres

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// uuidPlaceholders renders "$start, $start+1, ..." for ids and returns the
// matching args, for use inside an IN (...) clause.
func uuidPlaceholders(start int, ids []uuid.UUID) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(start + i))
		args = append(args, id)
	}
	return b.String(), args
}

// dedupe drops repeated and nil IDs while keeping first-seen order.
func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
