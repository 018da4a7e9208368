package practice

import (
	"math/rand/v2"
	"sync"

	"github.com/phrazzld/lexi-api/internal/domain"
)

// Options configures round sizes, thresholds and mastery deltas.
type Options struct {
	DefaultRoundSize int
	MaxRoundSize     int
	MasteryThreshold int
	DistractorCount  int
	Delta            domain.MasteryDelta
}

// DefaultOptions returns a round of 10 out of at most 50 words, a mastery
// threshold of 80, three distractors and the default mastery deltas.
func DefaultOptions() Options {
	return Options{
		DefaultRoundSize: 10,
		MaxRoundSize:     50,
		MasteryThreshold: 80,
		DistractorCount:  3,
		Delta:            domain.DefaultMasteryDelta(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.DefaultRoundSize <= 0 {
		o.DefaultRoundSize = d.DefaultRoundSize
	}
	if o.MaxRoundSize <= 0 {
		o.MaxRoundSize = d.MaxRoundSize
	}
	if o.MasteryThreshold <= 0 {
		o.MasteryThreshold = d.MasteryThreshold
	}
	if o.DistractorCount <= 0 {
		o.DistractorCount = d.DistractorCount
	}
	if o.Delta.CorrectGain <= 0 {
		o.Delta.CorrectGain = d.Delta.CorrectGain
	}
	if o.Delta.IncorrectPenalty <= 0 {
		o.Delta.IncorrectPenalty = d.Delta.IncorrectPenalty
	}
	return o
}

// lockedRand serializes access to a *rand.Rand, which is not safe for
// concurrent use.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedRand(src rand.Source) *lockedRand {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &lockedRand{r: rand.New(src)}
}

func (l *lockedRand) shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}

// buildQuestion turns a candidate into a multiple-choice question. Distractors
// are drawn uniformly from the distinct translations of the other words in
// pool; fewer than want are used when the pool is too small.
func buildQuestion(c domain.PracticeCandidate, pool []domain.VocabularyItem, want int, rnd *lockedRand) domain.PracticeQuestion {
	correct := c.Item.Translation

	seen := map[string]struct{}{correct: {}}
	choices := make([]string, 0, len(pool))
	for _, item := range pool {
		if item.ID == c.Item.ID {
			continue
		}
		if _, dup := seen[item.Translation]; dup {
			continue
		}
		seen[item.Translation] = struct{}{}
		choices = append(choices, item.Translation)
	}

	rnd.shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })
	if len(choices) > want {
		choices = choices[:want]
	}

	options := append(choices, correct)
	rnd.shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	correctIndex := 0
	for i, o := range options {
		if o == correct {
			correctIndex = i
			break
		}
	}

	return domain.PracticeQuestion{
		Item:         c.Item,
		MasteryLevel: c.MasteryLevel,
		Options:      options,
		CorrectIndex: correctIndex,
	}
}
