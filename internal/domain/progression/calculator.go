// Package progression holds the pure arithmetic of the XP ledger: the level
// schedule, per-activity rewards and the level-up bonus policy.
package progression

import (
	"github.com/phrazzld/lexi-api/internal/domain"
)

// Calculator defines the interface for XP and level computations
type Calculator interface {
	// RequiredForNext returns the XP needed to advance from level to level+1.
	RequiredForNext(level int) int

	// CumulativeFor returns the total XP at which level is reached.
	CumulativeFor(level int) int

	// LevelFor returns the largest level whose cumulative threshold does not exceed totalXP.
	LevelFor(totalXP int) int

	// Progress describes the position of totalXP within its level.
	Progress(totalXP int) domain.LevelProgress

	// SessionXP returns the reward for a completed practice session.
	SessionXP(correct, total int) int

	// VocabularyXP returns the reward for adding words.
	VocabularyXP(wordsAdded int) int

	// LevelUpBonus returns the bonus paid for moving from oldLevel to newLevel.
	LevelUpBonus(oldLevel, newLevel int) int
}

// defaultCalculator is the standard implementation of the Calculator interface
type defaultCalculator struct {
	params *Params
}

// NewDefaultCalculator creates a calculator with default parameters
func NewDefaultCalculator() Calculator {
	return &defaultCalculator{params: NewDefaultParams()}
}

// NewCalculatorWithParams creates a calculator with custom parameters
func NewCalculatorWithParams(params *Params) Calculator {
	if params == nil {
		params = NewDefaultParams()
	}
	return &defaultCalculator{params: params}
}

func (c *defaultCalculator) RequiredForNext(level int) int {
	if level < 1 {
		level = 1
	}
	return c.params.BaseXP + (level-1)*c.params.LevelIncrement
}

// CumulativeFor uses the closed form of the arithmetic series
// sum_{k=1}^{L-1} (base + (k-1)*inc) = base*(L-1) + inc*(L-1)*(L-2)/2.
func (c *defaultCalculator) CumulativeFor(level int) int {
	if level <= 1 {
		return 0
	}
	n := level - 1
	return c.params.BaseXP*n + c.params.LevelIncrement*n*(n-1)/2
}

func (c *defaultCalculator) LevelFor(totalXP int) int {
	level := 1
	for c.CumulativeFor(level+1) <= totalXP {
		level++
	}
	return level
}

func (c *defaultCalculator) Progress(totalXP int) domain.LevelProgress {
	if totalXP < 0 {
		totalXP = 0
	}
	level := c.LevelFor(totalXP)
	into := totalXP - c.CumulativeFor(level)
	need := c.RequiredForNext(level)

	return domain.LevelProgress{
		CurrentLevel:       level,
		CurrentXP:          into,
		XPForNextLevel:     need,
		XPToNextLevel:      need - into,
		ProgressPercentage: domain.ProgressPercentage(into, need),
	}
}

func (c *defaultCalculator) SessionXP(correct, total int) int {
	if correct < 0 {
		correct = 0
	}
	xp := c.params.SessionBaseXP + c.params.XPPerCorrectAnswer*correct
	if total > 0 && correct == total {
		xp += c.params.PerfectSessionBonus
	}
	return xp
}

func (c *defaultCalculator) VocabularyXP(wordsAdded int) int {
	if wordsAdded <= 0 {
		return 0
	}
	return c.params.XPPerWordAdded * wordsAdded
}

func (c *defaultCalculator) LevelUpBonus(oldLevel, newLevel int) int {
	if newLevel <= oldLevel {
		return 0
	}
	return c.params.LevelUpBonusPerLevel * (newLevel - oldLevel)
}
