package progression

// Params defines all configurable values of the XP and level schedule
type Params struct {
	// Level schedule
	BaseXP         int
	LevelIncrement int

	// Bonus paid per level gained in one award
	LevelUpBonusPerLevel int

	// Practice session rewards
	SessionBaseXP       int
	XPPerCorrectAnswer  int
	PerfectSessionBonus int

	// Vocabulary rewards
	XPPerWordAdded int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
// Zero values keep the default.
type ParamsConfig struct {
	BaseXP               int
	LevelIncrement       int
	LevelUpBonusPerLevel int
	SessionBaseXP        int
	XPPerCorrectAnswer   int
	PerfectSessionBonus  int
	XPPerWordAdded       int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		BaseXP:               100,
		LevelIncrement:       50,
		LevelUpBonusPerLevel: 50,
		SessionBaseXP:        25,
		XPPerCorrectAnswer:   5,
		PerfectSessionBonus:  50,
		XPPerWordAdded:       10,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.BaseXP > 0 {
		params.BaseXP = config.BaseXP
	}
	if config.LevelIncrement > 0 {
		params.LevelIncrement = config.LevelIncrement
	}
	if config.LevelUpBonusPerLevel > 0 {
		params.LevelUpBonusPerLevel = config.LevelUpBonusPerLevel
	}
	if config.SessionBaseXP > 0 {
		params.SessionBaseXP = config.SessionBaseXP
	}
	if config.XPPerCorrectAnswer > 0 {
		params.XPPerCorrectAnswer = config.XPPerCorrectAnswer
	}
	if config.PerfectSessionBonus > 0 {
		params.PerfectSessionBonus = config.PerfectSessionBonus
	}
	if config.XPPerWordAdded > 0 {
		params.XPPerWordAdded = config.XPPerWordAdded
	}

	return params
}
