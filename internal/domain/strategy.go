package domain

// StrategyType identifies one of the fixed budgeting allocation presets
type StrategyType string

// Budgeting strategies
const (
	StrategyRecommended  StrategyType = "RECOMMENDED"
	StrategyConservative StrategyType = "CONSERVATIVE"
	StrategySaver        StrategyType = "SAVER"
	StrategyInvestor     StrategyType = "INVESTOR"
)

// Strategy is a budgeting preset shown during onboarding. Allocation is the
// "needs / savings / investment / wants" percentage split as displayed.
type Strategy struct {
	Type        StrategyType `json:"type"`
	Name        string       `json:"name"`
	IconName    string       `json:"iconName"`
	Allocation  string       `json:"allocation"`
	Recommended bool         `json:"isRecommended"`
}

// strategies is the fixed catalog; the first entry is the default selection
var strategies = []Strategy{
	{Type: StrategyRecommended, Name: "Recomendado", IconName: "trophy", Allocation: "60 / 10 / 10 / 20", Recommended: true},
	{Type: StrategyConservative, Name: "Conservador", IconName: "shield", Allocation: "50 / 15 / 15 / 20"},
	{Type: StrategySaver, Name: "Ahorrador", IconName: "piggybank", Allocation: "50 / 30 / 10 / 20"},
	{Type: StrategyInvestor, Name: "Inversionista", IconName: "trending", Allocation: "50 / 10 / 30 / 10"},
}

// Strategies returns the catalog of budgeting presets
func Strategies() []Strategy {
	out := make([]Strategy, len(strategies))
	copy(out, strategies)
	return out
}

// DefaultStrategy is the preset pre-selected on the first wizard step
func DefaultStrategy() Strategy {
	return strategies[0]
}

// ValidStrategyType reports whether t names a known strategy
func ValidStrategyType(t StrategyType) bool {
	for _, s := range strategies {
		if s.Type == t {
			return true
		}
	}
	return false
}
