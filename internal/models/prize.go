package models

// Prize is a named outcome with a relative selection weight.
type Prize struct {
	Name   string `mapstructure:"name" json:"name"`
	Weight int    `mapstructure:"weight" json:"weight"`
}

// DefaultPrizes returns the prize table the promotion launched with.
// The first entry is the no-win outcome and doubles as the fallback.
func DefaultPrizes() []Prize {
	return []Prize{
		{Name: "NOTHING", Weight: 70},
		{Name: "10% OFF", Weight: 20},
		{Name: "5 DINARS OFF", Weight: 5},
		{Name: "20% OFF", Weight: 5},
		{Name: "FREE TUNA PIZZA", Weight: 0},
	}
}
