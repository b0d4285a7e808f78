package scoring

import "fmt"

// Config defines the scoring weights. All weights are points.
type Config struct {
	// MissedWeight is deducted per missed incident.
	MissedWeight float64 `json:"missed_weight"`
	// StackWeight is deducted per unit above StackingThreshold in one neighborhood.
	StackWeight float64 `json:"stack_weight"`
	// StackingThreshold is the number of units allowed in a neighborhood
	// before the stacking penalty starts.
	StackingThreshold int `json:"stacking_threshold"`
	// NeglectWeight is deducted per neighborhood that had incidents but no
	// covered incident.
	NeglectWeight float64 `json:"neglect_weight"`
	// EMSWeightMultiplier scales the base-score contribution of incidents
	// reached by an EMS unit. 1.0 disables the bonus.
	EMSWeightMultiplier float64 `json:"ems_weight_multiplier"`
	// BalanceBonusEnabled toggles the even-distribution bonus.
	BalanceBonusEnabled bool `json:"balance_bonus_enabled"`
	// BalanceBonusWeight is the maximum bonus awarded for a perfectly even
	// spread of units across neighborhoods.
	BalanceBonusWeight float64 `json:"balance_bonus_weight"`
}

// SetDefaults applies the documented default weights.
func (c *Config) SetDefaults() {
	if c.MissedWeight == 0 {
		c.MissedWeight = 2.0
	}
	if c.StackWeight == 0 {
		c.StackWeight = 5.0
	}
	if c.StackingThreshold == 0 {
		c.StackingThreshold = 2
	}
	if c.NeglectWeight == 0 {
		c.NeglectWeight = 10.0
	}
	if c.EMSWeightMultiplier == 0 {
		c.EMSWeightMultiplier = 1.0
	}
	if c.BalanceBonusWeight == 0 {
		c.BalanceBonusWeight = 10.0
	}
}

// Validate checks the weights are usable.
func (c Config) Validate() error {
	if c.MissedWeight < 0 || c.StackWeight < 0 || c.NeglectWeight < 0 || c.BalanceBonusWeight < 0 {
		return fmt.Errorf("scoring weights must be non-negative")
	}
	if c.StackingThreshold < 1 {
		return fmt.Errorf("stacking_threshold must be at least 1, got %d", c.StackingThreshold)
	}
	if c.EMSWeightMultiplier < 1 {
		return fmt.Errorf("ems_weight_multiplier must be at least 1, got %v", c.EMSWeightMultiplier)
	}
	return nil
}
