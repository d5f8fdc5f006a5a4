package config

import (
	_ "embed"
)

//go:embed defaults/calcclimb.yaml
var defaultCalcClimbYAML []byte

// DefaultCalcClimbConfig returns the hardcoded configuration, used when the
// embedded YAML cannot be parsed and to fill fields a file leaves unset.
func DefaultCalcClimbConfig() CalcClimbConfig {
	return CalcClimbConfig{
		Physics: PhysicsConfig{
			Gravity:     0.6,
			MaxFall:     12,
			RunSpeed:    4.5,
			JumpImpulse: -14,
			ClimbSpeed:  3.5,
			LadderCreep: 1.5,
			FallMargin:  100,
		},
		Input: InputConfig{
			HoldTicks: 8,
		},
		Network: NetworkConfig{
			StateSyncMs:  50,
			OnlineLevels: 3,
		},
		Difficulty: DifficultyConfig{
			StartTier:   0,
			MaxTier:     12,
			Progression: true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultCalcClimbYAML
}
