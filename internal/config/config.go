// Package config provides YAML-based configuration loading and difficulty
// presets for calc-climb.
package config

// CalcClimbConfig contains all tunable game configuration.
type CalcClimbConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Input      InputConfig      `yaml:"input"`
	Network    NetworkConfig    `yaml:"network"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines avatar movement in world units per tick.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`
	MaxFall     float64 `yaml:"max_fall"`
	RunSpeed    float64 `yaml:"run_speed"`
	JumpImpulse float64 `yaml:"jump_impulse"` // negative is up
	ClimbSpeed  float64 `yaml:"climb_speed"`
	LadderCreep float64 `yaml:"ladder_creep"`
	FallMargin  float64 `yaml:"fall_margin"`
}

// InputConfig defines terminal input emulation.
type InputConfig struct {
	HoldTicks int `yaml:"hold_ticks"` // ticks a key press stays held
}

// NetworkConfig defines online play parameters.
type NetworkConfig struct {
	StateSyncMs  int `yaml:"state_sync_ms"` // minimum interval between state relays
	OnlineLevels int `yaml:"online_levels"` // match level index is drawn from [0, n)
}

// DifficultyConfig defines the tier progression of the solo campaign.
type DifficultyConfig struct {
	StartTier   int  `yaml:"start_tier"`
	MaxTier     int  `yaml:"max_tier"`
	Progression bool `yaml:"progression"` // advance one tier per cleared stage
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// StartTierForPreset returns the first campaign tier for a preset.
// Fixed keeps whatever tier is configured.
func StartTierForPreset(preset DifficultyPreset) (int, bool) {
	switch preset {
	case DifficultyEasy:
		return 0, true
	case DifficultyNormal:
		return 3, true
	case DifficultyHard:
		return 6, true
	default:
		return 0, false
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
