package config

// DifficultyManager maps campaign progress onto generator tiers.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	if cfg.MaxTier <= 0 {
		cfg.MaxTier = 12
	}
	cfg.StartTier = clamp(cfg.StartTier, 0, cfg.MaxTier)
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether tiers advance with cleared stages.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Progression
}

// StartTier returns the first tier of a run.
func (d *DifficultyManager) StartTier() int {
	return d.cfg.StartTier
}

// Tier returns the tier for the stage after cleared stages.
func (d *DifficultyManager) Tier(cleared int) int {
	if !d.cfg.Progression {
		return d.cfg.StartTier
	}
	return clamp(d.cfg.StartTier+max(cleared, 0), 0, d.cfg.MaxTier)
}

func clamp(val, lo, hi int) int {
	return max(lo, min(hi, val))
}
