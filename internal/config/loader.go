package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "calcclimb.yaml"

// Load loads the game configuration. Fields a file omits keep their default.
// Search order: customPath -> ~/.calcclimb/configs/calcclimb.yaml ->
// ./configs/calcclimb.yaml -> embedded default -> hardcoded default.
func Load(customPath string) (CalcClimbConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return CalcClimbConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return CalcClimbConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", fileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultCalcClimbYAML)
	if err != nil {
		return DefaultCalcClimbConfig(), nil
	}
	return cfg, nil
}

// Parse decodes YAML over the hardcoded defaults and repairs values the
// game cannot run with.
func Parse(data []byte) (CalcClimbConfig, error) {
	cfg := DefaultCalcClimbConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CalcClimbConfig{}, err
	}
	normalize(&cfg)
	return cfg, nil
}

func normalize(cfg *CalcClimbConfig) {
	def := DefaultCalcClimbConfig()
	if cfg.Input.HoldTicks < 1 {
		cfg.Input.HoldTicks = def.Input.HoldTicks
	}
	if cfg.Network.StateSyncMs < 0 {
		cfg.Network.StateSyncMs = def.Network.StateSyncMs
	}
	if cfg.Network.OnlineLevels < 1 {
		cfg.Network.OnlineLevels = def.Network.OnlineLevels
	}
	if cfg.Difficulty.MaxTier < 1 || cfg.Difficulty.MaxTier > def.Difficulty.MaxTier {
		cfg.Difficulty.MaxTier = def.Difficulty.MaxTier
	}
	cfg.Difficulty.StartTier = clamp(cfg.Difficulty.StartTier, 0, cfg.Difficulty.MaxTier)
	if cfg.Physics.MaxFall <= 0 {
		cfg.Physics.MaxFall = def.Physics.MaxFall
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".calcclimb", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *CalcClimbConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Progression = false
		return
	}
	if tier, ok := StartTierForPreset(preset); ok {
		cfg.Difficulty.Progression = true
		cfg.Difficulty.StartTier = clamp(tier, 0, cfg.Difficulty.MaxTier)
	}
}
