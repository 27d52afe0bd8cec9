// Package config centralizes environment lookups so composition roots stay
// declarative. Values are read at startup; nothing here watches for changes.
package config

import (
	"os"
	"strconv"

	"loadboard-route-service/internal/services"
)

// Get returns the environment value for key, or fallback when unset/empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt returns the integer environment value for key, or fallback when
// unset or unparseable.
func GetInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// GetFloat returns the float environment value for key, or fallback when
// unset or unparseable.
func GetFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// GetBool returns the boolean environment value for key, or fallback when
// unset or unparseable.
func GetBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// TuningFromEnv builds the search tuning, starting from defaults and applying
// any SEARCH_* overrides. The relaxation and tiering knobs are configuration
// by contract, not constants.
func TuningFromEnv() services.Tuning {
	t := services.DefaultTuning()

	t.DeadheadStepMiles = GetFloat("SEARCH_DEADHEAD_STEP_MILES", t.DeadheadStepMiles)
	t.MaxIterations = GetInt("SEARCH_MAX_ITERATIONS", t.MaxIterations)
	t.DeadheadCeilingMiles = GetFloat("SEARCH_DEADHEAD_CEILING_MILES", t.DeadheadCeilingMiles)
	t.TargetRouteCount = GetInt("SEARCH_TARGET_ROUTE_COUNT", t.TargetRouteCount)

	t.MediumLoadThreshold = GetInt("SEARCH_MEDIUM_LOAD_THRESHOLD", t.MediumLoadThreshold)
	t.LargeLoadThreshold = GetInt("SEARCH_LARGE_LOAD_THRESHOLD", t.LargeLoadThreshold)
	t.MediumMaxDeadheadRatio = GetFloat("SEARCH_MEDIUM_MAX_DEADHEAD_RATIO", t.MediumMaxDeadheadRatio)
	t.LargeMaxDeadheadRatio = GetFloat("SEARCH_LARGE_MAX_DEADHEAD_RATIO", t.LargeMaxDeadheadRatio)
	t.TieredMaxChainLength = GetInt("SEARCH_TIERED_MAX_CHAIN_LENGTH", t.TieredMaxChainLength)

	t.EnforceDutyLimits = GetBool("SEARCH_ENFORCE_DUTY_LIMITS", t.EnforceDutyLimits)

	return t
}
