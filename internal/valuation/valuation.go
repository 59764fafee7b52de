// Package valuation computes heuristic company valuations from an extracted
// profile and a user-tunable growth assumption. The package is pure: no IO,
// no clock, no randomness.
package valuation

import (
	"fmt"
	"strings"

	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/types"
)

const (
	// RevenueFloor substitutes for annual revenue when none was extracted,
	// so pre-revenue companies still get a non-zero estimate.
	RevenueFloor = 1_000_000

	// MinGrowthPercent and MaxGrowthPercent bound the growth slider.
	MinGrowthPercent = 0
	MaxGrowthPercent = 200

	// GrowthStep is the slider granularity in percentage points.
	GrowthStep = 5

	// DefaultGrowthPercent seeds the slider when the profile carries no
	// usable growth rate.
	DefaultGrowthPercent = 10
)

// Multiplier converts a growth assumption (in percent, e.g. 40 for 40%) into
// a revenue multiple. A company with no growth is worth 2x revenue; every 10
// points of growth add one turn of revenue.
func Multiplier(growthPercent float64) float64 {
	return 2 + growthPercent/10
}

// Estimate values a company at growthPercent annual growth. Companies with no
// extracted revenue are valued against RevenueFloor instead.
func Estimate(profile types.Profile, growthPercent float64) float64 {
	revenue := profile.AnnualRevenue
	if revenue == 0 {
		revenue = RevenueFloor
	}
	return revenue * Multiplier(growthPercent)
}

// ClampGrowth forces a growth assumption into the slider range.
func ClampGrowth(growthPercent float64) float64 {
	if growthPercent < MinGrowthPercent {
		return MinGrowthPercent
	}
	if growthPercent > MaxGrowthPercent {
		return MaxGrowthPercent
	}
	return growthPercent
}

// SeedGrowth derives the initial slider position from a profile. The
// extracted rate is a fraction (0.4 means 40%), so it is rescaled to percent
// before clamping. Profiles without a positive rate seed at
// DefaultGrowthPercent.
func SeedGrowth(profile types.Profile) float64 {
	if profile.GrowthRate > 0 {
		return ClampGrowth(profile.GrowthRate * 100)
	}
	return DefaultGrowthPercent
}

// FormatSWOT renders the four SWOT fields as a single display line. Missing
// entries render as "-" so the line always has four segments.
func FormatSWOT(profile types.Profile) string {
	return fmt.Sprintf("💪 %s | ⚠️ %s | 🚀 %s | 🛡️ %s",
		orDash(profile.Strength),
		orDash(profile.Weakness),
		orDash(profile.Opportunity),
		orDash(profile.Threat),
	)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
