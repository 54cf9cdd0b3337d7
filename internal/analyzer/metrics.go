package analyzer

import (
	"strings"

	"github.com/askrepo/askrepo/internal/lang"
)

// MetricsConfig holds the maintainability-score policy constants. The
// score is a 0-100 composite that decreases monotonically with entity
// length, cyclomatic complexity, and nesting depth:
//
//	score = 100 - lines/LinesPerPoint - complexity*ComplexityPenalty - depth*DepthPenalty
//
// clamped to [0, 100]. Band cutoffs classify the score for reporting.
type MetricsConfig struct {
	LinesPerPoint     int     // lines of body per point deducted
	ComplexityPenalty float64 // points deducted per decision point above the base
	DepthPenalty      float64 // points deducted per level of nesting
	HighBand          float64 // score >= HighBand reports as High
	MediumBand        float64 // score >= MediumBand reports as Medium
}

// DefaultMetricsConfig returns the default scoring policy.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		LinesPerPoint:     10,
		ComplexityPenalty: 3,
		DepthPenalty:      2,
		HighBand:          80,
		MediumBand:        60,
	}
}

// ComputeMetrics scores one entity body. Cyclomatic complexity starts
// at 1 and increments once per decision-point token from the profile;
// a body with no decision points therefore scores 1, never 0.
func ComputeMetrics(entity CodeEntity, body string, profile *lang.Profile, cfg MetricsConfig) ComplexityMetric {
	cyclomatic := 1
	if profile != nil && profile.DecisionPoints != nil {
		cyclomatic += len(profile.DecisionPoints.FindAllStringIndex(body, -1))
	}

	lineCount := 0
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) != "" {
			lineCount++
		}
	}

	return ComplexityMetric{
		Cyclomatic:      cyclomatic,
		NestingDepth:    entity.Depth,
		LineCount:       lineCount,
		Maintainability: cfg.score(lineCount, cyclomatic, entity.Depth),
	}
}

func (c MetricsConfig) score(lines, cyclomatic, depth int) float64 {
	score := 100.0
	if c.LinesPerPoint > 0 {
		score -= float64(lines / c.LinesPerPoint)
	}
	score -= float64(cyclomatic-1) * c.ComplexityPenalty
	score -= float64(depth) * c.DepthPenalty
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Band classifies a maintainability score as High, Medium, or Low.
func (c MetricsConfig) Band(score float64) string {
	switch {
	case score >= c.HighBand:
		return "High"
	case score >= c.MediumBand:
		return "Medium"
	default:
		return "Low"
	}
}
