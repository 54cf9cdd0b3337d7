package analyzer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askrepo/askrepo/internal/lang"
)

// Test Plan for complexity metrics:
// - Straight-line bodies score cyclomatic 1, never 0
// - Each decision point adds one to cyclomatic
// - Maintainability decreases with lines, complexity, and depth
// - Scores clamp to the [0, 100] range
// - Band cutoffs classify High / Medium / Low

func TestComputeMetrics_StraightLineBody(t *testing.T) {
	t.Parallel()

	p, ok := lang.ByName("go")
	require.True(t, ok)

	body := "func add(a, b int) int {\n\treturn a + b\n}"
	m := ComputeMetrics(CodeEntity{Depth: 0}, body, p, DefaultMetricsConfig())

	assert.Equal(t, 1, m.Cyclomatic)
	assert.Equal(t, 3, m.LineCount)
	assert.Equal(t, 100.0, m.Maintainability)
}

func TestComputeMetrics_DecisionPoints(t *testing.T) {
	t.Parallel()

	p, ok := lang.ByName("go")
	require.True(t, ok)

	body := "if a {\n} else if b && c {\n}"
	m := ComputeMetrics(CodeEntity{}, body, p, DefaultMetricsConfig())

	// Two "if" tokens plus one "&&".
	assert.Equal(t, 4, m.Cyclomatic)
}

func TestComputeMetrics_PenaltiesStack(t *testing.T) {
	t.Parallel()

	p, ok := lang.ByName("python")
	require.True(t, ok)
	cfg := DefaultMetricsConfig()

	simple := ComputeMetrics(CodeEntity{Depth: 0}, "return 1", p, cfg)
	nested := ComputeMetrics(CodeEntity{Depth: 2}, "return 1", p, cfg)
	assert.Greater(t, simple.Maintainability, nested.Maintainability)
	assert.Equal(t, simple.Maintainability-2*cfg.DepthPenalty, nested.Maintainability)

	branchy := ComputeMetrics(CodeEntity{Depth: 0}, "if a:\n    pass\nelif b:\n    pass", p, cfg)
	assert.Greater(t, simple.Maintainability, branchy.Maintainability)
}

func TestComputeMetrics_LongBodiesLoseLinePoints(t *testing.T) {
	t.Parallel()

	p, ok := lang.ByName("go")
	require.True(t, ok)

	var b strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, "x%d := %d\n", i, i)
	}
	m := ComputeMetrics(CodeEntity{}, b.String(), p, DefaultMetricsConfig())

	assert.Equal(t, 50, m.LineCount)
	assert.Equal(t, 95.0, m.Maintainability)
}

func TestComputeMetrics_ClampsToZero(t *testing.T) {
	t.Parallel()

	p, ok := lang.ByName("go")
	require.True(t, ok)

	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString("if x {\n}\n")
	}
	m := ComputeMetrics(CodeEntity{Depth: 5}, b.String(), p, DefaultMetricsConfig())

	assert.Equal(t, 0.0, m.Maintainability)
}

func TestComputeMetrics_NilProfile(t *testing.T) {
	t.Parallel()

	m := ComputeMetrics(CodeEntity{}, "anything at all", nil, DefaultMetricsConfig())
	assert.Equal(t, 1, m.Cyclomatic)
}

func TestMetricsConfig_Band(t *testing.T) {
	t.Parallel()

	cfg := DefaultMetricsConfig()
	assert.Equal(t, "High", cfg.Band(95))
	assert.Equal(t, "High", cfg.Band(80))
	assert.Equal(t, "Medium", cfg.Band(79.9))
	assert.Equal(t, "Medium", cfg.Band(60))
	assert.Equal(t, "Low", cfg.Band(59.9))
	assert.Equal(t, "Low", cfg.Band(0))
}
