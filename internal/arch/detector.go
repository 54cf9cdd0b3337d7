// Package arch infers design-pattern and entry-point signals from the
// extracted entity/import graph and directory layout. Output is
// advisory: patterns carry confidence values and supporting evidence,
// and no single pattern is asserted as the truth.
package arch

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"

	"github.com/askrepo/askrepo/internal/analyzer"
	"github.com/askrepo/askrepo/internal/lang"
)

// Pattern is one detected architecture label with its normalized
// confidence and the evidence that contributed to it.
type Pattern struct {
	Label      string
	Confidence float64 // [0, 1]
	Evidence   []string
}

// Config holds the detector policy constants.
type Config struct {
	// MinConfidence is the evidence threshold below which a pattern is
	// omitted from the result.
	MinConfidence float64
	// MonolithFileCount is the repository size above which, absent
	// service-oriented signals, the monolithic label gains evidence.
	MonolithFileCount int
	// HighFanOut is the average import fan-out above which coupling
	// counts as monolithic evidence.
	HighFanOut float64
}

// DefaultConfig returns the default detection policy.
func DefaultConfig() Config {
	return Config{
		MinConfidence:     0.2,
		MonolithFileCount: 20,
		HighFanOut:        3.0,
	}
}

// accumulator collects evidence weight per pattern label.
type accumulator struct {
	weight   map[string]float64
	evidence map[string][]string
}

func newAccumulator() *accumulator {
	return &accumulator{
		weight:   map[string]float64{},
		evidence: map[string][]string{},
	}
}

func (a *accumulator) add(label string, w float64, evidence string) {
	a.weight[label] += w
	a.evidence[label] = append(a.evidence[label], evidence)
}

// Detect applies the fixed rule set and returns patterns sorted by
// confidence (descending), ties kept together and ordered by label so
// equal-confidence results are reported deterministically.
func Detect(entities []analyzer.CodeEntity, imports []analyzer.ImportEdge, files []string, cfg Config) []Pattern {
	acc := newAccumulator()

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = strings.ToLower(f)
	}

	applyDirectoryRules(acc, paths, cfg)
	applySuffixRules(acc, entities)
	applyGraphRules(acc, imports, files, cfg)

	labels := make([]string, 0, len(acc.weight))
	for label := range acc.weight {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var patterns []Pattern
	for _, label := range labels {
		conf := acc.weight[label]
		if conf > 1 {
			conf = 1
		}
		if conf < cfg.MinConfidence {
			continue
		}
		patterns = append(patterns, Pattern{
			Label:      label,
			Confidence: conf,
			Evidence:   acc.evidence[label],
		})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].Confidence != patterns[j].Confidence {
			return patterns[i].Confidence > patterns[j].Confidence
		}
		return patterns[i].Label < patterns[j].Label
	})
	return patterns
}

// directoryRules maps pattern labels to the path indicators that count
// as evidence for them, with the weight each distinct indicator adds.
var directoryRules = []struct {
	label      string
	indicators []string
	weight     float64
}{
	{"mvc", []string{"model", "view", "controller", "routes", "handlers"}, 0.25},
	{"layered", []string{"service", "repository", "dao", "controller", "business", "domain"}, 0.2},
	{"microservices", []string{"service", "api", "gateway", "docker", "proto"}, 0.2},
}

func applyDirectoryRules(acc *accumulator, paths []string, cfg Config) {
	for _, rule := range directoryRules {
		for _, ind := range rule.indicators {
			for _, p := range paths {
				if strings.Contains(p, ind) {
					acc.add(rule.label, rule.weight, fmt.Sprintf("path indicator %q", ind))
					break
				}
			}
		}
	}

	if len(paths) > cfg.MonolithFileCount && acc.weight["microservices"] < 0.4 {
		acc.add("monolithic", 0.4, fmt.Sprintf("%d files without service boundaries", len(paths)))
	}
}

// suffixRules maps entity-name suffixes to pattern evidence.
var suffixRules = []struct {
	suffix string
	label  string
	weight float64
}{
	{"Controller", "mvc", 0.25},
	{"View", "mvc", 0.15},
	{"Model", "mvc", 0.15},
	{"Service", "layered", 0.2},
	{"Repository", "layered", 0.2},
	{"Handler", "layered", 0.1},
}

func applySuffixRules(acc *accumulator, entities []analyzer.CodeEntity) {
	seen := map[string]bool{}
	for _, ent := range entities {
		for _, rule := range suffixRules {
			if !strings.HasSuffix(ent.Name, rule.suffix) || seen[rule.suffix] {
				continue
			}
			seen[rule.suffix] = true
			acc.add(rule.label, rule.weight, fmt.Sprintf("entity %s matches *%s", ent.Name, rule.suffix))
		}
	}
}

// applyGraphRules builds the local import graph and scores its shape:
// any resolved coupling is modular evidence, and a high average
// fan-out counts toward the monolithic label.
func applyGraphRules(acc *accumulator, imports []analyzer.ImportEdge, files []string, cfg Config) {
	g := graph.New(func(s string) string { return s }, graph.Directed())
	for _, f := range files {
		_ = g.AddVertex(f)
	}

	internal := 0
	for _, edge := range imports {
		if edge.Target == "" {
			continue
		}
		// Ignore errors for duplicate or dangling edges; external
		// references legitimately fall outside the vertex set.
		if err := g.AddEdge(edge.File, edge.Target); err == nil {
			internal++
			if internal <= 5 {
				acc.add("modular", 0.3, fmt.Sprintf("import coupling %s -> %s", edge.File, edge.Target))
			}
		}
	}

	if internal == 0 || len(files) == 0 {
		return
	}

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return
	}
	fanOut := 0
	for _, targets := range adjacency {
		fanOut += len(targets)
	}
	avg := float64(fanOut) / float64(len(files))
	if avg > cfg.HighFanOut {
		acc.add("monolithic", 0.3, fmt.Sprintf("average import fan-out %.1f", avg))
	}
}

// EntryPoints flags entities whose signature matches their language's
// main/bootstrap convention, plus files whose name follows a common
// entry convention. Result is sorted and deduplicated.
func EntryPoints(analyses []analyzer.FileAnalysis) []string {
	seen := map[string]bool{}

	for _, fa := range analyses {
		profile, ok := lang.ByName(fa.File.Language)
		if ok && profile.EntryPoint != nil {
			for _, ent := range fa.Entities {
				if profile.EntryPoint.MatchString(ent.Signature) {
					seen[fa.File.Path] = true
					break
				}
			}
			if !seen[fa.File.Path] && profile.EntryPoint.MatchString(fa.File.Content) {
				seen[fa.File.Path] = true
			}
		}

		base := strings.ToLower(path.Base(fa.File.Path))
		stem := strings.TrimSuffix(base, path.Ext(base))
		switch stem {
		case "main", "index", "app", "server":
			seen[fa.File.Path] = true
		}
	}

	points := make([]string, 0, len(seen))
	for p := range seen {
		points = append(points, p)
	}
	sort.Strings(points)
	return points
}

// TestCoverage is a rough test-to-code file ratio, banded for
// reporting.
type TestCoverage struct {
	TestFiles    int
	RegularFiles int
	Ratio        float64
	Level        string
}

// EstimateTestCoverage classifies files by test naming conventions.
func EstimateTestCoverage(files []string) TestCoverage {
	cov := TestCoverage{}
	for _, f := range files {
		p := strings.ToLower(f)
		if strings.Contains(p, "test") || strings.Contains(p, "spec") {
			cov.TestFiles++
		} else {
			cov.RegularFiles++
		}
	}
	denom := cov.RegularFiles
	if denom == 0 {
		denom = 1
	}
	cov.Ratio = float64(cov.TestFiles) / float64(denom)
	switch {
	case cov.Ratio > 0.5:
		cov.Level = "High"
	case cov.Ratio > 0.2:
		cov.Level = "Medium"
	default:
		cov.Level = "Low"
	}
	return cov
}
