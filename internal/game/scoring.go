package game

import (
	"gilmoremanor/internal/catalog"
	"math"
)

const (
	breadthWeight      = 60.0
	criticalWeight     = 30.0
	redHerringPenalty  = 5.0
	minCriticalAccuse  = 2
	minCriticalConvict = 3
	highTrustThreshold = 60
)

// EvidenceScore computes the composite evidence score in [0, 100]:
// breadth of collection, depth on plot-critical items, and a flat penalty
// per red herring collected. The penalty can pull the score below the
// breadth-only baseline.
func EvidenceScore(s *State, cat *catalog.Catalog) float64 {
	total := len(cat.AllEvidence())
	critical := cat.CriticalEvidence()
	if total == 0 || len(critical) == 0 {
		return 0
	}

	redHerrings := 0
	for _, id := range s.EvidenceFound {
		if item, ok := cat.Evidence(id); ok && item.RedHerring {
			redHerrings++
		}
	}

	baseScore := float64(len(s.EvidenceFound)) / float64(total) * breadthWeight
	criticalBonus := float64(CriticalFound(s, cat)) / float64(len(critical)) * criticalWeight
	penalty := float64(redHerrings) * redHerringPenalty

	return math.Max(0, math.Min(100, baseScore+criticalBonus-penalty))
}

// TrustScore is the arithmetic mean of all trust values, rounded to the
// nearest integer. No weighting by character importance.
func TrustScore(s *State) int {
	if len(s.Trust) == 0 {
		return 0
	}
	sum := 0
	for _, trust := range s.Trust {
		sum += trust
	}
	return int(math.Round(float64(sum) / float64(len(s.Trust))))
}

// CriticalFound counts the plot-critical evidence ids in the found set.
func CriticalFound(s *State, cat *catalog.Catalog) int {
	count := 0
	for _, id := range cat.CriticalEvidence() {
		if s.HasEvidence(id) {
			count++
		}
	}
	return count
}

// CanAccuse reports whether the player holds enough critical evidence to
// open an accusation.
func CanAccuse(s *State, cat *catalog.Catalog) bool {
	return CriticalFound(s, cat) >= minCriticalAccuse
}

// Status bundles the derived scores for presentation.
type Status struct {
	EvidenceScore float64
	TrustScore    int
	CanAccuse     bool
	Progress      string
}

// InvestigationStatus recomputes the derived presentation scores from the
// current state. Nothing here is stored.
func InvestigationStatus(s *State, cat *catalog.Catalog) Status {
	evidenceScore := EvidenceScore(s, cat)
	return Status{
		EvidenceScore: evidenceScore,
		TrustScore:    TrustScore(s),
		CanAccuse:     CanAccuse(s, cat),
		Progress:      progressLabel(evidenceScore),
	}
}

// progressLabel maps the evidence score to a five-tier label. Thresholds
// are inclusive lower bounds, highest first.
func progressLabel(evidenceScore float64) string {
	switch {
	case evidenceScore >= 80:
		return "Professional Investigation"
	case evidenceScore >= 60:
		return "Good Progress"
	case evidenceScore >= 40:
		return "Making Progress"
	case evidenceScore >= 20:
		return "Preliminary Investigation"
	default:
		return "Initial Stage"
	}
}
