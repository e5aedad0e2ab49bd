package game

import (
	"gilmoremanor/internal/catalog"
	"math"
)

const (
	baseSearchRate   = 40.0
	trustRateFactor  = 0.3
	attemptRateBonus = 20.0
	maxSearchRate    = 90.0
)

// RollFunc draws a uniform random value in [0, 100). Injected so that
// tests can force outcomes; production callers pass random.Percent.
type RollFunc func() float64

// SearchRate is the success percentage for the next search attempt in a
// room. Failed attempts raise the next attempt's odds linearly, and trust
// with any single suspect raises odds globally.
func SearchRate(s *State, roomID string) float64 {
	maxTrust := 0
	for _, trust := range s.Trust {
		if trust > maxTrust {
			maxTrust = trust
		}
	}
	rate := baseSearchRate + float64(maxTrust)*trustRateFactor + float64(s.SearchAttempts(roomID))*attemptRateBonus
	return math.Min(maxSearchRate, rate)
}

// UndiscoveredEvidence lists the evidence still hidden in a room, in the
// room's listing order.
func UndiscoveredEvidence(s *State, cat *catalog.Catalog, roomID string) []catalog.Evidence {
	var hidden []catalog.Evidence
	for _, item := range cat.EvidenceInRoom(roomID) {
		if !s.HasEvidence(item.ID) {
			hidden = append(hidden, item)
		}
	}
	return hidden
}

// CanSearch reports whether another search attempt in the room is worth
// making: attempts below the cap and something left to find. Callers must
// check it before Search; the engine itself does not reject calls.
func CanSearch(s *State, cat *catalog.Catalog, roomID string) bool {
	return s.SearchAttempts(roomID) < MaxSearchAttempts &&
		len(UndiscoveredEvidence(s, cat, roomID)) > 0
}

// Search resolves one search attempt in a room. The attempt counter
// increments regardless of outcome. On success the first undiscovered item
// in the room's listing order is returned; the item is not added to the
// found set, that is a separate AddEvidence call made by the caller.
func Search(s *State, cat *catalog.Catalog, roomID string, roll RollFunc) (catalog.Evidence, bool) {
	rate := SearchRate(s, roomID)
	s.RecordSearchAttempt(roomID)

	if roll() >= rate {
		return catalog.Evidence{}, false
	}
	hidden := UndiscoveredEvidence(s, cat, roomID)
	if len(hidden) == 0 {
		return catalog.Evidence{}, false
	}
	return hidden[0], true
}
