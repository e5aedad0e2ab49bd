package game

import (
	"fmt"
	"gilmoremanor/internal/catalog"
)

// Outcome is the narrative result of an accusation.
type Outcome string

const (
	// OutcomeVictory is the clean win: correct suspect, enough critical
	// evidence, and cooperative witnesses.
	OutcomeVictory Outcome = "victory"
	// OutcomePartialVictory is a correct accusation undermined by poor
	// witness trust.
	OutcomePartialVictory Outcome = "partial-victory"
	// OutcomeInsufficientEvidence means the suspect was right but the case
	// is too thin; the investigation continues.
	OutcomeInsufficientEvidence Outcome = "insufficient-evidence"
	// OutcomeWrongContinue is an incorrect accusation the investigation
	// can recover from.
	OutcomeWrongContinue Outcome = "wrong-accusation"
	// OutcomeWrongFatal is an incorrect accusation made with almost no
	// basis; the real culprit escapes for good.
	OutcomeWrongFatal Outcome = "wrong-accusation-fatal"
)

// AccusationResult describes how an accusation resolved.
type AccusationResult struct {
	Outcome       Outcome
	Correct       bool
	EvidenceScore float64
	TrustScore    int
	GameOver      bool
	Message       string
}

const fatalEvidenceThreshold = 30.0

// MakeAccusation resolves an accusation against a suspect. The decision is
// deterministic in the current state. Terminal outcomes move the phase to
// complete and set the game-complete flag; non-terminal outcomes record
// the accused and nothing else.
func MakeAccusation(s *State, cat *catalog.Catalog, accusedID string) AccusationResult {
	evidenceScore := EvidenceScore(s, cat)
	trustScore := TrustScore(s)
	criticalFound := CriticalFound(s, cat)

	isCorrect := accusedID == cat.Solution().Murderer
	hasEnoughEvidence := criticalFound >= minCriticalConvict
	hasHighTrust := trustScore >= highTrustThreshold

	s.Accused = accusedID

	result := AccusationResult{
		Correct:       isCorrect,
		EvidenceScore: evidenceScore,
		TrustScore:    trustScore,
	}

	switch {
	case isCorrect && hasEnoughEvidence && hasHighTrust:
		result.Outcome = OutcomeVictory
		result.GameOver = true
		result.Message = victoryMessage(cat, accusedID, evidenceScore, trustScore)
	case isCorrect && hasEnoughEvidence:
		result.Outcome = OutcomePartialVictory
		result.GameOver = true
		result.Message = partialVictoryMessage(cat, accusedID, trustScore)
	case isCorrect:
		result.Outcome = OutcomeInsufficientEvidence
		result.Message = insufficientEvidenceMessage(cat, accusedID, criticalFound)
	case evidenceScore < fatalEvidenceThreshold:
		result.Outcome = OutcomeWrongFatal
		result.GameOver = true
		result.Message = wrongAccusationFatalMessage(cat, accusedID, evidenceScore)
	default:
		result.Outcome = OutcomeWrongContinue
		result.Message = wrongAccusationMessage(cat, accusedID, evidenceScore)
	}

	if result.GameOver {
		s.Phase = PhaseComplete
		s.Flags.GameComplete = true
	}

	return result
}

func characterName(cat *catalog.Catalog, id string) string {
	if character, ok := cat.Character(id); ok {
		return character.Name
	}
	return id
}

func victoryMessage(cat *catalog.Catalog, accusedID string, evidenceScore float64, trustScore int) string {
	return fmt.Sprintf(
		"CASE CLOSED. You identified %s as Marlene Gilmore's killer with an airtight case "+
			"(evidence %.0f%%, witness trust %d%%). Selena poisoned the nightly glass of wine, "+
			"let in by the spare key, desperate to secure the inheritance before the will changed. "+
			"The lipstick on the glass was her one fatal mistake.",
		characterName(cat, accusedID), evidenceScore, trustScore)
}

func partialVictoryMessage(cat *catalog.Catalog, accusedID string, trustScore int) string {
	return fmt.Sprintf(
		"CORRECT, WITH DOUBTS. You named %s as the killer, but with witness trust at only %d%% "+
			"the case is shaky in court. A confession under pressure, and a good lawyer circling "+
			"for reasonable doubt.",
		characterName(cat, accusedID), trustScore)
}

func insufficientEvidenceMessage(cat *catalog.Catalog, accusedID string, criticalFound int) string {
	return fmt.Sprintf(
		"NOT ENOUGH EVIDENCE. Your instinct about %s may well be right, but with only %d of %d "+
			"key pieces you cannot make the charge stick. Keep searching and come back.",
		characterName(cat, accusedID), criticalFound, minCriticalConvict)
}

func wrongAccusationMessage(cat *catalog.Catalog, accusedID string, evidenceScore float64) string {
	return fmt.Sprintf(
		"WRONG SUSPECT. %s has an alibi, and your accusation falls apart. With %.0f%% of the "+
			"evidence in hand you still have a chance to find the real killer. Reconsider your suspects.",
		characterName(cat, accusedID), evidenceScore)
}

func wrongAccusationFatalMessage(cat *catalog.Catalog, accusedID string, evidenceScore float64) string {
	return fmt.Sprintf(
		"CASE CLOSED IN FAILURE. Accusing %s with barely any evidence (%.0f%%) has wrecked the "+
			"investigation. Your reputation is ruined and the real killer walks free.",
		characterName(cat, accusedID), evidenceScore)
}
