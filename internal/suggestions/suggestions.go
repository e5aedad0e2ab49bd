// Package suggestions recommends interrogation lines: a template matcher
// over static question pools keyed by evidence held, character, and trust
// level. No learning or adaptation happens here.
package suggestions

import (
	_ "embed"
	"gilmoremanor/internal/errors"
	"gilmoremanor/internal/game"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var questionsYAML []byte

// Suggestion is one recommended question for a character.
type Suggestion struct {
	ID               string   `yaml:"id"`
	Text             string   `yaml:"text"`
	Type             string   `yaml:"type"`
	Priority         int      `yaml:"priority"`
	RequiredEvidence []string `yaml:"required_evidence"`
	TargetCharacter  string   `yaml:"target_character"`
	Category         string   `yaml:"category"`
	ExpectedReaction string   `yaml:"expected_reaction"`
	FollowUps        []string `yaml:"follow_ups"`
}

type pools struct {
	EvidenceQuestions map[string][]Suggestion `yaml:"evidence_questions"`
	GeneralQuestions  map[string][]Suggestion `yaml:"general_questions"`
	PressureQuestions map[string][]Suggestion `yaml:"pressure_questions"`
}

// Engine matches the static pools against the current investigation.
type Engine struct {
	pools pools
}

// pressureTrustThreshold gates the pressure pool: only a distrustful
// suspect invites hardball questions.
const pressureTrustThreshold = 30

// dedupPrefixLen is the crude overlap window used to drop already-asked
// questions. Not semantic, just a prefix match.
const dedupPrefixLen = 20

// NewEngine parses the embedded question pools.
func NewEngine() (*Engine, error) {
	var p pools
	if err := yaml.Unmarshal(questionsYAML, &p); err != nil {
		return nil, errors.Wrap(err, "unmarshal question pools")
	}
	return &Engine{pools: p}, nil
}

// Suggest recommends questions for a character: evidence-keyed templates
// for every held item targeting this character or everybody, the
// character's general pool, and, for low trust, the pressure pool.
// Questions overlapping an already-asked line are dropped, and the rest
// sorts descending by priority.
func (e *Engine) Suggest(
	characterID string,
	evidenceFound []string,
	trustLevel int,
	history []game.Message,
) []Suggestion {
	var candidates []Suggestion

	for _, evidenceID := range evidenceFound {
		for _, question := range e.pools.EvidenceQuestions[evidenceID] {
			if question.TargetCharacter == characterID || question.TargetCharacter == "all" {
				candidates = append(candidates, question)
			}
		}
	}

	candidates = append(candidates, e.pools.GeneralQuestions[characterID]...)

	if trustLevel < pressureTrustThreshold {
		candidates = append(candidates, e.pools.PressureQuestions[characterID]...)
	}

	var asked []string
	for _, msg := range history {
		if msg.CharacterID == characterID {
			asked = append(asked, strings.ToLower(msg.Text))
		}
	}

	filtered := candidates[:0]
	for _, question := range candidates {
		if !alreadyAsked(question.Text, asked) {
			filtered = append(filtered, question)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Priority > filtered[j].Priority
	})
	return filtered
}

func alreadyAsked(question string, asked []string) bool {
	questionLower := strings.ToLower(question)
	for _, previous := range asked {
		if strings.Contains(previous, prefix(questionLower)) ||
			strings.Contains(questionLower, prefix(previous)) {
			return true
		}
	}
	return false
}

func prefix(text string) string {
	if len(text) > dedupPrefixLen {
		return text[:dedupPrefixLen]
	}
	return text
}

// Approach is the recommended interrogation stance.
type Approach string

const (
	ApproachGentle     Approach = "gentle"
	ApproachDirect     Approach = "direct"
	ApproachAggressive Approach = "aggressive"
)

// Strategy is a coarse plan for questioning one character.
type Strategy struct {
	Approach       Approach
	Reasoning      string
	SuggestedOrder []string
}

// QuestionStrategy picks an interrogation stance from trust and held
// evidence, adjusted for character temperament.
func (e *Engine) QuestionStrategy(characterID string, evidenceFound []string, trustLevel int) Strategy {
	var strategy Strategy

	switch {
	case trustLevel < 20:
		strategy = Strategy{
			Approach:       ApproachGentle,
			Reasoning:      "Trust is low, build rapport before pressing",
			SuggestedOrder: []string{"relationship", "general", "evidence-based"},
		}
	case trustLevel > 70:
		strategy = Strategy{
			Approach:       ApproachDirect,
			Reasoning:      "Trust is high, direct questions will land",
			SuggestedOrder: []string{"evidence-based", "motive", "pressure"},
		}
	default:
		strategy = Strategy{
			Approach:       ApproachDirect,
			Reasoning:      "Balance building trust against gathering information",
			SuggestedOrder: []string{"general", "evidence-based", "relationship"},
		}
	}

	switch characterID {
	case "arthur":
		if contains(evidenceFound, "gambling_receipt") && trustLevel > 50 {
			strategy.Approach = ApproachAggressive
			strategy.Reasoning = "Strong evidence against Arthur, pressure will work"
		}
	case "elise":
		strategy.Approach = ApproachGentle
		strategy.Reasoning = "Elise is timid and needs a soft approach"
	case "marcus":
		strategy.Approach = ApproachGentle
		strategy.Reasoning = "Marcus is young and needs to feel safe"
	}

	return strategy
}

// ContextualHints points at the conversational angles worth working for a
// character given the current evidence and trust.
func (e *Engine) ContextualHints(characterID string, evidenceFound []string, trustLevel int) []string {
	var hints []string

	switch characterID {
	case "arthur":
		if contains(evidenceFound, "gambling_receipt") {
			hints = append(hints, "Arthur seems strained about money. Work that angle.")
		}
		if trustLevel < 40 {
			hints = append(hints, "Arthur is hiding something. Push harder.")
		}
	case "selena":
		if contains(evidenceFound, "wine_glass") {
			hints = append(hints, "The wine glass may tie to Selena. Ask about the lipstick.")
		}
		if contains(evidenceFound, "threatening_letter") {
			hints = append(hints, "The threatening letter could reveal a motive.")
		}
	case "elise":
		if contains(evidenceFound, "spare_key") {
			hints = append(hints, "Elise keeps a spare key. Ask about access to the room.")
		}
		if trustLevel > 70 {
			hints = append(hints, "Elise trusts you. She may share the family's secrets.")
		}
	case "marcus":
		if len(evidenceFound) < 2 {
			hints = append(hints, "Marcus may know something but is afraid to speak. Earn his trust.")
		}
	}

	if len(evidenceFound) == 0 {
		hints = append(hints, "Find some evidence first so your questions have teeth.")
	}
	if trustLevel < 20 {
		hints = append(hints, "Trust is too low. Try a gentler approach.")
	}

	return hints
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
