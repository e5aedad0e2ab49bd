// Package catalog holds the read-only reference data for the Gilmore Manor
// case: evidence, characters, rooms, and the ground-truth solution. The data
// is embedded as YAML and fixed for the session.
package catalog

import (
	_ "embed"
	"gilmoremanor/internal/errors"
	"log/slog"

	"gopkg.in/yaml.v3"
)

//go:embed manor.yaml
var manorYAML []byte

// Evidence is an immutable piece of evidence.
type Evidence struct {
	ID               string `yaml:"id"`
	Name             string `yaml:"name"`
	Description      string `yaml:"description"`
	RedHerring       bool   `yaml:"red_herring"`
	RelatedCharacter string `yaml:"related_character"`
}

// Character is a suspect or the victim.
type Character struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Role           string   `yaml:"role"`
	Background     string   `yaml:"background"`
	Secrets        []string `yaml:"secrets"`
	Persona        string   `yaml:"persona"`
	Greeting       string   `yaml:"greeting"`
	LowTrustLine   string   `yaml:"low_trust_line"`
	HighTrustLine  string   `yaml:"high_trust_line"`
	InitialEmotion string   `yaml:"initial_emotion"`
	Victim         bool     `yaml:"victim"`
}

// Room is a searchable location. The order of the Evidence list decides
// discovery order for the search mechanic.
type Room struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Atmosphere  string   `yaml:"atmosphere"`
	SearchHint  string   `yaml:"search_hint"`
	Characters  []string `yaml:"characters"`
	Evidence    []string `yaml:"evidence"`
}

// Solution is the ground truth of the case.
type Solution struct {
	Murderer    string   `yaml:"murderer"`
	Motive      string   `yaml:"motive"`
	Method      string   `yaml:"method"`
	KeyEvidence []string `yaml:"key_evidence"`
}

type document struct {
	Solution         Solution    `yaml:"solution"`
	CriticalEvidence []string    `yaml:"critical_evidence"`
	Evidence         []Evidence  `yaml:"evidence"`
	Characters       []Character `yaml:"characters"`
	Rooms            []Room      `yaml:"rooms"`
}

// Catalog is the parsed, validated reference data.
type Catalog struct {
	solution     Solution
	critical     []string
	evidence     []Evidence
	evidenceByID map[string]Evidence
	characters   []Character
	charsByID    map[string]Character
	rooms        []Room
	roomsByID    map[string]Room
}

// Load parses and validates the embedded case data.
func Load() (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(manorYAML, &doc); err != nil {
		return nil, errors.Wrap(err, "unmarshal case data")
	}

	cat := Catalog{
		solution:     doc.Solution,
		critical:     doc.CriticalEvidence,
		evidence:     doc.Evidence,
		evidenceByID: make(map[string]Evidence, len(doc.Evidence)),
		characters:   doc.Characters,
		charsByID:    make(map[string]Character, len(doc.Characters)),
		rooms:        doc.Rooms,
		roomsByID:    make(map[string]Room, len(doc.Rooms)),
	}
	for _, item := range doc.Evidence {
		cat.evidenceByID[item.ID] = item
	}
	for _, character := range doc.Characters {
		cat.charsByID[character.ID] = character
	}
	for _, room := range doc.Rooms {
		cat.roomsByID[room.ID] = room
	}

	if err := cat.validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Catalog) validate() error {
	var errorList []error
	for _, id := range c.critical {
		if _, ok := c.evidenceByID[id]; !ok {
			errorList = append(errorList, errors.New("unknown critical evidence", slog.String("id", id)))
		}
	}
	criticalSet := make(map[string]bool, len(c.critical))
	for _, id := range c.critical {
		criticalSet[id] = true
	}
	// The key evidence of the solution must be a subset of the critical set.
	for _, id := range c.solution.KeyEvidence {
		if !criticalSet[id] {
			errorList = append(errorList, errors.New("key evidence is not critical", slog.String("id", id)))
		}
	}
	if _, ok := c.charsByID[c.solution.Murderer]; !ok {
		errorList = append(errorList, errors.New("unknown murderer", slog.String("id", c.solution.Murderer)))
	}
	for _, item := range c.evidence {
		if item.RelatedCharacter == "" {
			continue
		}
		if _, ok := c.charsByID[item.RelatedCharacter]; !ok {
			errorList = append(errorList, errors.New("unknown related character",
				slog.String("evidence", item.ID), slog.String("character", item.RelatedCharacter)))
		}
	}
	for _, room := range c.rooms {
		for _, id := range room.Evidence {
			if _, ok := c.evidenceByID[id]; !ok {
				errorList = append(errorList, errors.New("unknown evidence in room",
					slog.String("room", room.ID), slog.String("evidence", id)))
			}
		}
		for _, id := range room.Characters {
			if _, ok := c.charsByID[id]; !ok {
				errorList = append(errorList, errors.New("unknown character in room",
					slog.String("room", room.ID), slog.String("character", id)))
			}
		}
	}
	return errors.Join(errorList...)
}

// Solution returns the ground truth of the case.
func (c *Catalog) Solution() Solution {
	return c.solution
}

// Evidence looks up evidence by id.
func (c *Catalog) Evidence(id string) (Evidence, bool) {
	item, ok := c.evidenceByID[id]
	return item, ok
}

// AllEvidence returns every piece of evidence in catalog order.
func (c *Catalog) AllEvidence() []Evidence {
	return c.evidence
}

// EvidenceInRoom returns the evidence placed in a room, in listing order.
func (c *Catalog) EvidenceInRoom(roomID string) []Evidence {
	room, ok := c.roomsByID[roomID]
	if !ok {
		return nil
	}
	items := make([]Evidence, 0, len(room.Evidence))
	for _, id := range room.Evidence {
		if item, found := c.evidenceByID[id]; found {
			items = append(items, item)
		}
	}
	return items
}

// EvidenceForCharacter returns the evidence pointing at a character.
func (c *Catalog) EvidenceForCharacter(characterID string) []Evidence {
	var items []Evidence
	for _, item := range c.evidence {
		if item.RelatedCharacter == characterID {
			items = append(items, item)
		}
	}
	return items
}

// CriticalEvidence returns the ids of the plot-critical evidence.
func (c *Catalog) CriticalEvidence() []string {
	return c.critical
}

// IsCritical reports whether an evidence id is plot-critical.
func (c *Catalog) IsCritical(id string) bool {
	for _, critical := range c.critical {
		if critical == id {
			return true
		}
	}
	return false
}

// RedHerrings returns the ids of the evidence flagged as misleading.
func (c *Catalog) RedHerrings() []string {
	var ids []string
	for _, item := range c.evidence {
		if item.RedHerring {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// Character looks up a character by id.
func (c *Catalog) Character(id string) (Character, bool) {
	character, ok := c.charsByID[id]
	return character, ok
}

// AllCharacters returns every character in catalog order, victim included.
func (c *Catalog) AllCharacters() []Character {
	return c.characters
}

// Suspects returns every character that can be accused, i.e. everybody but the victim.
func (c *Catalog) Suspects() []Character {
	suspects := make([]Character, 0, len(c.characters))
	for _, character := range c.characters {
		if !character.Victim {
			suspects = append(suspects, character)
		}
	}
	return suspects
}

// Room looks up a room by id.
func (c *Catalog) Room(id string) (Room, bool) {
	room, ok := c.roomsByID[id]
	return room, ok
}

// AllRooms returns every room in catalog order.
func (c *Catalog) AllRooms() []Room {
	return c.rooms
}
