// Package game implements the investigation engine for the Gilmore Manor
// case: the mutable game state and its reducers, the probabilistic search
// mechanic, the scoring functions, and the accusation state machine.
//
// There is no global store. Callers own a single *State and pass it into
// the engine functions explicitly.
package game

import (
	"encoding/json"
	"gilmoremanor/internal/catalog"
	"time"
)

// Phase is the phase of the investigation. It only moves forward.
type Phase string

const (
	PhaseInvestigation Phase = "investigation"
	PhaseAccusation    Phase = "accusation"
	PhaseComplete      Phase = "complete"
)

// Emotion is the emotional state of a suspect.
type Emotion string

const (
	EmotionCalm      Emotion = "calm"
	EmotionNervous   Emotion = "nervous"
	EmotionDefensive Emotion = "defensive"
	EmotionAngry     Emotion = "angry"
)

const (
	// MaxSearchAttempts is the per-room cap on search attempts. The engine
	// does not reject calls past the cap; callers gate with CanSearch.
	MaxSearchAttempts = 3

	initialTrust = 50
	minTrust     = 0
	maxTrust     = 100
)

// Message is one entry of the conversation log.
type Message struct {
	CharacterID   string    `json:"characterId"`
	Text          string    `json:"text"`
	Timestamp     time.Time `json:"timestamp"`
	EvidenceShown string    `json:"evidenceShown,omitempty"`
	TrustChange   int       `json:"trustChange,omitempty"`
}

// RoomSearch tracks search attempts for one room. Created lazily on the
// first search of the room.
type RoomSearch struct {
	Attempts    int `json:"attempts"`
	MaxAttempts int `json:"maxAttempts"`
}

// Flags are coarse milestones of a playthrough.
type Flags struct {
	FoundRealClue       bool `json:"foundRealClue"`
	FalseAccusationMade bool `json:"falseAccusationMade"`
	MaxTurnsReached     bool `json:"maxTurnsReached"`
	GameComplete        bool `json:"gameComplete"`
}

// State is the full mutable state of a playthrough. Mutate it through the
// methods below; they maintain the set, clamping, and ordering invariants.
type State struct {
	EvidenceFound []string               `json:"evidenceFound"`
	CurrentRoom   string                 `json:"currentRoom"`
	Phase         Phase                  `json:"gamePhase"`
	Accused       string                 `json:"accused,omitempty"`
	Trust         map[string]int         `json:"npcTrust"`
	Emotions      map[string]Emotion     `json:"npcEmotionalState"`
	Conversations []Message              `json:"conversationHistory"`
	RoomSearches  map[string]*RoomSearch `json:"roomSearchState"`
	Flags         Flags                  `json:"gameFlags"`
}

// NewState creates the initial state for a fresh playthrough: neutral trust
// for every suspect, emotions from the catalog, no evidence found.
func NewState(cat *catalog.Catalog) *State {
	s := State{
		EvidenceFound: []string{},
		CurrentRoom:   "living_room",
		Phase:         PhaseInvestigation,
		Trust:         map[string]int{},
		Emotions:      map[string]Emotion{},
		Conversations: []Message{},
		RoomSearches:  map[string]*RoomSearch{},
	}
	for _, suspect := range cat.Suspects() {
		s.Trust[suspect.ID] = initialTrust
		emotion := Emotion(suspect.InitialEmotion)
		if emotion == "" {
			emotion = EmotionCalm
		}
		s.Emotions[suspect.ID] = emotion
	}
	return &s
}

// AddEvidence inserts an evidence id into the found set. Inserting an id
// twice leaves the set unchanged. Reports whether the id was new.
func (s *State) AddEvidence(id string) bool {
	if s.HasEvidence(id) {
		return false
	}
	s.EvidenceFound = append(s.EvidenceFound, id)
	return true
}

// HasEvidence reports whether an evidence id has been found.
func (s *State) HasEvidence(id string) bool {
	for _, found := range s.EvidenceFound {
		if found == id {
			return true
		}
	}
	return false
}

// AdjustTrust applies a trust delta for a character, clamped to [0, 100].
// Unknown characters start from the neutral value, matching the permissive
// id policy of the engine.
func (s *State) AdjustTrust(characterID string, delta int) int {
	trust, ok := s.Trust[characterID]
	if !ok {
		trust = initialTrust
	}
	trust += delta
	if trust < minTrust {
		trust = minTrust
	}
	if trust > maxTrust {
		trust = maxTrust
	}
	s.Trust[characterID] = trust
	return trust
}

// SetEmotion records the emotional state of a character.
func (s *State) SetEmotion(characterID string, emotion Emotion) {
	s.Emotions[characterID] = emotion
}

// Emotion returns the emotional state of a character, defaulting to calm.
func (s *State) Emotion(characterID string) Emotion {
	if emotion, ok := s.Emotions[characterID]; ok {
		return emotion
	}
	return EmotionCalm
}

// TrustLevel returns the trust for a character, defaulting to neutral.
func (s *State) TrustLevel(characterID string) int {
	if trust, ok := s.Trust[characterID]; ok {
		return trust
	}
	return initialTrust
}

// AddConversation appends a message to the conversation log. Insertion
// order is chronological order.
func (s *State) AddConversation(msg Message) {
	s.Conversations = append(s.Conversations, msg)
}

// ConversationsWith returns the log entries for one character, in order.
func (s *State) ConversationsWith(characterID string) []Message {
	var messages []Message
	for _, msg := range s.Conversations {
		if msg.CharacterID == characterID {
			messages = append(messages, msg)
		}
	}
	return messages
}

// RecordSearchAttempt increments the attempt counter for a room, creating
// the room entry lazily, and returns the new count. The counter increments
// regardless of search outcome.
func (s *State) RecordSearchAttempt(roomID string) int {
	search, ok := s.RoomSearches[roomID]
	if !ok {
		search = &RoomSearch{Attempts: 0, MaxAttempts: MaxSearchAttempts}
		s.RoomSearches[roomID] = search
	}
	search.Attempts++
	return search.Attempts
}

// SearchAttempts returns the attempts made in a room so far.
func (s *State) SearchAttempts(roomID string) int {
	if search, ok := s.RoomSearches[roomID]; ok {
		return search.Attempts
	}
	return 0
}

// TotalSearchAttempts sums search attempts across all rooms.
func (s *State) TotalSearchAttempts() int {
	total := 0
	for _, search := range s.RoomSearches {
		total += search.Attempts
	}
	return total
}

// RoomsSearched counts the rooms with at least one search attempt.
func (s *State) RoomsSearched() int {
	count := 0
	for _, search := range s.RoomSearches {
		if search.Attempts > 0 {
			count++
		}
	}
	return count
}

// Clone deep-copies the state. Achievement detection keeps one step of
// history by cloning before every mutation.
func (s *State) Clone() *State {
	payload, err := json.Marshal(s)
	if err != nil {
		// State contains only JSON-safe types, so this cannot happen.
		panic(err)
	}
	var clone State
	if err = json.Unmarshal(payload, &clone); err != nil {
		panic(err)
	}
	return &clone
}
