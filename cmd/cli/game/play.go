package game

import (
	"bufio"
	"context"
	"fmt"
	"gilmoremanor/internal/achievements"
	"gilmoremanor/internal/deduction"
	"gilmoremanor/internal/dialogue"
	"gilmoremanor/internal/errors"
	"gilmoremanor/internal/game"
	"gilmoremanor/internal/random"
	"gilmoremanor/internal/save"
	"gilmoremanor/internal/suggestions"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var Play = &cobra.Command{
	Use:     "play",
	Short:   "Start or resume the investigation",
	GroupID: Group.ID,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		return a.play(cmd.Context())
	},
}

// session is one sitting at the terminal: the live game state plus the
// bookkeeping around it (achievement edge detection, autosave cadence).
type session struct {
	*app
	state     *game.State
	suggester *suggestions.Engine
	completer dialogue.Completer
	in        *bufio.Scanner
	out       io.Writer
	// previous is the last snapshot handed to the achievement engine.
	// Seeded from the state at load so achievements already satisfied
	// there don't re-fire.
	previous  *achievements.Snapshot
	startedAt time.Time
	actions   int
}

func (a *app) play(ctx context.Context) error {
	suggester, err := suggestions.NewEngine()
	if err != nil {
		return errors.Wrap(err, "load question pools")
	}

	sess := &session{
		app:       a,
		state:     game.NewState(a.cat),
		suggester: suggester,
		completer: &a.aiClient,
		in:        bufio.NewScanner(os.Stdin),
		out:       os.Stdout,
		startedAt: time.Now(),
	}
	if loaded, err := a.saves.Load(ctx, save.AutoSlot); err != nil {
		return err
	} else if loaded != nil {
		sess.state = loaded.State
		fmt.Fprintln(sess.out, "Resuming from autosave.")
	}

	snap, err := sess.snapshot(ctx)
	if err != nil {
		return err
	}
	sess.previous = &snap

	fmt.Fprintln(sess.out, "The Gilmore Manor case. Lady Marlene Gilmore is dead.")
	fmt.Fprintln(sess.out, "Type 'help' for commands.")
	sess.printRoom()

	for {
		fmt.Fprint(sess.out, "> ")
		if !sess.in.Scan() {
			break
		}
		quit, err := sess.dispatch(ctx, strings.TrimSpace(sess.in.Text()))
		if err != nil {
			return err
		}
		if quit {
			break
		}
	}
	if err := sess.in.Err(); err != nil {
		return errors.Wrap(err, "read input")
	}
	return sess.autosave(ctx)
}

// confirm reads a yes/no answer from the player.
func (s *session) confirm() bool {
	if !s.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(s.in.Text()))
	return answer == "y" || answer == "yes"
}

func (s *session) dispatch(ctx context.Context, line string) (bool, error) {
	if line == "" {
		return false, nil
	}
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		s.printHelp()
	case "look":
		s.printRoom()
	case "rooms":
		for _, room := range s.cat.AllRooms() {
			fmt.Fprintf(s.out, "  %-16s %s\n", room.ID, room.Name)
		}
	case "go":
		s.moveTo(args)
	case "search":
		return false, s.search(ctx)
	case "talk":
		return false, s.talk(ctx, game.ActionChat, args)
	case "trust":
		return false, s.talk(ctx, game.ActionBuildTrust, args)
	case "interrogate":
		return false, s.talk(ctx, game.ActionInterrogate, args)
	case "show":
		return false, s.showEvidence(ctx, args)
	case "suggest":
		s.suggest(args)
	case "status":
		s.printStatus()
	case "hints":
		for _, hint := range game.InvestigationHints(s.state, s.cat) {
			fmt.Fprintln(s.out, "  " + hint)
		}
	case "evidence":
		s.printEvidence()
	case "connect":
		return false, s.connect(ctx, args)
	case "theory":
		return false, s.theory(ctx, args)
	case "board":
		return false, s.printBoard(ctx)
	case "accuse":
		return s.accuse(ctx, args)
	case "save":
		return false, s.saveGame(ctx, args)
	case "load":
		return false, s.loadGame(ctx, args)
	case "quit", "exit":
		return true, nil
	default:
		fmt.Fprintf(s.out, "Unknown command %q. Type 'help'.\n", cmd)
	}
	return false, nil
}

func (s *session) printHelp() {
	fmt.Fprint(s.out, `Commands:
  look                         describe the current room
  rooms                        list the rooms of the manor
  go <room>                    move to a room
  search                       search the current room for evidence
  talk <suspect> <question>    ask a suspect something
  trust <suspect> <words>      build trust with kind words
  interrogate <suspect> <q>    press a suspect hard
  show <suspect> <evidence>    present a piece of evidence
  suggest <suspect>            suggested questions and strategy
  evidence                     list the evidence you hold
  connect <from> <to> [label]  link items on the deduction board
  theory <suspect> <summary>   write up a theory
  board                        show the deduction board
  status                       investigation scores and progress
  hints                        what to do next
  accuse <suspect>             make your accusation
  save <slot> / load <slot>    manual save slots 1-3
  quit                         autosave and leave
`)
}

func (s *session) printRoom() {
	room, ok := s.cat.Room(s.state.CurrentRoom)
	if !ok {
		return
	}
	fmt.Fprintf(s.out, "%s\n%s\n", room.Name, room.Description)
	if len(room.Characters) > 0 {
		fmt.Fprintf(s.out, "Present: %s\n", strings.Join(room.Characters, ", "))
	}
	attempts := s.state.SearchAttempts(room.ID)
	fmt.Fprintf(s.out, "Search attempts used here: %d/%d\n", attempts, game.MaxSearchAttempts)
}

func (s *session) moveTo(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: go <room>")
		return
	}
	room, ok := s.cat.Room(args[0])
	if !ok {
		fmt.Fprintf(s.out, "No such room %q. Try 'rooms'.\n", args[0])
		return
	}
	s.state.CurrentRoom = room.ID
	s.printRoom()
}

func (s *session) search(ctx context.Context) error {
	roomID := s.state.CurrentRoom
	if !game.CanSearch(s.state, s.cat, roomID) {
		fmt.Fprintln(s.out, "Nothing more to find here, or you've run out of attempts.")
		return nil
	}
	rate := game.SearchRate(s.state, roomID)
	found, ok := game.Search(s.state, s.cat, roomID, random.Percent)
	if !ok {
		fmt.Fprintf(s.out, "You search carefully but find nothing. (%.0f%% chance)\n", rate)
		return s.afterAction(ctx)
	}
	s.state.AddEvidence(found.ID)
	s.state.Flags.FoundRealClue = s.state.Flags.FoundRealClue || !found.RedHerring
	fmt.Fprintf(s.out, "Found: %s\n%s\n", found.Name, found.Description)
	return s.afterAction(ctx)
}

func (s *session) talk(ctx context.Context, action game.Action, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: talk|trust|interrogate <suspect> <text>")
		return nil
	}
	characterID := args[0]
	char, ok := s.cat.Character(characterID)
	if !ok {
		fmt.Fprintf(s.out, "No such suspect %q.\n", characterID)
		return nil
	}
	if len(s.state.ConversationsWith(characterID)) == 0 && char.Greeting != "" {
		fmt.Fprintf(s.out, "%s: %s\n", char.Name, char.Greeting)
	}
	question := strings.Join(args[1:], " ")

	if emotion, ok := game.EmotionFor(question); ok {
		s.state.SetEmotion(characterID, emotion)
	}
	delta := game.TrustChange(s.cat, action, characterID, "")
	s.state.AdjustTrust(characterID, delta)

	// The question goes into the log only after the reply, so the prompt
	// builder doesn't see it twice (once in history, once as the new turn).
	reply := dialogue.Ask(ctx, s.completer, s.logger, s.cat, s.state, characterID, question, "")
	s.state.AddConversation(game.Message{
		CharacterID: characterID,
		Text:        question,
		Timestamp:   time.Now(),
		TrustChange: delta,
	})
	fmt.Fprintf(s.out, "%s: %s\n", char.Name, reply)
	s.printTrustChange(characterID, delta)
	return s.afterAction(ctx)
}

func (s *session) showEvidence(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "Usage: show <suspect> <evidence>")
		return nil
	}
	characterID, evidenceID := args[0], args[1]
	char, ok := s.cat.Character(characterID)
	if !ok {
		fmt.Fprintf(s.out, "No such suspect %q.\n", characterID)
		return nil
	}
	if !s.state.HasEvidence(evidenceID) {
		fmt.Fprintln(s.out, "You don't hold that evidence.")
		return nil
	}
	ev, _ := s.cat.Evidence(evidenceID)

	delta := game.TrustChange(s.cat, game.ActionPresentEvidence, characterID, evidenceID)
	s.state.AdjustTrust(characterID, delta)
	if ev.RelatedCharacter == characterID {
		s.state.SetEmotion(characterID, game.EmotionDefensive)
	}
	question := fmt.Sprintf("What do you say to this? (%s)", ev.Name)
	reply := dialogue.Ask(ctx, s.completer, s.logger, s.cat, s.state, characterID, question, evidenceID)
	s.state.AddConversation(game.Message{
		CharacterID:   characterID,
		Text:          question,
		Timestamp:     time.Now(),
		EvidenceShown: evidenceID,
		TrustChange:   delta,
	})
	fmt.Fprintf(s.out, "%s: %s\n", char.Name, reply)
	s.printTrustChange(characterID, delta)
	return s.afterAction(ctx)
}

func (s *session) printTrustChange(characterID string, delta int) {
	if delta == 0 {
		return
	}
	fmt.Fprintf(s.out, "(trust %+d, now %d)\n", delta, s.state.TrustLevel(characterID))
}

func (s *session) suggest(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: suggest <suspect>")
		return
	}
	characterID := args[0]
	if _, ok := s.cat.Character(characterID); !ok {
		fmt.Fprintf(s.out, "No such suspect %q.\n", characterID)
		return
	}
	trust := s.state.TrustLevel(characterID)
	strategy := s.suggester.QuestionStrategy(characterID, s.state.EvidenceFound, trust)
	fmt.Fprintf(s.out, "Approach: %s (%s)\n", strategy.Approach, strategy.Reasoning)
	for _, q := range s.suggester.Suggest(characterID, s.state.EvidenceFound, trust, s.state.ConversationsWith(characterID)) {
		fmt.Fprintf(s.out, "  [%d] %s\n", q.Priority, q.Text)
	}
	for _, hint := range s.suggester.ContextualHints(characterID, s.state.EvidenceFound, trust) {
		fmt.Fprintln(s.out, "  hint: " + hint)
	}
}

func (s *session) printStatus() {
	status := game.InvestigationStatus(s.state, s.cat)
	fmt.Fprintf(s.out, "Evidence score: %.1f\n", status.EvidenceScore)
	fmt.Fprintf(s.out, "Trust score:    %d\n", status.TrustScore)
	fmt.Fprintf(s.out, "Critical found: %d\n", game.CriticalFound(s.state, s.cat))
	fmt.Fprintf(s.out, "Progress:       %s\n", status.Progress)
	if status.CanAccuse {
		fmt.Fprintln(s.out, "You have enough to make an accusation.")
	}
}

func (s *session) printEvidence() {
	if len(s.state.EvidenceFound) == 0 {
		fmt.Fprintln(s.out, "You hold no evidence yet.")
		return
	}
	for _, id := range s.state.EvidenceFound {
		ev, ok := s.cat.Evidence(id)
		if !ok {
			continue
		}
		marker := " "
		if s.cat.IsCritical(id) {
			marker = "*"
		}
		fmt.Fprintf(s.out, "  %s %-20s %s\n", marker, ev.ID, ev.Name)
	}
}

func (s *session) connect(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: connect <from> <to> [label]")
		return nil
	}
	board, err := s.board.Load(ctx)
	if err != nil {
		return err
	}
	board.Connections = append(board.Connections, deduction.Connection{
		From:  args[0],
		To:    args[1],
		Label: strings.Join(args[2:], " "),
	})
	if err := s.board.Save(ctx, board); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Connected %s and %s.\n", args[0], args[1])
	return s.afterAction(ctx)
}

func (s *session) theory(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: theory <suspect> <summary>")
		return nil
	}
	board, err := s.board.Load(ctx)
	if err != nil {
		return err
	}
	board.Theories = append(board.Theories, deduction.Theory{
		Suspect:   args[0],
		Summary:   strings.Join(args[1:], " "),
		CreatedAt: time.Now().UTC(),
	})
	if err := s.board.Save(ctx, board); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Theory noted.")
	return s.afterAction(ctx)
}

func (s *session) printBoard(ctx context.Context) error {
	board, err := s.board.Load(ctx)
	if err != nil {
		return err
	}
	if len(board.Connections) == 0 && len(board.Theories) == 0 {
		fmt.Fprintln(s.out, "The deduction board is empty.")
		return nil
	}
	for _, c := range board.Connections {
		if c.Label != "" {
			fmt.Fprintf(s.out, "  %s -- %s (%s)\n", c.From, c.To, c.Label)
			continue
		}
		fmt.Fprintf(s.out, "  %s -- %s\n", c.From, c.To)
	}
	for _, t := range board.Theories {
		fmt.Fprintf(s.out, "  theory on %s: %s\n", t.Suspect, t.Summary)
	}
	return nil
}

func (s *session) accuse(ctx context.Context, args []string) (bool, error) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: accuse <suspect>")
		return false, nil
	}
	characterID := args[0]
	if _, ok := s.cat.Character(characterID); !ok {
		fmt.Fprintf(s.out, "No such suspect %q.\n", characterID)
		return false, nil
	}
	// A weak case only warns. Accusing anyway is allowed and risky: with
	// almost no evidence a wrong accusation ends the investigation.
	if !game.CanAccuse(s.state, s.cat) {
		fmt.Fprintln(s.out, "You don't have a strong case: fewer than two key pieces of evidence.")
		fmt.Fprint(s.out, "Accuse anyway? (y/n) ")
		if !s.confirm() {
			fmt.Fprintln(s.out, "You hold back the accusation.")
			return false, nil
		}
	}

	result := game.MakeAccusation(s.state, s.cat, characterID)
	if !result.Correct {
		s.state.Flags.FalseAccusationMade = true
	}
	fmt.Fprintln(s.out, result.Message)
	if err := s.afterAction(ctx); err != nil {
		return false, err
	}
	if result.GameOver {
		fmt.Fprintln(s.out, "The investigation is over.")
		return true, nil
	}
	return false, nil
}

func (s *session) saveGame(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: save <slot>")
		return nil
	}
	if _, err := s.saves.Save(ctx, args[0], s.state, "", s.playTime()); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Saved to slot %s.\n", args[0])
	return s.afterAction(ctx)
}

func (s *session) loadGame(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: load <slot>")
		return nil
	}
	loaded, err := s.saves.Load(ctx, args[0])
	if err != nil {
		return err
	}
	if loaded == nil {
		fmt.Fprintf(s.out, "Slot %s is empty.\n", args[0])
		return nil
	}
	s.state = loaded.State
	// Reseed edge detection so loading doesn't fire achievements.
	snap, err := s.snapshot(ctx)
	if err != nil {
		return err
	}
	s.previous = &snap
	fmt.Fprintf(s.out, "Loaded slot %s.\n", args[0])
	s.printRoom()
	return nil
}

func (s *session) playTime() int {
	return int(time.Since(s.startedAt).Seconds())
}

// snapshot pairs a clone of the live state with the persisted counters the
// achievement checks need.
func (s *session) snapshot(ctx context.Context) (achievements.Snapshot, error) {
	saveCount, err := s.saves.SaveCount(ctx)
	if err != nil {
		return achievements.Snapshot{}, err
	}
	board, err := s.board.Load(ctx)
	if err != nil {
		return achievements.Snapshot{}, err
	}
	return achievements.Snapshot{
		State: s.state.Clone(),
		Aux: achievements.Aux{
			SaveCount:        saveCount,
			BoardConnections: len(board.Connections),
			BoardTheories:    len(board.Theories),
		},
	}, nil
}

// afterAction runs once per state-changing command: achievement edge
// detection against the previous snapshot, then autosave on cadence.
func (s *session) afterAction(ctx context.Context) error {
	current, err := s.snapshot(ctx)
	if err != nil {
		return err
	}
	unlocked, err := s.achievements.Observe(ctx, s.previous, current)
	if err != nil {
		return err
	}
	for _, a := range unlocked {
		fmt.Fprintf(s.out, "Achievement unlocked: %s (%s)\n", a.Name, a.Description)
	}
	s.previous = &current

	s.actions++
	if s.cfg.AutosaveEvery > 0 && s.actions%s.cfg.AutosaveEvery == 0 {
		return s.autosave(ctx)
	}
	return nil
}

func (s *session) autosave(ctx context.Context) error {
	if err := s.saves.Autosave(ctx, s.state, s.playTime()); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "autosaved")
	return nil
}
