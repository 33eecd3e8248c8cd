package game

import (
	"strings"
	"sync"
	"time"

	"draw-guess-be/internal/canvas"
	"draw-guess-be/internal/config"
	"draw-guess-be/internal/words"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxChatLog = 100

// Session is one room's game engine. All state behind it (roster, phase,
// surface, chat log) is owned by a single goroutine; commands are enqueued and
// processed strictly in arrival order, so no two commands for the same room
// ever run concurrently. The clock is the only asynchronous wake-up, and its
// callbacks are funneled through the same queue.
type Session struct {
	ID        string
	Type      RoomType
	CreatedAt time.Time

	cfg config.GameConfig
	bc  Broadcaster

	// Everything below is owned by the run goroutine.
	ownerID     string
	roster      *Roster
	surface     *canvas.Surface
	clock       *Clock
	chat        []ChatMessage
	seq         int64
	phase       Phase
	drawerID    string
	word        string
	choices     []string
	round       int
	correctCnt  int
	scored      map[string]bool
	evictTimers map[string]*time.Timer
	emptySince  time.Time

	cmdCh     chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// NewSession creates a room and starts its worker goroutine.
func NewSession(id string, typ RoomType, cfg config.GameConfig, bc Broadcaster) *Session {
	s := &Session{
		ID:          id,
		Type:        typ,
		CreatedAt:   time.Now(),
		cfg:         cfg,
		bc:          bc,
		roster:      NewRoster(),
		surface:     canvas.New(cfg.CanvasWidth, cfg.CanvasHeight),
		clock:       NewClock(),
		phase:       PhaseWaiting,
		round:       1,
		scored:      make(map[string]bool),
		evictTimers: make(map[string]*time.Timer),
		emptySince:  time.Now(),
		cmdCh:       make(chan func(), 64),
		done:        make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Session) run() {
	for {
		select {
		case fn := <-s.cmdCh:
			fn()
		case <-s.done:
			return
		}
	}
}

// call runs fn on the session goroutine and waits for its result. Once the
// room is closed every command fails with room_closed.
func (s *Session) call(fn func() error) error {
	errCh := make(chan error, 1)
	select {
	case s.cmdCh <- func() { errCh <- fn() }:
	case <-s.done:
		return ErrRoomClosed
	}
	select {
	case err := <-errCh:
		return err
	case <-s.done:
		return ErrRoomClosed
	}
}

// post enqueues fn without waiting. Used by timer callbacks; a fire against a
// closed room is a silent no-op.
func (s *Session) post(fn func()) {
	select {
	case s.cmdCh <- fn:
	case <-s.done:
	}
}

// Close stops the worker and all timers. Idempotent.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.clock.Cancel()
		zap.S().Infof("room %s closed", s.ID)
	})
}

func (s *Session) publish(ev Event) {
	if s.bc != nil {
		s.bc.Publish(s.ID, ev)
	}
}

// ---- membership ----

// Join seats a new player. Public rooms auto-start once two players are
// present.
func (s *Session) Join(name string) (Player, error) {
	var joined Player
	err := s.call(func() error {
		if s.roster.Len() >= s.cfg.MaxPlayers {
			return ErrRoomFull
		}
		for _, other := range s.roster.Snapshot() {
			if strings.EqualFold(other.Name, name) {
				return ErrNameTaken
			}
		}
		p := Player{ID: uuid.NewString(), Name: name}
		s.roster.Add(p)
		s.emptySince = time.Time{}
		if s.ownerID == "" {
			s.ownerID = p.ID
		}
		joined = *s.roster.Get(p.ID)

		zap.S().Infof("room %s: player %s (%s) joined", s.ID, name, p.ID)
		s.publish(newPlayerJoined(s.roster.Snapshot()))

		if s.Type == RoomPublic && s.phase == PhaseWaiting && s.roster.ConnectedCount() >= 2 {
			s.beginGame()
		}
		return nil
	})
	return joined, err
}

// Leave removes a player immediately.
func (s *Session) Leave(playerID string) error {
	return s.call(func() error {
		if s.roster.Get(playerID) == nil {
			return ErrPlayerNotFound
		}
		s.removePlayer(playerID)
		return nil
	})
}

// Disconnect marks the player's transport as lost and starts the eviction
// grace period. A disconnected drawer ends the turn at once, without penalty.
func (s *Session) Disconnect(playerID string) {
	s.post(func() {
		p := s.roster.Get(playerID)
		if p == nil || !p.IsConnected {
			return
		}
		p.IsConnected = false
		zap.S().Infof("room %s: player %s disconnected, grace %s", s.ID, playerID, s.cfg.DisconnectGrace())
		s.publish(newPlayerLeft(s.roster.Snapshot()))

		if t, ok := s.evictTimers[playerID]; ok {
			t.Stop()
		}
		s.evictTimers[playerID] = time.AfterFunc(s.cfg.DisconnectGrace(), func() {
			s.post(func() { s.evict(playerID) })
		})

		if playerID == s.drawerID && (s.phase == PhaseWordSelection || s.phase == PhaseDrawing) {
			s.toRoundEnd()
			return
		}
		s.checkEarlyRoundEnd()
	})
}

// Reconnect cancels a pending eviction and restores the seat.
func (s *Session) Reconnect(playerID string) {
	s.post(func() {
		p := s.roster.Get(playerID)
		if p == nil {
			return
		}
		if t, ok := s.evictTimers[playerID]; ok {
			t.Stop()
			delete(s.evictTimers, playerID)
		}
		if !p.IsConnected {
			p.IsConnected = true
			zap.S().Infof("room %s: player %s reconnected", s.ID, playerID)
			s.publish(newPlayerJoined(s.roster.Snapshot()))
		}
	})
}

func (s *Session) evict(playerID string) {
	p := s.roster.Get(playerID)
	if p == nil || p.IsConnected {
		return
	}
	zap.S().Infof("room %s: player %s evicted after grace period", s.ID, playerID)
	s.removePlayer(playerID)
}

// removePlayer runs on the session goroutine.
func (s *Session) removePlayer(playerID string) {
	if t, ok := s.evictTimers[playerID]; ok {
		t.Stop()
		delete(s.evictTimers, playerID)
	}
	s.roster.Remove(playerID)
	delete(s.scored, playerID)

	if s.ownerID == playerID {
		s.ownerID = ""
		if first := s.roster.First(); first != nil {
			s.ownerID = first.ID
		}
	}

	if s.roster.Len() == 0 {
		s.emptySince = time.Now()
		s.clock.Cancel()
		s.phase = PhaseWaiting
		s.drawerID = ""
		s.word = ""
		s.choices = nil
		return
	}

	s.publish(newPlayerLeft(s.roster.Snapshot()))

	if playerID == s.drawerID && (s.phase == PhaseWordSelection || s.phase == PhaseDrawing) {
		s.toRoundEnd()
		return
	}
	s.checkEarlyRoundEnd()

	if s.phase != PhaseWaiting && s.roster.ConnectedCount() < 2 {
		// Not enough players to keep the game meaningful.
		s.toGameEnd()
	}
}

// ---- game flow commands ----

// Start moves waiting -> word_selection. Private rooms only accept the owner;
// public rooms accept any seated player.
func (s *Session) Start(playerID string, private bool) (GameState, error) {
	var gs GameState
	err := s.call(func() error {
		if s.roster.Get(playerID) == nil {
			return ErrPlayerNotFound
		}
		if s.phase != PhaseWaiting {
			return ErrInvalidPhase
		}
		if private && playerID != s.ownerID {
			return ErrNotOwner
		}
		if s.roster.ConnectedCount() < 2 {
			return ErrNotEnoughPlayers
		}
		s.beginGame()
		gs = s.stateFor(playerID)
		return nil
	})
	return gs, err
}

// WordChoices returns the current drawer's candidate words.
func (s *Session) WordChoices(playerID string) ([]string, error) {
	var out []string
	err := s.call(func() error {
		if s.phase != PhaseWordSelection {
			return ErrInvalidPhase
		}
		if playerID != s.drawerID {
			return ErrNotYourTurn
		}
		out = append([]string(nil), s.choices...)
		return nil
	})
	return out, err
}

// SelectWord is the drawer's explicit choice; it starts the drawing phase.
func (s *Session) SelectWord(playerID, word string) (GameState, error) {
	var gs GameState
	err := s.call(func() error {
		if s.phase != PhaseWordSelection {
			return ErrInvalidPhase
		}
		if playerID != s.drawerID {
			return ErrNotYourTurn
		}
		if !contains(s.choices, word) {
			return ErrInvalidWordChoice
		}
		s.toDrawing(word)
		gs = s.stateFor(playerID)
		return nil
	})
	return gs, err
}

// Guess classifies a guess against the secret word and settles its score.
// Scoring is idempotent per player per round; repeat correct guesses land in
// chat without re-scoring, and the raw text of a correct guess is masked.
func (s *Session) Guess(playerID, text string) (GuessResult, error) {
	var res GuessResult
	err := s.call(func() error {
		p := s.roster.Get(playerID)
		if p == nil {
			return ErrPlayerNotFound
		}
		if s.phase != PhaseDrawing {
			return ErrInvalidPhase
		}
		if playerID == s.drawerID {
			return ErrNotYourTurn
		}

		class := Classify(text, s.word)
		res = GuessResult{Classification: class, Correct: class == ClassCorrect}

		if class == ClassCorrect {
			if s.scored[playerID] {
				// Already scored this round: the guess lands in chat masked,
				// never re-scored.
				s.appendMessage(p, "***", ClassGuess)
				return nil
			}
			award := guessAward(s.correctCnt)
			s.correctCnt++
			s.scored[playerID] = true
			p.Score += award
			res.Points = award
			if drawer := s.roster.Get(s.drawerID); drawer != nil {
				drawer.Score += drawerBonus
			}
			zap.S().Infof("room %s: %s guessed the word (+%d)", s.ID, p.Name, award)
			s.appendSystemMessage(p.Name+" guessed the word!", true)
			s.publish(newPlayerJoined(s.roster.Snapshot()))
			s.checkEarlyRoundEnd()
			return nil
		}

		s.appendMessage(p, text, class)
		return nil
	})
	return res, err
}

// SendChat appends a plain chat message outside the guess path.
func (s *Session) SendChat(playerID, text string) (ChatMessage, error) {
	var msg ChatMessage
	err := s.call(func() error {
		p := s.roster.Get(playerID)
		if p == nil {
			return ErrPlayerNotFound
		}
		msg = s.appendMessage(p, text, ClassGuess)
		return nil
	})
	return msg, err
}

// ApplyDraw composites one drawing op. Only the current drawer may draw, and
// ops are applied strictly in receipt order.
func (s *Session) ApplyDraw(playerID string, op canvas.Op) error {
	return s.call(func() error {
		if s.roster.Get(playerID) == nil {
			return ErrPlayerNotFound
		}
		if s.phase != PhaseDrawing {
			return ErrInvalidPhase
		}
		if playerID != s.drawerID {
			return ErrNotYourTurn
		}
		if err := s.surface.Apply(op); err != nil {
			return err
		}
		s.publish(newDrawingUpdated(playerID, op))
		return nil
	})
}

// LikeDrawing and DislikeDrawing are cosmetic; they surface in chat only.
func (s *Session) LikeDrawing(playerID string) error {
	return s.reaction(playerID, " liked the drawing 👍")
}

func (s *Session) DislikeDrawing(playerID string) error {
	return s.reaction(playerID, " disliked the drawing 👎")
}

func (s *Session) reaction(playerID, suffix string) error {
	return s.call(func() error {
		p := s.roster.Get(playerID)
		if p == nil {
			return ErrPlayerNotFound
		}
		s.appendSystemMessage(p.Name+suffix, false)
		return nil
	})
}

// Thumbs records a player-to-player reaction as a chat-visible event.
func (s *Session) Thumbs(fromID, targetID string, thumbs bool) (ChatMessage, error) {
	var msg ChatMessage
	err := s.call(func() error {
		from := s.roster.Get(fromID)
		target := s.roster.Get(targetID)
		if from == nil || target == nil {
			return ErrPlayerNotFound
		}
		verb := " gave a thumbs up to "
		if !thumbs {
			verb = " gave a thumbs down to "
		}
		msg = s.appendSystemMessage(from.Name+verb+target.Name, false)
		return nil
	})
	return msg, err
}

// EndRound ends the drawing phase ahead of the clock.
func (s *Session) EndRound(playerID string) (GameState, error) {
	var gs GameState
	err := s.call(func() error {
		// The reference client calls end-round without a player id; validate
		// membership only when one is supplied.
		if playerID != "" && s.roster.Get(playerID) == nil {
			return ErrPlayerNotFound
		}
		if s.phase != PhaseDrawing {
			return ErrInvalidPhase
		}
		s.toRoundEnd()
		gs = s.stateFor(playerID)
		return nil
	})
	return gs, err
}

// NextDrawer skips the round_end delay and advances the rotation.
func (s *Session) NextDrawer() (Player, error) {
	var next Player
	err := s.call(func() error {
		if s.phase != PhaseRoundEnd {
			return ErrInvalidPhase
		}
		s.nextTurn()
		if d := s.roster.Get(s.drawerID); d != nil {
			next = *d
		}
		return nil
	})
	return next, err
}

// EndGame forces the final rankings.
func (s *Session) EndGame() ([]RankedPlayer, error) {
	var rankings []RankedPlayer
	err := s.call(func() error {
		if s.phase == PhaseWaiting || s.phase == PhaseGameEnd {
			return ErrInvalidPhase
		}
		s.toGameEnd()
		rankings = s.roster.Rankings()
		return nil
	})
	return rankings, err
}

// Restart resets scores and returns the room to the waiting phase.
func (s *Session) Restart() (GameState, error) {
	var gs GameState
	err := s.call(func() error {
		if s.phase != PhaseGameEnd && s.phase != PhaseWaiting {
			return ErrInvalidPhase
		}
		s.resetToWaiting()
		gs = s.stateFor("")
		return nil
	})
	return gs, err
}

// ---- snapshots ----

func (s *Session) Players() []Player {
	var out []Player
	_ = s.call(func() error {
		out = s.roster.Snapshot()
		return nil
	})
	return out
}

func (s *Session) Messages() []ChatMessage {
	var out []ChatMessage
	_ = s.call(func() error {
		out = append([]ChatMessage(nil), s.chat...)
		return nil
	})
	return out
}

// State returns the game state as seen by viewerID. The secret word is
// visible to the drawer and to everyone once the round is over.
func (s *Session) State(viewerID string) GameState {
	var gs GameState
	_ = s.call(func() error {
		gs = s.stateFor(viewerID)
		return nil
	})
	return gs
}

// Info is the full REST room snapshot.
func (s *Session) Info(viewerID string) RoomInfo {
	var info RoomInfo
	_ = s.call(func() error {
		info = RoomInfo{
			ID:        s.ID,
			Type:      s.Type,
			OwnerID:   s.ownerID,
			Players:   s.roster.Snapshot(),
			GameState: s.stateFor(viewerID),
		}
		return nil
	})
	return info
}

// DrawingDataURL renders the current canvas as a base64 PNG data URL.
func (s *Session) DrawingDataURL() (string, error) {
	var out string
	err := s.call(func() error {
		var err error
		out, err = s.surface.DataURL()
		return err
	})
	return out, err
}

// Empty reports whether the room has no seats and since when.
func (s *Session) Empty() (bool, time.Time) {
	empty := false
	var since time.Time
	_ = s.call(func() error {
		empty = s.roster.Len() == 0
		since = s.emptySince
		return nil
	})
	return empty, since
}

// HasPlayer reports whether the id holds a seat.
func (s *Session) HasPlayer(playerID string) bool {
	ok := false
	_ = s.call(func() error {
		ok = s.roster.Get(playerID) != nil
		return nil
	})
	return ok
}

// ---- state machine internals (session goroutine only) ----

func (s *Session) stateFor(viewerID string) GameState {
	word := ""
	if s.word != "" && (viewerID == s.drawerID || s.phase == PhaseRoundEnd || s.phase == PhaseGameEnd) {
		word = s.word
	}
	playing := s.phase == PhaseWordSelection || s.phase == PhaseDrawing || s.phase == PhaseRoundEnd
	return GameState{
		CurrentPlayer: s.drawerID,
		CurrentWord:   word,
		TimeLeft:      s.clock.TimeLeft(),
		Round:         s.round,
		TotalRounds:   s.cfg.TotalRounds,
		IsPlaying:     playing,
		Phase:         s.phase,
	}
}

func (s *Session) beginGame() {
	s.roster.ResetScores()
	s.roster.ResetDrawn()
	s.round = 1
	zap.S().Infof("room %s: game started, %d players", s.ID, s.roster.Len())
	s.nextTurn()
	s.publish(newGameStarted(s.stateFor("")))
}

// nextTurn picks the next drawer or ends the game when rounds are exhausted.
func (s *Session) nextTurn() {
	s.roster.ClearDrawing()
	s.word = ""
	s.choices = nil
	s.drawerID = ""

	drawer := s.roster.NextDrawer()
	if drawer == nil {
		s.roster.ResetDrawn()
		s.round++
		if s.round > s.cfg.TotalRounds {
			s.toGameEnd()
			return
		}
		drawer = s.roster.NextDrawer()
	}
	if drawer == nil {
		// Nobody connected to draw; fall back to the lobby.
		s.resetToWaiting()
		return
	}

	s.drawerID = drawer.ID
	drawer.IsDrawing = true
	drawer.HasDrawn = true
	s.toWordSelection()
}

func (s *Session) toWordSelection() {
	s.phase = PhaseWordSelection
	s.choices = words.Choices(s.cfg.WordChoiceCount)

	s.clock.Start(s.cfg.WordSelectionTime(), func() {
		s.post(func() {
			if s.phase != PhaseWordSelection {
				return
			}
			// No explicit choice in time: the first offered word wins.
			zap.S().Infof("room %s: word selection timed out, auto-selecting", s.ID)
			s.toDrawing(s.choices[0])
		})
	})

	zap.S().Infof("room %s: round %d, %s is choosing a word", s.ID, s.round, s.drawerID)
	s.publish(newGameStateUpdated(s.stateFor("")))
	s.publish(newPlayerJoined(s.roster.Snapshot()))
}

func (s *Session) toDrawing(word string) {
	s.phase = PhaseDrawing
	s.word = word
	s.choices = nil
	s.correctCnt = 0
	s.scored = make(map[string]bool)
	s.surface.Clear()

	s.clock.Start(s.cfg.DrawingTime(), func() {
		s.post(func() {
			if s.phase != PhaseDrawing {
				return
			}
			s.toRoundEnd()
		})
	})

	zap.S().Infof("room %s: drawing phase started, word length %d", s.ID, len([]rune(word)))
	s.publish(newGameStateUpdated(s.stateFor("")))
	s.publish(newDrawingUpdated(s.drawerID, canvas.Op{Tool: canvas.ToolClear}))
}

func (s *Session) toRoundEnd() {
	word := s.word
	s.phase = PhaseRoundEnd
	s.roster.ClearDrawing()

	s.clock.Start(s.cfg.RoundEndTime(), func() {
		s.post(func() {
			if s.phase != PhaseRoundEnd {
				return
			}
			s.nextTurn()
		})
	})

	if word != "" {
		s.appendSystemMessage("The word was \""+word+"\"", false)
	}
	zap.S().Infof("room %s: round ended, word was %q, %d correct", s.ID, word, s.correctCnt)
	s.publish(newRoundEnded(s.stateFor(""), word, s.roster.Snapshot()))
}

func (s *Session) toGameEnd() {
	s.phase = PhaseGameEnd
	s.roster.ClearDrawing()
	s.drawerID = ""
	s.word = ""
	s.choices = nil

	s.clock.Start(s.cfg.GameEndTime(), func() {
		s.post(func() {
			if s.phase != PhaseGameEnd {
				return
			}
			s.resetToWaiting()
		})
	})

	rankings := s.roster.Rankings()
	zap.S().Infof("room %s: game over", s.ID)
	s.publish(newGameEnded(s.stateFor(""), rankings))
}

func (s *Session) resetToWaiting() {
	s.clock.Cancel()
	s.phase = PhaseWaiting
	s.drawerID = ""
	s.word = ""
	s.choices = nil
	s.round = 1
	s.correctCnt = 0
	s.scored = make(map[string]bool)
	s.roster.ResetScores()
	s.roster.ResetDrawn()
	s.roster.ClearDrawing()
	s.surface.Clear()

	s.publish(newGameStateUpdated(s.stateFor("")))
	s.publish(newPlayerJoined(s.roster.Snapshot()))
}

// checkEarlyRoundEnd ends the drawing phase once every connected non-drawer
// has a correct guess registered.
func (s *Session) checkEarlyRoundEnd() {
	if s.phase != PhaseDrawing {
		return
	}
	guessers := 0
	for _, p := range s.roster.Snapshot() {
		if p.ID == s.drawerID || !p.IsConnected {
			continue
		}
		guessers++
		if !s.scored[p.ID] {
			return
		}
	}
	if guessers == 0 {
		return
	}
	zap.S().Infof("room %s: everyone guessed, ending round early", s.ID)
	s.toRoundEnd()
}

func (s *Session) appendMessage(p *Player, text, class string) ChatMessage {
	s.seq++
	msg := ChatMessage{
		ID:         uuid.NewString(),
		Seq:        s.seq,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Message:    text,
		Timestamp:  time.Now(),
		Type:       class,
	}
	s.pushChat(msg)
	return msg
}

func (s *Session) appendSystemMessage(text string, correct bool) ChatMessage {
	s.seq++
	class := ClassSystem
	if correct {
		class = ClassCorrect
	}
	msg := ChatMessage{
		ID:         uuid.NewString(),
		Seq:        s.seq,
		PlayerID:   "system",
		PlayerName: "System",
		Message:    text,
		Timestamp:  time.Now(),
		Type:       class,
		IsCorrect:  correct,
	}
	s.pushChat(msg)
	return msg
}

// pushChat appends to the bounded ring and broadcasts.
func (s *Session) pushChat(msg ChatMessage) {
	s.chat = append(s.chat, msg)
	if len(s.chat) > maxChatLog {
		s.chat = s.chat[len(s.chat)-maxChatLog:]
	}
	s.publish(newMessageEvent(msg))
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
