package room

import (
	"math/rand"
	"time"

	"draw-guess-be/internal/config"
	"draw-guess-be/internal/game"

	"go.uber.org/zap"
)

// Store is the room registry the manager works against.
type Store interface {
	GetRoom(code string) (*game.Session, bool)
	SaveRoom(s *game.Session)
	DeleteRoom(code string)
	Rooms() []*game.Session
}

// Manager owns room lifecycle: creation, join paths (including public
// matchmaking), and destruction of rooms left empty past the grace period.
type Manager struct {
	store Store
	cfg   config.GameConfig
	bc    game.Broadcaster

	stop chan struct{}
	rng  *rand.Rand
}

func NewManager(s Store, cfg config.GameConfig, bc game.Broadcaster) *Manager {
	m := &Manager{
		store: s,
		cfg:   cfg,
		bc:    bc,
		stop:  make(chan struct{}),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	go m.cleanupLoop()
	return m
}

func (m *Manager) Close() { close(m.stop) }

// cleanupLoop destroys rooms that stayed empty longer than the grace period.
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			for _, s := range m.store.Rooms() {
				empty, since := s.Empty()
				if empty && !since.IsZero() && time.Since(since) > m.cfg.RoomIdleGrace() {
					zap.S().Infof("room %s empty past grace period, destroying", s.ID)
					m.store.DeleteRoom(s.ID)
					s.Close()
				}
			}
		}
	}
}

// CreateRoom creates a room of the given type with its first player seated.
// The creator owns the room.
func (m *Manager) CreateRoom(playerName string, typ game.RoomType) (*game.Session, game.Player, error) {
	code := m.newCode()
	s := game.NewSession(code, typ, m.cfg, m.bc)
	player, err := s.Join(playerName)
	if err != nil {
		s.Close()
		return nil, game.Player{}, err
	}
	m.store.SaveRoom(s)
	zap.S().Infof("room %s (%s) created by %s", code, typ, playerName)
	return s, player, nil
}

// Join seats a player in an existing room.
func (m *Manager) Join(roomID, playerName string) (*game.Session, game.Player, error) {
	s, ok := m.store.GetRoom(roomID)
	if !ok {
		return nil, game.Player{}, game.ErrRoomNotFound
	}
	player, err := s.Join(playerName)
	if err != nil {
		return nil, game.Player{}, err
	}
	return s, player, nil
}

// JoinPublic puts the player into an open public room, creating one when
// none has a free seat.
func (m *Manager) JoinPublic(playerName string) (*game.Session, game.Player, error) {
	for _, s := range m.store.Rooms() {
		if s.Type != game.RoomPublic {
			continue
		}
		player, err := s.Join(playerName)
		if err != nil {
			continue // full or closing; try the next one
		}
		return s, player, nil
	}
	return m.CreateRoom(playerName, game.RoomPublic)
}

// Get looks a room up by code.
func (m *Manager) Get(roomID string) (*game.Session, bool) {
	return m.store.GetRoom(roomID)
}

// Room codes avoid ambiguous characters.
const codeLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func (m *Manager) newCode() string {
	for {
		b := make([]byte, 6)
		for i := range b {
			b[i] = codeLetters[m.rng.Intn(len(codeLetters))]
		}
		code := string(b)
		if _, taken := m.store.GetRoom(code); !taken {
			return code
		}
	}
}
