// Package storetest provides an in-memory implementation of the game stores
// for tests that exercise the services without PostgreSQL.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/avvvet/cardgame-services/internal/gamesvc/models"
)

// Memory implements every store contract of package service. It follows the
// PostgreSQL stores: get-or-create by unique name, guarded relocations, and a
// combat log row per create/move/play.
type Memory struct {
	mu sync.Mutex

	nextID    int64
	users     map[string]*models.User
	sessions  map[string]*models.GameSession
	players   []models.PlayerSession
	cards     map[int64]models.CardDefinition
	instances map[int64]models.PlayerCardInstance
	log       []models.CombatLogEntry

	// Err, when set, is returned by every call.
	Err error
}

func NewMemory() *Memory {
	return &Memory{
		users:     make(map[string]*models.User),
		sessions:  make(map[string]*models.GameSession),
		cards:     make(map[int64]models.CardDefinition),
		instances: make(map[int64]models.PlayerCardInstance),
	}
}

func (m *Memory) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *Memory) GetOrCreate(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.users[username]
	if !ok {
		u = &models.User{ID: m.id(), Username: username, CreatedAt: time.Now()}
		m.users[username] = u
	}
	cp := *u
	return &cp, nil
}

func (m *Memory) userByID(id int64) *models.User {
	for _, u := range m.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// Sessions returns a view of m satisfying service.SessionStore, whose
// GetOrCreate differs in signature from the user store's.
func (m *Memory) Sessions() *Sessions {
	return &Sessions{m: m}
}

type Sessions struct {
	m *Memory
}

func (s *Sessions) GetOrCreate(ctx context.Context, name string, gmUserID int64) (*models.GameSession, bool, error) {
	m := s.m
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, false, m.Err
	}
	gs, ok := m.sessions[name]
	if !ok {
		gs = &models.GameSession{ID: m.id(), Name: name, GMUserID: gmUserID, CreatedAt: time.Now()}
		m.sessions[name] = gs
	}
	cp := *gs
	return &cp, !ok, nil
}

func (s *Sessions) AddPlayer(ctx context.Context, userID, sessionID int64) error {
	m := s.m
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, p := range m.players {
		if p.UserID == userID && p.SessionID == sessionID {
			return nil
		}
	}
	m.players = append(m.players, models.PlayerSession{ID: m.id(), UserID: userID, SessionID: sessionID, JoinedAt: time.Now()})
	return nil
}

func (s *Sessions) ListPlayers(ctx context.Context, sessionID int64) ([]models.Player, error) {
	m := s.m
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var gm int64
	for _, gs := range m.sessions {
		if gs.ID == sessionID {
			gm = gs.GMUserID
		}
	}
	players := []models.Player{}
	for _, p := range m.players {
		if p.SessionID != sessionID {
			continue
		}
		u := m.userByID(p.UserID)
		players = append(players, models.Player{UserID: u.ID, Username: u.Username, IsGM: u.ID == gm, JoinedAt: p.JoinedAt})
	}
	return players, nil
}

func (m *Memory) ListCatalog(ctx context.Context, limit int) ([]models.CardDefinition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	defs := make([]models.CardDefinition, 0, len(m.cards))
	for _, d := range m.cards {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	if len(defs) > limit {
		defs = defs[:limit]
	}
	return defs, nil
}

func (m *Memory) sessionExists(id int64) bool {
	for _, gs := range m.sessions {
		if gs.ID == id {
			return true
		}
	}
	return false
}

func (m *Memory) CreateWithDefinition(ctx context.Context, userID, sessionID int64, def *models.CardDefinition) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	if !m.sessionExists(sessionID) {
		return 0, fmt.Errorf("%w: unknown session %d", models.ErrInvalidRequest, sessionID)
	}

	d := *def
	d.ID = m.id()
	d.CreatedAt = time.Now()
	m.cards[d.ID] = d

	inst := models.PlayerCardInstance{
		ID:        m.id(),
		UserID:    userID,
		CardID:    d.ID,
		SessionID: sessionID,
		Location:  models.ZoneCreatedStorage,
		UpdatedAt: time.Now(),
	}
	m.instances[inst.ID] = inst
	m.appendLog(sessionID, userID, d.ID, models.ActionCreate, "created "+d.Name)
	return inst.ID, nil
}

func (m *Memory) appendLog(sessionID, userID, cardID int64, action, description string) {
	m.log = append(m.log, models.CombatLogEntry{
		ID:          m.id(),
		SessionID:   sessionID,
		UserID:      userID,
		CardID:      cardID,
		ActionType:  action,
		Description: description,
		Timestamp:   time.Now(),
	})
}

func (m *Memory) Relocate(ctx context.Context, r models.Relocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	inst, ok := m.instances[r.InstanceID]
	if !ok || inst.UserID != r.UserID || inst.SessionID != r.SessionID {
		return models.ErrCardNotOwned
	}
	inst.Location = r.Location
	inst.SlotID = r.SlotID
	inst.IsActive = r.IsActive
	inst.UpdatedAt = time.Now()
	m.instances[inst.ID] = inst
	verb := "moved"
	if r.Action == models.ActionPlay {
		verb = "played"
	}
	m.appendLog(inst.SessionID, inst.UserID, inst.CardID, r.Action, verb+" "+m.cards[inst.CardID].Name+" to "+r.Location)
	return nil
}

func (m *Memory) Get(ctx context.Context, instanceID int64) (*models.SessionCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	inst, ok := m.instances[instanceID]
	if !ok {
		return nil, models.ErrCardNotFound
	}
	return &models.SessionCard{PlayerCardInstance: inst, Definition: m.cards[inst.CardID]}, nil
}

func (m *Memory) ListBySession(ctx context.Context, sessionID int64) ([]models.SessionCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	cards := []models.SessionCard{}
	for _, inst := range m.instances {
		if inst.SessionID == sessionID {
			cards = append(cards, models.SessionCard{PlayerCardInstance: inst, Definition: m.cards[inst.CardID]})
		}
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
	return cards, nil
}

// CombatLog returns a view of m satisfying service.CombatLogStore.
func (m *Memory) CombatLog() *CombatLog {
	return &CombatLog{m: m}
}

type CombatLog struct {
	m *Memory
}

func (l *CombatLog) ListBySession(ctx context.Context, sessionID int64) ([]models.CombatLogEntry, error) {
	m := l.m
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	entries := []models.CombatLogEntry{}
	for _, e := range m.log {
		if e.SessionID == sessionID {
			e.Username = m.userByID(e.UserID).Username
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// Instance returns the stored instance, for assertions.
func (m *Memory) Instance(id int64) (models.PlayerCardInstance, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst, ok := m.instances[id]
	return inst, ok
}

// LogLen returns the total number of combat log rows.
func (m *Memory) LogLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.log)
}
