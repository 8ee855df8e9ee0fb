package session

import (
	"sync"

	"github.com/google/uuid"
)

// Session é uma referência fraca ao usuário logado (id + nível). O valor
// zero é a sessão anônima. Pode estar desatualizada: quem decide
// permissão relê o usuário no banco.
type Session struct {
	ID     string `json:"-"`
	UserID uint   `json:"user_id"`
	Level  int    `json:"level"`
}

var Anonymous = Session{}

func (s Session) Authenticated() bool {
	return s.UserID != 0
}

func (s Session) IsSelf(userID uint) bool {
	return s.Authenticated() && s.UserID == userID
}

// Manager guarda a única sessão ativa do processo.
type Manager struct {
	mu     sync.Mutex
	active Session
}

func NewManager() *Manager {
	return &Manager{}
}

// Activate substitui qualquer sessão anterior.
func (m *Manager) Activate(userID uint, level int) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.active = Session{
		ID:     uuid.NewString(),
		UserID: userID,
		Level:  level,
	}
	return m.active
}

// Resolve devolve a sessão ativa se o id confere; caso contrário, anônima.
func (m *Manager) Resolve(id string) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" || m.active.ID != id {
		return Anonymous
	}
	return m.active
}

func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Refresh atualiza o nível guardado quando o próprio usuário muda de nível.
func (m *Manager) Refresh(userID uint, level int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active.UserID == userID {
		m.active.Level = level
	}
}

func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = Anonymous
}
