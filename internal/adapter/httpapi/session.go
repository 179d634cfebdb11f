package httpapi

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/shop-admin-service/internal/domain"
)

// SessionCookie — кука с идентификатором админ-сессии.
const SessionCookie = "shop_admin_session"

// LoginMarkerCookie — маркер "isLoggedIn" для удобства фронтенда.
// Не является источником истины авторизации: каждый запрос проверяется
// по реестру сессий.
const LoginMarkerCookie = "isLoggedIn"

// session — одна непрерывная админ-сессия: от допуска до выхода.
// Зеркало коллекций живёт ровно столько же.
type session struct {
	ID        string
	Email     string
	Mirror    domain.SessionMirror
	CreatedAt time.Time
}

type sessionManager struct {
	mu   sync.RWMutex
	byID map[string]*session
}

func newSessionManager() *sessionManager {
	return &sessionManager{byID: make(map[string]*session)}
}

func (m *sessionManager) create(email string, mirror domain.SessionMirror) *session {
	s := &session{
		ID:        uuid.NewString(),
		Email:     email,
		Mirror:    mirror,
		CreatedAt: time.Now().UTC(),
	}
	m.mu.Lock()
	m.byID[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *sessionManager) get(id string) (*session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.byID[id]
	return s, ok
}

func (m *sessionManager) drop(id string) {
	m.mu.Lock()
	delete(m.byID, id)
	m.mu.Unlock()
}
