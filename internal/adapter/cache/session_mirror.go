package cache

import (
	"sync"

	"github.com/example/shop-admin-service/internal/domain"
)

// SessionMirror — in-memory зеркало коллекций orders и products на время
// одной админ-сессии. Порядок записей сохраняется как при загрузке.
// Конкурирующие мутации одной записи не упорядочиваются: локально
// побеждает последнее подтверждение.
type SessionMirror struct {
	mu       sync.RWMutex
	orders   []domain.Order
	products []domain.Product
}

func NewSessionMirror() *SessionMirror {
	return &SessionMirror{}
}

func (m *SessionMirror) SetOrders(orders []domain.Order) {
	m.mu.Lock()
	m.orders = append([]domain.Order(nil), orders...)
	m.mu.Unlock()
}

func (m *SessionMirror) SetProducts(products []domain.Product) {
	m.mu.Lock()
	m.products = append([]domain.Product(nil), products...)
	m.mu.Unlock()
}

// Orders возвращает копию: вызывающий не может мутировать зеркало мимо мьютекса.
func (m *SessionMirror) Orders() []domain.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Order(nil), m.orders...)
}

func (m *SessionMirror) Products() []domain.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Product(nil), m.products...)
}

// UpdateOrderStatus меняет только поле статуса, остальные поля записи
// и соседние записи не трогает.
func (m *SessionMirror) UpdateOrderStatus(id, status string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			return true
		}
	}
	return false
}

func (m *SessionMirror) RemoveOrder(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return true
		}
	}
	return false
}

func (m *SessionMirror) AppendProduct(p domain.Product) {
	m.mu.Lock()
	m.products = append(m.products, p)
	m.mu.Unlock()
}

// ReplaceProduct — замена записи целиком, не merge полей.
func (m *SessionMirror) ReplaceProduct(p domain.Product) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == p.ID {
			m.products[i] = p
			return true
		}
	}
	return false
}

func (m *SessionMirror) RemoveProduct(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return true
		}
	}
	return false
}

var _ domain.SessionMirror = (*SessionMirror)(nil)
