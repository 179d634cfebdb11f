package domain

import (
	"context"
	"time"
)

// ContentStore — порт удалённого документного хранилища (headless CMS).
// Чтение after-write гарантируется лишь eventually; транзакций между
// документами нет. Никаких повторов на этом уровне.
type ContentStore interface {
	FetchOrders(ctx context.Context) ([]Order, error)
	FetchProducts(ctx context.Context) ([]Product, error)
	// CreateProduct возвращает идентификатор, назначенный хранилищем.
	CreateProduct(ctx context.Context, fields ProductFields) (string, error)
	PatchOrderStatus(ctx context.Context, id, status string) error
	PatchProduct(ctx context.Context, id string, fields ProductFields) error
	Delete(ctx context.Context, id string) error
}

// SessionMirror — порт локального зеркала коллекций на время сессии.
// Единственный источник истины для отрисовки; обновляется только после
// подтверждения удалённой операции.
type SessionMirror interface {
	SetOrders(orders []Order)
	SetProducts(products []Product)
	Orders() []Order
	Products() []Product
	UpdateOrderStatus(id, status string) bool
	RemoveOrder(id string) bool
	AppendProduct(p Product)
	ReplaceProduct(p Product) bool
	RemoveProduct(id string) bool
}

// IdentityState — снимок состояния личности от внешнего провайдера.
type IdentityState struct {
	Loaded   bool
	SignedIn bool
	Email    string
}

// IdentityVerifier — порт проверки сессионного токена у провайдера личности.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (IdentityState, error)
}

// AdminEvent — событие админки для downstream-потребителей.
type AdminEvent struct {
	Action     string    `json:"action"`
	DocumentID string    `json:"document_id"`
	Detail     string    `json:"detail,omitempty"`
	At         time.Time `json:"at"`
}

// EventPublisher — порт публикации событий админки.
type EventPublisher interface {
	Publish(ctx context.Context, e AdminEvent) error
}

// Общие доменные ошибки
var (
	ErrNotFound     = notFoundError("not found")
	ErrNotConfirmed = notConfirmedError("destructive action not confirmed")
	ErrUnauthorized = unauthorizedError("unauthorized")
)

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

type notConfirmedError string

func (e notConfirmedError) Error() string { return string(e) }

type unauthorizedError string

func (e unauthorizedError) Error() string { return string(e) }
