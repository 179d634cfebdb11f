package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/example/shop-admin-service/internal/domain"
)

// FilterOrders — чистая проекция по статусу над текущим состоянием зеркала.
// Пересчитывается на каждый вызов, порядок записей сохраняется.
type FilterOrders struct {
	Mirror domain.SessionMirror
}

func (uc FilterOrders) Execute(status string) []domain.Order {
	orders := uc.Mirror.Orders()
	if status == domain.FilterAll {
		return orders
	}
	filtered := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == status {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// SetOrderStatus — смена статуса заказа: сперва удалённый patch одного
// поля, локальное зеркало обновляется только после подтверждения.
// Статус не валидируется по перечислению: хранится как пришёл.
type SetOrderStatus struct {
	Store  domain.ContentStore
	Mirror domain.SessionMirror
	Events domain.EventPublisher
}

func (uc SetOrderStatus) Execute(ctx context.Context, id, status string) error {
	if err := uc.Store.PatchOrderStatus(ctx, id, status); err != nil {
		return fmt.Errorf("patch order status: %w", err)
	}
	uc.Mirror.UpdateOrderStatus(id, status)
	if uc.Events != nil {
		_ = uc.Events.Publish(ctx, domain.AdminEvent{
			Action:     "order_status_changed",
			DocumentID: id,
			Detail:     fmt.Sprintf("Order marked as %s", status),
			At:         time.Now().UTC(),
		})
	}
	return nil
}

// DeleteOrder — удаление заказа. Без явного подтверждения запрос не
// доходит до хранилища и зеркало не меняется.
type DeleteOrder struct {
	Store  domain.ContentStore
	Mirror domain.SessionMirror
	Events domain.EventPublisher
}

func (uc DeleteOrder) Execute(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return domain.ErrNotConfirmed
	}
	if err := uc.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	uc.Mirror.RemoveOrder(id)
	if uc.Events != nil {
		_ = uc.Events.Publish(ctx, domain.AdminEvent{
			Action:     "order_deleted",
			DocumentID: id,
			At:         time.Now().UTC(),
		})
	}
	return nil
}
