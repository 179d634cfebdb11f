package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/example/shop-admin-service/internal/domain"
)

// CreateProduct — создание товара: price и stock уже приведены к числам
// типами черновика. Локальная запись появляется только с идентификатором,
// который вернуло хранилище; локально идентификаторы не выдаются.
type CreateProduct struct {
	Store  domain.ContentStore
	Mirror domain.SessionMirror
	Events domain.EventPublisher
}

func (uc CreateProduct) Execute(ctx context.Context, draft domain.ProductDraft) (domain.Product, error) {
	fields := draft.Fields()
	id, err := uc.Store.CreateProduct(ctx, fields)
	if err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	p := domain.Product{
		ID:          id,
		Name:        fields.Name,
		Price:       fields.Price,
		Stock:       fields.Stock,
		Description: fields.Description,
		Image:       fields.Image,
		Category:    fields.Category,
		Tag:         fields.Tag,
	}
	uc.Mirror.AppendProduct(p)
	if uc.Events != nil {
		_ = uc.Events.Publish(ctx, domain.AdminEvent{
			Action:     "product_created",
			DocumentID: id,
			Detail:     fields.Name,
			At:         time.Now().UTC(),
		})
	}
	return p, nil
}

// UpdateProduct — правка товара: удалённый patch полного набора полей,
// после подтверждения запись в зеркале заменяется целиком.
type UpdateProduct struct {
	Store  domain.ContentStore
	Mirror domain.SessionMirror
	Events domain.EventPublisher
}

func (uc UpdateProduct) Execute(ctx context.Context, id string, draft domain.ProductDraft) (domain.Product, error) {
	fields := draft.Fields()
	if err := uc.Store.PatchProduct(ctx, id, fields); err != nil {
		return domain.Product{}, fmt.Errorf("patch product: %w", err)
	}
	p := domain.Product{
		ID:          id,
		Name:        fields.Name,
		Price:       fields.Price,
		Stock:       fields.Stock,
		Description: fields.Description,
		Image:       fields.Image,
		Category:    fields.Category,
		Tag:         fields.Tag,
	}
	uc.Mirror.ReplaceProduct(p)
	if uc.Events != nil {
		_ = uc.Events.Publish(ctx, domain.AdminEvent{
			Action:     "product_updated",
			DocumentID: id,
			Detail:     fields.Name,
			At:         time.Now().UTC(),
		})
	}
	return p, nil
}

// DeleteProduct — удаление товара с тем же обязательным подтверждением,
// что и у заказов.
type DeleteProduct struct {
	Store  domain.ContentStore
	Mirror domain.SessionMirror
	Events domain.EventPublisher
}

func (uc DeleteProduct) Execute(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return domain.ErrNotConfirmed
	}
	if err := uc.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	uc.Mirror.RemoveProduct(id)
	if uc.Events != nil {
		_ = uc.Events.Publish(ctx, domain.AdminEvent{
			Action:     "product_deleted",
			DocumentID: id,
			At:         time.Now().UTC(),
		})
	}
	return nil
}
