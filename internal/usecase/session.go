package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/example/shop-admin-service/internal/domain"
)

// LoadSession — разовая загрузка обеих коллекций в зеркало после допуска
// администратора. Падение любого из чтений оставляет соответствующую
// коллекцию пустой: лог, без алерта, без повтора.
type LoadSession struct {
	Store  domain.ContentStore
	Mirror domain.SessionMirror
	Log    zerolog.Logger
}

func (uc LoadSession) Execute(ctx context.Context) {
	orders, err := uc.Store.FetchOrders(ctx)
	if err != nil {
		uc.Log.Error().Err(err).Msg("load session: fetch orders")
	} else {
		uc.Mirror.SetOrders(orders)
	}

	products, err := uc.Store.FetchProducts(ctx)
	if err != nil {
		uc.Log.Error().Err(err).Msg("load session: fetch products")
	} else {
		uc.Mirror.SetProducts(products)
	}
}
