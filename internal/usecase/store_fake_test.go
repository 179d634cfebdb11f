package usecase_test

import (
	"context"
	"errors"

	"github.com/example/shop-admin-service/internal/domain"
)

var errRemote = errors.New("remote store unavailable")

// fakeStore implements domain.ContentStore in memory with failure
// injection per operation.
type fakeStore struct {
	orders   []domain.Order
	products []domain.Product

	failFetchOrders   bool
	failFetchProducts bool
	failMutations     bool

	nextID      string
	patchCalls  int
	deleteCalls int
}

func (f *fakeStore) FetchOrders(context.Context) ([]domain.Order, error) {
	if f.failFetchOrders {
		return nil, errRemote
	}
	return append([]domain.Order(nil), f.orders...), nil
}

func (f *fakeStore) FetchProducts(context.Context) ([]domain.Product, error) {
	if f.failFetchProducts {
		return nil, errRemote
	}
	return append([]domain.Product(nil), f.products...), nil
}

func (f *fakeStore) CreateProduct(_ context.Context, fields domain.ProductFields) (string, error) {
	if f.failMutations {
		return "", errRemote
	}
	id := f.nextID
	if id == "" {
		id = "store-assigned-id"
	}
	f.products = append(f.products, domain.Product{
		ID: id, Name: fields.Name, Price: fields.Price, Stock: fields.Stock,
		Description: fields.Description, Image: fields.Image,
	})
	return id, nil
}

func (f *fakeStore) PatchOrderStatus(_ context.Context, id, status string) error {
	if f.failMutations {
		return errRemote
	}
	f.patchCalls++
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeStore) PatchProduct(_ context.Context, id string, fields domain.ProductFields) error {
	if f.failMutations {
		return errRemote
	}
	f.patchCalls++
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i] = domain.Product{
				ID: id, Name: fields.Name, Price: fields.Price, Stock: fields.Stock,
				Description: fields.Description, Image: fields.Image,
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if f.failMutations {
		return errRemote
	}
	f.deleteCalls++
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders = append(f.orders[:i], f.orders[i+1:]...)
			return nil
		}
	}
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// testOrders returns a fixed set covering every status plus unset.
func testOrders() []domain.Order {
	return []domain.Order{
		{ID: "ord-1", FirstName: "Ann", Total: 100, Status: domain.StatusPending},
		{ID: "ord-2", FirstName: "Bob", Total: 250.5, Status: domain.StatusDispatch},
		{ID: "ord-3", FirstName: "Cid", Total: 0, Status: domain.StatusSuccess},
		{ID: "ord-4", FirstName: "Dee", Total: 40, Status: ""},
		{ID: "ord-5", FirstName: "Eva", Total: 10, Status: domain.StatusPending},
	}
}
