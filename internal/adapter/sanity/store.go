package sanity

import (
	"context"
	"fmt"

	"github.com/example/shop-admin-service/internal/domain"
)

// Проекции повторяют поля, которые читает дашборд; ссылки корзины
// разворачиваются в {name, image}, image приводится к строковому
// идентификатору ассета. coalesce покрывает документы, где image
// записан голой строкой, а не объектом ассета.
const (
	ordersQuery = `*[_type == "order"]{ _id, firstName, lastName, phone, email, address, city, zipCode, total, discount, orderDate, status, cartItems[]->{ name, "image": coalesce(image.asset._ref, image) } }`

	productsQuery = `*[_type == "product"]{ _id, name, price, stock, description, "image": coalesce(image.asset._ref, image), category, tag }`
)

// imageValue — запись идентификатора ассета в той форме, которую задаёт
// схема: объект image со ссылкой на ассет. Пустой идентификатор пишется
// как null, иначе проекция при следующей загрузке сессии потеряет поле.
func imageValue(ref string) any {
	if ref == "" {
		return nil
	}
	return map[string]any{
		"_type": "image",
		"asset": map[string]any{"_type": "reference", "_ref": ref},
	}
}

// Store — domain.ContentStore поверх content API Sanity.
type Store struct {
	client *Client
}

func NewStore(client *Client) *Store {
	return &Store{client: client}
}

func (s *Store) FetchOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := s.client.Fetch(ctx, ordersQuery, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := s.client.Fetch(ctx, productsQuery, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) CreateProduct(ctx context.Context, fields domain.ProductFields) (string, error) {
	doc := map[string]any{
		"_type":       "product",
		"name":        fields.Name,
		"price":       fields.Price,
		"stock":       fields.Stock,
		"description": fields.Description,
		"image":       imageValue(fields.Image),
		"category":    fields.Category,
		"tag":         fields.Tag,
	}
	res, err := s.client.Mutate(ctx, []any{map[string]any{"create": doc}})
	if err != nil {
		return "", err
	}
	if len(res.Results) == 0 || res.Results[0].ID == "" {
		return "", fmt.Errorf("sanity create: no id in response")
	}
	return res.Results[0].ID, nil
}

func (s *Store) PatchOrderStatus(ctx context.Context, id, status string) error {
	patch := map[string]any{"patch": map[string]any{
		"id":  id,
		"set": map[string]any{"status": status},
	}}
	_, err := s.client.Mutate(ctx, []any{patch})
	return err
}

func (s *Store) PatchProduct(ctx context.Context, id string, fields domain.ProductFields) error {
	patch := map[string]any{"patch": map[string]any{
		"id": id,
		"set": map[string]any{
			"name":        fields.Name,
			"price":       fields.Price,
			"stock":       fields.Stock,
			"description": fields.Description,
			"image":       imageValue(fields.Image),
			"category":    fields.Category,
			"tag":         fields.Tag,
		},
	}}
	_, err := s.client.Mutate(ctx, []any{patch})
	return err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	del := map[string]any{"delete": map[string]any{"id": id}}
	_, err := s.client.Mutate(ctx, []any{del})
	return err
}

var _ domain.ContentStore = (*Store)(nil)
