package pgstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/shop-admin-service/internal/domain"
)

// Store — domain.ContentStore поверх Postgres: документы лежат в jsonb,
// тип документа в отдельной колонке. Используется как self-hosted
// замена внешнего CMS; заказы хранятся денормализованно, cartItems
// уже внутри payload. Идентификаторы назначает хранилище (uuid).
type Store struct {
	Pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

// EnsureSchema — создать необходимые таблицы, если отсутствуют.
// seq фиксирует порядок выдачи коллекций.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS documents (
  id text PRIMARY KEY,
  doc_type text NOT NULL,
  payload jsonb NOT NULL,
  seq bigserial
);
CREATE INDEX IF NOT EXISTS documents_doc_type_idx ON documents (doc_type, seq);`)
	return err
}

func (s *Store) FetchOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.fetch(ctx, "order", func(raw []byte) error {
		var o domain.Order
		if err := json.Unmarshal(raw, &o); err != nil {
			// битую запись пропускаем, загрузку не прерываем
			return nil
		}
		orders = append(orders, o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := s.fetch(ctx, "product", func(raw []byte) error {
		var p domain.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil
		}
		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) fetch(ctx context.Context, docType string, fn func(raw []byte) error) error {
	rows, err := s.Pool.Query(ctx,
		`SELECT payload FROM documents WHERE doc_type = $1 ORDER BY seq`, docType)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return err
		}
		if err := fn(raw); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *Store) CreateProduct(ctx context.Context, fields domain.ProductFields) (string, error) {
	id := uuid.NewString()
	payload, err := json.Marshal(domain.Product{
		ID:          id,
		Name:        fields.Name,
		Price:       fields.Price,
		Stock:       fields.Stock,
		Description: fields.Description,
		Image:       fields.Image,
		Category:    fields.Category,
		Tag:         fields.Tag,
	})
	if err != nil {
		return "", err
	}
	_, err = s.Pool.Exec(ctx,
		`INSERT INTO documents(id, doc_type, payload) VALUES($1, 'product', $2)`, id, payload)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) PatchOrderStatus(ctx context.Context, id, status string) error {
	tag, err := s.Pool.Exec(ctx,
		`UPDATE documents SET payload = jsonb_set(payload, '{status}', to_jsonb($2::text))
         WHERE id = $1 AND doc_type = 'order'`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) PatchProduct(ctx context.Context, id string, fields domain.ProductFields) error {
	set, err := json.Marshal(map[string]any{
		"name":        fields.Name,
		"price":       fields.Price,
		"stock":       fields.Stock,
		"description": fields.Description,
		"image":       fields.Image,
		"category":    fields.Category,
		"tag":         fields.Tag,
	})
	if err != nil {
		return err
	}
	tag, err := s.Pool.Exec(ctx,
		`UPDATE documents SET payload = payload || $2::jsonb
         WHERE id = $1 AND doc_type = 'product'`, id, set)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

var _ domain.ContentStore = (*Store)(nil)
