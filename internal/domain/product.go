package domain

import (
	"bytes"
	"strconv"
)

// Product — доменная сущность товара каталога. Идентификатор назначает
// удалённое хранилище при создании; локально идентификаторы не выдаются.
type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"` // идентификатор ассета, не URL
	Category    string  `json:"category,omitempty"`
	Tag         string  `json:"tag,omitempty"`
}

// ProductFields — нормализованный набор полей для отправки в хранилище:
// price и stock уже приведены к числовому типу.
type ProductFields struct {
	Name        string
	Price       float64
	Stock       int
	Description string
	Image       string
	Category    string
	Tag         string
}

// ProductDraft — черновик товара из формы админки. Числовые поля могут
// прийти строками, поэтому используют приводящие типы.
type ProductDraft struct {
	Name        string  `json:"name"`
	Price       Numeric `json:"price"`
	Stock       Integer `json:"stock"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Tag         string  `json:"tag"`
}

// Fields приводит черновик к нормализованному набору полей.
func (d ProductDraft) Fields() ProductFields {
	return ProductFields{
		Name:        d.Name,
		Price:       float64(d.Price),
		Stock:       int(d.Stock),
		Description: d.Description,
		Image:       d.Image,
		Category:    d.Category,
		Tag:         d.Tag,
	}
}

// Numeric — float64, принимающий из JSON и число, и строку ("19.99").
// Нечисловой ввод приводится к нулю, не отклоняется.
type Numeric float64

func (n *Numeric) UnmarshalJSON(b []byte) error {
	*n = Numeric(coerceFloat(b))
	return nil
}

// Integer — int с той же семантикой приведения, что и Numeric.
type Integer int

func (i *Integer) UnmarshalJSON(b []byte) error {
	*i = Integer(coerceFloat(b))
	return nil
}

func coerceFloat(b []byte) float64 {
	s := string(bytes.Trim(bytes.TrimSpace(b), `"`))
	if s == "" || s == "null" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
