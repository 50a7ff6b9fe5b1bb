package dto

import (
	"encoding/json"

	"chupchup_backend/internal/feature/product/domain/entity"
)

// ProductItem は/api/produtosの一覧要素を表します。
// preco is serialized as a decimal string ("30.00") to avoid float rounding.
type ProductItem struct {
	ID          uint    `json:"id"`
	Name        string  `json:"nome"`
	Description *string `json:"descricao"`
	Price       string  `json:"preco"`
	Image       *string `json:"imagem"`
}

// NewProductItem converts a product row to its wire form.
func NewProductItem(p entity.Product) ProductItem {
	return ProductItem{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Image:       p.Image,
	}
}

// NewProductList converts rows, keeping an empty result as [] rather than null.
func NewProductList(products []entity.Product) []ProductItem {
	items := make([]ProductItem, 0, len(products))
	for _, p := range products {
		items = append(items, NewProductItem(p))
	}
	return items
}

// CreateProductRequest is the JSON form of POST /api/produtos.
// preco accepts a number or a numeric string.
type CreateProductRequest struct {
	Name        string      `json:"nome"`
	Description *string     `json:"descricao"`
	Price       json.Number `json:"preco"`
}
