// Package entity defines the domain models for the product feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. Image holds the media reference
// ("/uploads/<file>") or nil when no image was uploaded.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"column:nome;size:255;not null"`
	Description *string         `gorm:"column:descricao;type:text"`
	Price       decimal.Decimal `gorm:"column:preco;type:decimal(10,2);not null"`
	Image       *string         `gorm:"column:imagem;size:255"`
	CreatedAt   time.Time
}

// TableName maps Product to the produtos table.
func (Product) TableName() string {
	return "produtos"
}

// HasImage reports whether a media reference is recorded.
func (p *Product) HasImage() bool {
	return p.Image != nil && *p.Image != ""
}
