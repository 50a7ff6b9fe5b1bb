// Package adapters はproductフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"chupchup_backend/internal/feature/product/domain/entity"
	"chupchup_backend/internal/feature/product/usecase"
)

// productMySQL はProductRepositoryインターフェースのgorm実装です。
type productMySQL struct {
	db *gorm.DB
}

var _ usecase.ProductRepository = (*productMySQL)(nil)

// NewProductRepository は指定されたDB接続でproductMySQLの新しいインスタンスを生成します。
func NewProductRepository(db *gorm.DB) *productMySQL {
	return &productMySQL{db: db}
}

// Create inserts p and fills its ID.
func (r *productMySQL) Create(ctx context.Context, p *entity.Product) error {
	if p == nil {
		return errors.New("nil product")
	}
	return r.db.WithContext(ctx).Create(p).Error
}

// List はすべての商品をID順に返します。
func (r *productMySQL) List(ctx context.Context) ([]entity.Product, error) {
	products := []entity.Product{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindImage returns the imagem column of product id.
// A missing product and a NULL image both yield nil.
func (r *productMySQL) FindImage(ctx context.Context, id uint) (*string, error) {
	var p entity.Product
	err := r.db.WithContext(ctx).Select("imagem").Where("id = ?", id).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p.Image, nil
}

// Delete removes product id. Zero affected rows is not an error.
func (r *productMySQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Product{}).Error
}
