package usecase

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"chupchup_backend/internal/feature/product/domain/entity"
	"chupchup_backend/internal/platform/metrics"
)

// ProductRepository abstracts the persistence layer for products.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	List(ctx context.Context) ([]entity.Product, error)
	// FindImage returns the image reference of product id, or nil when the
	// product does not exist or has no image.
	FindImage(ctx context.Context, id uint) (*string, error)
	// Delete succeeds even when no row matches id.
	Delete(ctx context.Context, id uint) error
}

// MediaStore stores product images.
type MediaStore interface {
	// Put stores r and returns the reference recorded on the product.
	Put(ctx context.Context, r io.Reader, originalName string) (string, error)
	// Delete removes the file behind ref and reports whether one existed.
	Delete(ctx context.Context, ref string) (bool, error)
}

// ImageUpload is an uploaded file as received from the client.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// CreateInput carries the product form. Price is the raw form value.
type CreateInput struct {
	Name        string
	Description *string
	Price       string
	Image       *ImageUpload
}

// ProductUsecase provides the catalog operations.
type ProductUsecase struct {
	repo  ProductRepository
	media MediaStore
}

// NewProductUsecase creates a new ProductUsecase.
func NewProductUsecase(repo ProductRepository, media MediaStore) *ProductUsecase {
	return &ProductUsecase{repo: repo, media: media}
}

// Create validates the form, stores the image (if any) and inserts the product.
// The image is removed again when the insert fails.
func (u *ProductUsecase) Create(ctx context.Context, in CreateInput) (*entity.Product, error) {
	log := zerolog.Ctx(ctx)

	name := in.Name
	rawPrice := strings.TrimSpace(in.Price)
	if name == "" || rawPrice == "" {
		return nil, ErrMissingFields
	}
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrice, in.Price)
	}

	p := &entity.Product{
		Name:        name,
		Description: in.Description,
		Price:       price,
	}

	if in.Image != nil {
		ref, err := u.media.Put(ctx, in.Image.Content, in.Image.Filename)
		if err != nil {
			return nil, fmt.Errorf("%w: store image: %w", ErrProductCreate, err)
		}
		p.Image = &ref
	}

	if err := u.repo.Create(ctx, p); err != nil {
		if p.HasImage() {
			if _, derr := u.media.Delete(ctx, *p.Image); derr != nil {
				log.Warn().Err(derr).Str("image", *p.Image).Msg("failed to remove image of rejected product")
			}
		}
		return nil, fmt.Errorf("%w: %w", ErrProductCreate, err)
	}

	metrics.ProductsCreatedTotal.WithLabelValues(strconv.FormatBool(p.HasImage())).Inc()
	log.Info().Uint("product_id", p.ID).Bool("with_image", p.HasImage()).Msg("product created")
	return p, nil
}

// List returns every product.
func (u *ProductUsecase) List(ctx context.Context) ([]entity.Product, error) {
	products, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProductList, err)
	}
	return products, nil
}

// Delete removes the product's image file, best effort, and then the row.
// Unknown ids succeed.
func (u *ProductUsecase) Delete(ctx context.Context, id uint) error {
	log := zerolog.Ctx(ctx)

	ref, err := u.repo.FindImage(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProductLookup, err)
	}

	if ref != nil && *ref != "" {
		removed, err := u.media.Delete(ctx, *ref)
		if err != nil {
			metrics.MediaDeleteFailuresTotal.Inc()
			log.Warn().Err(err).Uint("product_id", id).Str("image", *ref).Msg("failed to remove product image")
		} else if !removed {
			log.Debug().Uint("product_id", id).Str("image", *ref).Msg("product image already gone")
		}
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", ErrProductDelete, err)
	}

	metrics.ProductsDeletedTotal.Inc()
	log.Info().Uint("product_id", id).Msg("product deleted")
	return nil
}
