// Package usecase implements the business logic for the product catalog.
package usecase

import "errors"

var (
	// ErrMissingFields is returned when nome or preco is empty.
	ErrMissingFields = errors.New("required fields missing")

	// ErrInvalidPrice is returned when preco is not a decimal number.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrProductCreate wraps failures while storing a new product or its image.
	ErrProductCreate = errors.New("product create failed")

	// ErrProductList wraps store failures while listing products.
	ErrProductList = errors.New("product list failed")

	// ErrProductLookup wraps store failures while reading a product's image reference.
	ErrProductLookup = errors.New("product lookup failed")

	// ErrProductDelete wraps store failures while deleting a product row.
	ErrProductDelete = errors.New("product delete failed")
)
