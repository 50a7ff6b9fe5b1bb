// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrMissingFields is returned when nome, email or senha is empty on registration.
	ErrMissingFields = errors.New("required fields missing")

	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrWrongPassword is returned when the password does not match the stored digest.
	ErrWrongPassword = errors.New("incorrect password")

	// ErrUserLookup wraps store failures while reading users.
	ErrUserLookup = errors.New("user lookup failed")

	// ErrUserCreate wraps store failures while inserting users.
	ErrUserCreate = errors.New("user create failed")
)
