package service

import "errors"

var (
	ErrUnauthenticated  = errors.New("login required")
	ErrInvalidQuantity  = errors.New("quantity must be between 1 and the available stock")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrCancelNotAllowed = errors.New("order cannot be cancelled")
	ErrCategoryNotFound = errors.New("category not found")
	ErrEmptyQuery       = errors.New("search query is empty")
)
