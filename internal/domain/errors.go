package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrDataIntegrity = errors.New("data integrity")
	ErrInvalidInput  = errors.New("invalid input")
)
