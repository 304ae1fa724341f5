package models

import "errors"

var (
	// ErrCardNotOwned is returned when a move or play matches no instance owned by
	// the caller in the given session.
	ErrCardNotOwned = errors.New("card not found for this player in this session")

	// ErrCardNotFound is returned when a card instance that was just written cannot
	// be read back.
	ErrCardNotFound = errors.New("card instance not found")

	ErrInvalidCard    = errors.New("invalid card data")
	ErrInvalidRequest = errors.New("invalid request")
)
