package services

import "errors"

// Client-side precondition failures. These never reach the network.
var (
	ErrEmptyContent     = errors.New("content is empty")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
)
