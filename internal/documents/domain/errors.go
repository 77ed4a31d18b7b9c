package domain

import "errors"

var (
	ErrNotFound     = errors.New("document not found")
	ErrNodeNotFound = errors.New("tree node not found")
)
