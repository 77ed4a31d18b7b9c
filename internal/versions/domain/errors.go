package domain

import "errors"

var (
	ErrVersionNotFound = errors.New("version not found")
	ErrNoVersions      = errors.New("document has no versions")
)
