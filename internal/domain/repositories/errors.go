package repositories

import "errors"

// ErrVersionConflict is returned by optimistic updates when the stored version moved on
var ErrVersionConflict = errors.New("version conflict")
