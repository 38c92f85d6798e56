package repos

import "errors"

// ErrNotFound is returned by update/delete operations that matched no row.
var ErrNotFound = errors.New("not found")
