package entity

import "errors"

// ErrNotFound is returned by repositories when an id or slug does not
// resolve to a live record.
var ErrNotFound = errors.New("record not found")
