// Package repositories provides collection access for the API resources.
// Each repository is an interface so controllers can be exercised against
// fakes; the production implementations run on MongoDB.
package repositories

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned when an identifier does not resolve to a document.
var ErrNotFound = errors.New("document not found")

// ErrDuplicate is returned when a write violates a unique index.
var ErrDuplicate = errors.New("duplicate key")

// Page describes a pagination window. PerPage may be zero, which means the
// whole matching set (the last-page computation divides by the total count
// in that case).
type Page struct {
	Number  int
	PerPage int
}

// Skip returns the offset of the first document in the window.
func (p Page) Skip() int64 {
	return int64((p.Number - 1) * p.PerPage)
}

// newestFirst sorts by descending object id, i.e. insertion order newest first.
func newestFirst() bson.D {
	return bson.D{{Key: "_id", Value: -1}}
}
