package id

import (
	"crypto/rand"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// New returns a ULID string: a millisecond timestamp followed by 80 bits of
// crypto randomness. Used for notification ids.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// NewConnectionID returns an opaque id for a newly accepted connection.
func NewConnectionID() string {
	return uuid.NewString()
}
