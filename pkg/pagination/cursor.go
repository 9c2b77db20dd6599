package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// ErrInvalidCursor is returned for cursors that decode but do not name a row.
var ErrInvalidCursor = errors.New("cursor does not reference a row")

// Cursor marks the last row of a page ordered by created_at DESC, id DESC.
type Cursor struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCursor(id uuid.UUID, createdAt time.Time) *Cursor {
	return &Cursor{ID: id, CreatedAt: createdAt}
}

// Encode encodes the cursor to a base64 string
func (c *Cursor) Encode() string {
	data, _ := json.Marshal(c)
	return base64.URLEncoding.EncodeToString(data)
}

// Keyset returns the condition selecting rows after the cursor, and its args.
func (c *Cursor) Keyset() (string, []interface{}) {
	return "(created_at < ?) OR (created_at = ? AND id < ?)",
		[]interface{}{c.CreatedAt, c.CreatedAt, c.ID}
}

// DecodeCursor decodes a base64 cursor string. An empty string yields nil.
func DecodeCursor(encoded string) (*Cursor, error) {
	if encoded == "" {
		return nil, nil
	}

	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}

	var cursor Cursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, err
	}
	if cursor.ID == uuid.Nil || cursor.CreatedAt.IsZero() {
		return nil, ErrInvalidCursor
	}

	return &cursor, nil
}

// NormalizeLimit ensures limit is within bounds
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
