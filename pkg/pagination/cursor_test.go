package pagination

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCursorRoundTrip(t *testing.T) {
	cursor := NewCursor(uuid.New(), time.Now().UTC().Round(time.Millisecond))

	decoded, err := DecodeCursor(cursor.Encode())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded == nil || decoded.ID != cursor.ID || !decoded.CreatedAt.Equal(cursor.CreatedAt) {
		t.Fatalf("decoded cursor mismatch: %+v", decoded)
	}
}

func TestDecodeCursor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantNil bool
		wantErr error
	}{
		{name: "empty", input: "", wantNil: true},
		{name: "bad base64", input: "bad!=base64", wantNil: true, wantErr: errAny},
		{name: "not json", input: base64.URLEncoding.EncodeToString([]byte("nope")), wantNil: true, wantErr: errAny},
		{
			name:    "missing id",
			input:   base64.URLEncoding.EncodeToString([]byte(`{"created_at":"2024-01-16T12:00:00Z"}`)),
			wantNil: true,
			wantErr: ErrInvalidCursor,
		},
		{
			name:    "missing time",
			input:   base64.URLEncoding.EncodeToString([]byte(`{"id":"550e8400-e29b-41d4-a716-446655440000"}`)),
			wantNil: true,
			wantErr: ErrInvalidCursor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor, err := DecodeCursor(tt.input)
			switch {
			case tt.wantErr == nil && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case tt.wantErr == errAny && err == nil:
				t.Fatal("expected an error")
			case tt.wantErr != nil && tt.wantErr != errAny && !errors.Is(err, tt.wantErr):
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantNil && cursor != nil {
				t.Fatalf("expected nil cursor, got %+v", cursor)
			}
		})
	}
}

var errAny = errors.New("any error")

func TestCursorKeyset(t *testing.T) {
	at := time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)
	id := uuid.New()

	clause, args := NewCursor(id, at).Keyset()
	if clause != "(created_at < ?) OR (created_at = ? AND id < ?)" {
		t.Errorf("clause = %q", clause)
	}
	if len(args) != 3 || args[0] != at || args[1] != at || args[2] != id {
		t.Errorf("args = %v", args)
	}
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, DefaultLimit},
		{-10, DefaultLimit},
		{MaxLimit + 1, MaxLimit},
		{25, 25},
	}

	for _, tt := range tests {
		if got := NormalizeLimit(tt.in); got != tt.want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
