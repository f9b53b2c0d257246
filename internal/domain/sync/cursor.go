package sync

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

var ErrInvalidCursor = errors.New("invalid sync cursor")

// sortKeyTimeLayout is a fixed-width RFC3339 variant. time.RFC3339Nano trims
// trailing zeros, which breaks lexicographic ordering; this layout does not.
const sortKeyTimeLayout = "2006-01-02T15:04:05.000000000Z"

type cursorPayload struct {
	UpdatedAt string `json:"u"`
	ID        string `json:"i"`
}

// EncodeCursor produces an opaque continuation token for the position right
// after (updatedAt, id) in the delta stream.
func EncodeCursor(updatedAt time.Time, id string) string {
	b, _ := json.Marshal(cursorPayload{
		UpdatedAt: updatedAt.UTC().Format(sortKeyTimeLayout),
		ID:        id,
	})
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor reverses EncodeCursor. A malformed token returns
// ErrInvalidCursor; callers must degrade to "no cursor supplied" so a
// corrupted client-stored cursor can never lock a client out of resyncing.
func DecodeCursor(token string) (time.Time, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", ErrInvalidCursor
	}
	var p cursorPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return time.Time{}, "", ErrInvalidCursor
	}
	ts, err := time.Parse(sortKeyTimeLayout, p.UpdatedAt)
	if err != nil || p.ID == "" {
		return time.Time{}, "", ErrInvalidCursor
	}
	return ts, p.ID, nil
}

// SortKey renders the (updatedAt, id) pair as the fixed-width composite used
// as the GSI sort key. Lexicographic order on the result equals the
// (updatedAt ASC, id ASC) delta-sync order.
func SortKey(updatedAt time.Time, id string) string {
	return updatedAt.UTC().Format(sortKeyTimeLayout) + "#" + id
}

// SortKeyLowerBound renders an exclusive lower bound that admits every record
// with UpdatedAt >= ts. The empty id suffix sorts before any real id at the
// same timestamp.
func SortKeyLowerBound(ts time.Time) string {
	return ts.UTC().Format(sortKeyTimeLayout) + "#"
}
