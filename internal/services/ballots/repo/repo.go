// Package repo persists the last committed ballot record set
//
// One blob per key holds the records as a JSON array of
// {timestamp, nama, unit, suara}. Backends differ only in where the blob
// lives: process memory, a postgres row or a redis string.
package repo

import (
	"context"
	"encoding/json"
	"time"

	"ballotbox/internal/core/ballot"
	perr "ballotbox/internal/platform/errors"

	"github.com/google/uuid"
)

// DefaultKey is the blob key used when none is configured
const DefaultKey = "voteData"

// ErrCorrupt means a blob exists but does not decode as a record list
var ErrCorrupt = perr.New(perr.ErrorCodeJSON, "stored ballots are corrupt")

// Blob is one persisted record set
// BatchID is uuid.Nil when the backend does not keep it
type Blob struct {
	BatchID uuid.UUID
	SavedAt time.Time
	Records []ballot.VoterRecord
}

// Storage loads, saves and clears the persisted blob
// Load reports found=false when nothing was saved and wraps ErrCorrupt for undecodable blobs
type Storage interface {
	Load(ctx context.Context) (Blob, bool, error)
	Save(ctx context.Context, b Blob) error
	Clear(ctx context.Context) error
}

func encode(recs []ballot.VoterRecord) ([]byte, error) {
	if recs == nil {
		recs = []ballot.VoterRecord{}
	}
	return json.Marshal(recs)
}

func decode(raw []byte) ([]ballot.VoterRecord, error) {
	var recs []ballot.VoterRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, perr.Detailf(ErrCorrupt, "stored ballots are corrupt: %v", err)
	}
	return recs, nil
}
