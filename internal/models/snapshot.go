package models

import (
	"time"
)

// Snapshot is an archived API result. Payload holds the JSON encoding of the
// typed model returned by the client, not the raw API response.
type Snapshot struct {
	ID        string    `json:"id" badgerhold:"key"`
	Function  string    `json:"function" badgerhold:"index"`
	Symbol    string    `json:"symbol" badgerhold:"index"`
	FetchedAt time.Time `json:"fetched_at"`
	Payload   []byte    `json:"payload"`
}
