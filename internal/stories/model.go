package stories

import (
	"time"

	"github.com/tokenlore/storyd/internal/tokens"
)

type Kind int

const (
	// KindCreator marks an entry authored by the collection creator.
	KindCreator = Kind(iota) + 1

	// KindCollector marks an entry authored by a current token holder.
	KindCollector
)

func (k Kind) String() string {
	switch k {
	case KindCreator:
		return "creator"
	case KindCollector:
		return "collector"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "creator":
		*k = KindCreator
	case "collector":
		*k = KindCollector
	default:
		*k = 0
	}
	return nil
}

// Entry is one story record. Entries are append-only: once written they are
// never edited, removed, or reordered.
type Entry struct {
	ID      string         `json:"id"       bson:"id"`
	TokenID uint64         `json:"token_id" bson:"tokenid"`
	Author  tokens.Address `json:"author"   bson:"author"`
	Name    string         `json:"name"     bson:"name"`
	Text    string         `json:"text"     bson:"text"`
	Kind    Kind           `json:"kind"     bson:"kind"`

	WrittenAt time.Time `json:"written_at" bson:"writtenat"`
}

// Event is the notification record emitted exactly once per successful
// append. Name is whatever the author supplied, not a verified identity.
type Event struct {
	EntryID string         `json:"entry_id"`
	Kind    Kind           `json:"kind"`
	TokenID uint64         `json:"token_id"`
	Author  tokens.Address `json:"author"`
	Name    string         `json:"name"`
	Text    string         `json:"text"`
}
