package model

import (
	"time"

	"github.com/google/uuid"
)

type RecordID string

// NewRecordID generates a new unique RecordID
func NewRecordID() RecordID {
	return RecordID(uuid.New().String())
}

// Kind is the closed set of tool categories a record can belong to
type Kind string

const (
	KindChat      Kind = "chat"
	KindCode      Kind = "code"
	KindImage     Kind = "image"
	KindOptimizer Kind = "optimizer"
)

// Kinds returns all valid kinds in a fixed order
func Kinds() []Kind {
	return []Kind{KindChat, KindCode, KindImage, KindOptimizer}
}

// ParseKind validates a kind string received from a client
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindChat, KindCode, KindImage, KindOptimizer:
		return Kind(s), nil
	}
	return "", goerrInvalidKind(s)
}

// Collection maps a kind to its per-owner sub-collection name
func (k Kind) Collection() string {
	switch k {
	case KindChat:
		return "chatHistory"
	case KindCode:
		return "codeHistory"
	case KindImage:
		return "imageHistory"
	case KindOptimizer:
		return "optimizerHistory"
	}
	return ""
}

// Label is the human-readable form used in fallback titles
func (k Kind) Label() string {
	switch k {
	case KindChat:
		return "Chat"
	case KindCode:
		return "Code"
	case KindImage:
		return "Image"
	case KindOptimizer:
		return "Optimizer"
	}
	return ""
}

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is a single message in a chat record
type Turn struct {
	Role Role   `firestore:"role" json:"role"`
	Text string `firestore:"text" json:"text"`
}

// Record represents one persisted interaction: a chat thread or a
// single-shot generation (code/image/optimizer).
type Record struct {
	ID        RecordID  `firestore:"id" json:"id"`
	OwnerID   string    `firestore:"ownerId" json:"ownerId"`
	Kind      Kind      `firestore:"kind" json:"kind"`
	Title     string    `firestore:"title" json:"title"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`

	// Turns is used only by chat records
	Turns []Turn `firestore:"turns,omitempty" json:"turns,omitempty"`

	// Prompt and Result are used by code/image/optimizer records
	Prompt string `firestore:"prompt,omitempty" json:"prompt,omitempty"`
	Result string `firestore:"result,omitempty" json:"result,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate stored state
func (r *Record) Clone() *Record {
	clone := *r
	if r.Turns != nil {
		clone.Turns = make([]Turn, len(r.Turns))
		copy(clone.Turns, r.Turns)
	}
	return &clone
}
