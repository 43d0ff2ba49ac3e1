package session

import (
	"context"

	"github.com/m-mizutani/aiforge/pkg/client"
	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// State is the client-side lifecycle of one chat thread
type State string

const (
	// StateNew means no resumption token is held; the next submission
	// creates a record.
	StateNew State = "new"
	// StateLoadingExisting means a resumption token is being resolved
	// against the store.
	StateLoadingExisting State = "loading_existing"
	// StateReady means input is accepted
	StateReady State = "ready"
	// StateGenerating means a submission is in flight and input is
	// rejected.
	StateGenerating State = "generating"
)

// API is the server surface the session depends on
type API interface {
	Chat(ctx context.Context, prompt string, chatID model.RecordID) (*client.ChatOutput, error)
	GetRecord(ctx context.Context, kind model.Kind, id model.RecordID) (*model.Record, error)
}

// Session reconciles an in-memory transcript with the persisted record
// across submissions and reloads. It is the client half of the
// resumption protocol: the server decides create-vs-append, the
// session adopts the returned record ID as its resumption token.
//
// Not safe for concurrent use; a session belongs to a single
// event-driven client loop.
type Session struct {
	api      API
	state    State
	recordID model.RecordID
	turns    []model.Turn
}

func New(api API) *Session {
	return &Session{
		api:   api,
		state: StateNew,
	}
}

// Load resolves a resumption token. On success the transcript is
// replaced by the stored payload. On failure the token is cleared and
// the session returns to StateNew. Loading the currently held token is
// a no-op.
func (s *Session) Load(ctx context.Context, id model.RecordID) error {
	if id == "" {
		return goerr.New("record id is required", goerr.T(model.ErrTagInvalidInput))
	}
	if id == s.recordID {
		return nil
	}

	s.state = StateLoadingExisting
	s.turns = nil

	record, err := s.api.GetRecord(ctx, model.KindChat, id)
	if err != nil {
		s.recordID = ""
		s.state = StateNew
		return goerr.Wrap(err, "failed to load record", goerr.V("record_id", id))
	}

	s.recordID = id
	s.turns = record.Turns
	s.state = StateReady
	return nil
}

// Submit sends a prompt. The user turn is appended optimistically and
// rolled back if the round trip fails; the resumption token is left
// unchanged on failure.
func (s *Session) Submit(ctx context.Context, prompt string) (string, error) {
	if s.state == StateGenerating {
		return "", goerr.New("a submission is already in flight", goerr.T(model.ErrTagInvalidInput))
	}
	if prompt == "" {
		return "", goerr.New("prompt is required", goerr.T(model.ErrTagInvalidInput))
	}

	s.turns = append(s.turns, model.Turn{Role: model.RoleUser, Text: prompt})
	s.state = StateGenerating

	out, err := s.api.Chat(ctx, prompt, s.recordID)
	if err != nil {
		s.turns = s.turns[:len(s.turns)-1]
		s.state = StateReady
		return "", goerr.Wrap(err, "chat submission failed")
	}

	s.turns = append(s.turns, model.Turn{Role: model.RoleModel, Text: out.Text})
	if s.recordID == "" {
		s.recordID = out.ChatID
	}
	s.state = StateReady

	return out.Text, nil
}

func (s *Session) State() State {
	return s.state
}

// RecordID returns the current resumption token, empty for a fresh session
func (s *Session) RecordID() model.RecordID {
	return s.recordID
}

// Turns returns a copy of the transcript
func (s *Session) Turns() []model.Turn {
	turns := make([]model.Turn, len(s.turns))
	copy(turns, s.turns)
	return turns
}
