package model

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures so the HTTP layer can map them to a
// status code without inspecting messages.
var (
	ErrTagUnauthorized = goerr.NewTag("unauthorized")
	ErrTagInvalidInput = goerr.NewTag("invalid_input")
	ErrTagNotFound     = goerr.NewTag("not_found")
	ErrTagUpstream     = goerr.NewTag("upstream")
	ErrTagStore        = goerr.NewTag("store")
)

func goerrInvalidKind(s string) error {
	return goerr.New("invalid kind", goerr.V("kind", s), goerr.T(ErrTagInvalidInput))
}
