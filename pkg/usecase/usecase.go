package usecase

import (
	"github.com/m-mizutani/aiforge/pkg/adapter"
	"github.com/m-mizutani/aiforge/pkg/repository"
)

// UseCases bundles the generation gateway and history operations.
// Each method is stateless; all durable state lives in the repository.
type UseCases struct {
	repo   repository.Repository
	gemini adapter.Gemini
}

func New(repo repository.Repository, gemini adapter.Gemini) *UseCases {
	return &UseCases{
		repo:   repo,
		gemini: gemini,
	}
}
