package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/aiforge/pkg/utils/logging"
	"google.golang.org/genai"
)

const titleInstruction = `You are a title generation expert. Create a short, catchy, and descriptive title (max 50 characters) for the following user prompt. Respond with ONLY the title and nothing else.`

const maxTitleLength = 50

// generateTitle asks the model for a short label describing the prompt.
// Failure is non-fatal: it falls back to a deterministic synthetic title.
func (uc *UseCases) generateTitle(ctx context.Context, kind model.Kind, prompt string) string {
	contents := []*genai.Content{
		genai.NewContentFromText(titleInstruction+"\n\nPROMPT: \""+prompt+"\"", genai.RoleUser),
	}

	resp, err := uc.gemini.GenerateContent(ctx, contents, nil)
	if err != nil {
		logging.From(ctx).Warn("title generation failed, using fallback",
			"kind", kind, "error", err)
		return fallbackTitle(kind, time.Now())
	}

	title := normalizeTitle(resp.Text())
	if title == "" {
		return fallbackTitle(kind, time.Now())
	}
	return title
}

// normalizeTitle strips wrapping quotes and hard-truncates to 50
// characters with an ellipsis.
func normalizeTitle(raw string) string {
	title := strings.TrimSpace(raw)
	title = strings.Trim(title, `"'`)

	runes := []rune(title)
	if len(runes) > maxTitleLength {
		return string(runes[:maxTitleLength]) + "..."
	}
	return title
}

func fallbackTitle(kind model.Kind, now time.Time) string {
	return "New " + kind.Label() + " - " + now.Format("1/2/2006")
}
