package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

const codeInstruction = "You are an expert code generator. You must only respond with the complete, raw code requested by the user, enclosed in a single markdown code block (e.g., ```language\n...code...\n```). Do not add any introductory text, explanations, or conclusions. Only provide the code."

type GenerateCodeOutput struct {
	Code     string
	RecordID model.RecordID
}

// GenerateCode produces code for the prompt and persists it as a new
// record. The output is constrained to a single fenced block by the
// system instruction; extraction of the fence is a rendering concern.
func (uc *UseCases) GenerateCode(ctx context.Context, ownerID, prompt string) (*GenerateCodeOutput, error) {
	if prompt == "" {
		return nil, goerr.New("prompt is required", goerr.T(model.ErrTagInvalidInput))
	}

	contents := []*genai.Content{
		genai.NewContentFromText(codeInstruction+"\n\nUser Request: "+prompt, genai.RoleUser),
	}

	resp, err := uc.gemini.GenerateContent(ctx, contents, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate code")
	}
	code := resp.Text()

	now := time.Now()
	record := &model.Record{
		ID:        model.NewRecordID(),
		OwnerID:   ownerID,
		Kind:      model.KindCode,
		Title:     uc.generateTitle(ctx, model.KindCode, prompt),
		CreatedAt: now,
		UpdatedAt: now,
		Prompt:    prompt,
		Result:    code,
	}
	if err := uc.repo.PutRecord(ctx, record); err != nil {
		return nil, goerr.Wrap(err, "failed to create code record")
	}

	return &GenerateCodeOutput{Code: code, RecordID: record.ID}, nil
}
