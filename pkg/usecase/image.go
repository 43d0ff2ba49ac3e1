package usecase

import (
	"context"
	"encoding/base64"
	"regexp"
	"time"

	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

var dataURLPattern = regexp.MustCompile(`^data:(image/[a-zA-Z0-9.+-]+);base64,(.+)$`)

// parseImageDataURL decodes a data:image/...;base64,... payload into
// raw bytes and a MIME type.
func parseImageDataURL(url string) (data []byte, mimeType string, err error) {
	match := dataURLPattern.FindStringSubmatch(url)
	if match == nil {
		return nil, "", goerr.New("invalid image data URL",
			goerr.T(model.ErrTagInvalidInput))
	}

	data, err = base64.StdEncoding.DecodeString(match[2])
	if err != nil {
		return nil, "", goerr.Wrap(err, "image payload is not valid base64",
			goerr.T(model.ErrTagInvalidInput))
	}

	return data, match[1], nil
}

type AnalyzeImageOutput struct {
	Text     string
	RecordID model.RecordID
}

// AnalyzeImage sends the prompt together with an inline image to the
// model and persists the analysis as a new record. The image must be a
// base64 data URL; validation happens before any provider call.
func (uc *UseCases) AnalyzeImage(ctx context.Context, ownerID, prompt, image string) (*AnalyzeImageOutput, error) {
	if prompt == "" || image == "" {
		return nil, goerr.New("image and prompt are required", goerr.T(model.ErrTagInvalidInput))
	}

	data, mimeType, err := parseImageDataURL(image)
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}

	resp, err := uc.gemini.GenerateContent(ctx, contents, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to analyze image")
	}
	text := resp.Text()

	now := time.Now()
	record := &model.Record{
		ID:        model.NewRecordID(),
		OwnerID:   ownerID,
		Kind:      model.KindImage,
		Title:     uc.generateTitle(ctx, model.KindImage, prompt),
		CreatedAt: now,
		UpdatedAt: now,
		Prompt:    prompt,
		Result:    text,
	}
	if err := uc.repo.PutRecord(ctx, record); err != nil {
		return nil, goerr.Wrap(err, "failed to create image record")
	}

	return &AnalyzeImageOutput{Text: text, RecordID: record.ID}, nil
}
