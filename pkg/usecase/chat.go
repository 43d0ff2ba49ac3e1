package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

// ChatReplyInput contains parameters for one chat submission. An empty
// RecordID starts a new thread; otherwise the reply is appended to the
// existing record.
type ChatReplyInput struct {
	OwnerID  string
	Prompt   string
	RecordID model.RecordID
}

type ChatReplyOutput struct {
	Text     string
	RecordID model.RecordID
}

// ChatReply generates a model reply and persists the resulting
// user/model turn pair: a new record for a fresh thread, an atomic
// append for a continued one.
func (uc *UseCases) ChatReply(ctx context.Context, input ChatReplyInput) (*ChatReplyOutput, error) {
	if input.Prompt == "" {
		return nil, goerr.New("prompt is required", goerr.T(model.ErrTagInvalidInput))
	}

	var record *model.Record
	if input.RecordID != "" {
		existing, err := uc.repo.GetRecord(ctx, input.OwnerID, model.KindChat, input.RecordID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load chat record",
				goerr.V("record_id", input.RecordID))
		}
		record = existing
	}

	contents := make([]*genai.Content, 0, 1)
	if record != nil {
		for _, turn := range record.Turns {
			var role genai.Role = genai.RoleUser
			if turn.Role == model.RoleModel {
				role = genai.RoleModel
			}
			contents = append(contents, genai.NewContentFromText(turn.Text, role))
		}
	}
	contents = append(contents, genai.NewContentFromText(input.Prompt, genai.RoleUser))

	resp, err := uc.gemini.GenerateContent(ctx, contents, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate chat reply")
	}
	text := resp.Text()

	userTurn := model.Turn{Role: model.RoleUser, Text: input.Prompt}
	modelTurn := model.Turn{Role: model.RoleModel, Text: text}

	if record != nil {
		if err := uc.repo.AppendChatTurns(ctx, input.OwnerID, record.ID, userTurn, modelTurn); err != nil {
			return nil, goerr.Wrap(err, "failed to append chat turns",
				goerr.V("record_id", record.ID))
		}
		return &ChatReplyOutput{Text: text, RecordID: record.ID}, nil
	}

	now := time.Now()
	record = &model.Record{
		ID:        model.NewRecordID(),
		OwnerID:   input.OwnerID,
		Kind:      model.KindChat,
		Title:     uc.generateTitle(ctx, model.KindChat, input.Prompt),
		CreatedAt: now,
		UpdatedAt: now,
		Turns:     []model.Turn{userTurn, modelTurn},
	}
	if err := uc.repo.PutRecord(ctx, record); err != nil {
		return nil, goerr.Wrap(err, "failed to create chat record")
	}

	return &ChatReplyOutput{Text: text, RecordID: record.ID}, nil
}
