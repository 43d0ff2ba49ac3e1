package usecase

import (
	"context"

	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

const (
	optimizeOpenAI = `You are an expert prompt engineer specializing in OpenAI's GPT-4.
The user will provide a simple prompt or goal. Your task is to build a new,
enhanced prompt that achieves this goal, following GPT-4 best practices.
- Start with a "SYSTEM" role definition.
- Clearly define the "USER" instruction.
- Add specific constraints and a desired output format.
- Return ONLY the new, complete, enhanced prompt.`

	optimizeClaude = `You are an expert prompt engineer specializing in Anthropic's Claude 3.
The user will provide a simple prompt or goal. Your task is to build a new,
enhanced prompt that achieves this goal, using Claude's preferred XML tag format.
- Use tags like <instructions>, <context>, and <user_request>.
- Place the user's core request at the end.
- Return ONLY the new, complete, enhanced prompt formatted with XML tags.`

	optimizeGemini = `You are an expert prompt engineer specializing in Google's Gemini models.
The user will provide a simple prompt or goal. Your task is to build a new,
enhanced prompt that achieves this goal, following Gemini's best practices.
- Be clear, concise, and specific.
- Define a clear persona, task, context, and any constraints.
- Provide examples of the desired output format if helpful.
- Return ONLY the new, complete, enhanced prompt.`

	optimizeGeneric = `You are a world-class prompt engineer.
The user will provide a simple prompt or goal. Your task is to build a new,
enhanced prompt that achieves this goal, following general best practices.
- Assign a clear role and persona.
- Provide specific context and constraints.
- Give step-by-step instructions.
- Define a clear output format.
- Return ONLY the new, complete, enhanced prompt.`
)

// OptimizerInstruction selects the instruction template for a target
// model style. Unrecognized styles fall back to the generic template.
func OptimizerInstruction(modelType string) string {
	switch modelType {
	case "openai":
		return optimizeOpenAI
	case "claude":
		return optimizeClaude
	case "gemini":
		return optimizeGemini
	default:
		return optimizeGeneric
	}
}

// OptimizePrompt rewrites a raw prompt for the given target model
// style. Stateless: no record is persisted.
func (uc *UseCases) OptimizePrompt(ctx context.Context, ownerID, prompt, modelType string) (string, error) {
	if prompt == "" {
		return "", goerr.New("prompt is required", goerr.T(model.ErrTagInvalidInput))
	}

	instruction := OptimizerInstruction(modelType)
	contents := []*genai.Content{
		genai.NewContentFromText(instruction+"\n\nSIMPLE PROMPT: \""+prompt+"\"", genai.RoleUser),
	}

	resp, err := uc.gemini.GenerateContent(ctx, contents, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to optimize prompt")
	}

	return resp.Text(), nil
}
