package usecase

import (
	"context"

	"inkscan/internal/trigger"
	"inkscan/pkg/llmprovider"
)

type llmExecutor struct {
	llm *llmprovider.Manager
}

// NewLLMExecutor adapts the provider manager to the dispatcher's
// single-prompt Executor contract.
func NewLLMExecutor(llm *llmprovider.Manager) trigger.Executor {
	return &llmExecutor{llm: llm}
}

func (e *llmExecutor) Execute(ctx context.Context, prompt string) (string, error) {
	resp, err := e.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{
				Role:  "user",
				Parts: []llmprovider.Part{{Text: prompt}},
			},
		},
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
