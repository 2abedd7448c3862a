package explain

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/liyuwen/bankctl/internal/bank"
)

const llmSystemPrompt = `你是一位國小數學老師。針對給定的選擇題，用繁體中文寫出一段簡短的解析，
說明解題步驟並點出正確答案。兩句話以內，不要重複題目。`

// LLMGenerator produces explanations through an OpenAI-compatible
// endpoint. It is used only by the explain command with --llm; the
// repairer always uses the deterministic table.
type LLMGenerator struct {
	api   *openai.Client
	model string
}

// NewLLMGenerator creates a generator for the given endpoint.
func NewLLMGenerator(baseURL, apiKey, model string) *LLMGenerator {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &LLMGenerator{api: openai.NewClientWithConfig(config), model: model}
}

// Generate asks the model for an explanation of the record. Callers
// should fall back to Synthesize on error.
func (g *LLMGenerator) Generate(ctx context.Context, q bank.Question) (string, error) {
	user := fmt.Sprintf("題目：%s\n選項：%s\n正確答案：%s",
		q.Content, strings.Join(q.Options, " / "), q.CorrectOption())

	resp, err := g.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: llmSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("blank explanation from model")
	}
	return text, nil
}
