package openai

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"postPilot/business/experiment"
	"postPilot/domain"
	"postPilot/pkg/ratelimit"

	openai "github.com/sashabaranov/go-openai"
)

type Config struct {
	APIKey      string
	Model       string
	Temperature float32
}

// JudgeEvaluator scores a content variant through a chat model acting as the
// given persona. Every variant/judge pairing is a single completion call.
type JudgeEvaluator struct {
	client  *openai.Client
	model   string
	temp    float32
	limiter *ratelimit.Bucket
}

var _ experiment.Evaluator = (*JudgeEvaluator)(nil)

func NewJudgeEvaluator(cfg Config, limiter *ratelimit.Bucket) *JudgeEvaluator {
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &JudgeEvaluator{
		client:  openai.NewClient(cfg.APIKey),
		model:   model,
		temp:    cfg.Temperature,
		limiter: limiter,
	}
}

const scoringInstructions = `You are reviewing a LinkedIn post draft. ` +
	`Judge it strictly from your persona's point of view. ` +
	`Reply with a single integer from 0 to 100: how likely you would be to ` +
	`engage positively with this post. No words, just the number.`

func (e *JudgeEvaluator) Evaluate(ctx context.Context, variantContent string, judge domain.Persona) (int, error) {
	if e.limiter != nil {
		if err := e.limiter.WaitForSlot(ctx); err != nil {
			return 0, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: e.temp,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: judge.Profile + "\n\n" + scoringInstructions,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: variantContent,
			},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("judge completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("judge returned no choices")
	}

	score, err := parseScore(resp.Choices[0].Message.Content)
	if err != nil {
		return 0, fmt.Errorf("judge %s: %w", judge.ID, err)
	}
	return score, nil
}

var scorePattern = regexp.MustCompile(`-?\d+`)

// parseScore pulls the first integer out of the model reply. Models
// occasionally wrap the number in prose despite the instructions.
func parseScore(reply string) (int, error) {
	match := scorePattern.FindString(strings.TrimSpace(reply))
	if match == "" {
		return 0, fmt.Errorf("no score in judge reply %q", reply)
	}
	score, err := strconv.Atoi(match)
	if err != nil {
		return 0, fmt.Errorf("unparsable score in judge reply %q", reply)
	}
	return score, nil
}
