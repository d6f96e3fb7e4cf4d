package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Songmu/retry"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"
)

type AIRepository struct {
	client *openai.Client
	model  string
}

// NewAIRepository returns nil without an error when neither OPENAI_API_KEY
// nor AZURE_OPENAI_KEY is set. A nil repository means drafting is disabled.
func NewAIRepository() (*AIRepository, error) {
	if os.Getenv("OPENAI_API_KEY") == "" && os.Getenv("AZURE_OPENAI_KEY") == "" {
		return nil, nil
	}

	var model = "gpt-4"
	if os.Getenv("OPENAI_MODEL") != "" {
		model = os.Getenv("OPENAI_MODEL")
	}
	client, err := newOpenAIClient()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return &AIRepository{
		client: client,
		model:  model,
	}, nil
}

func newOpenAIClient() (*openai.Client, error) {
	if os.Getenv("AZURE_OPENAI_ENDPOINT") != "" {
		return newAzureClient()
	}

	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	options := []option.RequestOption{
		option.WithAPIKey(key),
	}

	c := openai.NewClient(options...)
	return &c, nil
}

func newAzureClient() (*openai.Client, error) {
	key := os.Getenv("AZURE_OPENAI_KEY")
	if key == "" {
		return nil, fmt.Errorf("AZURE_OPENAI_KEY is not set")
	}
	var azureOpenAIEndpoint = os.Getenv("AZURE_OPENAI_ENDPOINT")

	var azureOpenAIAPIVersion = "2025-01-01-preview"

	if os.Getenv("AZURE_OPENAI_API_VERSION") != "" {
		azureOpenAIAPIVersion = os.Getenv("AZURE_OPENAI_API_VERSION")
	}

	c := openai.NewClient(
		azure.WithEndpoint(azureOpenAIEndpoint, azureOpenAIAPIVersion),
		azure.WithAPIKey(key),
	)
	return &c, nil
}

func (h *AIRepository) DraftImpact(incidentName, duration string) (string, error) {
	prompt := fmt.Sprintf(`## Request
Draft the impact section of an incident post-mortem.
You are given the incident name and how long the incident lasted.

## Format
At most 200 characters. Describe which services or features were affected,
roughly how many users were hit, and for how long.
The text is embedded into a template as-is, so return only the impact
description without headings or bullet points.

## Incident name
%s

## Duration
%s`, incidentName, duration)

	return h.callOpenAIWithRetry(prompt)
}

func (h *AIRepository) DraftRootCause(incidentName, impact string) (string, error) {
	prompt := fmt.Sprintf(`## Request
Draft the root cause section of an incident post-mortem.
You are given the incident name and a description of its impact.

## Format
At most 300 characters, covering the technical cause and any process gap
that let it happen. If the given information is too thin to name a cause,
return "Under investigation".
The text is embedded into a template as-is, so return only the root cause
analysis without headings or bullet points.

## Incident name
%s

## Impact
%s`, incidentName, impact)

	return h.callOpenAIWithRetry(prompt)
}

func (h *AIRepository) DraftActionItems(incidentName, rootCause string) ([]string, error) {
	prompt := fmt.Sprintf(`## Request
Propose follow-up action items for an incident post-mortem.
You are given the incident name and its root cause.

## Format
Return at most 5 items, one per line, each line starting with "- ".
Each item is a single concrete task. Do not assign owners or due dates.

## Incident name
%s

## Root cause
%s`, incidentName, rootCause)

	answer, err := h.callOpenAIWithRetry(prompt)
	if err != nil {
		return nil, err
	}

	var items []string
	for _, line := range strings.Split(answer, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), "- ")
		if !ok {
			continue
		}
		if rest = strings.TrimSpace(rest); rest != "" {
			items = append(items, rest)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no action items in response")
	}
	return items, nil
}

func (h *AIRepository) callOpenAIWithRetry(prompt string) (string, error) {
	var result string
	err := retry.Retry(3, time.Second*3, func() error {
		resp, err := h.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Model: h.model,
		})
		if err != nil {
			return err
		}

		if len(resp.Choices) == 0 {
			return fmt.Errorf("no response from OpenAI")
		}

		result = resp.Choices[0].Message.Content
		return nil
	})

	return result, err
}
