// Package chat answers free-form questions about an analyzed repository
// through the Anthropic Messages API. The aggregated repository context is
// carried as the system prompt; the conversation itself is a linear,
// append-only transcript that resets when a new repository is loaded.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultModel is used when no model override is configured.
const DefaultModel = "claude-sonnet-4-20250514"

const maxTokens = 4096

// ErrNoContext is returned by Ask before any repository analysis has been
// loaded. Callers surface it as a warning, not a failure.
var ErrNoContext = errors.New("no repository analysis loaded yet")

// ErrMissingAPIKey halts startup of the chat variant.
var ErrMissingAPIKey = errors.New("ANTHROPIC_API_KEY is required for the chat command")

const systemPromptTemplate = `You are an expert analyst of GitHub code repositories.

%s

Your task is to analyze this repository and answer questions clearly,
concisely and grounded in the data above. Provide specific statistics,
concrete names and detailed analysis where possible. If you need
information that is not available in the context, say so explicitly.`

// Agent holds one chat session: the client, the current repository context
// and the running transcript.
type Agent struct {
	client      anthropic.Client
	model       anthropic.Model
	repoContext string
	history     []anthropic.MessageParam
}

// New creates an Agent. The API key is mandatory; model may be empty to
// use DefaultModel. Extra request options are for tests.
func New(apiKey, model string, opts ...option.RequestOption) (*Agent, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	clientOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Agent{
		client: anthropic.NewClient(clientOpts...),
		model:  anthropic.Model(model),
	}, nil
}

// SetContext installs the aggregated repository context and clears the
// transcript. A new repository means a new conversation.
func (a *Agent) SetContext(repoContext string) {
	a.repoContext = repoContext
	a.history = nil
}

// HasContext reports whether a repository analysis has been loaded.
func (a *Agent) HasContext() bool {
	return a.repoContext != ""
}

// Turns returns the number of entries in the transcript.
func (a *Agent) Turns() int {
	return len(a.history)
}

// Ask sends the question plus the running transcript and returns the
// model's answer. Both the question and the answer are appended to the
// transcript. A transport failure rolls the pending question back so a
// failed turn does not poison follow-ups.
func (a *Agent) Ask(ctx context.Context, question string) (string, error) {
	if !a.HasContext() {
		return "", ErrNoContext
	}

	a.history = append(a.history, anthropic.NewUserMessage(anthropic.NewTextBlock(question)))

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: fmt.Sprintf(systemPromptTemplate, a.repoContext)},
		},
		Messages: a.history,
	})
	if err != nil {
		a.history = a.history[:len(a.history)-1]
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	var answer strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			answer.WriteString(block.Text)
		}
	}

	a.history = append(a.history, message.ToParam())
	return answer.String(), nil
}
