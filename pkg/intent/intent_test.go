package intent_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakhigbe/globuschat/internal/models"
	"github.com/oakhigbe/globuschat/internal/types"
	"github.com/oakhigbe/globuschat/pkg/intent"
)

// stubCompletion records the last request and replies with a canned string.
type stubCompletion struct {
	reply string
	err   error
	calls int
	last  types.CompletionRequest
}

func (s *stubCompletion) Complete(ctx context.Context, req types.CompletionRequest) (string, error) {
	s.calls++
	s.last = req
	return s.reply, s.err
}

func TestClassify_ParsesLabels(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  models.Intent
	}{
		{"exact label", "greeting", models.IntentGreeting},
		{"mixed case with punctuation", `"Card_Block_Request."`, models.IntentCardBlockRequest},
		{"label embedded in prose", "The intent is account_information here", models.IntentAccountInformation},
		{"unknown label falls back", "banana", models.DefaultIntent},
		{"empty reply falls back", "", models.DefaultIntent},
		{"whitespace only falls back", "   \n", models.DefaultIntent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &stubCompletion{reply: tt.reply}
			r := intent.NewResolver(llm, 0)

			got := r.Classify(context.Background(), "please help")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_CompletionFailureDegradesToDefault(t *testing.T) {
	llm := &stubCompletion{err: errors.New("connection refused")}
	r := intent.NewResolver(llm, 0)

	got := r.Classify(context.Background(), "hi there")
	assert.Equal(t, models.DefaultIntent, got)
	assert.Equal(t, 1, llm.calls)
}

func TestClassify_RequestShape(t *testing.T) {
	llm := &stubCompletion{reply: "greeting"}
	r := intent.NewResolver(llm, 0)

	r.Classify(context.Background(), "good morning")

	assert.Contains(t, llm.last.Prompt, "good morning")
	assert.Contains(t, llm.last.Prompt, "Intent:")
	assert.Equal(t, 20, llm.last.MaxTokens)
	assert.Zero(t, llm.last.Temperature)
	assert.Contains(t, llm.last.Stop, "\n")
	assert.Contains(t, llm.last.Stop, "<|end|>")
}
