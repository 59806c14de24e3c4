package testutil

import (
	"context"
	"sync"

	"coursehub-be/pkg/llm"
)

// StubLLM returns a canned reply and records what it was sent.
type StubLLM struct {
	mu       sync.Mutex
	Reply    string
	Err      error
	Calls    [][]llm.Message
	LastOpts *llm.Options
}

func (s *StubLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, history)
	s.LastOpts = llm.Apply(opts...)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Reply, nil
}

func (s *StubLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
