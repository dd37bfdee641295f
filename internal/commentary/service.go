package commentary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/gallop/internal/llm"
)

// Service writes round recaps. A nil provider always uses the template.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu      sync.Mutex
	pending *Recap
	ready   bool
	seq     int
}

// NewService creates a commentary service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Enabled reports whether recaps come from a model.
func (s *Service) Enabled() bool { return s.provider != nil }

// Recap returns commentary for in. The template is used when no provider
// is configured or the provider fails; the error is returned alongside so
// callers can warn about it.
func (s *Service) Recap(ctx context.Context, in Input) (Recap, error) {
	if s.provider == nil {
		return Fallback(in), nil
	}
	r, err := s.generate(ctx, in)
	if err != nil {
		return Fallback(in), err
	}
	return r, nil
}

// RequestRecap starts generation in the background. A newer request
// supersedes any result still in flight.
func (s *Service) RequestRecap(ctx context.Context, in Input) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.ready = false
	s.mu.Unlock()

	go func() {
		r, err := s.Recap(ctx, in)
		r.Err = err
		s.mu.Lock()
		defer s.mu.Unlock()
		if seq != s.seq {
			return
		}
		s.pending = &r
		s.ready = true
	}()
}

// ConsumeRecap returns the finished recap, or (nil, false) while
// generation is still running. The slot is cleared on return.
func (s *Service) ConsumeRecap() (*Recap, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false
	}
	r := s.pending
	s.pending, s.ready = nil, false
	return r, true
}

// Cancel drops any pending or in-flight recap.
func (s *Service) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.pending, s.ready = nil, false
}

type recapOutput struct {
	Headline string   `json:"headline"`
	Lines    []string `json:"lines"`
}

func (s *Service) generate(ctx context.Context, in Input) (Recap, error) {
	ctx = llm.WithPurpose(ctx, "commentary")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(in)}},
		Schema:      RecapSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return Recap{}, fmt.Errorf("commentary generation: %w", err)
	}

	var out recapOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Recap{}, fmt.Errorf("parse commentary response: %w", err)
	}
	if strings.TrimSpace(out.Headline) == "" {
		return Recap{}, fmt.Errorf("commentary response has an empty headline")
	}
	return Recap{Headline: out.Headline, Lines: out.Lines, Generated: true}, nil
}
