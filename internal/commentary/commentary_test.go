package commentary

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/gallop/internal/chance"
	"github.com/abhisek/gallop/internal/llm"
	"github.com/abhisek/gallop/internal/race"
	"github.com/abhisek/gallop/internal/registry"
	"github.com/abhisek/gallop/internal/standings"
)

func sampleInput() Input {
	return Input{
		Round:    1,
		Distance: 1200,
		Placings: []Placing{
			{Name: "Comet", Position: 1, CompletionMs: 61234, Points: 10},
			{Name: "Blaze", Position: 2, CompletionMs: 61654, Points: 8},
			{Name: "Dusk", Position: 3, CompletionMs: 62000, Points: 6},
			{Name: "Ember", Position: 4, CompletionMs: 62500, Points: 4},
		},
		Leader:       "Comet",
		LeaderPoints: 10,
	}
}

func TestFallback(t *testing.T) {
	r := Fallback(sampleInput())

	if r.Headline != "Comet takes round 1 over 1200m" {
		t.Errorf("headline = %q", r.Headline)
	}
	want := []string{
		"Comet crossed in 61.23s, 0.42s clear of Blaze.",
		"Winner banks 10 points; behind: Blaze 8, Dusk 6.",
		"Comet leads on 10 points.",
	}
	if len(r.Lines) != len(want) {
		t.Fatalf("lines = %q", r.Lines)
	}
	for i := range want {
		if r.Lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, r.Lines[i], want[i])
		}
	}
	if r.Generated {
		t.Error("template recap marked as generated")
	}
}

func TestFallbackEdges(t *testing.T) {
	if r := Fallback(Input{Round: 4}); r.Headline != "Round 4: no finishers" || len(r.Lines) != 0 {
		t.Errorf("empty = %+v", r)
	}

	solo := Fallback(Input{Round: 2, Distance: 1400, Placings: []Placing{{Name: "Comet", Position: 1, CompletionMs: 70000}}})
	if len(solo.Lines) != 1 || solo.Lines[0] != "Comet crossed in 70.00s." {
		t.Errorf("solo = %q", solo.Lines)
	}

	in := sampleInput()
	in.Final = true
	final := Fallback(in)
	if last := final.Lines[len(final.Lines)-1]; last != "Comet is champion on 10 points." {
		t.Errorf("final line = %q", last)
	}
}

func TestRecapWithoutProvider(t *testing.T) {
	svc := NewService(nil, DefaultConfig())
	if svc.Enabled() {
		t.Error("service without provider reports enabled")
	}
	r, err := svc.Recap(context.Background(), sampleInput())
	if err != nil {
		t.Fatal(err)
	}
	if r.Headline != Fallback(sampleInput()).Headline {
		t.Errorf("headline = %q", r.Headline)
	}
}

func TestRecapFromProvider(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"headline":"Comet storms home","lines":["Comet wins by a length.","Blaze second."]}`),
	})
	svc := NewService(mock, DefaultConfig())

	r, err := svc.Recap(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Generated || r.Headline != "Comet storms home" || len(r.Lines) != 2 {
		t.Errorf("recap = %+v", r)
	}

	req := mock.Calls[0]
	if req.Schema != RecapSchema {
		t.Error("recap schema not requested")
	}
	for _, want := range []string{"Round 1, 1200m", "1. Comet  61.23s  +10 pts", "Overall leader: Comet on 10 points"} {
		if !strings.Contains(req.Messages[0].Content, want) {
			t.Errorf("prompt missing %q:\n%s", want, req.Messages[0].Content)
		}
	}
}

func TestRecapFallsBackOnError(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider down", llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}},
		{"schema mismatch", llm.MockResponse{Content: json.RawMessage(`{"headline":"x"}`)}},
		{"blank headline", llm.MockResponse{Content: json.RawMessage(`{"headline":"  ","lines":["a"]}`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(llm.NewMockProvider(tt.resp), DefaultConfig())
			r, err := svc.Recap(context.Background(), sampleInput())
			if err == nil {
				t.Fatal("expected the provider error to be reported")
			}
			if r.Generated || r.Headline != "Comet takes round 1 over 1200m" {
				t.Errorf("recap = %+v, want template", r)
			}
		})
	}
}

func waitRecap(t *testing.T, svc *Service) *Recap {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if r, ok := svc.ConsumeRecap(); ok {
			return r
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("recap never arrived")
	return nil
}

func TestRequestRecapAsync(t *testing.T) {
	svc := NewService(llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")}), DefaultConfig())
	svc.RequestRecap(t.Context(), sampleInput())

	r := waitRecap(t, svc)
	if r.Err == nil || r.Generated {
		t.Errorf("recap = %+v, want template with error", r)
	}
	if _, ok := svc.ConsumeRecap(); ok {
		t.Error("slot not cleared after consume")
	}
}

func TestCancelDropsInFlightRecap(t *testing.T) {
	svc := NewService(nil, DefaultConfig())
	svc.RequestRecap(t.Context(), sampleInput())
	svc.Cancel()
	time.Sleep(20 * time.Millisecond)
	if _, ok := svc.ConsumeRecap(); ok {
		t.Error("cancelled recap was delivered")
	}
}

func TestNewInput(t *testing.T) {
	reg := registry.New(registry.DefaultConfig(), chance.NewSeeded(7))
	reg.Generate()
	agg := standings.New(reg)

	results := []race.Result{
		{RoundNumber: 3, CompetitorID: 4, Position: 1, CompletionMs: 60000, Points: 10},
		{RoundNumber: 3, CompetitorID: 9, Position: 2, CompletionMs: 60500, Points: 8},
	}
	agg.Record(results)

	in := NewInput(3, 1600, results, reg, agg, false)
	winner, _ := reg.ByID(4)
	if len(in.Placings) != 2 || in.Placings[0].Name != winner.Name {
		t.Fatalf("placings = %+v", in.Placings)
	}
	if in.Leader != winner.Name || in.LeaderPoints != 10 {
		t.Errorf("leader = %s/%d", in.Leader, in.LeaderPoints)
	}

	unknown := NewInput(1, 1200, []race.Result{{CompetitorID: 99, Position: 1}}, reg, nil, false)
	if unknown.Placings[0].Name != "#99" || unknown.Leader != "" {
		t.Errorf("unknown = %+v", unknown)
	}
}
