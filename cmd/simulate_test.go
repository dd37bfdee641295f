package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gallop/internal/chance"
	"github.com/abhisek/gallop/internal/commentary"
	"github.com/abhisek/gallop/internal/llm"
	"github.com/abhisek/gallop/internal/registry"
	"github.com/abhisek/gallop/internal/standings"
	"github.com/abhisek/gallop/internal/store"
	"github.com/abhisek/gallop/internal/tournament"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testFlow(st *store.Store, seed uint64) *tournament.Flow {
	src := chance.NewSeeded(seed)
	reg := registry.New(registry.DefaultConfig(), src)
	return tournament.NewFlow(
		tournament.New(tournament.DefaultConfig(), reg),
		standings.New(reg),
		tournament.FlowOptions{Source: src, Events: st.EventRepo(), Snapshots: st.SnapshotRepo()},
	)
}

func TestSimulateRunsEveryRound(t *testing.T) {
	st := openTestStore(t)
	flow := testFlow(st, 3)

	var out, warn bytes.Buffer
	err := simulate(context.Background(), flow, 50*time.Millisecond, simulateOptions{}, &out, &warn)
	require.NoError(t, err)

	text := out.String()
	for _, d := range tournament.DefaultConfig().Distances {
		assert.Contains(t, text, fmt.Sprintf("%dm", d))
	}
	assert.Contains(t, text, "Final Standings")
	assert.Contains(t, text, "Champion: ")
	assert.Empty(t, warn.String())
	assert.True(t, flow.Tournament().IsAllCompleted())

	sums, err := st.EventRepo().TournamentSummaries(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.True(t, sums[0].Finished)
	assert.Equal(t, 6, sums[0].RoundsCompleted)
}

func TestSimulateBuiltInCommentary(t *testing.T) {
	flow := testFlow(openTestStore(t), 4)

	var out, warn bytes.Buffer
	err := simulate(context.Background(), flow, 50*time.Millisecond, simulateOptions{commentary: true}, &out, &warn)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "takes round 1")
	assert.Contains(t, out.String(), "is champion on")
}

func TestSimulateCommentaryFailureWarns(t *testing.T) {
	flow := testFlow(openTestStore(t), 5)
	provider := llm.NewMockProvider(llm.MockResponse{Err: fmt.Errorf("boom")})
	opts := simulateOptions{
		commentary: true,
		recaps:     commentary.NewService(provider, commentary.DefaultConfig()),
	}

	var out, warn bytes.Buffer
	err := simulate(context.Background(), flow, 50*time.Millisecond, opts, &out, &warn)
	require.NoError(t, err)

	assert.Contains(t, warn.String(), "warning: commentary for round 1")
	assert.Contains(t, out.String(), "takes round 1", "falls back to the built-in recap")
}

func TestSimulateCancelled(t *testing.T) {
	flow := testFlow(openTestStore(t), 6)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, warn bytes.Buffer
	err := simulate(ctx, flow, 50*time.Millisecond, simulateOptions{}, &out, &warn)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHistoryPrintsTournaments(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, printTournaments(ctx, &out, st.EventRepo(), 10))
	assert.Contains(t, out.String(), "No tournaments recorded yet.")

	flow := testFlow(st, 7)
	require.NoError(t, simulate(ctx, flow, 50*time.Millisecond, simulateOptions{}, &bytes.Buffer{}, &bytes.Buffer{}))
	id := flow.Tournament().ID()

	out.Reset()
	require.NoError(t, printTournaments(ctx, &out, st.EventRepo(), 10))
	assert.Contains(t, out.String(), id[:8])
	assert.Contains(t, out.String(), "champion ")

	out.Reset()
	require.NoError(t, printTournamentResults(ctx, &out, st.EventRepo(), st.SnapshotRepo(), id[:8]))
	assert.Contains(t, out.String(), "Round 6  2200m")
	assert.Equal(t, 6, strings.Count(out.String(), "\nRound "))
	require.Contains(t, out.String(), "\nFinal Standings\n")
	champ := flow.Standings().Sorted()[0]
	final := out.String()[strings.Index(out.String(), "Final Standings"):]
	assert.Contains(t, final, fmt.Sprintf("1     %-20s", truncate(champ.Name, 20)))

	err := printTournamentResults(ctx, &out, st.EventRepo(), st.SnapshotRepo(), "zzzz")
	assert.ErrorContains(t, err, "not found")
}

func TestHistoryUnfinishedHasNoStandings(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	flow := testFlow(st, 9)
	require.NoError(t, flow.NewSchedule(ctx))
	require.NoError(t, flow.Start(ctx))
	_, err := flow.RunToCompletion(ctx, 50*time.Millisecond)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printTournamentResults(ctx, &out, st.EventRepo(), st.SnapshotRepo(), flow.Tournament().ID()))
	assert.Contains(t, out.String(), "unfinished")
	assert.NotContains(t, out.String(), "Final Standings")
}
