package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/gallop/internal/app"
	"github.com/abhisek/gallop/internal/chance"
	"github.com/abhisek/gallop/internal/commentary"
	"github.com/abhisek/gallop/internal/llm"
	"github.com/abhisek/gallop/internal/registry"
	"github.com/abhisek/gallop/internal/standings"
	"github.com/abhisek/gallop/internal/store"
	"github.com/abhisek/gallop/internal/tournament"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	flow, err := newFlow(cmd, st, chance.New())
	if err != nil {
		return err
	}
	opts := app.Options{
		Flow:      flow,
		EventRepo: st.EventRepo(),
	}

	if off, _ := cmd.Flags().GetBool("no-commentary"); !off {
		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
		switch {
		case err != nil:
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Race recaps will use the built-in commentary.")
		case provider != nil:
			recaps := commentary.NewService(provider, commentary.DefaultConfig())
			defer recaps.Cancel()
			opts.Recaps = recaps
			opts.Provider = provider.Name() + "/" + provider.ModelID()
		}
	}

	return app.Run(opts)
}

// newFlow builds a fresh pool, tournament and aggregator logging into st.
// src drives both the pool and the races.
func newFlow(cmd *cobra.Command, st *store.Store, src chance.Source) (*tournament.Flow, error) {
	cfg := tournament.DefaultConfig()
	speed, _ := cmd.Flags().GetFloat64("speed")
	switch {
	case speed < 0:
		return nil, fmt.Errorf("--speed must be positive, got %g", speed)
	case speed > 0:
		cfg.Race.SpeedMultiplier = speed
	}

	reg := registry.New(registry.DefaultConfig(), src)
	return tournament.NewFlow(
		tournament.New(cfg, reg),
		standings.New(reg),
		tournament.FlowOptions{
			Source:    src,
			Events:    st.EventRepo(),
			Snapshots: st.SnapshotRepo(),
		},
	), nil
}
