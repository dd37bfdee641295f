package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abhisek/gallop/internal/chance"
	"github.com/abhisek/gallop/internal/commentary"
	"github.com/abhisek/gallop/internal/llm"
	"github.com/abhisek/gallop/internal/race"
	"github.com/abhisek/gallop/internal/tournament"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a full tournament without the TUI and print the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		stepMs, _ := cmd.Flags().GetFloat64("step")
		if stepMs <= 0 {
			return fmt.Errorf("--step must be positive, got %g", stepMs)
		}
		step := time.Duration(stepMs * float64(time.Millisecond))

		src := chance.New()
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint64("seed")
			src = chance.NewSeeded(seed)
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		flow, err := newFlow(cmd, st, src)
		if err != nil {
			return err
		}

		var opts simulateOptions
		if on, _ := cmd.Flags().GetBool("commentary"); on {
			opts.commentary = true
			provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
			if err != nil {
				fmt.Fprintln(os.Stderr, "warning: LLM provider not configured:", err)
			}
			if provider != nil {
				opts.recaps = commentary.NewService(provider, commentary.DefaultConfig())
			}
		}

		return simulate(ctx, flow, step, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

type simulateOptions struct {
	commentary bool

	// recaps is nil when no provider is configured; the built-in recap
	// is printed instead.
	recaps *commentary.Service
}

// simulate schedules and runs every round of a tournament, writing each
// round's placings and then the final standings to out.
func simulate(ctx context.Context, flow *tournament.Flow, step time.Duration, opts simulateOptions, out, warn io.Writer) error {
	t := flow.Tournament()
	if err := flow.NewSchedule(ctx); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	fmt.Fprintf(out, "Tournament %s\n", t.ID())

	for {
		round, _ := t.CurrentRound()
		if err := flow.Start(ctx); err != nil {
			return fmt.Errorf("start round %d: %w", round.Number, err)
		}
		results, err := flow.RunToCompletion(ctx, step)
		if err != nil {
			return fmt.Errorf("round %d: %w", round.Number, err)
		}

		fmt.Fprintln(out)
		printRound(out, round, results, t.Pool())

		if opts.commentary {
			in := commentary.NewInput(round.Number, round.Distance, results, t.Pool(), flow.Standings(), t.IsAllCompleted())
			printRecap(ctx, out, warn, opts.recaps, in)
		}

		if t.IsAllCompleted() {
			break
		}
		if err := flow.Next(ctx); err != nil {
			return fmt.Errorf("advance from round %d: %w", round.Number, err)
		}
	}

	fmt.Fprintln(out)
	printStandings(out, flow)
	return nil
}

func printRound(out io.Writer, round tournament.Round, results []race.Result, pool tournament.Pool) {
	fmt.Fprintf(out, "Round %d  %dm\n", round.Number, round.Distance)
	fmt.Fprintln(out, strings.Repeat("─", 48))
	fmt.Fprintf(out, "%-4s  %-20s  %9s  %6s\n", "Pos", "Competitor", "Time", "Pts")
	for _, r := range results {
		name := fmt.Sprintf("#%d", r.CompetitorID)
		if c, err := pool.ByID(r.CompetitorID); err == nil {
			name = c.Name
		}
		fmt.Fprintf(out, "%-4d  %-20s  %8.2fs  %6d\n", r.Position, truncate(name, 20), r.CompletionMs/1000, r.Points)
	}
}

func printRecap(ctx context.Context, out, warn io.Writer, recaps *commentary.Service, in commentary.Input) {
	var rec commentary.Recap
	if recaps == nil {
		rec = commentary.Fallback(in)
	} else {
		var err error
		rec, err = recaps.Recap(ctx, in)
		if err != nil {
			fmt.Fprintf(warn, "warning: commentary for round %d: %v\n", in.Round, err)
		}
	}
	fmt.Fprintf(out, "\n  %s\n", rec.Headline)
	for _, line := range rec.Lines {
		fmt.Fprintf(out, "  %s\n", line)
	}
}

func printStandings(out io.Writer, flow *tournament.Flow) {
	fmt.Fprintln(out, "Final Standings")
	fmt.Fprintln(out, strings.Repeat("─", 60))
	fmt.Fprintf(out, "%-4s  %-20s  %6s  %5s  %5s  %6s\n", "#", "Competitor", "Pts", "Races", "Best", "Avg")
	for i, r := range flow.Standings().Sorted() {
		fmt.Fprintf(out, "%-4d  %-20s  %6d  %5d  %5d  %6.2f\n",
			i+1, truncate(r.Name, 20), r.TotalPoints, r.RacesParticipated, r.BestPosition, r.AveragePosition)
	}
	if champ, ok := flow.Standings().Champion(); ok {
		fmt.Fprintf(out, "\nChampion: %s (%d pts)\n", champ.Name, champ.TotalPoints)
	}
}

func init() {
	simulateCmd.Flags().Float64("step", 1000.0/60, "Simulated milliseconds per tick")
	simulateCmd.Flags().Uint64("seed", 0, "Seed for a reproducible tournament")
	simulateCmd.Flags().Bool("commentary", false, "Print a recap after each round (uses the configured LLM when available)")
}
