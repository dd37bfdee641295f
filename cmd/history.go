package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/gallop/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [tournament-id]",
	Short: "List recent tournaments, or show every placing of one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			return printTournaments(ctx, out, repo, limit)
		}
		return printTournamentResults(ctx, out, repo, s.SnapshotRepo(), args[0])
	},
}

func printTournaments(ctx context.Context, out io.Writer, repo store.EventRepo, limit int) error {
	sums, err := repo.TournamentSummaries(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return fmt.Errorf("query tournaments: %w", err)
	}
	if len(sums) == 0 {
		fmt.Fprintln(out, "No tournaments recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "%-8s  %-16s  %-16s  %6s  %s\n", "ID", "Started", "Updated", "Rounds", "Outcome")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	for _, t := range sums {
		fmt.Fprintf(out, "%-8s  %-16s  %-16s  %6d  %s\n",
			truncate(t.TournamentID, 8),
			t.StartedAt.Local().Format("2006-01-02 15:04"),
			t.UpdatedAt.Local().Format("2006-01-02 15:04"),
			t.RoundsCompleted,
			tournamentOutcome(t),
		)
	}
	return nil
}

func printTournamentResults(ctx context.Context, out io.Writer, repo store.EventRepo, snaps store.SnapshotRepo, prefix string) error {
	sums, err := repo.TournamentSummaries(ctx, store.QueryOpts{})
	if err != nil {
		return fmt.Errorf("query tournaments: %w", err)
	}
	var match *store.TournamentSummaryRecord
	for i := range sums {
		if !strings.HasPrefix(sums[i].TournamentID, prefix) {
			continue
		}
		if match != nil {
			return fmt.Errorf("tournament id %q is ambiguous", prefix)
		}
		match = &sums[i]
	}
	if match == nil {
		return fmt.Errorf("tournament %q not found", prefix)
	}

	results, err := repo.QueryResults(ctx, match.TournamentID)
	if err != nil {
		return fmt.Errorf("query results: %w", err)
	}

	fmt.Fprintf(out, "Tournament %s  %s\n", match.TournamentID, tournamentOutcome(*match))
	round := 0
	for _, r := range results {
		if r.Round != round {
			round = r.Round
			fmt.Fprintf(out, "\nRound %d  %dm\n", r.Round, r.Distance)
			fmt.Fprintln(out, strings.Repeat("─", 48))
		}
		fmt.Fprintf(out, "%-4d  %-20s  %8.2fs  %6d\n", r.Position, truncate(r.CompetitorName, 20), r.CompletionMs/1000, r.Points)
	}
	return printFinalStandings(ctx, out, snaps, match.TournamentID)
}

// printFinalStandings prints the saved standings of a finished tournament.
// Unfinished tournaments have none and print nothing.
func printFinalStandings(ctx context.Context, out io.Writer, snaps store.SnapshotRepo, id string) error {
	snap, err := snaps.ForTournament(ctx, id)
	if err != nil {
		return fmt.Errorf("load standings: %w", err)
	}
	if snap == nil {
		return nil
	}

	fmt.Fprintf(out, "\nFinal Standings\n")
	fmt.Fprintln(out, strings.Repeat("─", 48))
	for i, r := range snap.Data.Rankings {
		fmt.Fprintf(out, "%-4d  %-20s  %6d pts  %2d races  avg %.1f\n",
			i+1, truncate(r.Name, 20), r.TotalPoints, r.Races, r.AveragePosition)
	}
	return nil
}

func tournamentOutcome(t store.TournamentSummaryRecord) string {
	switch {
	case t.Finished:
		return "champion " + t.Champion
	case t.Reset:
		return "reset"
	default:
		return "unfinished"
	}
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of tournaments to show")
}
