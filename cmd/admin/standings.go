package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/programme-lv/contest/conf"
	"github.com/programme-lv/contest/contest"
	"github.com/programme-lv/contest/standings"
	"github.com/programme-lv/contest/subm/submstore"
	"github.com/programme-lv/contest/users"
	"github.com/spf13/cobra"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newStandingsCmd() *cobra.Command {
	var standingsCmd = &cobra.Command{
		Use:   "standings",
		Short: "Show contest leaderboards and user histories",
	}

	var contestID string
	var top int
	var leaderboardCmd = &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the current leaderboard of a contest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStandings(cmd.Context(), func(srvc *standings.StandingsSrvc) error {
				entries, err := srvc.Leaderboard(cmd.Context(), contestID, top)
				if err != nil {
					return err
				}
				fmt.Println(titleStyle.Render("Leaderboard " + contestID))
				fmt.Println(renderLeaderboard(entries))
				return nil
			})
		},
	}
	leaderboardCmd.Flags().StringVarP(&contestID, "contest", "c", "", "Contest id (required)")
	leaderboardCmd.Flags().IntVarP(&top, "top", "n", 0, "Show only the first n entries, 0 for all")
	leaderboardCmd.MarkFlagRequired("contest")

	var userID string
	var historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Print a user's rank and trophy in every contest",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid user uuid: %w", err)
			}
			return withStandings(cmd.Context(), func(srvc *standings.StandingsSrvc) error {
				records, err := srvc.ContestHistory(cmd.Context(), u)
				if err != nil {
					return err
				}
				fmt.Println(titleStyle.Render("Contest history " + userID))
				fmt.Println(renderHistory(records))
				return nil
			})
		},
	}
	historyCmd.Flags().StringVarP(&userID, "user", "u", "", "User uuid (required)")
	historyCmd.MarkFlagRequired("user")

	standingsCmd.AddCommand(leaderboardCmd, historyCmd)
	return standingsCmd
}

func withStandings(ctx context.Context, fn func(*standings.StandingsSrvc) error) error {
	cfg := conf.Read()
	pg, err := openPg(ctx)
	if err != nil {
		return err
	}
	defer pg.Close()

	repo, err := submstore.Open(ctx, cfg, pg)
	if err != nil {
		return err
	}
	srvc := standings.NewStandingsSrvc(
		repo,
		users.NewCachedUsernames(users.NewPgUserRepo(pg), time.Minute),
		contest.NewPgContestRepo(pg),
	)
	return fn(srvc)
}

func renderLeaderboard(entries []standings.LeaderboardEntry) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("RANK", "USER", "SCORE", "")
	for _, e := range entries {
		name := e.Username
		if name == "" {
			name = e.UserUUID.String()
		}
		t.Row(strconv.Itoa(e.Rank), name, strconv.Itoa(e.TotalScore), standings.Trophy(e.Rank))
	}
	return t.String()
}

func renderHistory(records []standings.ContestRankRecord) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("CONTEST", "RANK", "SCORE", "")
	for _, r := range records {
		t.Row(r.Title, strconv.Itoa(r.Rank), strconv.Itoa(r.TotalScore), r.Trophy)
	}
	return t.String()
}
