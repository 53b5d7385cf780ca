package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sola-app/sola/cmd/sola/internal/store"
	"github.com/sola-app/sola/cmd/sola/internal/ui"
)

func newWeeklyCmd() *cobra.Command {
	var claim bool

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Show the weekly report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}

			report, err := orch.FetchWeekly(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSpark, fmt.Sprintf("Week %s — %s", report.WeekStart, report.WeekEnd)))
			fmt.Fprintln(out, ui.LabelValue("XP earned", report.XPEarned))
			fmt.Fprintln(out, ui.LabelValue("Habits", fmt.Sprintf("%.0f%% completed", report.HabitCompletionPct)))
			fmt.Fprintln(out, ui.LabelValue("Tasks", fmt.Sprintf("%.0f%% completed", report.TaskCompletionPct)))
			if report.MoodAvg != nil {
				fmt.Fprintln(out, ui.LabelValue("Mood average", fmt.Sprintf("%.1f/5", *report.MoodAvg)))
			}
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d → %d", report.StreakStart, report.StreakEnd)))
			if h := report.Highlights; h.BestMoodDay != "" {
				fmt.Fprintln(out, ui.LabelValue("Best mood day", h.BestMoodDay))
			}
			if h := report.Highlights; h.MostTasksDoneDay != "" {
				fmt.Fprintln(out, ui.LabelValue("Most productive day", h.MostTasksDoneDay))
			}

			if !claim {
				if !report.BonusAwarded {
					fmt.Fprintln(out, ui.Muted.Render("Run with --claim to collect the weekly bonus."))
				}
				return nil
			}

			if err := orch.ClaimWeeklyBonus(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Gold.Render(ui.IconTrophy+" Weekly bonus claimed!"))
			if xp := orch.Store().XP(); xp.State == store.Loaded {
				fmt.Fprintln(out, ui.LabelValue("Total XP", xp.Value.TotalXP))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&claim, "claim", false, "Claim the weekly bonus")
	return cmd
}
