package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sola-app/sola/cmd/sola/internal/store"
	"github.com/sola-app/sola/cmd/sola/internal/syncer"
	"github.com/sola-app/sola/cmd/sola/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's full picture",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}
			if err := orch.RefreshAll(ctx); err != nil {
				return err
			}

			printStatus(cmd.OutOrStdout(), orch)
			return nil
		},
	}

	return cmd
}

func printStatus(w io.Writer, orch *syncer.Orchestrator) {
	st := orch.Store()

	fmt.Fprintln(w, ui.Heading(ui.IconSun, "Sola — "+orch.Today()))

	if xp := st.XP(); xp.State == store.Loaded {
		bar := ui.ProgressBar(xp.Value.XPInLevel, xp.Value.XPForNext, 24)
		fmt.Fprintln(w, ui.LabelValue("Level", fmt.Sprintf("%d  %s %d/%d XP", xp.Value.Level, bar, xp.Value.XPInLevel, xp.Value.XPForNext)))
		fmt.Fprintln(w, ui.LabelValue("Streak", fmt.Sprintf("%d day(s)", xp.Value.Streak)))
	}

	if day := st.Day(); day.State == store.Loaded {
		if day.Value.Completed {
			fmt.Fprintln(w, ui.LabelValue("Day", ui.BadgeDayDone))
		} else {
			ev := day.Value.Evaluation
			fmt.Fprintln(w, ui.LabelValue("Day", fmt.Sprintf("open — habits %v, mood %v, tasks %v",
				mark(ev.HabitsDone), mark(ev.MoodLogged), mark(ev.TasksUpdated))))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, ui.H2.Render(ui.IconTarget+" Mission"))
	switch m := st.Mission(); m.State {
	case store.Loaded:
		check := "[ ]"
		if m.Value.Done {
			check = ui.Good.Render("[x]")
		}
		fmt.Fprintf(w, "  %s %s\n", check, m.Value.Text)
	case store.Absent:
		fmt.Fprintln(w, ui.Muted.Render("  (none set)"))
	}

	fmt.Fprintln(w, ui.H2.Render(ui.IconMoon+" Mood"))
	switch m := st.Mood(); m.State {
	case store.Loaded:
		fmt.Fprintf(w, "  %s %d/5\n", ui.MoodFace(m.Value.Rating), m.Value.Rating)
	case store.Absent:
		fmt.Fprintln(w, ui.Muted.Render("  (not logged)"))
	}

	fmt.Fprintln(w, ui.H2.Render(ui.IconLoop+" Habits"))
	if h := st.Habits(); h.State == store.Loaded {
		if len(h.Value) == 0 {
			fmt.Fprintln(w, ui.Muted.Render("  (none)"))
		}
		for _, habit := range h.Value {
			line := "  - " + habit.Name
			if !habit.Active {
				line += ui.Muted.Render(" (inactive)")
			}
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintln(w, ui.H2.Render(ui.IconNote+" Tasks"))
	if t := st.Tasks(); t.State == store.Loaded {
		if len(t.Value) == 0 {
			fmt.Fprintln(w, ui.Muted.Render("  (none for today)"))
		}
		for _, task := range t.Value {
			fmt.Fprintf(w, "  - %s  %s\n", task.Title, ui.StatusText(task.Status))
		}
	}

	if a := st.Achievements(); a.State == store.Loaded && len(a.Value) > 0 {
		fmt.Fprintln(w, ui.H2.Render(ui.IconTrophy+" Achievements"))
		for _, ach := range a.Value {
			fmt.Fprintf(w, "  - %s %s\n", ach.Name, ui.Muted.Render("("+ach.UnlockedAt.Format("2006-01-02")+")"))
		}
	}
}

func mark(ok bool) string {
	if ok {
		return ui.Good.Render("✓")
	}
	return ui.Muted.Render("✗")
}
