package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sola-app/sola/cmd/sola/internal/clock"
	"github.com/sola-app/sola/cmd/sola/internal/config"
	"github.com/sola-app/sola/cmd/sola/internal/store"
	"github.com/sola-app/sola/cmd/sola/internal/syncer"
	"github.com/sola-app/sola/cmd/sola/internal/transport"
	"github.com/sola-app/sola/cmd/sola/internal/ui"
	"github.com/sola-app/sola/pkg/logger"
)

const Version = "0.1.0"

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "sola",
	Short:         "Sola — personal daily progress tracker",
	Long:          "Sola tracks your daily mission, mood, habits and tasks against the Sola service.\nAll XP, streak and achievement math happens server-side; this client keeps a live mirror.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/sola/config.yaml)")

	rootCmd.AddCommand(
		newStatusCmd(),
		newMissionCmd(),
		newMoodCmd(),
		newHabitCmd(),
		newTaskCmd(),
		newNoteCmd(),
		newDayCmd(),
		newWeeklyCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconWarn+" "+err.Error()))
		os.Exit(1)
	}
}

// openOrchestrator wires config, logging, transport and the day clock
// into a ready orchestrator. The returned clock has not been started;
// one-shot commands use it only to resolve the active day.
func openOrchestrator() (*syncer.Orchestrator, *clock.DayClock, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	log, err := logger.Init(logger.Config{
		Level:       cfg.Log.Level,
		Environment: cfg.Log.Environment,
		File:        cfg.Log.File,
	})
	if err != nil {
		return nil, nil, err
	}

	client := transport.New(transport.Config{
		BaseURL: cfg.Server.BaseURL,
		Timeout: cfg.Server.Timeout(),
		Logger:  log,
	})

	days := clock.New(clock.DefaultInterval)
	return syncer.New(client, store.New(), days, log), days, nil
}
