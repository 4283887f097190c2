// Command aura is a terminal coaching companion: a short personality
// assessment followed by a scripted coach conversation shaped by the
// answers.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"aura/cmd/aura/chat"
	"aura/internal/config"
	"aura/internal/logging"
	"aura/internal/steps"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagWorkspace string
	flagSteps     string
	flagTheme     string
	flagWatch     bool
	flagDebug     bool

	zlog *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "aura",
	Short: "A personal coach in your terminal",
	Long: `aura runs a short onboarding assessment, builds a personality
profile from your answers, and opens a coaching conversation tuned to
that profile. Everything is local; no account, no network calls beyond
an optional step-configuration fetch.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if flagDebug {
			zlog, err = zap.NewDevelopment()
		} else {
			zlog, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if zlog != nil {
			_ = zlog.Sync()
		}
	},
	RunE: runSession,
}

var checkStepsCmd = &cobra.Command{
	Use:   "check-steps <source>",
	Short: "Validate a step configuration file or URL",
	Long: `check-steps loads a step configuration from a local JSON/YAML file
or an HTTP(S) URL and runs the same validation the app applies at boot:
referential integrity of nextStep/previousStep links, option shapes,
slider bounds, and field bindings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]
		client := steps.NewClient(source, 15*time.Second)

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		seq, initial, err := client.Load(ctx)
		if err != nil {
			zlog.Error("step configuration invalid",
				zap.String("source", source), zap.Error(err))
			return err
		}

		zlog.Info("step configuration valid",
			zap.String("source", source),
			zap.Int("steps", seq.Len()),
			zap.Int("initial_fields", len(initial)),
			zap.String("first", seq.First().ID),
		)
		fmt.Printf("ok: %d steps, starting at %q\n", seq.Len(), seq.First().ID)
		return nil
	},
}

func runSession(cmd *cobra.Command, args []string) error {
	workspace := flagWorkspace
	if workspace == "" {
		var err error
		workspace, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve workspace: %w", err)
		}
	}

	cfg, err := config.Load(workspace)
	if err != nil {
		return err
	}
	if flagSteps != "" {
		cfg.StepsSource = flagSteps
	}
	if flagTheme != "" {
		cfg.Theme = flagTheme
	}
	if flagWatch {
		cfg.WatchSteps = true
	}
	if flagDebug {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}

	if err := logging.Initialize(workspace); err != nil {
		zlog.Warn("file logging unavailable", zap.Error(err))
	}
	zlog.Debug("session starting",
		zap.String("workspace", workspace),
		zap.String("steps_source", cfg.StepsSource),
		zap.Bool("watch", cfg.WatchSteps),
	)

	model := chat.NewModel(workspace, cfg)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := program.Run()
	if err != nil {
		zlog.Error("session ended with error", zap.Error(err))
		return err
	}
	if m, ok := final.(chat.Model); ok {
		m.Close()
	}
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&flagWorkspace, "workspace", "w", "", "workspace directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVar(&flagSteps, "steps", "", "step configuration source (file path or URL; default: bundled)")
	rootCmd.Flags().StringVar(&flagTheme, "theme", "", "color theme: auto, light or dark")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "reload a local steps file on change")

	rootCmd.AddCommand(checkStepsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
