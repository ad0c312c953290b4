package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"attachmint/internal/version"
	"attachmint/pkg/core"
	"attachmint/pkg/logging"
	"attachmint/pkg/settings"
	"attachmint/pkg/vault"
)

var (
	verbosity    int
	vaultRoot    string
	settingsPath string
	format       string

	rootCmd = &cobra.Command{
		Use:   "attachmint",
		Short: "Reorganize attachments in a markdown vault",
		Long: `attachmint moves each attachment next to the note(s) that reference it,
without ever silently overwriting or double-claiming a file. Every planned
move is simulated against the whole vault first; only the conflict-free
subset is applied, and every applied batch can be undone.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. Called once from main.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&vaultRoot, "vault", ".", "Path to the vault root")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Settings file (default: XDG config dir)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "human", "Output format: human, json, yaml")

	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// newEngine wires an engine over the configured vault directory.
func newEngine() (*core.Engine, *settings.Settings, error) {
	path := settingsPath
	if path == "" {
		path = settings.DefaultPath()
	}
	s, err := settings.Load(path)
	if err != nil {
		return nil, nil, err
	}

	provider := vault.NewOS(vaultRoot)
	meta := vault.NewMarkdownMetadata(provider)
	return core.NewEngine(provider, meta, s), s, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("attachmint %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
	},
}
