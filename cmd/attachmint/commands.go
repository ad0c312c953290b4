package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"attachmint/pkg/output"
	"attachmint/pkg/settings"
	"attachmint/pkg/types"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Scan the vault and print the attachment report",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := newEngine()
		if err != nil {
			return err
		}
		report, err := engine.DetectReport(true)
		if err != nil {
			return err
		}
		formatter, err := output.NewFormatter(format)
		if err != nil {
			return err
		}
		return formatter.WriteReport(os.Stdout, report)
	},
}

var (
	applyDryRun bool

	applyCmd = &cobra.Command{
		Use:   "apply",
		Short: "Execute the conflict-free planned moves",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := newEngine()
			if err != nil {
				return err
			}

			if applyDryRun {
				report, err := engine.DetectReport(true)
				if err != nil {
					return err
				}
				moves := report.Moves()
				if len(moves) == 0 {
					fmt.Println("Nothing to move.")
					return nil
				}
				for _, m := range moves {
					fmt.Printf("would move %s -> %s\n", m.From, m.To)
				}
				return nil
			}

			result, err := engine.ApplyPlan()
			if err != nil {
				return err
			}
			if result.NothingToDo {
				fmt.Printf("Nothing to apply: %s\n", result.Reason)
				return nil
			}
			s := result.Summary
			fmt.Printf("Applied %d of %d moves", s.Succeeded, s.Attempted)
			if s.Failed > 0 {
				fmt.Printf(" (%d failed)", s.Failed)
			}
			fmt.Println()
			for _, f := range s.Failures {
				fmt.Printf("  failed: %s -> %s: %s\n", f.Move.From, f.Move.To, f.Err)
			}
			return nil
		},
	}
)

var (
	undoYes bool

	undoCmd = &cobra.Command{
		Use:   "undo",
		Short: "Undo the most recent applied batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := newEngine()
			if err != nil {
				return err
			}

			confirm := func(entry types.UndoEntry) bool {
				if undoYes {
					return true
				}
				fmt.Printf("Undo %d move(s) from %s? [y/N] ", len(entry.Moves), entry.Timestamp.Format("15:04:05"))
				line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
				answer := strings.ToLower(strings.TrimSpace(line))
				return answer == "y" || answer == "yes"
			}

			result, err := engine.UndoLastOperation(confirm)
			if err != nil {
				return err
			}
			if result.Cancelled {
				fmt.Println("Undo cancelled.")
				return nil
			}
			fmt.Printf("Restored %d move(s)", result.Summary.Restored)
			if result.Summary.Failed > 0 {
				fmt.Printf(", %d failed", result.Summary.Failed)
			}
			fmt.Println()
			return nil
		},
	}
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the vault and reprint the report on changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := newEngine()
		if err != nil {
			return err
		}
		formatter, err := output.NewFormatter(format)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err = engine.Watch(ctx, vaultRoot, func(report *types.DetectReport) {
			_ = formatter.WriteReport(os.Stdout, report)
		})
		if err == context.Canceled {
			return nil
		}
		return err
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the effective settings",
}

func init() {
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Print the move list without executing it")
	undoCmd.Flags().BoolVarP(&undoYes, "yes", "y", false, "Skip the confirmation prompt")

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Run: func(cmd *cobra.Command, args []string) {
			path := settingsPath
			if path == "" {
				path = settings.DefaultPath()
			}
			fmt.Println(path)
		},
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective merged settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := newEngine()
			if err != nil {
				return err
			}
			return printSettings(s)
		},
	})
}

func printSettings(s *settings.Settings) error {
	fmt.Printf("workspace_folder    = %q\n", s.WorkspaceFolder)
	fmt.Printf("staging_folder      = %q\n", s.StagingFolder)
	fmt.Printf("extra_folders       = %v (enabled: %v)\n", s.ExtraFolders, s.ExtraScanEnabled)
	fmt.Printf("recursive           = %v\n", s.Recursive)
	fmt.Printf("backlink_scope      = %s\n", s.Scope)
	fmt.Printf("link sources        = links:%v embeds:%v frontmatter:%v\n", s.IncludeLinks, s.IncludeEmbeds, s.IncludeFrontmatter)
	fmt.Printf("placement           = %s (specified: %q, subfolder: %q)\n", s.Placement, s.SpecifiedFolder, s.SubfolderName)
	fmt.Printf("multi_backlink      = %s\n", s.MultiBacklink)
	fmt.Printf("name_check          = %s\n", s.NameCheck)
	fmt.Printf("rule_patterns       = %v\n", s.RulePatterns)
	fmt.Printf("plan_outside        = %v\n", s.PlanOutside)
	return nil
}
