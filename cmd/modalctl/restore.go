package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-modals/internal/scenario"
	"github.com/goliatone/go-modals/pkg/state"
)

func newRestoreCmd(a *app) *cobra.Command {
	var window, session string

	cmd := &cobra.Command{
		Use:   "restore <scenario.yaml>",
		Short: "Register a scenario's modals, restore a saved stack and print the layout",
		Long: `restore registers the modals declared by the scenario (its steps are
ignored), then reopens the stack saved by "replay --save". Saved ids that the
scenario no longer declares are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			sc.Steps = nil

			ctx := cmd.Context()
			_, mgr, err := scenario.Run(ctx, sc, a.managerOptions(ctx)...)
			if err != nil {
				return err
			}

			ref := state.Ref{Window: window, Session: session}
			store := state.NewFileStore[state.Snapshot](a.cfg.StateDir)
			restored, ok, err := state.Session{Store: store}.Restore(ctx, ref, mgr)
			if err != nil {
				return fmt.Errorf("restore snapshot: %w", err)
			}
			if !ok {
				return fmt.Errorf("no snapshot saved for window %q", window)
			}
			for _, id := range restored.Skipped {
				a.logger.Warn("skipped unregistered modal", zap.String("modal_id", id))
			}

			return writeResult(cmd.OutOrStdout(), a.cfg.Output, scenario.Result{
				Name:   sc.Name,
				Steps:  []scenario.StepResult{},
				Layout: mgr.Layout(),
			})
		},
	}

	cmd.Flags().StringVar(&window, "window", "", "Window name the stack was saved under")
	cmd.Flags().StringVar(&session, "session", "", "Session name the stack was saved under")
	_ = cmd.MarkFlagRequired("window")
	return cmd
}
