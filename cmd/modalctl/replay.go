package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-modals/internal/scenario"
	"github.com/goliatone/go-modals/pkg/state"
)

func newReplayCmd(a *app) *cobra.Command {
	var window, session string

	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>",
		Short: "Replay a scenario and print every step and the final layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			result, mgr, err := scenario.Run(ctx, sc, a.managerOptions(ctx)...)
			if err != nil {
				return err
			}
			a.logger.Info("scenario replayed",
				zap.String("scenario", args[0]),
				zap.Int("steps", len(result.Steps)),
				zap.Strings("stack", mgr.Stack()))

			if strings.TrimSpace(window) != "" {
				ref := state.Ref{Window: window, Session: session}
				store := state.NewFileStore[state.Snapshot](a.cfg.StateDir)
				meta, err := state.Session{Store: store}.Save(ctx, ref, mgr, state.Meta{
					Extra: map[string]string{"scenario": args[0]},
				})
				if err != nil {
					return fmt.Errorf("save snapshot: %w", err)
				}
				path, _ := store.Path(ref)
				a.logger.Info("snapshot saved",
					zap.String("path", path),
					zap.String("snapshot_id", meta.SnapshotID),
					zap.String("etag", meta.ETag))
			}

			return writeResult(cmd.OutOrStdout(), a.cfg.Output, result)
		},
	}

	cmd.Flags().StringVar(&window, "save", "", "Save the final stack under this window name")
	cmd.Flags().StringVar(&session, "session", "", "Session name used with --save")
	return cmd
}
