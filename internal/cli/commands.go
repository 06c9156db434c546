package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/samvad-comments/internal/app"
	"github.com/samvad-hq/samvad-comments/internal/storage"
	"github.com/samvad-hq/samvad-comments/pkg/comments"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all comments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withService(cmd, func(svc *app.Service) error {
				list, err := svc.List(cmd.Context())
				if err != nil {
					return describeError(err)
				}
				return printComments(cmd.OutOrStdout(), opts.cfg.OutputFormat, list)
			})
		},
	}
}

func newCreateCmd(opts *options) *cobra.Command {
	var name, text string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a comment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withService(cmd, func(svc *app.Service) error {
				created, err := svc.Create(cmd.Context(), comments.New(name, text))
				if err != nil {
					return describeError(err)
				}
				return printComment(cmd.OutOrStdout(), opts.cfg.OutputFormat, created)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "comment author name")
	cmd.Flags().StringVar(&text, "text", "", "comment text")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newUpdateCmd(opts *options) *cobra.Command {
	var (
		id         int64
		name, text string
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the name and text of an existing comment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withService(cmd, func(svc *app.Service) error {
				updated, err := svc.Update(cmd.Context(), comments.NewWithID(id, name, text))
				if err != nil {
					return describeError(err)
				}
				return printComment(cmd.OutOrStdout(), opts.cfg.OutputFormat, updated)
			})
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "comment id")
	cmd.Flags().StringVar(&name, "name", "", "comment author name")
	cmd.Flags().StringVar(&text, "text", "", "comment text")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newSnapshotCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Show comments archived by earlier runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.cfg.SnapshotPath == "" {
				return fmt.Errorf("no snapshot configured (set --snapshot or SNAPSHOT_PATH)")
			}
			store, err := storage.NewStore(opts.cfg.SnapshotPath)
			if err != nil {
				return fmt.Errorf("open snapshot: %w", err)
			}
			defer store.Close()

			list, err := store.All()
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}
			return printComments(cmd.OutOrStdout(), opts.cfg.OutputFormat, list)
		},
	}
}
