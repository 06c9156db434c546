// Package cli defines the cobra command tree for the comments tool.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/samvad-comments/internal/app"
	"github.com/samvad-hq/samvad-comments/internal/config"
	"github.com/samvad-hq/samvad-comments/internal/logger"
)

// options holds global flag values and the state built from them.
type options struct {
	baseURI  string
	output   string
	snapshot string
	envFile  string

	cfg *config.Config
	log logger.Logger
}

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "comments",
		Short:         "List, create and update comments on a remote comments service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.baseURI, "base-uri", "", "comments service base URI (overrides COMMENTS_BASE_URI)")
	flags.StringVarP(&opts.output, "output", "o", "", "output format (table|json|yaml)")
	flags.StringVar(&opts.snapshot, "snapshot", "", "bbolt file archiving returned comments (overrides SNAPSHOT_PATH)")
	flags.StringVar(&opts.envFile, "env-file", "configs/.env", "dotenv file read before the environment")

	root.AddCommand(
		newListCmd(opts),
		newCreateCmd(opts),
		newUpdateCmd(opts),
		newSnapshotCmd(opts),
	)

	return root
}

func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.LoadFrom(o.envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("base-uri") {
		cfg.BaseURI = o.baseURI
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputFormat = o.output
	}
	if cmd.Flags().Changed("snapshot") {
		cfg.SnapshotPath = o.snapshot
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sugar, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	o.cfg = cfg
	o.log = logger.New(sugar)
	return nil
}

// withService builds the application service for one command run and closes it afterwards.
func (o *options) withService(cmd *cobra.Command, fn func(*app.Service) error) error {
	svc, err := app.New(cmd.Context(), o.cfg, o.log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil {
			o.log.WarnObj("closing service", "close_error", cerr.Error())
		}
	}()
	return fn(svc)
}
