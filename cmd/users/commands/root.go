package commands

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/motoki317/fetchstate"
	"github.com/motoki317/fetchstate/internal/config"
	"github.com/motoki317/fetchstate/transport"
	"github.com/motoki317/fetchstate/users"
)

// app is built once per invocation, before any subcommand runs.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	fetcher *fetchstate.Fetcher[[]users.User]
	list    *users.List
}

var (
	usersURL  string
	timeout   time.Duration
	logFormat string
	logLevel  string
	noVerify  bool

	appCtx *app
)

// Execute runs the CLI with the process arguments.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "users",
		Short:         "Load and display the list of users",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
	}

	root.PersistentFlags().StringVar(&usersURL, "url", "", "users resource URL (default from USERS_URL)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 0, "HTTP timeout, e.g. 5s (default from HTTP_TIMEOUT)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json (default from LOG_FORMAT)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (default from LOG_LEVEL)")
	root.PersistentFlags().BoolVar(&noVerify, "no-validate", false, "do not validate the received records")

	root.AddCommand(listCmd())
	return root
}

func newApp(cfg *config.Config, logOut io.Writer) (*app, error) {
	logger := config.NewLogger(cfg, logOut)

	getter := transport.New(
		transport.WithTimeout(cfg.HTTPTimeout),
		transport.WithUserAgent(cfg.UserAgent),
	)
	opts := []fetchstate.Option{fetchstate.WithErrorMessage(cfg.ErrorMessage)}
	if cfg.Validate {
		opts = append(opts, fetchstate.WithValidation())
	}
	fetcher, err := users.NewFetcher(getter, opts...)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		fetcher: fetcher,
		list:    users.NewList(fetcher, users.WithLocator(cfg.UsersURL), users.WithLogger(logger)),
	}, nil
}
