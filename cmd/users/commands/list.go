package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/motoki317/fetchstate/metrics"
	"github.com/motoki317/fetchstate/users"
)

// errLoadFailed is returned after the user-facing message has been printed.
var errLoadFailed = errors.New("failed to load users")

func listCmd() *cobra.Command {
	var (
		output      string
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Load the users and print them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "table" && output != "json" {
				return fmt.Errorf("unknown output format %q: use table or json", output)
			}

			reg := prometheus.NewRegistry()
			if err := reg.Register(metrics.NewCollector("users", "list", appCtx.fetcher)); err != nil {
				return err
			}

			list := appCtx.list
			appCtx.logger.Debug("loading users", "locator", list.Locator())
			list.Init(cmd.Context())
			if err := cmd.Context().Err(); err != nil {
				return err
			}

			if msg := list.State().LastError; msg != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), msg)
				if showMetrics {
					if err := writeMetrics(cmd.ErrOrStderr(), reg); err != nil {
						return errors.Join(errLoadFailed, err)
					}
				}
				return errLoadFailed
			}
			appCtx.logger.Info("loaded users", "locator", list.Locator(), "count", len(list.Users()))

			out := cmd.OutOrStdout()
			var err error
			if output == "json" {
				err = writeJSON(out, list.Users())
			} else {
				err = writeTable(out, list.Users())
			}
			if err != nil {
				return err
			}

			if showMetrics {
				return writeMetrics(cmd.ErrOrStderr(), reg)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or json")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print fetch metrics to stderr")
	return cmd
}

func writeJSON(w io.Writer, list []users.User) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

func writeTable(w io.Writer, list []users.User) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No users")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Username", "Email", "City", "Company")
	for _, u := range list {
		if err := table.Append(
			strconv.Itoa(u.ID),
			u.Name,
			u.Username,
			u.Email,
			u.Address.City,
			u.Company.Name,
		); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nTotal users: %d\n", len(list))
	return err
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
