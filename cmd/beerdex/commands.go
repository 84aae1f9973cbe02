package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/beerdex/internal/app"
	"github.com/five82/beerdex/internal/config"
	"github.com/five82/beerdex/internal/logtail"
	"github.com/five82/beerdex/internal/view"
)

func newListCmd(flags *globalFlags) *cobra.Command {
	var (
		query      string
		sortField  string
		descending bool
		format     string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the catalog, filtered and sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := view.ParseSortField(sortField)
			if err != nil {
				return err
			}
			f, err := resolveFormat(format, listFormats, isTerminal(os.Stdout))
			if err != nil {
				return err
			}

			env, err := app.Setup(flags.options())
			if err != nil {
				return err
			}
			defer env.Close()

			vm, err := env.List(cmd.Context(), view.Query{Text: query, SortField: field, Descending: descending})
			if err != nil {
				return err
			}
			return writeList(cmd.OutOrStdout(), vm, f)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "only beers whose name contains this text (case-insensitive)")
	cmd.Flags().StringVarP(&sortField, "sort", "s", string(view.SortName), "sort field: name or alcohol")
	cmd.Flags().BoolVarP(&descending, "desc", "d", false, "sort descending")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table, plain, json or yaml (default table on a terminal, plain otherwise)")
	return cmd
}

func newShowCmd(flags *globalFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one beer's full record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFormat(format, showFormats, true)
			if err != nil {
				return err
			}

			env, err := app.Setup(flags.options())
			if err != nil {
				return err
			}
			defer env.Close()

			beer, err := env.Show(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeBeer(cmd.OutOrStdout(), beer, f)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")
	return cmd
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	var opts app.ServeOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog data directory over HTTP",
		Long: `serve publishes the data directory the way the browser app expects it:
/data/beers/beers.json, /data/beers/details/{id}.json and images under
/data/ and /img/. It also exposes /health and Prometheus metrics on /metrics.

The listen address comes from --listen, then PORT (optionally set in .env),
then the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Setup(flags.options())
			if err != nil {
				return err
			}
			defer env.Close()
			return env.Serve(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Listen, "listen", "", "listen address (default from PORT or config)")
	cmd.Flags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file read before PORT")
	cmd.Flags().Float64Var(&opts.RateLimit, "rate", 20, "requests per second allowed per client")
	cmd.Flags().IntVar(&opts.Burst, "burst", 40, "request burst allowed per client")
	cmd.Flags().BoolVar(&opts.TrustProxy, "trust-proxy", false, "identify clients by X-Forwarded-For (only behind a reverse proxy)")
	return cmd
}

func newLogsCmd(flags *globalFlags) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := logPath(flags)
			if err != nil {
				return err
			}
			out, err := logtail.Read(path, lines)
			if err != nil {
				return err
			}
			if len(out) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "no log entries in %s\n", path)
				return nil
			}
			if isTerminal(os.Stdout) {
				out = logtail.ColorizeLines(out)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, "\n"))
			return err
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show (0 for all)")
	return cmd
}

// logPath resolves the log file without opening it for writing.
func logPath(flags *globalFlags) (string, error) {
	if flags.logFile != "" {
		return config.ExpandPath(flags.logFile)
	}
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	return cfg.LogFile, nil
}
