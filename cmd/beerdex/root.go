package main

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/five82/beerdex/internal/app"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	prefsPath  string
	baseURL    string
	dataDir    string
	logFile    string
	logLevel   string
}

func (g *globalFlags) options() app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		PrefsPath:  g.prefsPath,
		BaseURL:    g.baseURL,
		DataDir:    g.dataDir,
		LogFile:    g.logFile,
		LogLevel:   g.logLevel,
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "beerdex [route]",
		Short: "Browse a beer catalog in the terminal.",
		Long: `beerdex lists, searches and sorts a beer catalog published as static JSON,
and shows the full record of a single beer.

Run without a command to open the interactive browser. An optional route
such as /beer/rochefort-8 opens the browser on that page.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
				return errors.New("the interactive browser needs a terminal; try 'beerdex list'")
			}
			opts := flags.options()
			if len(args) == 1 {
				opts.Route = args[0]
			}
			return app.Run(cmd.Context(), opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/beerdex/config.toml)")
	pf.StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/beerdex/prefs.toml)")
	pf.StringVar(&flags.baseURL, "base-url", "", "catalog server base URL")
	pf.StringVar(&flags.dataDir, "data-dir", "", "read the catalog from this directory instead of the server")
	pf.StringVar(&flags.logFile, "log-file", "", "log file path")
	pf.StringVarP(&flags.logLevel, "log-level", "l", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newListCmd(flags),
		newShowCmd(flags),
		newServeCmd(flags),
		newLogsCmd(flags),
	)
	return root
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
