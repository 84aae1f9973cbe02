package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/five82/beerdex/internal/catalog"
	"github.com/five82/beerdex/internal/config"
	"github.com/five82/beerdex/internal/logging"
	"github.com/five82/beerdex/internal/prefs"
	"github.com/five82/beerdex/internal/state"
	"github.com/five82/beerdex/internal/ui"
)

// Options configure a beerdex session. Non-empty fields override the
// values read from config.toml.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/beerdex/prefs.toml
	BaseURL    string
	// DataDir switches the catalog source from HTTP to files on disk.
	DataDir  string
	LogFile  string
	LogLevel string
	// Route is the path the TUI opens on.
	Route string
}

// Env holds everything a command needs once configuration is resolved.
type Env struct {
	Config  config.Config
	Logger  *logrus.Logger
	Fetcher catalog.Fetcher
	Store   *state.Store

	closer io.Closer
}

// Setup loads config, opens the log file and picks the catalog source.
// Callers must Close the returned Env.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := applyOverrides(&cfg, opts); err != nil {
		return nil, err
	}

	logger, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	fetcher, err := newFetcher(cfg, opts.DataDir != "")
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	return &Env{
		Config:  cfg,
		Logger:  logger,
		Fetcher: fetcher,
		Store:   &state.Store{},
		closer:  closer,
	}, nil
}

// Close releases the log file.
func (e *Env) Close() error {
	if e == nil || e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

func applyOverrides(cfg *config.Config, opts Options) error {
	if v := strings.TrimSpace(opts.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	for _, o := range []struct {
		value string
		dest  *string
		name  string
	}{
		{opts.DataDir, &cfg.DataDir, "data dir"},
		{opts.LogFile, &cfg.LogFile, "log file"},
	} {
		if strings.TrimSpace(o.value) == "" {
			continue
		}
		p, err := config.ExpandPath(o.value)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", o.name, err)
		}
		*o.dest = p
	}
	return nil
}

// newFetcher reads from cfg.DataDir when local is set, otherwise from
// cfg.BaseURL over HTTP.
func newFetcher(cfg config.Config, local bool) (catalog.Fetcher, error) {
	if local {
		src, err := catalog.OpenDir(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	client, err := catalog.NewClient(cfg.BaseURL, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("init catalog client: %w", err)
	}
	return client, nil
}

// Run boots the beerdex TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		env.Logger.WithError(err).Warn("load prefs; using defaults")
	}

	env.Logger.WithFields(logrus.Fields{
		"source": env.source(),
		"route":  opts.Route,
	}).Info("starting beerdex")

	err = ui.Run(ui.Options{
		Context:   ctx,
		Fetcher:   env.Fetcher,
		Store:     env.Store,
		Logger:    env.Logger,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		Route:     opts.Route,
	})
	if err != nil {
		env.Logger.WithError(err).Error("ui exited")
		return err
	}
	env.Logger.Info("beerdex exited")
	return nil
}

// source describes where the catalog comes from, for logs.
func (e *Env) source() string {
	if c, ok := e.Fetcher.(*catalog.Client); ok {
		return c.BaseURL()
	}
	return e.Config.DataDir
}
