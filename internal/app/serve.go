package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/five82/beerdex/internal/server"
)

// ServeOptions configure the static data server.
type ServeOptions struct {
	// Listen wins over PORT and the config file when set.
	Listen string
	// EnvFile is loaded before reading PORT. A missing file is ignored.
	EnvFile   string
	RateLimit float64
	Burst     int
	// TrustProxy rate-limits by X-Forwarded-For instead of the peer address.
	TrustProxy bool
}

// Serve publishes the configured data directory until ctx is cancelled.
// Images are served from the img directory next to it.
func (e *Env) Serve(ctx context.Context, opts ServeOptions) error {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return err
	}
	addr := resolveListen(opts.Listen, e.Config.Listen)

	access := e.Logger.WriterLevel(logrus.InfoLevel)
	defer access.Close()

	srv, err := server.New(server.Options{
		DataDir:    e.Config.DataDir,
		ImgDir:     filepath.Join(filepath.Dir(filepath.Clean(e.Config.DataDir)), "img"),
		RateLimit:  rate.Limit(opts.RateLimit),
		Burst:      opts.Burst,
		TrustProxy: opts.TrustProxy,
		Logger:     e.Logger,
		AccessLog:  access,
	})
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}
	return srv.ListenAndServe(ctx, addr)
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// resolveListen picks the listen address: the flag, then PORT from the
// environment, then the configured address.
func resolveListen(flagAddr, configured string) string {
	if v := strings.TrimSpace(flagAddr); v != "" {
		return v
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		host, _, err := net.SplitHostPort(configured)
		if err != nil {
			host = ""
		}
		return net.JoinHostPort(host, port)
	}
	return configured
}
