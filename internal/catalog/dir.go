package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// DirSource reads the catalog from a data directory laid out like the
// static site: beers/beers.json and beers/details/{id}.json.
type DirSource struct {
	fsys fs.FS
}

// NewDirSource serves files from fsys.
func NewDirSource(fsys fs.FS) DirSource {
	return DirSource{fsys: fsys}
}

// OpenDir is NewDirSource over a directory on disk.
func OpenDir(dir string) (DirSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return DirSource{}, fmt.Errorf("open data dir: %w", err)
	}
	if !info.IsDir() {
		return DirSource{}, fmt.Errorf("open data dir: %s is not a directory", dir)
	}
	return NewDirSource(os.DirFS(dir)), nil
}

// FetchCatalog reads beers/beers.json.
func (d DirSource) FetchCatalog(ctx context.Context) ([]Beer, error) {
	var beers []Beer
	if err := d.read(ctx, "beers/beers.json", &beers); err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return beers, nil
}

// FetchDetail reads beers/details/{id}.json.
func (d DirSource) FetchDetail(ctx context.Context, id string) (Beer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Beer{}, fmt.Errorf("beer id required")
	}
	if !ValidID(id) {
		return Beer{}, fmt.Errorf("fetch detail %q: %w: %w: invalid id", id, ErrNotFound, ErrTransport)
	}
	var beer Beer
	if err := d.read(ctx, path.Join("beers/details", id+".json"), &beer); err != nil {
		return Beer{}, fmt.Errorf("fetch detail %q: %w", id, err)
	}
	return beer, nil
}

func (d DirSource) read(ctx context.Context, name string, dest any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if d.fsys == nil {
		return fmt.Errorf("%w: no data directory", ErrTransport)
	}
	file, err := d.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %w: %s", ErrNotFound, ErrTransport, name)
		}
		return fmt.Errorf("%w: open %s: %w", ErrTransport, name, err)
	}
	defer func() { _ = file.Close() }()
	return decode(file, dest)
}
