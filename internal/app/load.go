package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/five82/beerdex/internal/catalog"
	"github.com/five82/beerdex/internal/view"
)

// List fetches the catalog once into the store and derives the list the
// TUI would show for q.
func (e *Env) List(ctx context.Context, q view.Query) (view.ViewModel, error) {
	if err := e.refresh(ctx); err != nil {
		return view.ViewModel{}, err
	}
	s := view.NewListState().
		SetCatalog(e.Store.Snapshot().Beers).
		SetQuery(q.Text).
		SetSortField(q.SortField).
		SetDescending(q.Descending)
	return view.DeriveView(s), nil
}

// Show fetches one beer's detail record.
func (e *Env) Show(ctx context.Context, id string) (catalog.Beer, error) {
	fields := logrus.Fields{"resource": "detail", "id": id}
	e.Store.Select(id)

	beer, err := e.Fetcher.FetchDetail(ctx, id)
	e.Store.SetDetail(id, beer, err)
	if err != nil {
		e.Logger.WithFields(fields).WithError(err).Warn("fetch failed")
		return catalog.Beer{}, err
	}

	snap := e.Store.Snapshot()
	if !snap.HasDetail() {
		return catalog.Beer{}, fmt.Errorf("beer %s: %w", id, catalog.ErrNotFound)
	}
	e.Logger.WithFields(fields).Debug("detail loaded")
	return *snap.Detail, nil
}

func (e *Env) refresh(ctx context.Context) error {
	beers, err := e.Fetcher.FetchCatalog(ctx)
	e.Store.SetCatalog(beers, err)
	if err != nil {
		e.Logger.WithField("resource", "catalog").WithError(err).Warn("fetch failed")
		return err
	}
	e.Logger.WithField("beers", len(beers)).Info("catalog loaded")
	return nil
}
