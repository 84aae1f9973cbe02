package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/five82/beerdex/internal/catalog"
	"github.com/five82/beerdex/internal/prefs"
	"github.com/five82/beerdex/internal/route"
	"github.com/five82/beerdex/internal/state"
	"github.com/five82/beerdex/internal/view"
)

type fakeFetcher struct {
	mu          sync.Mutex
	beers       []catalog.Beer
	details     map[string]catalog.Beer
	catalogErr  error
	ignoreCtx   bool
	detailCalls []string
}

func (f *fakeFetcher) FetchCatalog(ctx context.Context) ([]catalog.Beer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil && !f.ignoreCtx {
		return nil, err
	}
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	return catalog.CloneBeers(f.beers), nil
}

func (f *fakeFetcher) FetchDetail(ctx context.Context, id string) (catalog.Beer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls = append(f.detailCalls, id)
	if err := ctx.Err(); err != nil && !f.ignoreCtx {
		return catalog.Beer{}, err
	}
	beer, ok := f.details[id]
	if !ok {
		return catalog.Beer{}, fmt.Errorf("%w: %w: detail %s returned status 404", catalog.ErrNotFound, catalog.ErrTransport, id)
	}
	return beer, nil
}

func scenarioFetcher() *fakeFetcher {
	return &fakeFetcher{
		beers: []catalog.Beer{
			{ID: "chimay-rouge", Name: "Chimay Rouge", Alcohol: 7, Description: "A dark ale"},
			{ID: "rochefort-8", Name: "Rochefort 8", Alcohol: 9.2, Description: "Trappist"},
			{ID: "affligem-tripel", Name: "Affligem Tripel", Alcohol: 8.5, Description: "Abbey tripel"},
		},
		details: map[string]catalog.Beer{
			"rochefort-8": {
				ID: "rochefort-8", Name: "Rochefort 8", Alcohol: 9.2,
				Description: "Trappist", Img: "beers/img/rochefort-8.jpg", Label: "beers/img/rochefort-8-label.png",
				Brewery: "Abbaye Notre-Dame de Saint-Remy", Availability: "Year round",
				Style: "Dubbel", Serving: "Serve in a chalice at 12C",
			},
			"chimay-rouge": {ID: "chimay-rouge", Name: "Chimay Rouge", Alcohol: 7},
		},
	}
}

func newTestModel(t *testing.T, f *fakeFetcher, startRoute string) (Model, *state.Store) {
	t.Helper()
	store := &state.Store{}
	m := New(Options{
		Fetcher:   f,
		Store:     store,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		Route:     startRoute,
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// drain runs a fetch command, flattening batches.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func applyAll(t *testing.T, m Model, msgs []tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		m = update(t, m, msg)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = update(t, m, runes(string(r)))
	}
	return m
}

func visibleNames(m Model) []string {
	out := make([]string, len(m.vm.Beers))
	for i, b := range m.vm.Beers {
		out[i] = b.Name
	}
	return out
}

func loaded(t *testing.T, f *fakeFetcher) (Model, *state.Store) {
	t.Helper()
	m, store := newTestModel(t, f, "")
	return applyAll(t, m, drain(m.Init())), store
}

func TestModel_InitialRouteIsList(t *testing.T) {
	m, _ := newTestModel(t, scenarioFetcher(), "")
	if m.route.View != route.ViewList {
		t.Fatalf("initial view = %v, want list", m.route.View)
	}
	if !strings.Contains(m.View(), "Loading catalog...") {
		t.Fatalf("view before load should say Loading catalog")
	}
}

func TestModel_LoadsCatalogSortedByName(t *testing.T) {
	m, store := loaded(t, scenarioFetcher())

	want := []string{"Affligem Tripel", "Chimay Rouge", "Rochefort 8"}
	if diff := cmp.Diff(want, visibleNames(m)); diff != "" {
		t.Fatalf("visible beers mismatch (-want +got):\n%s", diff)
	}
	if got := len(store.Snapshot().Beers); got != 3 {
		t.Fatalf("store holds %d beers, want 3", got)
	}
	out := m.View()
	for _, s := range []string{"Number of beers in list: 3", "Affligem Tripel", "Sort by: Alphabetical"} {
		if !strings.Contains(out, s) {
			t.Fatalf("view missing %q:\n%s", s, out)
		}
	}
}

func TestModel_CatalogFailureLeavesListEmpty(t *testing.T) {
	f := scenarioFetcher()
	f.catalogErr = fmt.Errorf("fetch catalog: %w", catalog.ErrTransport)
	m, store := loaded(t, f)

	if len(m.vm.Beers) != 0 || m.vm.Count != 0 {
		t.Fatalf("view model after failure = %+v, want empty", m.vm)
	}
	if !errors.Is(store.Snapshot().LastError, catalog.ErrTransport) {
		t.Fatalf("store error = %v, want transport", store.Snapshot().LastError)
	}
	out := m.View()
	if !strings.Contains(out, "Number of beers in list: 0") || !strings.Contains(out, "No beers in catalog") {
		t.Fatalf("view after failure:\n%s", out)
	}
	if strings.Contains(out, "transport") {
		t.Fatalf("fetch error leaked into the UI:\n%s", out)
	}
}

func TestModel_SearchFiltersLive(t *testing.T) {
	m, _ := loaded(t, scenarioFetcher())

	m = update(t, m, runes("/"))
	if !m.searching {
		t.Fatalf("/ did not focus the search box")
	}
	m = typeText(t, m, "roc")
	if m.list.Query.Text != "roc" {
		t.Fatalf("query = %q, want roc", m.list.Query.Text)
	}
	if diff := cmp.Diff([]string{"Rochefort 8"}, visibleNames(m)); diff != "" {
		t.Fatalf("filtered beers mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(m.View(), "Number of beers in list: 1") {
		t.Fatalf("count line not updated:\n%s", m.View())
	}

	// Backspace edits the query while searching.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.list.Query.Text != "ro" || m.vm.Count != 2 {
		t.Fatalf("after backspace query=%q count=%d, want ro/2", m.list.Query.Text, m.vm.Count)
	}

	m = update(t, m, escKey)
	if m.searching {
		t.Fatalf("esc did not leave the search box")
	}
	// Keys navigate again once the box is closed.
	m = update(t, m, runes("j"))
	if m.list.Query.Text != "ro" || m.selected != 1 {
		t.Fatalf("after j query=%q selected=%d, want ro/1", m.list.Query.Text, m.selected)
	}

	// esc on the list clears the query.
	m = update(t, m, escKey)
	if m.list.Query.Text != "" || m.vm.Count != 3 {
		t.Fatalf("esc on list left query=%q count=%d", m.list.Query.Text, m.vm.Count)
	}
}

func TestModel_SortKeys(t *testing.T) {
	m, _ := loaded(t, scenarioFetcher())

	m = update(t, m, runes("s"))
	if m.list.Query.SortField != view.SortAlcohol {
		t.Fatalf("sort field = %q, want alcohol", m.list.Query.SortField)
	}
	if diff := cmp.Diff([]string{"Chimay Rouge", "Affligem Tripel", "Rochefort 8"}, visibleNames(m)); diff != "" {
		t.Fatalf("alcohol ascending mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(m.View(), "Alcohol content") {
		t.Fatalf("sort label not shown")
	}

	m = update(t, m, runes("d"))
	if diff := cmp.Diff([]string{"Rochefort 8", "Affligem Tripel", "Chimay Rouge"}, visibleNames(m)); diff != "" {
		t.Fatalf("alcohol descending mismatch (-want +got):\n%s", diff)
	}

	m = update(t, m, runes("s"))
	if diff := cmp.Diff([]string{"Rochefort 8", "Chimay Rouge", "Affligem Tripel"}, visibleNames(m)); diff != "" {
		t.Fatalf("name descending mismatch (-want +got):\n%s", diff)
	}
}

func TestModel_SelectionClamps(t *testing.T) {
	m, _ := loaded(t, scenarioFetcher())

	m = update(t, m, runes("k"))
	if m.selected != 0 {
		t.Fatalf("k at top moved selection to %d", m.selected)
	}
	m = update(t, m, runes("G"))
	if m.selected != 2 {
		t.Fatalf("G selected %d, want 2", m.selected)
	}
	m = update(t, m, runes("j"))
	if m.selected != 2 {
		t.Fatalf("j at bottom moved selection to %d", m.selected)
	}
	m = update(t, m, runes("g"))
	if m.selected != 0 {
		t.Fatalf("g selected %d, want 0", m.selected)
	}

	// Narrowing the list pulls the selection back in range.
	m = update(t, m, runes("G"))
	m = update(t, m, runes("/"))
	m = typeText(t, m, "roc")
	if m.selected != 0 {
		t.Fatalf("selection after filter = %d, want 0", m.selected)
	}
}

func TestModel_OpenDetailAndBack(t *testing.T) {
	f := scenarioFetcher()
	m, store := loaded(t, f)

	m = update(t, m, runes("G")) // Rochefort 8
	m, cmd := updateCmd(t, m, enterKey)
	if m.route.View != route.ViewDetail || m.route.BeerID != "rochefort-8" {
		t.Fatalf("route after enter = %+v, want detail rochefort-8", m.route)
	}
	if m.route.Path() != "/beer/rochefort-8" {
		t.Fatalf("route path = %q", m.route.Path())
	}
	if !strings.Contains(m.View(), "Loading beer...") {
		t.Fatalf("detail view should show loading before the fetch returns")
	}

	m = applyAll(t, m, drain(cmd))
	snap := store.Snapshot()
	if !snap.HasDetail() || snap.Detail.Brewery != "Abbaye Notre-Dame de Saint-Remy" {
		t.Fatalf("store detail = %#v", snap.Detail)
	}
	out := m.View()
	for _, s := range []string{
		"Rochefort 8", "9.2%", "Abbaye Notre-Dame de Saint-Remy", "Year round", "Dubbel",
		"Serving instructions", "/data/beers/img/rochefort-8.jpg",
	} {
		if !strings.Contains(out, s) {
			t.Fatalf("detail view missing %q:\n%s", s, out)
		}
	}

	m = update(t, m, runes("i"))
	if !m.showLabel {
		t.Fatalf("i did not switch to the label image")
	}
	if !strings.Contains(m.View(), "Showing /data/beers/img/rochefort-8-label.png") {
		t.Fatalf("label not shown after i:\n%s", m.View())
	}

	m = update(t, m, escKey)
	if m.route.View != route.ViewList {
		t.Fatalf("esc from detail = %v, want list", m.route.View)
	}
	if store.Snapshot().SelectedID != "" {
		t.Fatalf("selection not cleared after leaving detail")
	}
	if m.list.Query != view.DefaultQuery() || m.vm.Count != 3 {
		t.Fatalf("list state changed by detail navigation: %+v", m.list.Query)
	}
}

func TestModel_MissingDetailShowsNoBeerData(t *testing.T) {
	m, store := loaded(t, scenarioFetcher())

	m, cmd := updateCmd(t, m, navigateMsg{route: route.Parse("/beer/westvleteren-12")})
	m = applyAll(t, m, drain(cmd))

	if store.Snapshot().HasDetail() {
		t.Fatalf("store has a detail for a missing beer")
	}
	if !errors.Is(store.Snapshot().DetailError, catalog.ErrNotFound) {
		t.Fatalf("detail error = %v, want not found", store.Snapshot().DetailError)
	}
	if !strings.Contains(m.View(), noBeerData) {
		t.Fatalf("view missing %q:\n%s", noBeerData, m.View())
	}
}

func TestModel_LatestDetailRequestWins(t *testing.T) {
	f := scenarioFetcher()
	f.ignoreCtx = true // both fetches complete; only the newer may apply
	m, store := loaded(t, f)

	m, first := updateCmd(t, m, navigateMsg{route: route.Detail("chimay-rouge")})
	m = update(t, m, escKey)
	m, second := updateCmd(t, m, navigateMsg{route: route.Detail("rochefort-8")})

	// Newer result arrives first, the stale one last.
	m = applyAll(t, m, drain(second))
	m = applyAll(t, m, drain(first))

	snap := store.Snapshot()
	if snap.SelectedID != "rochefort-8" || !snap.HasDetail() || snap.Detail.ID != "rochefort-8" {
		t.Fatalf("store after out-of-order results = %+v", snap)
	}
	if !strings.Contains(m.View(), "Dubbel") {
		t.Fatalf("view does not show the latest beer")
	}
}

func TestModel_LeavingDetailCancelsFetch(t *testing.T) {
	f := scenarioFetcher()
	m, store := loaded(t, f)

	m, cmd := updateCmd(t, m, navigateMsg{route: route.Detail("rochefort-8")})
	m = update(t, m, escKey)
	if m.tasks.Running(kindDetail) {
		t.Fatalf("detail task still running after leaving the view")
	}

	// The cancelled fetch reports context.Canceled and is dropped.
	msgs := drain(cmd)
	if dm, ok := msgs[0].(detailLoadedMsg); !ok || !errors.Is(dm.err, context.Canceled) {
		t.Fatalf("cancelled fetch returned %#v, want context.Canceled", msgs[0])
	}
	m = applyAll(t, m, msgs)
	if store.Snapshot().DetailError != nil || m.route.View != route.ViewList {
		t.Fatalf("cancelled result was applied: %+v", store.Snapshot())
	}
}

func TestModel_ReloadSupersedesCatalog(t *testing.T) {
	f := scenarioFetcher()
	f.ignoreCtx = true
	m, _ := newTestModel(t, f, "")

	first := m.Init()
	m, second := updateCmd(t, m, runes("r"))

	f.mu.Lock()
	f.beers = f.beers[:1]
	f.mu.Unlock()

	m = applyAll(t, m, drain(second))
	f.mu.Lock()
	f.beers = scenarioFetcher().beers
	f.mu.Unlock()
	m = applyAll(t, m, drain(first))

	if m.vm.Total != 1 {
		t.Fatalf("catalog total = %d, want the reload's 1 beer", m.vm.Total)
	}
}

func TestModel_StartOnDetailRoute(t *testing.T) {
	f := scenarioFetcher()
	m, store := newTestModel(t, f, "#/beer/rochefort-8")
	m = applyAll(t, m, drain(m.Init()))

	if m.route.View != route.ViewDetail {
		t.Fatalf("start route = %v, want detail", m.route.View)
	}
	if !store.Snapshot().HasDetail() {
		t.Fatalf("detail not loaded for the start route")
	}
	if m.vm.Total != 3 {
		t.Fatalf("catalog not loaded alongside detail")
	}
}

func TestModel_UnknownRouteShowsNotFound(t *testing.T) {
	m, _ := loaded(t, scenarioFetcher())

	m, cmd := updateCmd(t, m, runes(":"))
	if m.modal == nil {
		t.Fatalf(": did not open the route prompt")
	}
	_ = cmd

	// Replace the prefilled path.
	for range "/beers" {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m = typeText(t, m, "/taps")
	m, cmd = updateCmd(t, m, enterKey)
	if m.modal != nil {
		t.Fatalf("enter did not close the prompt")
	}
	m = applyAll(t, m, drain(cmd))

	if m.route.View != route.ViewNotFound {
		t.Fatalf("route = %+v, want not found", m.route)
	}
	if !strings.Contains(m.View(), "Route not found: /taps") {
		t.Fatalf("not-found view:\n%s", m.View())
	}

	m = update(t, m, escKey)
	if m.route.View != route.ViewList {
		t.Fatalf("esc from not found = %v, want list", m.route.View)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m, _ := loaded(t, scenarioFetcher())

	m = update(t, m, runes("?"))
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	m = update(t, m, runes("x"))
	if m.showHelp {
		t.Fatalf("any key should close help")
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	m, _ := loaded(t, scenarioFetcher())
	if m.theme.Name != prefs.DefaultTheme {
		t.Fatalf("theme = %q, want %q", m.theme.Name, prefs.DefaultTheme)
	}

	m = update(t, m, runes("T"))
	if m.theme.Name != NextTheme(prefs.DefaultTheme) {
		t.Fatalf("theme after T = %q", m.theme.Name)
	}
	p, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != m.theme.Name {
		t.Fatalf("saved theme = %q, want %q", p.Theme, m.theme.Name)
	}
	if _, err := os.Stat(m.prefsPath); err != nil {
		t.Fatalf("prefs file not written: %v", err)
	}
}

func TestModel_QuitClosesTasks(t *testing.T) {
	f := scenarioFetcher()
	m, _ := newTestModel(t, f, "")
	fetch := m.Init()

	next, cmd := m.Update(runes("e"))
	if cmd == nil {
		t.Fatalf("e returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("e did not quit")
	}

	// The in-flight catalog fetch was cancelled and its result is stale.
	m = applyAll(t, next.(Model), drain(fetch))
	if m.loaded {
		t.Fatalf("result applied after quit")
	}
}

func TestNew_DefaultLoggerDiscards(t *testing.T) {
	m, _ := newTestModel(t, scenarioFetcher(), "")
	if m.logger == nil || m.logger.Out != io.Discard {
		t.Fatalf("default logger output = %v, want io.Discard", m.logger)
	}
}
