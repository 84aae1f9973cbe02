package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/beerdex/internal/catalog"
	"github.com/five82/beerdex/internal/logging"
	"github.com/five82/beerdex/internal/prefs"
	"github.com/five82/beerdex/internal/route"
	"github.com/five82/beerdex/internal/state"
	"github.com/five82/beerdex/internal/task"
	"github.com/five82/beerdex/internal/view"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Fetcher   catalog.Fetcher
	Store     *state.Store
	Logger    *logrus.Logger
	ThemeName string
	PrefsPath string
	// Route is the initial path; empty opens /beers.
	Route string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	fetcher   catalog.Fetcher
	store     *state.Store
	logger    *logrus.Logger
	tasks     *task.Group
	prefsPath string
	keys      keyMap

	theme  Theme
	width  int
	height int
	ready  bool

	route route.Route

	// List
	list      view.ListState
	vm        view.ViewModel
	selected  int
	offset    int
	search    textinput.Model
	searching bool
	loaded    bool

	// Detail
	detail    viewport.Model
	showLabel bool

	showHelp bool
	modal    Modal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "type to filter by name"
	search.CharLimit = 64

	m := Model{
		fetcher:   opts.Fetcher,
		store:     store,
		logger:    logger,
		tasks:     task.NewGroup(ctx),
		prefsPath: prefsPath,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		route:     route.Parse(opts.Route),
		list:      view.NewListState(),
		search:    search,
	}
	m.vm = view.DeriveView(m.list)
	return m
}

// Init implements tea.Model. It loads the catalog and, when the model
// starts on a detail route, the beer it points at.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchCatalog()}
	if m.route.View == route.ViewDetail {
		m.store.Select(m.route.BeerID)
		cmds = append(cmds, m.fetchDetail(m.route.BeerID))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detail = viewport.New(m.detailWidth(), m.detailHeight())
		} else {
			m.detail.Width = m.detailWidth()
			m.detail.Height = m.detailHeight()
		}
		m.ready = true
		m.clampSelection()
		m.updateDetailViewport()
		return m, nil

	case catalogLoadedMsg:
		return m.handleCatalogLoaded(msg), nil

	case detailLoadedMsg:
		return m.handleDetailLoaded(msg), nil

	case navigateMsg:
		return m.navigate(msg.route)
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}
	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	switch m.route.View {
	case route.ViewDetail:
		b.WriteString(m.renderDetail())
	case route.ViewNotFound:
		b.WriteString(m.renderNotFound())
	default:
		b.WriteString(m.renderList())
	}
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.modal != nil {
		return m.updateModal(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.logger.WithError(err).Warn("save prefs")
		}
		m.updateDetailViewport()
		return m, nil

	case key.Matches(msg, m.keys.GoTo):
		prompt, cmd := newRoutePrompt(m.route.Path())
		m.modal = prompt
		return m, cmd
	}

	switch m.route.View {
	case route.ViewDetail:
		return m.handleDetailKey(msg)
	case route.ViewNotFound:
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Confirm) {
			return m.navigate(route.List())
		}
		return m, nil
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	modal, cmd, closed := m.modal.Update(msg, m.keys)
	if closed {
		m.modal = nil
	} else {
		m.modal = modal
	}
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.tasks.Close()
	return m, tea.Quit
}

// navigate switches to r. Leaving the detail view cancels its fetch;
// entering it starts a new one.
func (m Model) navigate(r route.Route) (tea.Model, tea.Cmd) {
	m.route = r
	m.showLabel = false

	if r.View != route.ViewDetail {
		m.tasks.Cancel(kindDetail)
		m.store.Select("")
		return m, nil
	}

	m.store.Select(r.BeerID)
	cmd := m.fetchDetail(r.BeerID)
	m.detail.GotoTop()
	m.updateDetailViewport()
	return m, cmd
}

// Messages

type catalogLoadedMsg struct {
	handle task.Handle
	beers  []catalog.Beer
	err    error
}

type detailLoadedMsg struct {
	handle task.Handle
	id     string
	beer   catalog.Beer
	err    error
}

// Commands

// fetchCatalog starts a catalog task, superseding any in flight.
func (m Model) fetchCatalog() tea.Cmd {
	h := m.tasks.Start(kindCatalog)
	fetcher := m.fetcher
	m.logger.WithFields(logrus.Fields{"resource": "catalog", "task": h.ID}).Debug("fetch started")
	return func() tea.Msg {
		if fetcher == nil {
			return catalogLoadedMsg{handle: h, err: errors.New("no catalog source configured")}
		}
		beers, err := fetcher.FetchCatalog(h.Ctx)
		return catalogLoadedMsg{handle: h, beers: beers, err: err}
	}
}

// fetchDetail starts a detail task for id, superseding any in flight.
func (m Model) fetchDetail(id string) tea.Cmd {
	h := m.tasks.Start(kindDetail)
	fetcher := m.fetcher
	m.logger.WithFields(logrus.Fields{"resource": "detail", "id": id, "task": h.ID}).Debug("fetch started")
	return func() tea.Msg {
		if fetcher == nil {
			return detailLoadedMsg{handle: h, id: id, err: errors.New("no catalog source configured")}
		}
		beer, err := fetcher.FetchDetail(h.Ctx, id)
		return detailLoadedMsg{handle: h, id: id, beer: beer, err: err}
	}
}

func (m Model) handleCatalogLoaded(msg catalogLoadedMsg) Model {
	fields := logrus.Fields{"resource": "catalog", "task": msg.handle.ID}
	if !m.tasks.Current(msg.handle) {
		m.logger.WithFields(fields).Debug("dropping superseded result")
		return m
	}
	m.tasks.Done(msg.handle)

	if msg.err != nil {
		m.logFetchError(fields, msg.err)
	} else {
		m.logger.WithFields(fields).WithField("beers", len(msg.beers)).Info("catalog loaded")
	}
	m.store.SetCatalog(msg.beers, msg.err)
	m.list = m.list.SetCatalog(m.store.Snapshot().Beers)
	m.loaded = true
	m.refreshList()
	return m
}

func (m Model) handleDetailLoaded(msg detailLoadedMsg) Model {
	fields := logrus.Fields{"resource": "detail", "id": msg.id, "task": msg.handle.ID}
	if !m.tasks.Current(msg.handle) {
		m.logger.WithFields(fields).Debug("dropping superseded result")
		return m
	}
	m.tasks.Done(msg.handle)

	if msg.err != nil {
		m.logFetchError(fields, msg.err)
	}
	m.store.SetDetail(msg.id, msg.beer, msg.err)
	m.updateDetailViewport()
	return m
}

// logFetchError records a failed fetch. Cancellation is routine and only
// logged at debug.
func (m Model) logFetchError(fields logrus.Fields, err error) {
	entry := m.logger.WithFields(fields).WithError(err)
	if errors.Is(err, context.Canceled) {
		entry.Debug("fetch cancelled")
		return
	}
	entry.Warn("fetch failed")
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(contextOrBackground(opts.Context)))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
