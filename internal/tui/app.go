package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/trouvetonpro/dalil/internal/config"
	"github.com/trouvetonpro/dalil/internal/directory"
	"github.com/trouvetonpro/dalil/internal/logger"
	"github.com/trouvetonpro/dalil/internal/service"
)

// Directory is what the screens need from the service layer.
type Directory interface {
	Roster(ctx context.Context) (service.Roster, error)
	Detail(ctx context.Context, id string) (directory.Worker, error)
	ToggleFavorite(ctx context.Context, w directory.Worker) (bool, error)
	LoadSort() directory.SortKey
	SaveSort(k directory.SortKey) error
}

// Selection is what the list hands to the detail screen.
type Selection struct {
	WorkerID   string
	WorkerName string
}

// App ties together the list and detail screens.
type App struct {
	ctx     context.Context
	dir     Directory
	log     logger.Logger
	cmp     directory.Comparer
	baseURL string
	rtl     bool

	state   appState
	fetchID int
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	search  textinput.Model

	workers    []directory.Worker
	favorites  map[string]bool
	category   string
	sort       directory.SortKey
	onlyFavs   bool
	visible    []directory.Worker
	cursor     int
	suggestion string

	selected  Selection
	detail    *directory.Worker
	detailErr bool

	width  int
	height int
	status string
}

type appState string

const (
	viewLoading appState = "loading"
	viewFailed  appState = "failed"
	viewList    appState = "list"
	viewDetail  appState = "detail"
)

type rosterMsg struct {
	fetchID int
	roster  service.Roster
	err     error
}

type detailMsg struct {
	id     string
	worker directory.Worker
	err    error
}

type favoriteMsg struct {
	id  string
	on  bool
	err error
}

type statusMsg string

// New builds the app. A locale the collator cannot parse falls back to
// byte order rather than failing.
func New(ctx context.Context, cfg config.Config, dir Directory, log logger.Logger) *App {
	if log == nil {
		log = logger.Nop()
	}
	var cmp directory.Comparer
	if c, err := directory.NewCollator(cfg.UI.Locale); err != nil {
		log.Warn(ctx, "collator unavailable, using byte order", logger.Error(err))
	} else {
		cmp = c
	}

	ti := textinput.New()
	ti.Placeholder = "ابحث بالاسم، المدينة، المهنة..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 64
	_ = ti.Cursor.SetMode(cursor.CursorStatic)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	return &App{
		ctx:      ctx,
		dir:      dir,
		log:      log.Named("tui"),
		cmp:      cmp,
		baseURL:  cfg.API.BaseURL,
		rtl:      cfg.UI.RTL,
		state:    viewLoading,
		keys:     defaultKeys(),
		help:     help.New(),
		spinner:  sp,
		search:   ti,
		category: directory.AllCategories,
		sort:     dir.LoadSort(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.focusList()
}

// focusList is run whenever the list becomes the active screen: it drops
// the current roster and fetches a fresh one. Search, category and sort
// survive.
func (a *App) focusList() tea.Cmd {
	a.state = viewLoading
	a.fetchID++
	id := a.fetchID
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		r, err := a.dir.Roster(a.ctx)
		return rosterMsg{fetchID: id, roster: r, err: err}
	})
}

func (a *App) loadDetail(id string) tea.Cmd {
	return func() tea.Msg {
		w, err := a.dir.Detail(a.ctx, id)
		return detailMsg{id: id, worker: w, err: err}
	}
}

func (a *App) toggleFavoriteCmd(w directory.Worker) tea.Cmd {
	return func() tea.Msg {
		on, err := a.dir.ToggleFavorite(a.ctx, w)
		return favoriteMsg{id: w.ID, on: on, err: err}
	}
}

func (a *App) saveSortCmd(k directory.SortKey) tea.Cmd {
	return func() tea.Msg {
		if err := a.dir.SaveSort(k); err != nil {
			a.log.Warn(a.ctx, "save sort", logger.Error(err))
			return statusMsg("تعذر حفظ ترتيب الفرز")
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		a.search.Width = max(10, m.Width-6)
	case tea.KeyMsg:
		switch a.state {
		case viewList:
			return a.handleListKey(m)
		case viewDetail:
			return a.handleDetailKey(m)
		case viewFailed:
			switch {
			case key.Matches(m, a.keys.Quit):
				return a, tea.Quit
			case key.Matches(m, a.keys.Retry):
				return a, a.focusList()
			}
		default:
			if key.Matches(m, a.keys.Quit) {
				return a, tea.Quit
			}
		}
	case spinner.TickMsg:
		if a.state != viewLoading && !(a.state == viewDetail && a.detail == nil && !a.detailErr) {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case rosterMsg:
		if m.fetchID != a.fetchID || a.state != viewLoading {
			return a, nil
		}
		if m.err != nil {
			a.log.Warn(a.ctx, "fetch workers", logger.Error(m.err))
			a.workers, a.visible = nil, nil
			a.state = viewFailed
			return a, nil
		}
		a.applyRoster(m.roster)
		a.state = viewList
	case detailMsg:
		if a.state != viewDetail || m.id != a.selected.WorkerID {
			return a, nil
		}
		if m.err != nil {
			a.log.Warn(a.ctx, "fetch worker", logger.String("worker_id", m.id), logger.Error(m.err))
			a.detailErr = true
			return a, nil
		}
		w := m.worker
		a.detail = &w
	case favoriteMsg:
		if m.err != nil {
			a.log.Warn(a.ctx, "toggle favorite", logger.String("worker_id", m.id), logger.Error(m.err))
			a.status = "تعذر تحديث المفضلة"
			return a, nil
		}
		if a.favorites == nil {
			a.favorites = map[string]bool{}
		}
		if m.on {
			a.favorites[m.id] = true
			a.status = "أضيف إلى المفضلة"
		} else {
			delete(a.favorites, m.id)
			a.status = "أزيل من المفضلة"
		}
		a.refresh()
	case statusMsg:
		a.status = string(m)
	}
	return a, nil
}

func (a *App) applyRoster(r service.Roster) {
	a.workers = r.Workers
	a.favorites = r.Favorites
	if a.favorites == nil {
		a.favorites = map[string]bool{}
	}
	known := false
	for _, c := range directory.Categories(a.workers) {
		if c == a.category {
			known = true
			break
		}
	}
	if !known {
		a.category = directory.AllCategories
	}
	a.refresh()
}

// refresh recomputes the visible rows from the roster and the current query.
func (a *App) refresh() {
	q := directory.Query{
		Search:   a.search.Value(),
		Category: a.category,
		Sort:     a.sort,
	}
	if a.onlyFavs {
		q.OnlyIDs = a.favorites
	}
	a.visible = directory.Apply(a.workers, q, a.cmp)
	if a.cursor >= len(a.visible) {
		a.cursor = max(0, len(a.visible)-1)
	}
	a.suggestion = ""
	if len(a.visible) == 0 && q.Search != "" {
		if s, ok := directory.Suggest(a.workers, q.Search); ok {
			a.suggestion = s
		}
	}
}

func (a *App) handleListKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.search.Focused() {
		switch {
		case m.Type == tea.KeyCtrlC:
			return a, tea.Quit
		case m.Type == tea.KeyEsc, m.Type == tea.KeyEnter:
			a.search.Blur()
			return a, nil
		case key.Matches(m, a.keys.Accept):
			a.acceptSuggestion()
			return a, nil
		}
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(m)
		a.cursor = 0
		a.refresh()
		return a, cmd
	}

	a.status = ""
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Search):
		return a, a.search.Focus()
	case key.Matches(m, a.keys.Accept):
		a.acceptSuggestion()
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(a.visible)-1 {
			a.cursor++
		}
	case key.Matches(m, a.keys.Left):
		a.stepCategory(a.leftStep())
	case key.Matches(m, a.keys.Right):
		a.stepCategory(-a.leftStep())
	case key.Matches(m, a.keys.Sort):
		a.sort = a.sort.Next()
		a.refresh()
		return a, a.saveSortCmd(a.sort)
	case key.Matches(m, a.keys.OnlyFavs):
		a.onlyFavs = !a.onlyFavs
		a.cursor = 0
		a.refresh()
	case key.Matches(m, a.keys.Favorite):
		if w, ok := a.current(); ok {
			return a, a.toggleFavoriteCmd(w)
		}
	case key.Matches(m, a.keys.Retry):
		return a, a.focusList()
	case key.Matches(m, a.keys.Open):
		if w, ok := a.current(); ok {
			return a, a.openDetail(Selection{WorkerID: w.ID, WorkerName: w.FullName()})
		}
	}
	return a, nil
}

func (a *App) handleDetailKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Back):
		a.detail, a.detailErr = nil, false
		a.status = ""
		return a, a.focusList()
	case key.Matches(m, a.keys.Favorite):
		if a.detail != nil {
			return a, a.toggleFavoriteCmd(*a.detail)
		}
	}
	return a, nil
}

func (a *App) openDetail(sel Selection) tea.Cmd {
	a.selected = sel
	a.detail, a.detailErr = nil, false
	a.state = viewDetail
	a.status = ""
	return tea.Batch(a.spinner.Tick, a.loadDetail(sel.WorkerID))
}

// leftStep is the category index delta for the left arrow. Chips run
// right to left in RTL, so left moves forward there.
func (a *App) leftStep() int {
	if a.rtl {
		return 1
	}
	return -1
}

// stepCategory moves the selected chip and clears the search, the same as
// picking a chip directly.
func (a *App) stepCategory(delta int) {
	cats := directory.Categories(a.workers)
	idx := 0
	for i, c := range cats {
		if c == a.category {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(cats)) % len(cats)
	a.selectCategory(cats[idx])
}

func (a *App) selectCategory(c string) {
	a.category = c
	a.search.SetValue("")
	a.cursor = 0
	a.refresh()
}

func (a *App) acceptSuggestion() {
	if a.suggestion == "" {
		return
	}
	a.search.SetValue(a.suggestion)
	a.search.CursorEnd()
	a.cursor = 0
	a.refresh()
}

func (a *App) current() (directory.Worker, bool) {
	if a.cursor < 0 || a.cursor >= len(a.visible) {
		return directory.Worker{}, false
	}
	return a.visible[a.cursor], true
}

// Selected reports the worker the detail screen was opened for.
func (a *App) Selected() Selection { return a.selected }
