package ui

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"picgrid/internal/app"
	"picgrid/internal/config"
	"picgrid/internal/datastore"
	"picgrid/internal/domain"
	"picgrid/internal/eventbus"
	"picgrid/internal/gallery"
	"picgrid/internal/imageload"
	"picgrid/internal/logging"
	"picgrid/internal/modal"
	"picgrid/internal/schedule"
	"picgrid/internal/storage"
	"picgrid/internal/ui/input"
	inputtypes "picgrid/internal/ui/input/types"
	"picgrid/internal/ui/views"
)

// ReadyMarker is printed once the gallery is on screen when running under
// the end-to-end tests
const ReadyMarker = "__READY__"

const statusTimeout = 3 * time.Second

// Options configures the UI model
type Options struct {
	Config     *config.Config
	Bus        eventbus.EventBus
	Storage    storage.Store
	Timer      *schedule.Timer
	Source     string
	Query      url.Values
	SystemDark bool
	E2E        bool
}

// Model represents the UI state
type Model struct {
	opts   Options
	cfg    *config.Config
	bus    eventbus.EventBus
	ctx    context.Context
	cancel context.CancelFunc

	// UI-specific state
	width    int
	height   int
	sized    bool
	keys     keyMap
	help     help.Model
	viewer   *views.ViewerState
	tracker  modal.Tracker
	status   string
	statusOK bool
	seq      int
	fatal    error
	loading  bool
	query    url.Values

	renderer     *views.Renderer
	inputHandler *input.Handler
	loader       *imageload.Loader
	coord        *app.Coordinator
	unsubs       []func()
	stopWatch    context.CancelFunc

	// Commands queued by callbacks that cannot return them
	pending []tea.Cmd

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. Data is loaded by Init.
func NewModel(opts Options) *Model {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Bus == nil {
		opts.Bus = eventbus.New()
	}
	if opts.Storage == nil {
		opts.Storage = storage.NewMemory()
	}
	if opts.Timer == nil {
		opts.Timer = &schedule.Timer{}
	}
	if opts.Source == "" {
		opts.Source = opts.Config.DataSource
	}

	effective := domain.ThemeLight
	if opts.SystemDark {
		effective = domain.ThemeDark
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Model{
		opts:         opts,
		cfg:          opts.Config,
		bus:          opts.Bus,
		ctx:          ctx,
		cancel:       cancel,
		keys:         newKeyMap(),
		help:         help.New(),
		query:        opts.Query,
		renderer:     views.NewRenderer(views.NewStyles(effective, "")),
		inputHandler: input.New(),
		loading:      true,
	}
}

// SetProgram sets the program reference for terminal management and routes
// timer callbacks through the UI loop
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.opts.Timer.Post = m.post
}

// post hands fn to the UI loop
func (m *Model) post(fn func()) {
	if m.program == nil {
		fn()
		return
	}
	m.program.Send(runMsg{fn: fn})
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return loadData(m.ctx, m.opts.Source)
}

// Coordinator returns the running coordinator, nil until data is loaded
func (m *Model) Coordinator() *app.Coordinator {
	return m.coord
}

// Query returns the filter query to resume from
func (m *Model) Query() string {
	if m.coord != nil {
		return m.coord.Location.String()
	}
	if encoded := m.query.Encode(); encoded != "" {
		return "?" + encoded
	}
	return ""
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case runMsg:
		msg.fn()

	case dataLoadedMsg:
		m.onDataLoaded(msg)

	case thumbLoadedMsg:
		if m.coord != nil {
			m.coord.Gallery.CompleteLoad(msg.req, msg.res)
		}

	case viewerLoadedMsg:
		m.onViewerLoaded(msg)

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			logging.Warn("Help pager failed: %v", msg.err)
		}

	case clearStatusMsg:
		if msg.seq == m.seq {
			m.status = ""
		}

	default:
		// Handle non-keyboard messages
		cmd = m.inputHandler.Update(msg)
	}

	return m, m.flush(cmd)
}

// flush batches cmd with queued commands and thumbnail requests for cards
// that came near the window
func (m *Model) flush(cmd tea.Cmd) tea.Cmd {
	cmds := m.pending
	m.pending = nil
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.coord != nil && m.sized {
		if c := loadThumbs(m.ctx, m.loader, m.coord.Gallery.PendingNearViewport()); c != nil {
			cmds = append(cmds, c)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

// resize pushes the gallery area size to the coordinator. The first size is
// applied at once; later ones are debounced.
func (m *Model) resize() {
	if m.coord == nil || m.width == 0 {
		return
	}
	w, h := views.BodySize(m.width, m.height)
	if !m.sized {
		m.coord.Gallery.Resize(w, h)
		m.sized = true
		return
	}
	m.coord.Resize(w, h, nil)
}

func (m *Model) onDataLoaded(msg dataLoadedMsg) {
	m.loading = false
	if msg.err != nil {
		logging.Error("Failed to load gallery data from %s: %v", m.opts.Source, msg.err)
		m.fatal = msg.err
		m.bus.Publish(domain.ErrorEvent{Message: "failed to load gallery data", Err: msg.err})
		return
	}
	if err := m.start(msg.store); err != nil {
		logging.Error("Failed to start gallery: %v", err)
		m.fatal = err
		return
	}
	m.fatal = nil
	logging.Info("Loaded %d images from %s", len(msg.store.Images()), msg.store.Source())
}

// start builds the coordinator for a freshly loaded store
func (m *Model) start(store *datastore.Store) error {
	loader, err := imageload.NewLoader(imageload.Options{BaseDir: store.BaseDir()})
	if err != nil {
		return err
	}
	m.loader = loader

	cfg := m.cfg
	var pre modal.Preloader
	if cfg.Modal.Preload {
		pre = preloader{ctx: m.ctx, loader: loader, size: m.pictureSize}
	}

	coord, err := app.New(app.Options{
		Store:          store,
		Bus:            m.bus,
		Renderer:       m.renderer.Gallery(),
		Presenter:      viewerPresenter{m: m},
		Preloader:      pre,
		Applier:        m,
		Storage:        m.opts.Storage,
		Scheduler:      m.opts.Timer,
		Locale:         cfg.Locale,
		InitialQuery:   m.query,
		ViewMode:       domain.ViewMode(cfg.Gallery.DefaultView),
		SystemDark:     m.opts.SystemDark,
		ProximityRows:  cfg.Gallery.ProximityRows,
		Thumb:          gallery.CardSize{Width: cfg.Gallery.ThumbWidth, Height: cfg.Gallery.ThumbHeight},
		Placeholder:    placeholder,
		SearchDebounce: cfg.SearchDebounce(),
		ResizeDebounce: cfg.ResizeDebounce(),
		CloseGrace:     cfg.CloseGrace(),
		Gestures: modal.GestureConfig{
			MinDistance:   cfg.Gestures.MinDistance,
			MinVelocity:   cfg.Gestures.MinVelocity,
			MaxDuration:   time.Duration(cfg.Gestures.MaxDurationMS) * time.Millisecond,
			CloseDistance: cfg.Gestures.CloseDistance,
		},
	})
	if err != nil {
		return err
	}
	m.coord = coord

	m.unsubs = append(m.unsubs,
		m.bus.Subscribe(eventbus.EventModalOpened, func(eventbus.DomainEvent) {
			m.inputHandler.ChangeMode(inputtypes.ModeViewer, "", m.inputContext())
		}),
		m.bus.Subscribe(eventbus.EventModalClosed, func(eventbus.DomainEvent) {
			m.tracker = modal.Tracker{}
			m.inputHandler.ChangeMode(inputtypes.ModeNormal, "", m.inputContext())
		}),
		m.bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ErrorEvent); ok {
				m.setStatus(ev.Message, true)
			}
		}),
	)

	coord.Start()
	m.sized = false
	m.resize()

	if m.program != nil {
		ctx, cancel := context.WithCancel(m.ctx)
		m.stopWatch = cancel
		if err := coord.WatchStorage(ctx, m.post); err != nil {
			logging.Warn("Settings watcher disabled: %v", err)
		}
	}
	return nil
}

// stop tears the coordinator down, keeping the filter query
func (m *Model) stop() {
	if m.coord == nil {
		return
	}
	m.query = m.coord.Location.Query()
	if m.stopWatch != nil {
		m.stopWatch()
		m.stopWatch = nil
	}
	for _, unsub := range m.unsubs {
		unsub()
	}
	m.unsubs = nil
	m.coord.Close()
	m.coord = nil
	m.viewer = nil
	m.inputHandler.Reset()
}

// reload discards the running gallery and loads the data again
func (m *Model) reload() tea.Cmd {
	m.stop()
	m.loading = true
	m.fatal = nil
	m.setStatus("Reloading…", false)
	return loadData(m.ctx, m.opts.Source)
}

// Shutdown cancels background work
func (m *Model) Shutdown() {
	m.stop()
	m.cancel()
}

func (m *Model) inputContext() *input.ModelContext {
	ctx := &input.ModelContext{}
	if m.coord != nil {
		ctx.Focus = m.coord.Gallery.Focus()
		ctx.Count = m.coord.Gallery.Len()
		ctx.Viewer = m.coord.Modal.IsOpen()
		ctx.Term = m.coord.Filters.Criteria().SearchTerm
	}
	return ctx
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.coord == nil {
		switch msg.String() {
		case "q", "ctrl+c":
			return m.quit()
		case "r":
			if !m.loading {
				return m.reload()
			}
		}
		return nil
	}

	actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	return tea.Batch(cmds...)
}

func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	logging.Debug("processAction: %T", action)
	c := m.coord
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		switch a.Direction {
		case "up":
			c.Gallery.MoveFocus(0, -1)
		case "down":
			c.Gallery.MoveFocus(0, 1)
		case "left":
			c.Gallery.MoveFocus(-1, 0)
		case "right":
			c.Gallery.MoveFocus(1, 0)
		case "pageup":
			c.Gallery.PageUp()
		case "pagedown":
			c.Gallery.PageDown()
		case "home":
			c.Gallery.FocusFirst()
		case "end":
			c.Gallery.FocusLast()
		}

	case inputtypes.ActivateAction:
		if a.Index < 0 {
			c.Gallery.ActivateFocused()
		} else {
			c.Gallery.Activate(a.Index)
		}

	case inputtypes.UpdateTextAction:
		c.SearchInput(a.Text)

	case inputtypes.SubmitTextAction:
		c.FlushSearch(a.Text)

	case inputtypes.CancelTextAction:
		c.FlushSearch(a.Original)

	case inputtypes.CycleCategoryAction:
		c.Filters.CycleCategory(c.Categories(), a.Step)

	case inputtypes.CycleSortAction:
		c.Filters.CycleSort()

	case inputtypes.ToggleOrderAction:
		c.Filters.ToggleOrder()

	case inputtypes.ClearFiltersAction:
		c.Filters.Reset()
		m.setStatus("Filters cleared", false)

	case inputtypes.ToggleViewAction:
		mode := c.Gallery.ToggleView()
		m.setStatus(fmt.Sprintf("%s view", mode), false)

	case inputtypes.ToggleThemeAction:
		c.Theme.Toggle()
		m.setStatus(fmt.Sprintf("Theme: %s", c.Theme.Mode()), false)

	case inputtypes.ToggleHelpAction:
		if m.program == nil {
			return nil
		}
		return m.showHelp()

	case inputtypes.ViewerKeyAction:
		c.Modal.HandleKey(modal.Key{Name: a.Key, InTextInput: m.inputHandler.InTextInput()})

	case inputtypes.ReloadAction:
		return m.reload()

	case inputtypes.QuitAction:
		return m.quit()
	}
	return m.statusTimer()
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.coord == nil {
		return
	}
	c := m.coord
	now := time.Now()

	if c.Modal.IsOpen() {
		switch {
		case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
			c.Modal.Navigate(-1)
		case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
			c.Modal.Navigate(1)
		case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			m.tracker.Press(modal.Point{X: msg.X, Y: msg.Y}, now)
		case msg.Action == tea.MouseActionRelease:
			if g, ok := m.tracker.Release(modal.Point{X: msg.X, Y: msg.Y}, now); ok {
				kind := c.Modal.HandleGesture(g)
				logging.Debug("Gesture %s", kind)
			}
		}
		return
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		c.Gallery.Scroll(-1)
	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		c.Gallery.Scroll(1)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if index, ok := c.Gallery.CardAt(msg.X, msg.Y-views.BodyTop); ok {
			c.Gallery.FocusIndex(index)
			c.Gallery.Activate(index)
		}
	}
}

func (m *Model) onViewerLoaded(msg viewerLoadedMsg) {
	if m.viewer == nil || m.coord == nil || m.viewer.Image.ID != msg.id || m.coord.Modal.CurrentIndex() != msg.index {
		return
	}
	m.viewer.Loading = false
	m.viewer.Err = msg.err
	m.viewer.Picture = msg.picture
	if msg.err != nil {
		logging.Warn("Viewer could not load %s: %v", msg.id, msg.err)
	}
}

// pictureSize is the viewer picture area in cells
func (m *Model) pictureSize() (int, int) {
	return views.PictureSize(m.width, m.height)
}

// ApplyTheme implements theme.Applier
func (m *Model) ApplyTheme(effective domain.ThemeMode, chromeColor string) {
	m.renderer.SetStyles(views.NewStyles(effective, chromeColor))
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusOK = !isErr
	m.seq++
}

func (m *Model) statusTimer() tea.Cmd {
	if m.status == "" {
		return nil
	}
	seq := m.seq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *Model) quit() tea.Cmd {
	if m.coord != nil {
		m.query = m.coord.Location.Query()
	}
	return tea.Quit
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.loading && m.coord == nil {
		return m.renderer.Styles().Dim.Render(fmt.Sprintf("Loading %s…", m.opts.Source))
	}

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		StatusMessage: m.status,
		StatusIsError: m.status != "" && !m.statusOK,
		HelpLine:      m.shortHelp(),
		Fatal:         m.fatal,
	}
	if m.coord != nil {
		c := m.coord
		state.Gallery = c.Gallery
		state.Criteria = c.Filters.Criteria()
		state.Location = c.Location.String()
		state.Total = len(c.Store().Images())
		state.Theme = c.Theme.Effective()
		if c.Modal.IsOpen() && m.viewer != nil {
			viewer := *m.viewer
			viewer.Label = c.Modal.PositionLabel()
			state.Viewer = &viewer
		}
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		state.InSearch = true
		state.SearchPrompt = m.inputHandler.Prompt()
		state.SearchInput = ti.View()
	}
	if m.opts.E2E && m.coord != nil {
		state.HelpLine = ReadyMarker + " " + state.HelpLine
	}
	return m.renderer.Render(state)
}

// viewerPresenter is the terminal side of the modal navigator
type viewerPresenter struct {
	m *Model
}

func (p viewerPresenter) Show(img domain.Image, index, count int) {
	m := p.m
	w, h := m.pictureSize()
	m.viewer = &views.ViewerState{
		Image:   img,
		Label:   fmt.Sprintf("%d / %d", index+1, count),
		Loading: true,
	}
	m.queue(loadViewerImage(m.ctx, m.loader, img, index, w, h))
}

func (p viewerPresenter) Release() {
	if p.m.coord != nil && p.m.coord.Modal.IsOpen() {
		return
	}
	p.m.viewer = nil
}

func (p viewerPresenter) LockScroll(bool) {}

// placeholder renders the fallback picture for a card whose image failed
func placeholder(title string, width, height int) string {
	return imageload.HalfBlock(imageload.Placeholder(title, width, height*2))
}
