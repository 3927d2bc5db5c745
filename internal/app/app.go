// Package app implements the lazyfm terminal UI: a directory listing table
// with a contextual, permission-gated action menu per entry.
package app

import (
	"context"
	"path"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"lazyfm/internal/api"
	"lazyfm/internal/cache"
	"lazyfm/internal/config"
	"lazyfm/internal/log"
	"lazyfm/internal/models"
	"lazyfm/internal/notify"
	"lazyfm/internal/perm"
	"lazyfm/internal/theme"
)

// MenuOpenRequest asks the model to open the action menu for one entry at
// the given screen coordinates. Sibling components (a context-click handler,
// a search pane) send these through the channel returned by MenuRequests.
type MenuOpenRequest struct {
	UUID uuid.UUID
	X    int
	Y    int
}

// Model is the Bubble Tea model for the file listing and its action menu.
type Model struct {
	// Configuration and collaborators
	config  *config.AppConfig
	th      *theme.Theme
	client  *api.Client
	cache   *cache.Cache
	gate    *perm.Gate
	flashes *notify.Channel

	// Listing state
	dir           string
	entries       []models.FileEntry
	listingLoaded bool

	// UI components
	entryTable table.Model
	spin       spinner.Model

	// Transient view state, reset on dismissal
	menu  *ActionMenu
	modal modalState
	busy  bool

	currentScreen screenType
	inputScreen   *InputScreen
	inputSubmit   func(string) (tea.Cmd, bool)
	confirmScreen *ConfirmScreen
	confirmAction func() tea.Cmd
	helpScreen    *HelpScreen

	// External event channels
	menuRequests chan MenuOpenRequest
	configEvents <-chan *config.AppConfig

	// Layout
	windowWidth  int
	windowHeight int

	statusContent string
	busyLabel     string
	quitting      bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewModel creates the application model rooted at dir.
func NewModel(cfg *config.AppConfig, client *api.Client, dir string) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	th := theme.Get(cfg.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(th.Accent)

	columns := []table.Column{
		{Title: "Name", Width: 40},
		{Title: "Size", Width: 10},
		{Title: "Modified", Width: 18},
	}
	entryTable := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(th.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(th.Accent)
	styles.Selected = styles.Selected.
		Foreground(th.AccentFg).
		Background(th.Accent).
		Bold(false)
	entryTable.SetStyles(styles)

	if dir == "" {
		dir = "/"
	}

	m := &Model{
		config:       cfg,
		th:           th,
		client:       client,
		gate:         perm.NewGate(nil),
		flashes:      notify.NewChannel(time.Duration(cfg.FlashTimeoutSeconds) * time.Second),
		dir:          dir,
		entryTable:   entryTable,
		spin:         sp,
		menuRequests: make(chan MenuOpenRequest, 8),
		ctx:          ctx,
		cancel:       cancel,
	}
	m.cache = cache.New(func(ctx context.Context, dir string) ([]models.FileEntry, error) {
		return client.List(ctx, dir)
	})
	return m
}

// MenuRequests returns the channel sibling components use to open an
// entry's action menu programmatically.
func (m *Model) MenuRequests() chan<- MenuOpenRequest {
	return m.menuRequests
}

// SetConfigEvents attaches a config reload channel, typically a
// config.Watcher's Events.
func (m *Model) SetConfigEvents(ch <-chan *config.AppConfig) {
	m.configEvents = ch
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.loadListingCmd(m.dir),
		m.loadPermissionsCmd(),
		m.waitForMenuRequest(),
	}
	if m.configEvents != nil {
		cmds = append(cmds, m.waitForConfigReload())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.layoutTable()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case menuOpenMsg:
		cmd := m.handleMenuOpen(msg)
		return m, tea.Batch(cmd, m.waitForMenuRequest())

	case configReloadedMsg:
		m.applyConfig(msg.cfg)
		return m, m.waitForConfigReload()

	case flashTickMsg:
		// Re-render; Current() prunes expired flashes.
		if _, ok := m.flashes.Current(); ok {
			return m, m.flashTick()
		}
		return m, nil
	}

	return m.handleResultMessages(msg)
}

// handleKeyMsg processes keyboard input, routing to the active overlay
// first.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == keyCtrlC {
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	}

	if m.currentScreen != screenNone {
		return m.handleScreenKey(msg)
	}

	if m.menu != nil {
		return m.handleMenuKey(msg)
	}

	return m.handleListKey(msg)
}

// handleListKey handles keys when the listing table has focus.
func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQ:
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	case "j", keyDown:
		m.entryTable.MoveDown(1)
		return m, nil
	case "k", keyUp:
		m.entryTable.MoveUp(1)
		return m, nil
	case "g":
		m.entryTable.GotoTop()
		return m, nil
	case "G":
		m.entryTable.GotoBottom()
		return m, nil
	case keyEnter, "l", "right":
		if entry, ok := m.selectedEntry(); ok && !entry.IsFile {
			return m, m.changeDir(entry.Path(m.dir))
		}
		return m, nil
	case "backspace", "h", "-", "left":
		return m, m.changeDir(parentDir(m.dir))
	case "R":
		return m, m.loadListingCmd(m.dir)
	case " ", "o":
		if entry, ok := m.selectedEntry(); ok {
			m.openMenuFor(entry, m.menuAnchorX(), m.menuAnchorY())
		}
		return m, nil
	case "?":
		m.helpScreen = NewHelpScreen(m.windowWidth, m.windowHeight, m.th)
		m.currentScreen = screenHelp
		return m, nil
	}
	return m, nil
}

// handleMenuKey handles keys while the action menu is open.
func (m *Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case keyEsc, keyQ, " ":
		m.closeMenu()
		return m, nil
	case "j", keyDown:
		m.menu.MoveDown()
		return m, nil
	case "k", keyUp:
		m.menu.MoveUp()
		return m, nil
	case keyEnter:
		if row, ok := m.menu.Selected(); ok {
			entry := m.menu.entry
			m.closeMenu()
			return m, m.dispatchAction(row.action, entry)
		}
		m.closeMenu()
		return m, nil
	}
	if row, ok := m.menu.RowForKey(key); ok {
		entry := m.menu.entry
		m.closeMenu()
		return m, m.dispatchAction(row.action, entry)
	}
	return m, nil
}

// handleScreenKey routes keys to the active modal screen.
func (m *Model) handleScreenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.currentScreen {
	case screenInput:
		return m.handleInputScreenKey(msg)
	case screenConfirm:
		return m.handleConfirmScreenKey(msg)
	case screenHelp:
		return m.handleHelpScreenKey(msg)
	case screenNone:
	}
	return m, nil
}

func (m *Model) handleInputScreenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		if m.inputSubmit != nil {
			cmd, done := m.inputSubmit(m.inputScreen.Value())
			if done {
				m.dismissInput()
			}
			return m, cmd
		}
		m.dismissInput()
		return m, nil
	case keyEsc:
		m.dismissInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.inputScreen.input, cmd = m.inputScreen.input.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmScreenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "right", "left", "h", "l":
		m.confirmScreen.Toggle()
		return m, nil
	case "y", "Y":
		return m.acceptConfirm()
	case "n", "N", keyEsc, keyQ:
		m.dismissConfirm()
		return m, nil
	case keyEnter:
		if m.confirmScreen.Accepted() {
			return m.acceptConfirm()
		}
		m.dismissConfirm()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleHelpScreenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc, keyQ, "?":
		m.helpScreen = nil
		m.currentScreen = screenNone
		return m, nil
	case "j", keyDown:
		m.helpScreen.ScrollDown()
		return m, nil
	case "k", keyUp:
		m.helpScreen.ScrollUp()
		return m, nil
	}
	return m, nil
}

// handleMouseMsg opens the action menu on right-click, mirroring the
// context-menu gesture of the web UI.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonRight {
		return m, nil
	}
	if m.currentScreen != screenNone {
		return m, nil
	}
	row := msg.Y - listingHeaderHeight
	if row < 0 || row >= len(m.entries) {
		return m, nil
	}
	entry := m.entries[row]
	m.entryTable.SetCursor(row)
	m.openMenuFor(entry, msg.X, msg.Y)
	return m, nil
}

// handleMenuOpen services a programmatic open request. A request naming an
// entry that is not in the current listing is ignored.
func (m *Model) handleMenuOpen(msg menuOpenMsg) tea.Cmd {
	for i, entry := range m.entries {
		if entry.UUID == msg.req.UUID {
			m.entryTable.SetCursor(i)
			m.openMenuFor(entry, msg.req.X, msg.req.Y)
			return nil
		}
	}
	log.Debugf("menu open request for unknown entry %s", msg.req.UUID)
	return nil
}

func (m *Model) openMenuFor(entry models.FileEntry, x, y int) {
	m.menu = newActionMenu(entry, m.gate, m.th, x, y)
}

func (m *Model) closeMenu() {
	m.menu = nil
}

func (m *Model) acceptConfirm() (tea.Model, tea.Cmd) {
	action := m.confirmAction
	m.dismissConfirm()
	if action != nil {
		return m, action()
	}
	return m, nil
}

func (m *Model) dismissConfirm() {
	m.confirmScreen = nil
	m.confirmAction = nil
	m.currentScreen = screenNone
}

func (m *Model) dismissInput() {
	m.inputScreen = nil
	m.inputSubmit = nil
	m.modal = modalNone
	m.currentScreen = screenNone
}

func (m *Model) showConfirm(message string, action func() tea.Cmd) {
	m.confirmScreen = NewConfirmScreen(message, m.th)
	m.confirmAction = action
	m.currentScreen = screenConfirm
}

// applyConfig picks up a live-reloaded configuration. Only presentation
// settings change at runtime; server profiles need a restart.
func (m *Model) applyConfig(cfg *config.AppConfig) {
	m.config.Theme = cfg.Theme
	m.config.ShowIcons = cfg.ShowIcons
	m.config.HumanSizes = cfg.HumanSizes
	m.config.ConfirmDelete = cfg.ConfirmDelete
	m.th = theme.Get(cfg.Theme)
	m.spin.Style = lipgloss.NewStyle().Foreground(m.th.Accent)
	m.updateTable()
	log.Debugf("applied reloaded config: theme=%s icons=%v", cfg.Theme, cfg.ShowIcons)
}

func (m *Model) selectedEntry() (models.FileEntry, bool) {
	idx := m.entryTable.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return models.FileEntry{}, false
	}
	return m.entries[idx], true
}

// menuAnchorX returns the column the keyboard-opened menu is anchored at.
func (m *Model) menuAnchorX() int {
	return 4
}

// menuAnchorY anchors the keyboard-opened menu next to the selected row.
func (m *Model) menuAnchorY() int {
	return listingHeaderHeight + m.entryTable.Cursor()
}

func parentDir(dir string) string {
	if dir == "" {
		return "/"
	}
	parent := path.Dir(path.Clean(dir))
	if parent == "." {
		return "/"
	}
	return parent
}
