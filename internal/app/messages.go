package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"lazyfm/internal/config"
	"lazyfm/internal/log"
	"lazyfm/internal/models"
	"lazyfm/internal/notify"
)

// Message types for the Bubble Tea app.
type (
	listingLoadedMsg struct {
		dir     string
		entries []models.FileEntry
		err     error
	}
	permissionsLoadedMsg struct {
		caps map[string]bool
		err  error
	}
	copyResultMsg struct {
		dir     string
		name    string
		entries []models.FileEntry
		err     error
	}
	downloadResultMsg struct {
		name string
		url  string
		err  error
	}
	compressResultMsg struct {
		dir     string
		name    string
		entries []models.FileEntry
		err     error
	}
	deleteResultMsg struct {
		dir     string
		name    string
		entries []models.FileEntry
		err     error
	}
	renameResultMsg struct {
		dir     string
		from    string
		to      string
		entries []models.FileEntry
		err     error
	}
	moveResultMsg struct {
		dir     string
		name    string
		dest    string
		entries []models.FileEntry
		err     error
	}
	menuOpenMsg struct {
		req MenuOpenRequest
	}
	configReloadedMsg struct {
		cfg *config.AppConfig
	}
	flashTickMsg struct{}
)

// handleResultMessages processes the completion messages of backend calls.
func (m *Model) handleResultMessages(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listingLoadedMsg:
		return m.handleListingLoaded(msg)
	case permissionsLoadedMsg:
		return m.handlePermissionsLoaded(msg)
	case copyResultMsg:
		return m.handleCopyResult(msg)
	case downloadResultMsg:
		return m.handleDownloadResult(msg)
	case compressResultMsg:
		return m.handleCompressResult(msg)
	case deleteResultMsg:
		return m.handleDeleteResult(msg)
	case renameResultMsg:
		return m.handleRenameResult(msg)
	case moveResultMsg:
		return m.handleMoveResult(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleListingLoaded(msg listingLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.dir != m.dir {
		return m, nil
	}
	if msg.err != nil {
		return m, m.reportError(msg.err)
	}
	m.listingLoaded = true
	m.setEntries(msg.dir, msg.entries)
	m.statusContent = fmt.Sprintf("%d entries", len(msg.entries))
	return m, nil
}

func (m *Model) handlePermissionsLoaded(msg permissionsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Without a capability set every action row stays hidden.
		return m, m.reportError(msg.err)
	}
	m.gate.Replace(msg.caps)
	return m, nil
}

func (m *Model) handleCopyResult(msg copyResultMsg) (tea.Model, tea.Cmd) {
	m.clearBusy()
	if msg.err != nil {
		return m, m.reportError(msg.err)
	}
	if msg.dir == m.dir && msg.entries != nil {
		m.setEntries(msg.dir, msg.entries)
	}
	m.statusContent = fmt.Sprintf("Copied %s", msg.name)
	return m, nil
}

func (m *Model) handleDownloadResult(msg downloadResultMsg) (tea.Model, tea.Cmd) {
	m.clearBusy()
	if msg.err != nil {
		return m, m.reportError(msg.err)
	}
	m.statusContent = fmt.Sprintf("Opened download for %s", msg.name)
	return m, nil
}

func (m *Model) handleCompressResult(msg compressResultMsg) (tea.Model, tea.Cmd) {
	m.clearBusy()
	if msg.err != nil {
		return m, m.reportError(msg.err)
	}
	if msg.dir == m.dir && msg.entries != nil {
		m.setEntries(msg.dir, msg.entries)
	}
	m.statusContent = fmt.Sprintf("Requested compression of %s", msg.name)
	return m, nil
}

func (m *Model) handleDeleteResult(msg deleteResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// The entry reappears: the cache was refetched after the failure.
		if msg.dir == m.dir && msg.entries != nil {
			m.setEntries(msg.dir, msg.entries)
		}
		return m, m.reportError(msg.err)
	}
	m.statusContent = fmt.Sprintf("Deleted %s", msg.name)
	return m, nil
}

func (m *Model) handleRenameResult(msg renameResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.reportError(msg.err)
	}
	if msg.dir == m.dir && msg.entries != nil {
		m.setEntries(msg.dir, msg.entries)
	}
	m.statusContent = fmt.Sprintf("Renamed %s to %s", msg.from, msg.to)
	return m, nil
}

func (m *Model) handleMoveResult(msg moveResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.reportError(msg.err)
	}
	if msg.dir == m.dir && msg.entries != nil {
		m.setEntries(msg.dir, msg.entries)
	}
	m.statusContent = fmt.Sprintf("Moved %s to %s", msg.name, msg.dest)
	return m, nil
}

// reportError normalizes a failed backend call into one flash on the
// file-manager topic. Nothing propagates past here.
func (m *Model) reportError(err error) tea.Cmd {
	log.Debugf("action failed: %v", err)
	m.flashes.Error(notify.TopicFileManager, err.Error())
	return m.flashTick()
}

func (m *Model) clearBusy() {
	m.busy = false
	m.busyLabel = ""
}

// loadListingCmd fetches the authoritative listing for dir.
func (m *Model) loadListingCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		entries, err := m.cache.Revalidate(m.ctx, dir)
		return listingLoadedMsg{dir: dir, entries: entries, err: err}
	}
}

// loadPermissionsCmd fetches the capability set for the menu's row gating.
func (m *Model) loadPermissionsCmd() tea.Cmd {
	return func() tea.Msg {
		caps, err := m.client.Permissions(m.ctx)
		return permissionsLoadedMsg{caps: caps, err: err}
	}
}

// waitForMenuRequest blocks on the programmatic menu-open channel.
func (m *Model) waitForMenuRequest() tea.Cmd {
	return func() tea.Msg {
		req, ok := <-m.menuRequests
		if !ok {
			return nil
		}
		return menuOpenMsg{req: req}
	}
}

// waitForConfigReload blocks on the config watcher channel.
func (m *Model) waitForConfigReload() tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-m.configEvents
		if !ok {
			return nil
		}
		return configReloadedMsg{cfg: cfg}
	}
}

// flashTick schedules a re-render for when the current flash may expire.
func (m *Model) flashTick() tea.Cmd {
	return tea.Tick(m.flashes.TTL()+100*time.Millisecond, func(time.Time) tea.Msg {
		return flashTickMsg{}
	})
}
