package app

import (
	"fmt"
	"os/exec"
	"path"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"lazyfm/internal/log"
	"lazyfm/internal/models"
	"lazyfm/internal/perm"
)

// dispatchAction runs the menu action the user picked. While a call is in
// flight further dispatches are dropped, so a double-press cannot start the
// same operation twice.
func (m *Model) dispatchAction(action string, entry models.FileEntry) tea.Cmd {
	if m.busy {
		log.Debugf("dropping %s on %s: busy", action, entry.Name)
		return nil
	}

	switch action {
	case perm.ActionRename:
		return m.showRenameInput(entry)
	case perm.ActionMove:
		return m.showMoveInput(entry)
	case perm.ActionCopy:
		return m.copyEntryCmd(entry)
	case perm.ActionDownload:
		return m.downloadEntryCmd(entry)
	case perm.ActionCompress:
		return m.compressEntryCmd(entry)
	case perm.ActionDelete:
		return m.deleteEntryCmd(entry)
	}
	log.Debugf("unknown action %q", action)
	return nil
}

// setBusy raises the busy indicator and returns the spinner tick that
// animates it.
func (m *Model) setBusy(label string) tea.Cmd {
	m.busy = true
	m.busyLabel = label
	return m.spin.Tick
}

// copyEntryCmd duplicates the entry server-side. No optimistic change: on
// success the listing is revalidated, on failure the cache is simply left
// as it was.
func (m *Model) copyEntryCmd(entry models.FileEntry) tea.Cmd {
	dir := m.dir
	src := entry.Path(dir)
	tick := m.setBusy("Copying " + entry.Name)
	return tea.Batch(tick, func() tea.Msg {
		if err := m.client.Copy(m.ctx, src); err != nil {
			return copyResultMsg{dir: dir, name: entry.Name, err: err}
		}
		entries, err := m.cache.Revalidate(m.ctx, dir)
		return copyResultMsg{dir: dir, name: entry.Name, entries: entries, err: err}
	})
}

// downloadEntryCmd resolves a download URL and hands it to the system
// opener.
func (m *Model) downloadEntryCmd(entry models.FileEntry) tea.Cmd {
	dir := m.dir
	src := entry.Path(dir)
	opener := m.config.Opener
	tick := m.setBusy("Fetching download link for " + entry.Name)
	return tea.Batch(tick, func() tea.Msg {
		url, err := m.client.DownloadURL(m.ctx, src)
		if err != nil {
			return downloadResultMsg{name: entry.Name, err: err}
		}
		if err := openURL(opener, url); err != nil {
			return downloadResultMsg{name: entry.Name, url: url, err: err}
		}
		return downloadResultMsg{name: entry.Name, url: url}
	})
}

// compressEntryCmd asks the server to archive the entry. The archive shows
// up in the listing once the server finishes, so a successful request
// revalidates.
func (m *Model) compressEntryCmd(entry models.FileEntry) tea.Cmd {
	dir := m.dir
	tick := m.setBusy("Compressing " + entry.Name)
	return tea.Batch(tick, func() tea.Msg {
		if err := m.client.Compress(m.ctx, dir, []string{entry.Name}); err != nil {
			return compressResultMsg{dir: dir, name: entry.Name, err: err}
		}
		entries, err := m.cache.Revalidate(m.ctx, dir)
		return compressResultMsg{dir: dir, name: entry.Name, entries: entries, err: err}
	})
}

// deleteEntryCmd removes the entry, optimistically dropping it from the
// listing before the network call. When confirm_delete is set, a confirm
// screen is interposed first.
func (m *Model) deleteEntryCmd(entry models.FileEntry) tea.Cmd {
	if m.config.ConfirmDelete {
		m.showConfirm(fmt.Sprintf("Delete %q?", entry.Name), func() tea.Cmd {
			return m.runDelete(entry)
		})
		return nil
	}
	return m.runDelete(entry)
}

func (m *Model) runDelete(entry models.FileEntry) tea.Cmd {
	dir := m.dir
	target := entry.UUID

	// Optimistic removal: the row disappears before the server answers.
	entries, _ := m.cache.Mutate(m.ctx, dir, func(in []models.FileEntry) []models.FileEntry {
		out := in[:0]
		for _, e := range in {
			if e.UUID != target {
				out = append(out, e)
			}
		}
		return out
	}, false)
	m.setEntries(dir, entries)

	return func() tea.Msg {
		if err := m.client.Delete(m.ctx, dir, []string{entry.Name}); err != nil {
			// The optimistic state is wrong now; refetch authoritative state.
			restored, rerr := m.cache.Revalidate(m.ctx, dir)
			if rerr != nil {
				log.Debugf("revalidate after failed delete: %v", rerr)
			}
			return deleteResultMsg{dir: dir, name: entry.Name, entries: restored, err: err}
		}
		return deleteResultMsg{dir: dir, name: entry.Name}
	}
}

// showRenameInput mounts the rename dialog scoped to the entry's name.
func (m *Model) showRenameInput(entry models.FileEntry) tea.Cmd {
	m.modal = modalRename
	m.inputScreen = NewInputScreen("Rename "+entry.Name, "New name", entry.Name, m.th)
	m.inputSubmit = func(value string) (tea.Cmd, bool) {
		newName := strings.TrimSpace(value)
		if newName == "" {
			m.inputScreen.errorMsg = "Name cannot be empty."
			return nil, false
		}
		if strings.Contains(newName, "/") {
			m.inputScreen.errorMsg = "Name cannot contain '/'."
			return nil, false
		}
		if newName == entry.Name {
			return nil, true
		}
		dir := m.dir
		oldName := entry.Name
		return func() tea.Msg {
			if err := m.client.Rename(m.ctx, dir, oldName, newName); err != nil {
				return renameResultMsg{dir: dir, from: oldName, to: newName, err: err}
			}
			entries, err := m.cache.Revalidate(m.ctx, dir)
			return renameResultMsg{dir: dir, from: oldName, to: newName, entries: entries, err: err}
		}, true
	}
	m.currentScreen = screenInput
	return textinput.Blink
}

// showMoveInput mounts the move dialog scoped to the entry's name.
func (m *Model) showMoveInput(entry models.FileEntry) tea.Cmd {
	m.modal = modalMove
	m.inputScreen = NewInputScreen("Move "+entry.Name+" to", "Destination directory", m.dir, m.th)
	m.inputSubmit = func(value string) (tea.Cmd, bool) {
		dest := path.Clean(strings.TrimSpace(value))
		if dest == "" || dest == "." {
			m.inputScreen.errorMsg = "Destination cannot be empty."
			return nil, false
		}
		if dest == m.dir {
			m.inputScreen.errorMsg = "Entry is already there."
			return nil, false
		}
		dir := m.dir
		name := entry.Name
		from := entry.Path(dir)
		return func() tea.Msg {
			if err := m.client.Move(m.ctx, from, path.Join(dest, name)); err != nil {
				return moveResultMsg{dir: dir, name: name, dest: dest, err: err}
			}
			entries, err := m.cache.Revalidate(m.ctx, dir)
			return moveResultMsg{dir: dir, name: name, dest: dest, entries: entries, err: err}
		}, true
	}
	m.currentScreen = screenInput
	return textinput.Blink
}

// changeDir switches the listing to dir, showing cached entries right away
// when available and revalidating in the background.
func (m *Model) changeDir(dir string) tea.Cmd {
	m.dir = dir
	m.closeMenu()
	if entries, ok := m.cache.Get(dir); ok {
		m.setEntries(dir, entries)
	} else {
		m.listingLoaded = false
	}
	return m.loadListingCmd(dir)
}

// openURL hands url to the system opener.
func openURL(opener, url string) error {
	if opener == "" {
		switch runtime.GOOS {
		case "darwin":
			opener = "open"
		case "windows":
			opener = "rundll32"
		default:
			opener = "xdg-open"
		}
	}
	args := []string{url}
	if opener == "rundll32" {
		args = []string{"url.dll,FileProtocolHandler", url}
	}
	return exec.Command(opener, args...).Start()
}
