package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"lazyfm/internal/models"
	"lazyfm/internal/perm"
	"lazyfm/internal/theme"
)

// menuRow is one permission-gated action row in the contextual menu.
type menuRow struct {
	action string
	label  string
	key    string
	icon   string
}

// ActionMenu is the contextual action menu for one file entry. Rows are
// filtered at construction time: an action the user lacks permission for is
// absent, and copy is absent for directories.
type ActionMenu struct {
	entry  models.FileEntry
	rows   []menuRow
	cursor int
	x, y   int
	th     *theme.Theme
}

// buildMenuRows returns the visible rows for entry given the current
// capability set.
func buildMenuRows(entry models.FileEntry, gate *perm.Gate) []menuRow {
	candidates := []menuRow{
		{action: perm.ActionRename, label: "Rename", key: "r", icon: iconRename},
		{action: perm.ActionMove, label: "Move", key: "m", icon: iconMove},
		{action: perm.ActionCopy, label: "Copy", key: "c", icon: iconCopy},
		{action: perm.ActionDownload, label: "Download", key: "d", icon: iconDownload},
		{action: perm.ActionCompress, label: "Compress", key: "z", icon: iconCompress},
		{action: perm.ActionDelete, label: "Delete", key: "x", icon: iconDelete},
	}

	rows := make([]menuRow, 0, len(candidates))
	for _, row := range candidates {
		if row.action == perm.ActionCopy && !entry.IsFile {
			continue
		}
		if !gate.Has(row.action) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// newActionMenu creates the menu for entry anchored at (x, y).
func newActionMenu(entry models.FileEntry, gate *perm.Gate, th *theme.Theme, x, y int) *ActionMenu {
	return &ActionMenu{
		entry: entry,
		rows:  buildMenuRows(entry, gate),
		th:    th,
		x:     x,
		y:     y,
	}
}

// Empty reports whether no action is available for the entry.
func (s *ActionMenu) Empty() bool {
	return len(s.rows) == 0
}

// MoveUp moves the cursor up, wrapping around.
func (s *ActionMenu) MoveUp() {
	if len(s.rows) == 0 {
		return
	}
	s.cursor = (s.cursor - 1 + len(s.rows)) % len(s.rows)
}

// MoveDown moves the cursor down, wrapping around.
func (s *ActionMenu) MoveDown() {
	if len(s.rows) == 0 {
		return
	}
	s.cursor = (s.cursor + 1) % len(s.rows)
}

// Selected returns the row under the cursor.
func (s *ActionMenu) Selected() (menuRow, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return menuRow{}, false
	}
	return s.rows[s.cursor], true
}

// RowForKey matches a pressed key to its action row.
func (s *ActionMenu) RowForKey(key string) (menuRow, bool) {
	for _, row := range s.rows {
		if row.key == key {
			return row, true
		}
	}
	return menuRow{}, false
}

// HasAction reports whether the menu shows a row for action.
func (s *ActionMenu) HasAction(action string) bool {
	for _, row := range s.rows {
		if row.action == action {
			return true
		}
	}
	return false
}

// View renders the menu box.
func (s *ActionMenu) View(showIcons bool) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(s.th.Accent).
		Bold(true)
	rowStyle := lipgloss.NewStyle().
		Foreground(s.th.TextFg).
		Padding(0, 1)
	selectedStyle := lipgloss.NewStyle().
		Foreground(s.th.AccentFg).
		Background(s.th.Accent).
		Bold(true).
		Padding(0, 1)
	keyStyle := lipgloss.NewStyle().
		Foreground(s.th.MutedFg)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.th.Border).
		Padding(0, 1)

	title := s.entry.Name
	if showIcons {
		title = deviconForName(s.entry.Name, !s.entry.IsFile) + " " + title
	}

	lines := []string{titleStyle.Render(title)}
	for i, row := range s.rows {
		label := row.label
		if showIcons {
			label = row.icon + " " + label
		}
		line := fmt.Sprintf("%s %s", label, keyStyle.Render("("+row.key+")"))
		if i == s.cursor {
			line = selectedStyle.Render(line)
		} else {
			line = rowStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if len(s.rows) == 0 {
		lines = append(lines, rowStyle.Render("No actions available"))
	}

	return boxStyle.Render(strings.Join(lines, "\n"))
}
