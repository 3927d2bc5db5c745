package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"lazyfm/internal/models"
	"lazyfm/internal/notify"
)

// listingHeaderHeight is the number of screen rows above the first entry
// row: the app header plus the table header.
const listingHeaderHeight = 2

const (
	sizeColWidth = 10
	modColWidth  = 18
	minNameWidth = 20
)

// View renders the active screen for the Bubble Tea program.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Wait for window size before rendering the full UI.
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return "Loading..."
	}

	sections := []string{
		m.renderHeader(),
		m.entryTable.View(),
		m.renderStatusBar(),
		m.renderFooter(),
	}
	base := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.currentScreen != screenNone {
		return m.overlayPopup(base, m.activeScreenView(), 3)
	}
	if m.menu != nil {
		return m.overlayPopupAt(base, m.menu.View(m.config.ShowIcons), m.menu.x, m.menu.y)
	}
	return base
}

func (m *Model) activeScreenView() string {
	switch m.currentScreen {
	case screenInput:
		return m.inputScreen.View()
	case screenConfirm:
		return m.confirmScreen.View()
	case screenHelp:
		return m.helpScreen.View()
	case screenNone:
	}
	return ""
}

func (m *Model) renderHeader() string {
	headerStyle := lipgloss.NewStyle().
		Foreground(m.th.Accent).
		Bold(true)
	pathStyle := lipgloss.NewStyle().
		Foreground(m.th.TextFg)
	serverStyle := lipgloss.NewStyle().
		Foreground(m.th.MutedFg)

	line := fmt.Sprintf("%s %s %s",
		headerStyle.Render("lazyfm"),
		serverStyle.Render("["+m.client.Server()+"]"),
		pathStyle.Render(m.dir),
	)
	return truncate.StringWithTail(line, uint(maxInt(m.windowWidth, 1)), "…")
}

func (m *Model) renderStatusBar() string {
	width := maxInt(m.windowWidth, 1)

	if flash, ok := m.flashes.Current(); ok {
		style := lipgloss.NewStyle().Foreground(m.th.SuccessFg)
		if flash.Level == notify.LevelError {
			style = lipgloss.NewStyle().Foreground(m.th.ErrorFg).Bold(true)
		}
		return style.Render(truncate.StringWithTail(flash.Message, uint(width), "…"))
	}

	if m.busy {
		style := lipgloss.NewStyle().Foreground(m.th.WarnFg)
		return m.spin.View() + " " + style.Render(truncate.StringWithTail(m.busyLabel, uint(width-2), "…"))
	}

	if !m.listingLoaded {
		return lipgloss.NewStyle().Foreground(m.th.MutedFg).Render("Loading listing...")
	}

	return lipgloss.NewStyle().Foreground(m.th.MutedFg).
		Render(truncate.StringWithTail(m.statusContent, uint(width), "…"))
}

func (m *Model) renderFooter() string {
	hints := "space menu • enter open • backspace up • R refresh • ? help • q quit"
	return lipgloss.NewStyle().
		Foreground(m.th.MutedFg).
		Render(truncate.StringWithTail(hints, uint(maxInt(m.windowWidth, 1)), "…"))
}

// layoutTable resizes the table to the current window.
func (m *Model) layoutTable() {
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return
	}
	nameWidth := maxInt(minNameWidth, m.windowWidth-sizeColWidth-modColWidth-8)
	m.entryTable.SetColumns([]table.Column{
		{Title: "Name", Width: nameWidth},
		{Title: "Size", Width: sizeColWidth},
		{Title: "Modified", Width: modColWidth},
	})
	// Header, status bar, and footer each take one line.
	m.entryTable.SetHeight(maxInt(3, m.windowHeight-3))
	m.entryTable.SetWidth(m.windowWidth)
	m.updateTable()
}

// setEntries installs a fresh listing snapshot and rebuilds the table.
func (m *Model) setEntries(dir string, entries []models.FileEntry) {
	if dir != m.dir {
		return
	}
	m.entries = entries
	m.updateTable()
}

// updateTable rebuilds the table rows from the current entries.
func (m *Model) updateTable() {
	rows := make([]table.Row, 0, len(m.entries))
	for _, entry := range m.entries {
		rows = append(rows, table.Row{
			m.entryLabel(entry),
			m.entrySize(entry),
			m.entryModTime(entry),
		})
	}
	m.entryTable.SetRows(rows)
	if cursor := m.entryTable.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.entryTable.SetCursor(len(rows) - 1)
	}
}

func (m *Model) entryLabel(entry models.FileEntry) string {
	name := entry.Name
	if !entry.IsFile {
		name += "/"
	}
	if m.config.ShowIcons {
		return deviconForName(entry.Name, !entry.IsFile) + " " + name
	}
	return name
}

func (m *Model) entrySize(entry models.FileEntry) string {
	if !entry.IsFile {
		return "-"
	}
	if m.config.HumanSizes {
		return humanize.IBytes(uint64(entry.Size))
	}
	return fmt.Sprintf("%d", entry.Size)
}

func (m *Model) entryModTime(entry models.FileEntry) string {
	if entry.ModTime.IsZero() {
		return "-"
	}
	if m.config.HumanSizes {
		return humanize.Time(entry.ModTime)
	}
	return entry.ModTime.Format("2006-01-02 15:04")
}

// overlayPopup overlays a popup centered horizontally, marginTop rows from
// the top, preserving the base around it so underlying borders stay
// visible.
func (m *Model) overlayPopup(base, popup string, marginTop int) string {
	if base == "" || popup == "" {
		return base
	}
	popupWidth := lipgloss.Width(popup)
	baseWidth := lipgloss.Width(strings.SplitN(base, "\n", 2)[0])
	leftPad := maxInt((baseWidth-popupWidth)/2, 0)
	return m.overlayPopupAt(base, popup, leftPad, marginTop)
}

// overlayPopupAt overlays popup with its top-left corner at (x, y),
// clamped to the window.
func (m *Model) overlayPopupAt(base, popup string, x, y int) string {
	if base == "" || popup == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	popupLines := strings.Split(popup, "\n")

	popupWidth := lipgloss.Width(popupLines[0])
	popupHeight := len(popupLines)

	x = maxInt(0, minInt(x, m.windowWidth-popupWidth))
	y = maxInt(0, minInt(y, len(baseLines)-popupHeight))

	for i, line := range popupLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			break
		}

		// ANSI-aware splits keep the base styling intact on both sides.
		leftPart := ansi.Truncate(baseLines[row], x, "")
		if w := lipgloss.Width(leftPart); w < x {
			leftPart += strings.Repeat(" ", x-w)
		}
		rightStart := x + lipgloss.Width(line)
		rightPart := ansi.TruncateLeft(baseLines[row], rightStart, "")

		baseLines[row] = leftPart + line + rightPart
	}

	return strings.Join(baseLines, "\n")
}
