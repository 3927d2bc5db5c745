package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"lazyfm/internal/theme"
)

type screenType int

const (
	screenNone screenType = iota
	screenInput
	screenConfirm
	screenHelp
)

// modalState tracks which entry dialog is mounted. It is owned by the model
// and reset to modalNone on dismissal.
type modalState int

const (
	modalNone modalState = iota
	modalRename
	modalMove
)

// Key constants shared by the screen handlers.
const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyCtrlC = "ctrl+c"
	keyUp    = "up"
	keyDown  = "down"
	keyQ     = "q"
)

// InputScreen provides a prompt along with a text input and inline
// validation. Used for the rename and move dialogs.
type InputScreen struct {
	prompt      string
	placeholder string
	input       textinput.Model
	errorMsg    string
	th          *theme.Theme
}

// NewInputScreen builds an input modal with prompt, placeholder, and initial
// value.
func NewInputScreen(prompt, placeholder, value string, th *theme.Theme) *InputScreen {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.Focus()
	ti.CharLimit = 200
	ti.Prompt = ""
	ti.Width = 52

	return &InputScreen{
		prompt:      prompt,
		placeholder: placeholder,
		input:       ti,
		th:          th,
	}
}

// Value returns the current input value.
func (s *InputScreen) Value() string {
	return s.input.Value()
}

// View renders the prompt, input field, and error message inside a styled
// box.
func (s *InputScreen) View() string {
	width := 60

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(s.th.Border).
		Padding(1, 2).
		Width(width)

	promptStyle := lipgloss.NewStyle().
		Foreground(s.th.Accent).
		Bold(true).
		Width(width - 6).
		Align(lipgloss.Center)

	inputWrapperStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(s.th.BorderDim).
		Padding(0, 1).
		Width(width - 6)

	footerStyle := lipgloss.NewStyle().
		Foreground(s.th.MutedFg).
		Width(width - 6).
		Align(lipgloss.Center).
		MarginTop(1)

	contentLines := []string{
		promptStyle.Render(s.prompt),
		inputWrapperStyle.Render(s.input.View()),
	}

	if s.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(s.th.ErrorFg).
			Width(width - 6).
			Align(lipgloss.Center)
		contentLines = append(contentLines, errorStyle.Render(s.errorMsg))
	}

	contentLines = append(contentLines, footerStyle.Render("Enter to confirm • Esc to cancel"))

	return boxStyle.Render(strings.Join(contentLines, "\n\n"))
}

// ConfirmScreen displays a modal confirmation prompt with Accept/Cancel
// buttons.
type ConfirmScreen struct {
	message        string
	selectedButton int // 0 = Confirm, 1 = Cancel
	th             *theme.Theme
}

// NewConfirmScreen creates a confirm screen preloaded with a message.
func NewConfirmScreen(message string, th *theme.Theme) *ConfirmScreen {
	return &ConfirmScreen{
		message: message,
		th:      th,
	}
}

// Toggle moves the button focus.
func (s *ConfirmScreen) Toggle() {
	s.selectedButton = (s.selectedButton + 1) % 2
}

// Accepted reports whether the Confirm button is focused.
func (s *ConfirmScreen) Accepted() bool {
	return s.selectedButton == 0
}

// View renders the confirmation UI box with focused button highlighting.
func (s *ConfirmScreen) View() string {
	width := 60

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(s.th.Border).
		Padding(1, 2).
		Width(width)

	messageStyle := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Center).
		Foreground(s.th.TextFg)

	focusedConfirmStyle := lipgloss.NewStyle().
		Width((width-6)/2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Foreground(s.th.TextFg).
		Background(s.th.ErrorFg).
		Bold(true)

	focusedCancelStyle := lipgloss.NewStyle().
		Width((width-6)/2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Foreground(s.th.TextFg).
		Background(s.th.Accent)

	unfocusedButtonStyle := lipgloss.NewStyle().
		Width((width-6)/2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Foreground(s.th.MutedFg).
		Background(s.th.BorderDim)

	var confirmButton, cancelButton string
	if s.selectedButton == 0 {
		confirmButton = focusedConfirmStyle.Render("[Confirm]")
		cancelButton = unfocusedButtonStyle.Render("[Cancel]")
	} else {
		confirmButton = unfocusedButtonStyle.Render("[Confirm]")
		cancelButton = focusedCancelStyle.Render("[Cancel]")
	}

	content := messageStyle.Render(s.message) + "\n\n" + confirmButton + "  " + cancelButton

	return boxStyle.Render(content)
}

// HelpScreen renders the key binding documentation.
type HelpScreen struct {
	viewport viewport.Model
	width    int
	height   int
	th       *theme.Theme
}

const helpText = `# lazyfm Help

**Navigation**
- j / Down: Move cursor down
- k / Up: Move cursor up
- Enter / l: Open selected directory
- Backspace / h / -: Go to parent directory
- g / G: Go to top / bottom

**Entry actions** (via the action menu)
- Space / o: Open action menu for selected entry
- Right-click: Open action menu under the mouse
- r: Rename entry
- m: Move entry
- c: Copy entry (files only)
- d: Download entry
- z: Compress entry
- x: Delete entry (optimistic; the row disappears immediately)

**Listing**
- R: Refresh listing from the server
- ?: Show this help

**Help Navigation**
- j / k: Scroll up / down
- q / Esc: Close help

Rows in the action menu appear only when the server grants the matching
permission. A failed action shows a flash message in the status bar.`

// NewHelpScreen initializes help content with the available screen size.
func NewHelpScreen(maxWidth, maxHeight int, th *theme.Theme) *HelpScreen {
	width := 80
	height := 30
	if maxWidth > 0 {
		width = minInt(100, maxInt(50, maxWidth-10))
	}
	if maxHeight > 0 {
		height = minInt(40, maxInt(15, maxHeight-6))
	}

	vp := viewport.New(width, height)
	vp.SetContent(wordwrap.String(helpText, width-2))

	return &HelpScreen{
		viewport: vp,
		width:    width,
		height:   height,
		th:       th,
	}
}

// ScrollUp scrolls the help one line up.
func (s *HelpScreen) ScrollUp() {
	s.viewport.ScrollUp(1)
}

// ScrollDown scrolls the help one line down.
func (s *HelpScreen) ScrollDown() {
	s.viewport.ScrollDown(1)
}

// View renders the help inside a bordered box.
func (s *HelpScreen) View() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.th.Border).
		Padding(0, 1)
	return boxStyle.Render(s.viewport.View())
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
