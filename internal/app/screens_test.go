package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"lazyfm/internal/theme"
)

func TestInputScreenEscResetsModalState(t *testing.T) {
	m := newTestModel(t, listingHandler(testEntries, nil))
	seedListing(t, m)

	entry := entryByName(t, m, "notes.txt")
	m.showRenameInput(entry)
	if m.modal != modalRename || m.currentScreen != screenInput {
		t.Fatal("rename dialog not mounted")
	}

	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEsc})

	if m.modal != modalNone {
		t.Error("modal state not reset after esc")
	}
	if m.currentScreen != screenNone {
		t.Error("screen not dismissed after esc")
	}
	if m.inputScreen != nil || m.inputSubmit != nil {
		t.Error("input screen state not cleared")
	}
}

func TestInputScreenValidationKeepsDialogOpen(t *testing.T) {
	m := newTestModel(t, listingHandler(testEntries, nil))
	seedListing(t, m)

	entry := entryByName(t, m, "notes.txt")
	m.showRenameInput(entry)
	m.inputScreen.input.SetValue("")

	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEnter})

	if m.currentScreen != screenInput {
		t.Fatal("validation failure should keep the dialog open")
	}
	if m.inputScreen.errorMsg == "" {
		t.Error("expected an inline error message")
	}
	if !strings.Contains(m.inputScreen.View(), m.inputScreen.errorMsg) {
		t.Error("error message not rendered")
	}
}

func TestConfirmScreenToggleAndAccept(t *testing.T) {
	s := NewConfirmScreen("Delete \"notes.txt\"?", theme.Dracula())

	if !s.Accepted() {
		t.Fatal("confirm button should be focused initially")
	}
	s.Toggle()
	if s.Accepted() {
		t.Fatal("toggle should move focus to cancel")
	}
	s.Toggle()
	if !s.Accepted() {
		t.Fatal("second toggle should return focus to confirm")
	}

	view := s.View()
	for _, fragment := range []string{"Delete", "[Confirm]", "[Cancel]"} {
		if !strings.Contains(view, fragment) {
			t.Errorf("confirm view missing %q", fragment)
		}
	}
}

func TestConfirmEnterFollowsFocusedButton(t *testing.T) {
	m := newTestModel(t, listingHandler(testEntries, nil))
	seedListing(t, m)

	ran := false
	m.showConfirm("sure?", func() tea.Cmd {
		ran = true
		return nil
	})

	// Move focus to Cancel, then enter: the action must not run.
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyTab})
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEnter})
	if ran {
		t.Fatal("cancel-focused enter ran the action")
	}
	if m.currentScreen != screenNone {
		t.Fatal("confirm screen not dismissed")
	}

	m.showConfirm("sure?", func() tea.Cmd {
		ran = true
		return nil
	})
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEnter})
	if !ran {
		t.Fatal("confirm-focused enter did not run the action")
	}
}

func TestHelpScreenOpenScrollClose(t *testing.T) {
	m := newTestModel(t, listingHandler(testEntries, nil))
	seedListing(t, m)

	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if m.currentScreen != screenHelp || m.helpScreen == nil {
		t.Fatal("help screen not shown")
	}
	if !strings.Contains(m.helpScreen.View(), "lazyfm Help") {
		t.Error("help content missing title")
	}

	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})

	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEsc})
	if m.currentScreen != screenNone || m.helpScreen != nil {
		t.Fatal("help screen not dismissed")
	}
}

func TestInputScreenTypingUpdatesValue(t *testing.T) {
	m := newTestModel(t, listingHandler(testEntries, nil))
	seedListing(t, m)

	entry := entryByName(t, m, "notes.txt")
	m.showRenameInput(entry)
	m.inputScreen.input.SetValue("")

	for _, r := range "new.txt" {
		m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if got := m.inputScreen.Value(); got != "new.txt" {
		t.Errorf("input value = %q", got)
	}
}
