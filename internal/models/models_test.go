package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFileEntryPath(t *testing.T) {
	e := FileEntry{Name: "report.pdf", IsFile: true}
	assert.Equal(t, "/docs/report.pdf", e.Path("/docs"))
	assert.Equal(t, "/report.pdf", e.Path("/"))
}

func TestSortEntriesDirectoriesFirst(t *testing.T) {
	entries := []FileEntry{
		{Name: "zeta.txt", IsFile: true},
		{Name: "Alpha", IsFile: false},
		{Name: "beta.txt", IsFile: true},
		{Name: "gamma", IsFile: false},
	}
	SortEntries(entries)

	assert.Equal(t, "Alpha", entries[0].Name)
	assert.Equal(t, "gamma", entries[1].Name)
	assert.Equal(t, "beta.txt", entries[2].Name)
	assert.Equal(t, "zeta.txt", entries[3].Name)
}

func TestSortEntriesCaseInsensitive(t *testing.T) {
	entries := []FileEntry{
		{Name: "b.txt", IsFile: true},
		{Name: "A.txt", IsFile: true},
		{Name: "c.txt", IsFile: true},
	}
	SortEntries(entries)

	assert.Equal(t, []string{"A.txt", "b.txt", "c.txt"},
		[]string{entries[0].Name, entries[1].Name, entries[2].Name})
}

func TestSortEntriesStable(t *testing.T) {
	now := time.Now()
	a := FileEntry{Name: "same", UUID: uuid.New(), IsFile: true, ModTime: now}
	b := FileEntry{Name: "same", UUID: uuid.New(), IsFile: true, ModTime: now.Add(time.Hour)}
	entries := []FileEntry{a, b}
	SortEntries(entries)

	assert.Equal(t, a.UUID, entries[0].UUID)
	assert.Equal(t, b.UUID, entries[1].UUID)
}
