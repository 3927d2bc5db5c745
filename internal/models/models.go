// Package models defines the data objects shared across lazyfm packages.
package models

import (
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileEntry is one file or directory row in a directory listing. It is an
// immutable snapshot owned by the listing that produced it.
type FileEntry struct {
	Name    string    `json:"name"`
	UUID    uuid.UUID `json:"uuid"`
	IsFile  bool      `json:"is_file"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
	Mode    string    `json:"mode,omitempty"`
}

// Path returns the full server-side path of the entry inside dir.
func (e FileEntry) Path(dir string) string {
	return path.Join(dir, e.Name)
}

// Listing holds the entries of one directory together with the time they
// were fetched from the server.
type Listing struct {
	Dir       string      `json:"dir"`
	Entries   []FileEntry `json:"entries"`
	FetchedAt time.Time   `json:"fetched_at"`
}

// SortEntries orders entries directories-first, then by name,
// case-insensitively. The server is not trusted to return a stable order.
func SortEntries(entries []FileEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsFile != entries[j].IsFile {
			return !entries[i].IsFile
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
}
