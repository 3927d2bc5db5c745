// Package perm holds the capability set granted by the server and the
// predicate the UI consults before showing an action to the user.
package perm

import "sync"

// Action names, as the server reports them.
const (
	ActionRename   = "rename"
	ActionMove     = "move"
	ActionCopy     = "copy"
	ActionDownload = "download"
	ActionCompress = "compress"
	ActionDelete   = "delete"
)

// Gate answers whether the current user holds a given capability. The
// capability set comes from the server and can be replaced wholesale when
// refreshed.
type Gate struct {
	mu   sync.RWMutex
	caps map[string]bool
}

// NewGate creates a gate over the given capability set. A nil set denies
// everything.
func NewGate(caps map[string]bool) *Gate {
	return &Gate{caps: caps}
}

// AllowAll returns a gate granting every known action. Used until the
// server's capability response arrives and in non-interactive commands.
func AllowAll() *Gate {
	return NewGate(map[string]bool{
		ActionRename:   true,
		ActionMove:     true,
		ActionCopy:     true,
		ActionDownload: true,
		ActionCompress: true,
		ActionDelete:   true,
	})
}

// Has reports whether the user holds the capability for action.
func (g *Gate) Has(action string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.caps[action]
}

// Replace swaps in a freshly fetched capability set.
func (g *Gate) Replace(caps map[string]bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.caps = caps
}
