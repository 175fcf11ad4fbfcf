package engine

import (
	"github.com/roach88/liz/internal/shortcut"
	"github.com/roach88/liz/internal/store"
)

// Request is one of the closed set of engine operations.
// Build requests directly or decode them from a Command with Decode.
type Request interface {
	// Action returns the canonical wire name.
	Action() string
	request()
}

// List returns one formatted row per active shortcut, optionally filtered.
type List struct {
	Query string
}

// Detail returns one shortcut as JSON.
type Detail struct {
	ID    shortcut.ID
	Scope store.Scope
}

// Create adds shortcuts to the active set.
type Create struct {
	Shortcuts []shortcut.Shortcut
}

// Update overwrites active shortcuts by ID.
type Update struct {
	Shortcuts []shortcut.Shortcut
}

// Delete archives active shortcuts. Every ID must be active.
type Delete struct {
	IDs []shortcut.ID
}

// Import merges a user sheet file or directory into the active set.
type Import struct {
	Path string
}

// Export writes the active set to a user sheet.
type Export struct {
	Path string
}

// Execute compiles and plays one shortcut.
type Execute struct {
	ID shortcut.ID
}

// Persist writes the store file.
type Persist struct{}

// Info returns the configuration as key, value pairs.
type Info struct{}

// NewID returns a fresh shortcut ID.
type NewID struct{}

// Reload merges user sheets from Path, or from the configured sheets path.
type Reload struct {
	Path string
}

// ClearDeleted empties the archive.
type ClearDeleted struct{}

// Sort reorders the active set by one column.
type Sort struct {
	Column    store.Column
	Ascending bool
}

// History returns recent journal entries.
type History struct {
	Limit int
}

func (List) Action() string         { return "list" }
func (Detail) Action() string       { return "detail" }
func (Create) Action() string       { return "create" }
func (Update) Action() string       { return "update" }
func (Delete) Action() string       { return "delete" }
func (Import) Action() string       { return "import" }
func (Export) Action() string       { return "export" }
func (Execute) Action() string      { return "execute" }
func (Persist) Action() string      { return "persist" }
func (Info) Action() string         { return "info" }
func (NewID) Action() string        { return "new-id" }
func (Reload) Action() string       { return "reload" }
func (ClearDeleted) Action() string { return "clear-deleted" }
func (Sort) Action() string         { return "sort" }
func (History) Action() string      { return "history" }

func (List) request()         {}
func (Detail) request()       {}
func (Create) request()       {}
func (Update) request()       {}
func (Delete) request()       {}
func (Import) request()       {}
func (Export) request()       {}
func (Execute) request()      {}
func (Persist) request()      {}
func (Info) request()         {}
func (NewID) request()        {}
func (Reload) request()       {}
func (ClearDeleted) request() {}
func (Sort) request()         {}
func (History) request()      {}

// Mutates reports whether req can change the store contents or order.
// One-shot callers persist after a successful mutating request.
func Mutates(req Request) bool {
	switch req.(type) {
	case Create, Update, Delete, Import, Execute, Reload, ClearDeleted, Sort:
		return true
	default:
		return false
	}
}
