package services

import (
	"context"
)

// ImportStrategy selects what happens to folders nested deeper than the
// internal hierarchy supports (nothing exists below a group).
type ImportStrategy string

const (
	// StrategyFlatten pulls every bookmark under the overflowing folder
	// into the current group, discarding intermediate folder titles.
	StrategyFlatten ImportStrategy = "flatten"
	// StrategySkip drops all bookmarks under the overflowing folder and
	// records them as skipped.
	StrategySkip ImportStrategy = "skip"
	// StrategyRoot is accepted for wire compatibility but has no defined
	// mapping yet; it currently behaves like skip with its own warning.
	StrategyRoot ImportStrategy = "root"
)

// Valid reports whether s is one of the accepted strategy values.
func (s ImportStrategy) Valid() bool {
	switch s {
	case StrategyFlatten, StrategySkip, StrategyRoot:
		return true
	}
	return false
}

// ImportResult tallies one import run. Per-bookmark failures are recorded
// here as warnings and skips; they never abort the batch.
type ImportResult struct {
	FoldersCreated   int      `json:"foldersCreated"`
	GroupsCreated    int      `json:"groupsCreated"`
	BookmarksCreated int      `json:"bookmarksCreated"`
	BookmarksSkipped int      `json:"bookmarksSkipped"`
	Warnings         []string `json:"warnings"`
}

// JSONExport is the versioned full-hierarchy interchange format.
// Version must equal CurrentExportVersion or import fails before any write.
type JSONExport struct {
	Version    int             `json:"version"`
	ExportedAt string          `json:"exportedAt"`
	Workspaces []JSONWorkspace `json:"workspaces"`
}

const CurrentExportVersion = 1

type JSONWorkspace struct {
	Title    string       `json:"title"`
	Position int          `json:"position"`
	Folders  []JSONFolder `json:"folders"`
}

type JSONFolder struct {
	Title    string      `json:"title"`
	Position int         `json:"position"`
	Groups   []JSONGroup `json:"groups"`
}

type JSONGroup struct {
	Title     string         `json:"title"`
	Position  int            `json:"position"`
	Bookmarks []JSONBookmark `json:"bookmarks"`
}

type JSONBookmark struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Position    int      `json:"position"`
}

// PortingService moves whole hierarchies across the system boundary in the
// Netscape bookmark HTML and versioned JSON formats.
type PortingService interface {
	// ImportNetscape parses html and maps the parsed tree onto the user's
	// hierarchy under the given strategy, in one transaction.
	ImportNetscape(ctx context.Context, userID, html string, strategy ImportStrategy) (*ImportResult, error)
	// ImportJSON recreates an exported hierarchy for the user.
	ImportJSON(ctx context.Context, userID string, doc *JSONExport) (*ImportResult, error)
	// ExportNetscape serializes the user's full state to bookmark HTML.
	ExportNetscape(ctx context.Context, userID string) (string, error)
	// ExportJSON serializes the user's full state to the JSON format.
	ExportJSON(ctx context.Context, userID string) (*JSONExport, error)
}
