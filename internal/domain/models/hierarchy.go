package models

import "time"

// The hierarchy is four levels deep: Workspace → Folder → Group → Bookmark.
// Every entity row is owned by exactly one user, and siblings within a parent
// are ordered by a dense zero-based position.

type Workspace struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

type Folder struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"userId" db:"user_id"`
	WorkspaceID string    `json:"workspaceId" db:"workspace_id"`
	Title       string    `json:"title" db:"title"`
	Position    int       `json:"position" db:"position"`
	CreatedAt   time.Time `json:"-" db:"created_at"`
}

type Group struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	FolderID  string    `json:"folderId" db:"folder_id"`
	Title     string    `json:"title" db:"title"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

type Bookmark struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"userId" db:"user_id"`
	GroupID     string    `json:"groupId" db:"group_id"`
	URL         string    `json:"url" db:"url"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Tags        []string  `json:"tags"`
	Position    int       `json:"position" db:"position"`
	CreatedAt   time.Time `json:"-" db:"created_at"`
}

// Tag is the normalized side of the bookmark tag set, unique per (user, name).
type Tag struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

// AppState is the full position-sorted hierarchy for one user.
type AppState struct {
	Workspaces []Workspace `json:"workspaces"`
	Folders    []Folder    `json:"folders"`
	Groups     []Group     `json:"groups"`
	Bookmarks  []Bookmark  `json:"bookmarks"`
}
