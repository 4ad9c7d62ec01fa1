package models

import "time"

// ViewMode selects how the client lays out the hierarchy.
type ViewMode string

const (
	ViewModeTabbed       ViewMode = "tabbed"
	ViewModeHierarchical ViewMode = "hierarchical"
)

// BookmarkViewMode selects how individual bookmarks render.
type BookmarkViewMode string

const (
	BookmarkViewCard BookmarkViewMode = "card"
	BookmarkViewList BookmarkViewMode = "list"
)

type UserPreferences struct {
	Theme                 string           `json:"theme" db:"theme"`
	ViewMode              ViewMode         `json:"viewMode" db:"view_mode"`
	BookmarkViewMode      BookmarkViewMode `json:"bookmarkViewMode" db:"bookmark_view_mode"`
	BookmarksPerContainer int              `json:"bookmarksPerContainer" db:"bookmarks_per_container"`
}

type User struct {
	ID          string          `json:"id" db:"id"`
	Username    string          `json:"username" db:"username"`
	Preferences UserPreferences `json:"preferences"`
	CreatedAt   time.Time       `json:"-" db:"created_at"`

	// PasswordHash is only populated on the login path; never serialized.
	PasswordHash string `json:"-" db:"password"`
}

// UpdatePreferencesRequest patches preferences; nil fields are left unchanged.
type UpdatePreferencesRequest struct {
	Theme                 *string           `json:"theme,omitempty"`
	ViewMode              *ViewMode         `json:"viewMode,omitempty"`
	BookmarkViewMode      *BookmarkViewMode `json:"bookmarkViewMode,omitempty"`
	BookmarksPerContainer *int              `json:"bookmarksPerContainer,omitempty"`
}
