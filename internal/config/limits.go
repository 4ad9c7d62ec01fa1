package config

// Input bounds enforced at the validation layer. Titles, urls, and tags are
// bounded to keep imports and reorders predictable; the import body cap
// bounds worst-case parse time for one request.
const (
	MaxUsernameLen = 64
	MaxPasswordLen = 256

	MaxTitleLen       = 200
	MaxURLLen         = 2048
	MaxDescriptionLen = 4000

	MaxTagsPerBookmark = 50
	MaxTagLen          = 64

	// MaxImportBytes caps the Netscape/JSON import request body (~10MB).
	MaxImportBytes = 10_000_000
)
