// Package netscape parses and serializes the Netscape bookmark file format,
// the HTML-based structure browsers use for bookmark export: nested
// <DL> lists of <DT> entries, where <DT><H3> opens a folder and
// <DT><A HREF> is a bookmark leaf.
//
// Parsing is deliberately tolerant. Real-world exports vary wildly, so
// anything unrecognized is skipped and a malformed region degrades to a
// partial result instead of an error.
package netscape

// Item is a node of the parsed tree: either *Folder or *Bookmark.
type Item interface {
	item()
}

// Folder is a named container of further items. The two boolean flags are
// vendor extensions some export sources place on the <H3> tag:
// PAGE="true" marks a folder that represents a standalone page, and
// BOOKMARKS="true" marks a folder that represents a tab collection.
type Folder struct {
	Title     string
	IsPage    bool
	IsTabBook bool
	Children  []Item
}

// Bookmark is a leaf link. AddDate is the ADD_DATE attribute in unix
// seconds, zero when absent.
type Bookmark struct {
	URL     string
	Title   string
	AddDate int64
}

func (*Folder) item()   {}
func (*Bookmark) item() {}
