package netscape

import (
	"html"
	"sort"
	"strings"

	"github.com/VArterJr/neotypa-booktabs/internal/domain/models"
)

// Export serializes a user's full hierarchy to a Netscape bookmark
// document: one <DL> level per hierarchy level (workspace, folder, group,
// bookmark), each sibling list sorted by position. All text fields are
// entity-escaped; a bookmark's <DD> line is emitted only when it has a
// non-empty description.
func Export(state *models.AppState) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<!-- This is an automatically generated file.\n")
	b.WriteString("     It will be read and overwritten.\n")
	b.WriteString("     DO NOT EDIT! -->\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, ws := range sortedByPosition(state.Workspaces, func(w models.Workspace) int { return w.Position }) {
		b.WriteString("    <DT><H3>" + html.EscapeString(ws.Title) + "</H3>\n")
		b.WriteString("    <DL><p>\n")

		for _, f := range filterFolders(state.Folders, ws.ID) {
			b.WriteString("        <DT><H3>" + html.EscapeString(f.Title) + "</H3>\n")
			b.WriteString("        <DL><p>\n")

			for _, g := range filterGroups(state.Groups, f.ID) {
				b.WriteString("            <DT><H3>" + html.EscapeString(g.Title) + "</H3>\n")
				b.WriteString("            <DL><p>\n")

				for _, bm := range filterBookmarks(state.Bookmarks, g.ID) {
					b.WriteString("                <DT><A HREF=\"" + html.EscapeString(bm.URL) + "\">" + html.EscapeString(bm.Title) + "</A>\n")
					if bm.Description != "" {
						b.WriteString("                <DD>" + html.EscapeString(bm.Description) + "\n")
					}
				}

				b.WriteString("            </DL><p>\n")
			}

			b.WriteString("        </DL><p>\n")
		}

		b.WriteString("    </DL><p>\n")
	}

	b.WriteString("</DL><p>\n")
	return b.String()
}

func sortedByPosition[T any](items []T, pos func(T) int) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return pos(out[i]) < pos(out[j]) })
	return out
}

func filterFolders(folders []models.Folder, workspaceID string) []models.Folder {
	var out []models.Folder
	for _, f := range folders {
		if f.WorkspaceID == workspaceID {
			out = append(out, f)
		}
	}
	return sortedByPosition(out, func(f models.Folder) int { return f.Position })
}

func filterGroups(groups []models.Group, folderID string) []models.Group {
	var out []models.Group
	for _, g := range groups {
		if g.FolderID == folderID {
			out = append(out, g)
		}
	}
	return sortedByPosition(out, func(g models.Group) int { return g.Position })
}

func filterBookmarks(bookmarks []models.Bookmark, groupID string) []models.Bookmark {
	var out []models.Bookmark
	for _, b := range bookmarks {
		if b.GroupID == groupID {
			out = append(out, b)
		}
	}
	return sortedByPosition(out, func(b models.Bookmark) int { return b.Position })
}
