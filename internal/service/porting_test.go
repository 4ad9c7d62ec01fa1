package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/VArterJr/neotypa-booktabs/internal/domain"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/services"
	"github.com/VArterJr/neotypa-booktabs/internal/ordering"
)

const nestedImportHTML = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3>Projects</H3>
    <DL><p>
        <DT><H3>Reading</H3>
        <DL><p>
            <DT><H3>Too Deep</H3>
            <DL><p>
                <DT><A HREF="https://a.example.com">a</A>
                <DT><H3>Deeper Still</H3>
                <DL><p>
                    <DT><A HREF="https://b.example.com">b</A>
                    <DT><A HREF="https://c.example.com">c</A>
                </DL><p>
            </DL><p>
        </DL><p>
    </DL><p>
</DL><p>`

func TestImportNetscapeFlatten(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	result, err := env.portingSvc.ImportNetscape(ctx, "u1", nestedImportHTML, services.StrategyFlatten)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if result.FoldersCreated != 1 {
		t.Errorf("foldersCreated = %d, want 1", result.FoldersCreated)
	}
	if result.GroupsCreated != 1 {
		t.Errorf("groupsCreated = %d, want 1", result.GroupsCreated)
	}
	if result.BookmarksCreated != 3 {
		t.Errorf("bookmarksCreated = %d, want 3", result.BookmarksCreated)
	}
	if result.BookmarksSkipped != 0 {
		t.Errorf("bookmarksSkipped = %d, want 0", result.BookmarksSkipped)
	}

	state, err := env.stateSvc.GetState(ctx, "u1")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	// Flattening discards the overflowing folder titles, so there is exactly
	// one group and all three bookmarks sit in it, in document order.
	if len(state.Groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(state.Groups))
	}
	if len(state.Bookmarks) != 3 {
		t.Fatalf("bookmarks = %d, want 3", len(state.Bookmarks))
	}
	wantURLs := []string{"https://a.example.com", "https://b.example.com", "https://c.example.com"}
	for i, b := range state.Bookmarks {
		if b.GroupID != state.Groups[0].ID {
			t.Errorf("bookmark %d outside the flatten target group", i)
		}
		if b.URL != wantURLs[i] {
			t.Errorf("bookmark %d url = %s, want %s", i, b.URL, wantURLs[i])
		}
		if b.Position != i {
			t.Errorf("bookmark %d position = %d, want %d", i, b.Position, i)
		}
	}
}

func TestImportNetscapeSkip(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	result, err := env.portingSvc.ImportNetscape(ctx, "u1", nestedImportHTML, services.StrategySkip)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if result.BookmarksCreated != 0 {
		t.Errorf("bookmarksCreated = %d, want 0", result.BookmarksCreated)
	}
	if result.BookmarksSkipped != 3 {
		t.Errorf("bookmarksSkipped = %d, want 3", result.BookmarksSkipped)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "Too Deep") || !strings.Contains(result.Warnings[0], "3") {
		t.Errorf("warning %q should name the folder and count", result.Warnings[0])
	}

	state, err := env.stateSvc.GetState(ctx, "u1")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if len(state.Bookmarks) != 0 {
		t.Errorf("bookmarks = %d, want 0", len(state.Bookmarks))
	}
}

func TestImportNetscapeRootStrategySkipsNested(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	result, err := env.portingSvc.ImportNetscape(ctx, "u1", nestedImportHTML, services.StrategyRoot)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	// No root mapping exists below group level, so the nested folder is
	// treated like skip with its own warning.
	if result.BookmarksCreated != 0 {
		t.Errorf("bookmarksCreated = %d, want 0", result.BookmarksCreated)
	}
	if result.BookmarksSkipped != 3 {
		t.Errorf("bookmarksSkipped = %d, want 3", result.BookmarksSkipped)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "Root strategy not supported") ||
		!strings.Contains(result.Warnings[0], "Too Deep") {
		t.Errorf("warning %q should name the strategy and folder", result.Warnings[0])
	}

	state, err := env.stateSvc.GetState(ctx, "u1")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if len(state.Bookmarks) != 0 {
		t.Errorf("bookmarks = %d, want 0", len(state.Bookmarks))
	}
	// Containers are still created for the folder and group levels.
	if result.FoldersCreated != 1 || result.GroupsCreated != 1 {
		t.Errorf("foldersCreated = %d, groupsCreated = %d, want 1 and 1",
			result.FoldersCreated, result.GroupsCreated)
	}
}

func TestImportNetscapeSkipsBadBookmarkAndContinues(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	longTitle := strings.Repeat("x", 201)
	html := fmt.Sprintf(`<DL><p>
    <DT><H3>Folder</H3>
    <DL><p>
        <DT><H3>Group</H3>
        <DL><p>
            <DT><A HREF="https://bad.example.com">%s</A>
            <DT><A HREF="https://good.example.com">Good</A>
        </DL><p>
    </DL><p>
</DL><p>`, longTitle)

	result, err := env.portingSvc.ImportNetscape(ctx, "u1", html, services.StrategySkip)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	// The oversized title fails validation; that bookmark alone is skipped
	// and the rest of the run lands.
	if result.BookmarksCreated != 1 {
		t.Errorf("bookmarksCreated = %d, want 1", result.BookmarksCreated)
	}
	if result.BookmarksSkipped != 1 {
		t.Errorf("bookmarksSkipped = %d, want 1", result.BookmarksSkipped)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "Failed to import bookmark") {
		t.Errorf("warning %q should report the failed bookmark", result.Warnings[0])
	}

	state, err := env.stateSvc.GetState(ctx, "u1")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if len(state.Bookmarks) != 1 {
		t.Fatalf("bookmarks = %d, want 1", len(state.Bookmarks))
	}
	if state.Bookmarks[0].URL != "https://good.example.com" {
		t.Errorf("surviving url = %s, want https://good.example.com", state.Bookmarks[0].URL)
	}
	positions := make([]int, len(state.Bookmarks))
	for i, b := range state.Bookmarks {
		positions[i] = b.Position
	}
	if !ordering.IsDense(positions) {
		t.Errorf("positions %v not dense after a skipped bookmark", positions)
	}
}

func TestImportNetscapeRootLevelBookmark(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	html := `<DL><p>
    <DT><A HREF="https://stray.example.com">Stray</A>
    <DT><H3>Kept</H3>
    <DL><p>
        <DT><H3>Group</H3>
        <DL><p>
            <DT><A HREF="https://kept.example.com">Kept Link</A>
        </DL><p>
    </DL><p>
</DL><p>`

	result, err := env.portingSvc.ImportNetscape(ctx, "u1", html, services.StrategyFlatten)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.BookmarksCreated != 1 {
		t.Errorf("bookmarksCreated = %d, want 1", result.BookmarksCreated)
	}
	if result.BookmarksSkipped != 1 {
		t.Errorf("bookmarksSkipped = %d, want 1", result.BookmarksSkipped)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "Stray") {
		t.Errorf("warnings = %v, want one naming the stray bookmark", result.Warnings)
	}
}

func TestImportNetscapeTabBook(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	html := `<DL><p>
    <DT><H3 PAGE="true">Home</H3>
    <DL><p>
        <DT><H3 BOOKMARKS="true">Daily</H3>
        <DL><p>
            <DT><A HREF="https://loose.example.com">Loose</A>
            <DT><H3>News</H3>
            <DL><p>
                <DT><A HREF="https://news.example.com">News Site</A>
            </DL><p>
        </DL><p>
    </DL><p>
</DL><p>`

	result, err := env.portingSvc.ImportNetscape(ctx, "u1", html, services.StrategyFlatten)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	// The page container is transparent, the tab book becomes the folder,
	// its H3 child becomes a group, and the loose bookmark lands in an
	// Unsorted group.
	if result.FoldersCreated != 1 {
		t.Errorf("foldersCreated = %d, want 1", result.FoldersCreated)
	}
	if result.GroupsCreated != 2 {
		t.Errorf("groupsCreated = %d, want 2", result.GroupsCreated)
	}
	if result.BookmarksCreated != 2 {
		t.Errorf("bookmarksCreated = %d, want 2", result.BookmarksCreated)
	}

	state, err := env.stateSvc.GetState(ctx, "u1")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if len(state.Folders) != 1 || state.Folders[0].Title != "Daily" {
		t.Fatalf("folders = %+v, want one named Daily", state.Folders)
	}
	titles := map[string]bool{}
	for _, g := range state.Groups {
		titles[g.Title] = true
	}
	if !titles["Unsorted"] || !titles["News"] {
		t.Errorf("group titles = %v, want Unsorted and News", titles)
	}
}

func TestImportNetscapeReusesLowestPositionWorkspace(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.workspaceSvc.Create(ctx, "u1", "First")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	if _, err := env.workspaceSvc.Create(ctx, "u1", "Second"); err != nil {
		t.Fatalf("create workspace: %v", err)
	}

	html := `<DL><p><DT><H3>Imported Folder</H3><DL><p></DL><p></DL><p>`
	if _, err := env.portingSvc.ImportNetscape(ctx, "u1", html, services.StrategySkip); err != nil {
		t.Fatalf("import: %v", err)
	}

	state, err := env.stateSvc.GetState(ctx, "u1")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if len(state.Workspaces) != 2 {
		t.Fatalf("import created a workspace despite existing ones: %+v", state.Workspaces)
	}
	if len(state.Folders) != 1 || state.Folders[0].WorkspaceID != first.ID {
		t.Errorf("imported folder not under the lowest-position workspace")
	}
}

func TestImportNetscapeCreatesImportedWorkspace(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	html := `<DL><p><DT><H3>Folder</H3><DL><p></DL><p></DL><p>`
	if _, err := env.portingSvc.ImportNetscape(ctx, "u1", html, services.StrategyFlatten); err != nil {
		t.Fatalf("import: %v", err)
	}

	state, err := env.stateSvc.GetState(ctx, "u1")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if len(state.Workspaces) != 1 || state.Workspaces[0].Title != "Imported" {
		t.Errorf("workspaces = %+v, want one named Imported", state.Workspaces)
	}
}

func TestImportNetscapeRejectsUnknownStrategy(t *testing.T) {
	env := newTestEnv()

	_, err := env.portingSvc.ImportNetscape(context.Background(), "u1", "<DL><p></DL><p>", "merge")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// Source hierarchy with suggestive ordering and tags.
	ws, _ := env.workspaceSvc.Create(ctx, "u1", "Research")
	folder, _ := env.folderSvc.Create(ctx, "u1", ws.ID, "Papers")
	groupA, _ := env.groupSvc.Create(ctx, "u1", folder.ID, "To Read")
	groupB, _ := env.groupSvc.Create(ctx, "u1", folder.ID, "Done")
	if _, err := env.bookmarkSvc.Create(ctx, "u1", &services.CreateBookmarkRequest{
		GroupID: groupA.ID, URL: "https://one.example.com", Title: "One", Tags: []string{"ml", "go"},
	}); err != nil {
		t.Fatalf("create bookmark: %v", err)
	}
	if _, err := env.bookmarkSvc.Create(ctx, "u1", &services.CreateBookmarkRequest{
		GroupID: groupB.ID, URL: "https://two.example.com", Title: "Two", Description: "finished",
	}); err != nil {
		t.Fatalf("create bookmark: %v", err)
	}

	doc, err := env.portingSvc.ExportJSON(ctx, "u1")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if doc.Version != services.CurrentExportVersion {
		t.Fatalf("version = %d", doc.Version)
	}

	result, err := env.portingSvc.ImportJSON(ctx, "u2", doc)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.FoldersCreated != 1 || result.GroupsCreated != 2 || result.BookmarksCreated != 2 {
		t.Fatalf("result = %+v", result)
	}

	state, err := env.stateSvc.GetState(ctx, "u2")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if len(state.Workspaces) != 1 || state.Workspaces[0].Title != "Research" {
		t.Fatalf("workspaces = %+v", state.Workspaces)
	}
	if len(state.Groups) != 2 || state.Groups[0].Title != "To Read" || state.Groups[1].Title != "Done" {
		t.Fatalf("group order not preserved: %+v", state.Groups)
	}
	if len(state.Bookmarks) != 2 {
		t.Fatalf("bookmarks = %+v", state.Bookmarks)
	}
	one := state.Bookmarks[0]
	if one.Title != "One" {
		one = state.Bookmarks[1]
	}
	if len(one.Tags) != 2 || one.Tags[0] != "go" || one.Tags[1] != "ml" {
		t.Errorf("tags = %v, want [go ml]", one.Tags)
	}
}

func TestImportJSONRejectsUnsupportedVersion(t *testing.T) {
	env := newTestEnv()

	doc := &services.JSONExport{Version: 2, Workspaces: []services.JSONWorkspace{{Title: "W"}}}
	_, err := env.portingSvc.ImportJSON(context.Background(), "u1", doc)
	if !errors.Is(err, domain.ErrUnsupportedVersion) {
		t.Fatalf("error = %v, want ErrUnsupportedVersion", err)
	}

	// Nothing may have been written.
	state, stateErr := env.stateSvc.GetState(context.Background(), "u1")
	if stateErr != nil {
		t.Fatalf("get state: %v", stateErr)
	}
	if len(state.Workspaces) != 0 {
		t.Errorf("workspaces created despite version mismatch: %+v", state.Workspaces)
	}
}

func TestExportNetscapeRoundTripThroughImport(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ws, _ := env.workspaceSvc.Create(ctx, "u1", "Stuff")
	folder, _ := env.folderSvc.Create(ctx, "u1", ws.ID, "Links & More")
	group, _ := env.groupSvc.Create(ctx, "u1", folder.ID, "Daily")
	if _, err := env.bookmarkSvc.Create(ctx, "u1", &services.CreateBookmarkRequest{
		GroupID: group.ID, URL: "https://example.com/?a=1&b=2", Title: "A <fine> page",
	}); err != nil {
		t.Fatalf("create bookmark: %v", err)
	}

	html, err := env.portingSvc.ExportNetscape(ctx, "u1")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	result, err := env.portingSvc.ImportNetscape(ctx, "u2", html, services.StrategyFlatten)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	// The exported workspace level maps back onto the import destination
	// workspace, so its folder level becomes the imported folder.
	if result.BookmarksCreated != 1 {
		t.Fatalf("result = %+v", result)
	}

	state, err := env.stateSvc.GetState(ctx, "u2")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if len(state.Bookmarks) != 1 {
		t.Fatalf("bookmarks = %+v", state.Bookmarks)
	}
	if state.Bookmarks[0].URL != "https://example.com/?a=1&b=2" {
		t.Errorf("url = %q, escaping not round-tripped", state.Bookmarks[0].URL)
	}
	if state.Bookmarks[0].Title != "A <fine> page" {
		t.Errorf("title = %q, escaping not round-tripped", state.Bookmarks[0].Title)
	}
}
