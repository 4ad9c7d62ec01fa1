package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/VArterJr/neotypa-booktabs/internal/domain"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/models"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/repositories"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/services"
)

// memDB is an in-memory stand-in for the postgres repositories, good enough
// to exercise the services' ordering and mapping logic without a database.
type memDB struct {
	seq        int
	workspaces map[string]*models.Workspace
	folders    map[string]*models.Folder
	groups     map[string]*models.Group
	bookmarks  map[string]*models.Bookmark
	users      map[string]*models.User
	tagSets    map[string][]string
	inserted   map[string]int
}

func newMemDB() *memDB {
	return &memDB{
		workspaces: map[string]*models.Workspace{},
		folders:    map[string]*models.Folder{},
		groups:     map[string]*models.Group{},
		bookmarks:  map[string]*models.Bookmark{},
		users:      map[string]*models.User{},
		tagSets:    map[string][]string{},
		inserted:   map[string]int{},
	}
}

func (db *memDB) track(id string) {
	db.seq++
	db.inserted[id] = db.seq
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
}

// memTx satisfies repositories.TransactionManager. The fakes mutate shared
// maps directly, so there is nothing to commit or roll back.
type memTx struct{}

func (memTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memWorkspaces struct{ db *memDB }

func (m *memWorkspaces) Create(_ context.Context, ws *models.Workspace) error {
	cp := *ws
	m.db.workspaces[ws.ID] = &cp
	m.db.track(ws.ID)
	return nil
}

func (m *memWorkspaces) GetByID(_ context.Context, id, userID string) (*models.Workspace, error) {
	ws, ok := m.db.workspaces[id]
	if !ok || ws.UserID != userID {
		return nil, notFound("workspace", id)
	}
	cp := *ws
	return &cp, nil
}

func (m *memWorkspaces) ListByUser(_ context.Context, userID string) ([]models.Workspace, error) {
	var out []models.Workspace
	for _, ws := range m.db.workspaces {
		if ws.UserID == userID {
			out = append(out, *ws)
		}
	}
	sortByPosition(m.db, out, func(w models.Workspace) (int, string) { return w.Position, w.ID })
	return out, nil
}

func (m *memWorkspaces) UpdateTitle(_ context.Context, id, userID, title string) error {
	ws, ok := m.db.workspaces[id]
	if !ok || ws.UserID != userID {
		return notFound("workspace", id)
	}
	ws.Title = title
	return nil
}

func (m *memWorkspaces) Delete(_ context.Context, id, userID string) error {
	ws, ok := m.db.workspaces[id]
	if !ok || ws.UserID != userID {
		return notFound("workspace", id)
	}
	delete(m.db.workspaces, id)
	for fid, f := range m.db.folders {
		if f.WorkspaceID == id {
			folderRepo := &memFolders{db: m.db}
			_ = folderRepo.Delete(context.Background(), fid, userID)
		}
	}
	return nil
}

func (m *memWorkspaces) IDs(_ context.Context, userID string) ([]string, error) {
	list, _ := m.ListByUser(context.Background(), userID)
	ids := make([]string, len(list))
	for i, ws := range list {
		ids[i] = ws.ID
	}
	return ids, nil
}

func (m *memWorkspaces) MaxPosition(_ context.Context, userID string) (int, error) {
	max := -1
	for _, ws := range m.db.workspaces {
		if ws.UserID == userID && ws.Position > max {
			max = ws.Position
		}
	}
	return max, nil
}

func (m *memWorkspaces) SetPositions(_ context.Context, userID string, orderedIDs []string) error {
	for idx, id := range orderedIDs {
		if ws, ok := m.db.workspaces[id]; ok && ws.UserID == userID {
			ws.Position = idx
		}
	}
	return nil
}

type memFolders struct{ db *memDB }

func (m *memFolders) Create(_ context.Context, f *models.Folder) error {
	if _, ok := m.db.workspaces[f.WorkspaceID]; !ok {
		return notFound("workspace", f.WorkspaceID)
	}
	cp := *f
	m.db.folders[f.ID] = &cp
	m.db.track(f.ID)
	return nil
}

func (m *memFolders) GetByID(_ context.Context, id, userID string) (*models.Folder, error) {
	f, ok := m.db.folders[id]
	if !ok || f.UserID != userID {
		return nil, notFound("folder", id)
	}
	cp := *f
	return &cp, nil
}

func (m *memFolders) ListByUser(_ context.Context, userID string) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range m.db.folders {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	sortByPosition(m.db, out, func(f models.Folder) (int, string) { return f.Position, f.ID })
	return out, nil
}

func (m *memFolders) UpdateTitle(_ context.Context, id, userID, title string) error {
	f, ok := m.db.folders[id]
	if !ok || f.UserID != userID {
		return notFound("folder", id)
	}
	f.Title = title
	return nil
}

func (m *memFolders) Delete(_ context.Context, id, userID string) error {
	f, ok := m.db.folders[id]
	if !ok || f.UserID != userID {
		return notFound("folder", id)
	}
	delete(m.db.folders, id)
	for gid, g := range m.db.groups {
		if g.FolderID == id {
			groupRepo := &memGroups{db: m.db}
			_ = groupRepo.Delete(context.Background(), gid, userID)
		}
	}
	return nil
}

func (m *memFolders) IDs(_ context.Context, userID, workspaceID string) ([]string, error) {
	var out []models.Folder
	for _, f := range m.db.folders {
		if f.UserID == userID && f.WorkspaceID == workspaceID {
			out = append(out, *f)
		}
	}
	sortByPosition(m.db, out, func(f models.Folder) (int, string) { return f.Position, f.ID })
	ids := make([]string, len(out))
	for i, f := range out {
		ids[i] = f.ID
	}
	return ids, nil
}

func (m *memFolders) MaxPosition(_ context.Context, workspaceID string) (int, error) {
	max := -1
	for _, f := range m.db.folders {
		if f.WorkspaceID == workspaceID && f.Position > max {
			max = f.Position
		}
	}
	return max, nil
}

func (m *memFolders) SetPositions(_ context.Context, userID string, orderedIDs []string) error {
	for idx, id := range orderedIDs {
		if f, ok := m.db.folders[id]; ok && f.UserID == userID {
			f.Position = idx
		}
	}
	return nil
}

func (m *memFolders) SetWorkspace(_ context.Context, id, userID, workspaceID string) error {
	f, ok := m.db.folders[id]
	if !ok || f.UserID != userID {
		return notFound("folder", id)
	}
	f.WorkspaceID = workspaceID
	return nil
}

type memGroups struct{ db *memDB }

func (m *memGroups) Create(_ context.Context, g *models.Group) error {
	if _, ok := m.db.folders[g.FolderID]; !ok {
		return notFound("folder", g.FolderID)
	}
	cp := *g
	m.db.groups[g.ID] = &cp
	m.db.track(g.ID)
	return nil
}

func (m *memGroups) GetByID(_ context.Context, id, userID string) (*models.Group, error) {
	g, ok := m.db.groups[id]
	if !ok || g.UserID != userID {
		return nil, notFound("group", id)
	}
	cp := *g
	return &cp, nil
}

func (m *memGroups) ListByUser(_ context.Context, userID string) ([]models.Group, error) {
	var out []models.Group
	for _, g := range m.db.groups {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	sortByPosition(m.db, out, func(g models.Group) (int, string) { return g.Position, g.ID })
	return out, nil
}

func (m *memGroups) GetByTitle(_ context.Context, userID, folderID, title string) (*models.Group, error) {
	for _, g := range m.db.groups {
		if g.UserID == userID && g.FolderID == folderID && g.Title == title {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memGroups) UpdateTitle(_ context.Context, id, userID, title string) error {
	g, ok := m.db.groups[id]
	if !ok || g.UserID != userID {
		return notFound("group", id)
	}
	g.Title = title
	return nil
}

func (m *memGroups) Delete(_ context.Context, id, userID string) error {
	g, ok := m.db.groups[id]
	if !ok || g.UserID != userID {
		return notFound("group", id)
	}
	delete(m.db.groups, id)
	for bid, b := range m.db.bookmarks {
		if b.GroupID == id {
			delete(m.db.bookmarks, bid)
			delete(m.db.tagSets, bid)
		}
	}
	return nil
}

func (m *memGroups) IDs(_ context.Context, userID, folderID string) ([]string, error) {
	var out []models.Group
	for _, g := range m.db.groups {
		if g.UserID == userID && g.FolderID == folderID {
			out = append(out, *g)
		}
	}
	sortByPosition(m.db, out, func(g models.Group) (int, string) { return g.Position, g.ID })
	ids := make([]string, len(out))
	for i, g := range out {
		ids[i] = g.ID
	}
	return ids, nil
}

func (m *memGroups) MaxPosition(_ context.Context, folderID string) (int, error) {
	max := -1
	for _, g := range m.db.groups {
		if g.FolderID == folderID && g.Position > max {
			max = g.Position
		}
	}
	return max, nil
}

func (m *memGroups) SetPositions(_ context.Context, userID string, orderedIDs []string) error {
	for idx, id := range orderedIDs {
		if g, ok := m.db.groups[id]; ok && g.UserID == userID {
			g.Position = idx
		}
	}
	return nil
}

func (m *memGroups) SetFolder(_ context.Context, id, userID, folderID string) error {
	g, ok := m.db.groups[id]
	if !ok || g.UserID != userID {
		return notFound("group", id)
	}
	g.FolderID = folderID
	return nil
}

type memBookmarks struct{ db *memDB }

func (m *memBookmarks) Create(_ context.Context, b *models.Bookmark) error {
	if _, ok := m.db.groups[b.GroupID]; !ok {
		return notFound("group", b.GroupID)
	}
	cp := *b
	cp.Tags = nil
	m.db.bookmarks[b.ID] = &cp
	m.db.track(b.ID)
	return nil
}

func (m *memBookmarks) GetByID(_ context.Context, id, userID string) (*models.Bookmark, error) {
	b, ok := m.db.bookmarks[id]
	if !ok || b.UserID != userID {
		return nil, notFound("bookmark", id)
	}
	cp := *b
	return &cp, nil
}

func (m *memBookmarks) ListByUser(_ context.Context, userID string) ([]models.Bookmark, error) {
	var out []models.Bookmark
	for _, b := range m.db.bookmarks {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	sortByPosition(m.db, out, func(b models.Bookmark) (int, string) { return b.Position, b.ID })
	return out, nil
}

func (m *memBookmarks) Update(_ context.Context, b *models.Bookmark) error {
	cur, ok := m.db.bookmarks[b.ID]
	if !ok || cur.UserID != b.UserID {
		return notFound("bookmark", b.ID)
	}
	cur.URL = b.URL
	cur.Title = b.Title
	cur.Description = b.Description
	return nil
}

func (m *memBookmarks) Delete(_ context.Context, id, userID string) error {
	b, ok := m.db.bookmarks[id]
	if !ok || b.UserID != userID {
		return notFound("bookmark", id)
	}
	delete(m.db.bookmarks, id)
	delete(m.db.tagSets, id)
	return nil
}

func (m *memBookmarks) IDs(_ context.Context, userID, groupID string) ([]string, error) {
	var out []models.Bookmark
	for _, b := range m.db.bookmarks {
		if b.UserID == userID && b.GroupID == groupID {
			out = append(out, *b)
		}
	}
	sortByPosition(m.db, out, func(b models.Bookmark) (int, string) { return b.Position, b.ID })
	ids := make([]string, len(out))
	for i, b := range out {
		ids[i] = b.ID
	}
	return ids, nil
}

func (m *memBookmarks) MaxPosition(_ context.Context, groupID string) (int, error) {
	max := -1
	for _, b := range m.db.bookmarks {
		if b.GroupID == groupID && b.Position > max {
			max = b.Position
		}
	}
	return max, nil
}

func (m *memBookmarks) SetPositions(_ context.Context, userID string, orderedIDs []string) error {
	for idx, id := range orderedIDs {
		if b, ok := m.db.bookmarks[id]; ok && b.UserID == userID {
			b.Position = idx
		}
	}
	return nil
}

func (m *memBookmarks) SetGroup(_ context.Context, id, userID, groupID string) error {
	b, ok := m.db.bookmarks[id]
	if !ok || b.UserID != userID {
		return notFound("bookmark", id)
	}
	b.GroupID = groupID
	return nil
}

type memTags struct{ db *memDB }

func (m *memTags) Ensure(_ context.Context, userID, name string) (string, error) {
	return userID + "/" + name, nil
}

func (m *memTags) ReplaceBookmarkTags(_ context.Context, _ string, bookmarkID string, names []string) error {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	m.db.tagSets[bookmarkID] = sorted
	return nil
}

func (m *memTags) ListForBookmark(_ context.Context, bookmarkID string) ([]string, error) {
	return append([]string(nil), m.db.tagSets[bookmarkID]...), nil
}

func (m *memTags) MapByBookmark(_ context.Context, userID string) (map[string][]string, error) {
	out := map[string][]string{}
	for id, tags := range m.db.tagSets {
		if b, ok := m.db.bookmarks[id]; ok && b.UserID == userID && len(tags) > 0 {
			out[id] = append([]string(nil), tags...)
		}
	}
	return out, nil
}

type memUsers struct{ db *memDB }

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	for _, other := range m.db.users {
		if other.Username == u.Username {
			return fmt.Errorf("username %s: %w", u.Username, domain.ErrConflict)
		}
	}
	cp := *u
	m.db.users[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.db.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.db.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound("user", username)
}

func (m *memUsers) UpdatePreferences(_ context.Context, id string, prefs models.UserPreferences) error {
	u, ok := m.db.users[id]
	if !ok {
		return notFound("user", id)
	}
	u.Preferences = prefs
	return nil
}

// sortByPosition orders by position with insertion order breaking ties, the
// same stable order the real queries produce.
func sortByPosition[T any](db *memDB, items []T, key func(T) (int, string)) {
	sort.SliceStable(items, func(i, j int) bool {
		pi, idi := key(items[i])
		pj, idj := key(items[j])
		if pi != pj {
			return pi < pj
		}
		return db.inserted[idi] < db.inserted[idj]
	})
}

// testEnv wires every service over one shared memDB.
type testEnv struct {
	db         *memDB
	workspaces *memWorkspaces
	folders    *memFolders
	groups     *memGroups
	bookmarks  *memBookmarks
	tags       *memTags
	users      *memUsers

	workspaceSvc services.WorkspaceService
	folderSvc    services.FolderService
	groupSvc     services.GroupService
	bookmarkSvc  services.BookmarkService
	userSvc      services.UserService
	stateSvc     services.StateService
	portingSvc   services.PortingService
}

func newTestEnv() *testEnv {
	db := newMemDB()
	env := &testEnv{
		db:         db,
		workspaces: &memWorkspaces{db: db},
		folders:    &memFolders{db: db},
		groups:     &memGroups{db: db},
		bookmarks:  &memBookmarks{db: db},
		tags:       &memTags{db: db},
		users:      &memUsers{db: db},
	}
	tx := memTx{}
	logger := testLogger()
	env.workspaceSvc = NewWorkspaceService(env.workspaces, tx, logger)
	env.folderSvc = NewFolderService(env.folders, env.workspaces, tx, logger)
	env.groupSvc = NewGroupService(env.groups, env.folders, tx, logger)
	env.bookmarkSvc = NewBookmarkService(env.bookmarks, env.groups, env.tags, tx, logger)
	env.userSvc = NewUserService(env.users, env.workspaces, env.folders, env.groups, tx, logger)
	env.stateSvc = NewStateService(env.workspaces, env.folders, env.groups, env.bookmarks, env.tags, logger)
	env.portingSvc = NewPortingService(env.workspaces, env.folders, env.groups, env.bookmarks, env.tags, env.stateSvc, tx, logger)
	return env
}

// seedContainer creates a workspace, folder, and group for one user and
// returns their ids.
func (env *testEnv) seedContainer(t *testing.T, userID string) (string, string, string) {
	t.Helper()
	ctx := context.Background()
	ws, err := env.workspaceSvc.Create(ctx, userID, "Workspace")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	folder, err := env.folderSvc.Create(ctx, userID, ws.ID, "Folder")
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	group, err := env.groupSvc.Create(ctx, userID, folder.ID, "Group")
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	return ws.ID, folder.ID, group.ID
}
