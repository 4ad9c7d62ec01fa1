package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VArterJr/neotypa-booktabs/internal/domain"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/models"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/repositories"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/services"
	"github.com/VArterJr/neotypa-booktabs/internal/netscape"
	"github.com/VArterJr/neotypa-booktabs/internal/ordering"
)

type portingService struct {
	workspaces repositories.WorkspaceRepository
	folders    repositories.FolderRepository
	groups     repositories.GroupRepository
	bookmarks  repositories.BookmarkRepository
	tags       repositories.TagRepository
	state      services.StateService
	tx         repositories.TransactionManager
	logger     *slog.Logger
}

// NewPortingService creates a new porting service
func NewPortingService(
	workspaces repositories.WorkspaceRepository,
	folders repositories.FolderRepository,
	groups repositories.GroupRepository,
	bookmarks repositories.BookmarkRepository,
	tags repositories.TagRepository,
	state services.StateService,
	tx repositories.TransactionManager,
	logger *slog.Logger,
) services.PortingService {
	return &portingService{
		workspaces: workspaces,
		folders:    folders,
		groups:     groups,
		bookmarks:  bookmarks,
		tags:       tags,
		state:      state,
		tx:         tx,
		logger:     logger,
	}
}

func (s *portingService) ImportNetscape(ctx context.Context, userID, html string, strategy services.ImportStrategy) (*services.ImportResult, error) {
	if !strategy.Valid() {
		return nil, fmt.Errorf("%w: unknown import strategy %q", domain.ErrValidation, strategy)
	}

	items := netscape.Parse(html)
	result := &services.ImportResult{Warnings: []string{}}

	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		run := &importRun{svc: s, userID: userID, strategy: strategy, result: result}
		workspaceID, err := run.destinationWorkspace(ctx)
		if err != nil {
			return err
		}
		return run.importItems(ctx, workspaceID, items)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("netscape import finished",
		"user_id", userID,
		"strategy", strategy,
		"folders", result.FoldersCreated,
		"groups", result.GroupsCreated,
		"bookmarks", result.BookmarksCreated,
		"skipped", result.BookmarksSkipped,
	)
	return result, nil
}

func (s *portingService) ImportJSON(ctx context.Context, userID string, doc *services.JSONExport) (*services.ImportResult, error) {
	if doc.Version != services.CurrentExportVersion {
		return nil, fmt.Errorf("%w: got version %d, want %d", domain.ErrUnsupportedVersion, doc.Version, services.CurrentExportVersion)
	}

	result := &services.ImportResult{Warnings: []string{}}

	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		run := &importRun{svc: s, userID: userID, result: result}
		for _, jw := range doc.Workspaces {
			workspaceID, err := run.createWorkspace(ctx, jw.Title)
			if err != nil {
				return err
			}
			for _, jf := range jw.Folders {
				folderID, err := run.createFolder(ctx, workspaceID, jf.Title)
				if err != nil {
					return err
				}
				result.FoldersCreated++
				for _, jg := range jf.Groups {
					groupID, err := run.createGroup(ctx, folderID, jg.Title)
					if err != nil {
						return err
					}
					result.GroupsCreated++
					for _, jb := range jg.Bookmarks {
						run.createBookmark(ctx, groupID, jb.URL, jb.Title, jb.Description, jb.Tags)
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("json import finished",
		"user_id", userID,
		"folders", result.FoldersCreated,
		"groups", result.GroupsCreated,
		"bookmarks", result.BookmarksCreated,
		"skipped", result.BookmarksSkipped,
	)
	return result, nil
}

func (s *portingService) ExportNetscape(ctx context.Context, userID string) (string, error) {
	state, err := s.state.GetState(ctx, userID)
	if err != nil {
		return "", err
	}
	return netscape.Export(state), nil
}

func (s *portingService) ExportJSON(ctx context.Context, userID string) (*services.JSONExport, error) {
	state, err := s.state.GetState(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc := &services.JSONExport{
		Version:    services.CurrentExportVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Workspaces: []services.JSONWorkspace{},
	}
	for _, ws := range state.Workspaces {
		jw := services.JSONWorkspace{Title: ws.Title, Position: ws.Position, Folders: []services.JSONFolder{}}
		for _, f := range state.Folders {
			if f.WorkspaceID != ws.ID {
				continue
			}
			jf := services.JSONFolder{Title: f.Title, Position: f.Position, Groups: []services.JSONGroup{}}
			for _, g := range state.Groups {
				if g.FolderID != f.ID {
					continue
				}
				jg := services.JSONGroup{Title: g.Title, Position: g.Position, Bookmarks: []services.JSONBookmark{}}
				for _, b := range state.Bookmarks {
					if b.GroupID != g.ID {
						continue
					}
					jg.Bookmarks = append(jg.Bookmarks, services.JSONBookmark{
						URL:         b.URL,
						Title:       b.Title,
						Description: b.Description,
						Tags:        b.Tags,
						Position:    b.Position,
					})
				}
				jf.Groups = append(jf.Groups, jg)
			}
			jw.Folders = append(jw.Folders, jf)
		}
		doc.Workspaces = append(doc.Workspaces, jw)
	}
	return doc, nil
}

// importRun carries the per-run tally and creation helpers. All helpers run
// inside the surrounding transaction.
type importRun struct {
	svc      *portingService
	userID   string
	strategy services.ImportStrategy
	result   *services.ImportResult
}

// destinationWorkspace reuses the user's lowest-position workspace, creating
// one titled "Imported" when the account has none.
func (r *importRun) destinationWorkspace(ctx context.Context) (string, error) {
	existing, err := r.svc.workspaces.ListByUser(ctx, r.userID)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return existing[0].ID, nil
	}
	return r.createWorkspace(ctx, "Imported")
}

// importItems maps a parsed tree level onto the hierarchy. Folder items
// become folders; their children become groups. A folder flagged as a page
// container is transparent, its children are processed in place.
func (r *importRun) importItems(ctx context.Context, workspaceID string, items []netscape.Item) error {
	for _, item := range items {
		switch it := item.(type) {
		case *netscape.Bookmark:
			r.result.Warnings = append(r.result.Warnings, fmt.Sprintf("Bookmark %q at root level, skipping", it.Title))
			r.result.BookmarksSkipped++

		case *netscape.Folder:
			if it.IsPage {
				if err := r.importItems(ctx, workspaceID, it.Children); err != nil {
					return err
				}
				continue
			}

			folderID, err := r.createFolder(ctx, workspaceID, it.Title)
			if err != nil {
				return err
			}
			r.result.FoldersCreated++

			if it.IsTabBook {
				if err := r.importTabBook(ctx, folderID, it.Children); err != nil {
					return err
				}
			} else if err := r.importFolderChildren(ctx, folderID, it.Children); err != nil {
				return err
			}
		}
	}
	return nil
}

// importTabBook handles a folder marked as a tab collection: every child
// folder is a group, and loose bookmarks land in an "Unsorted" group.
func (r *importRun) importTabBook(ctx context.Context, folderID string, items []netscape.Item) error {
	for _, item := range items {
		switch it := item.(type) {
		case *netscape.Bookmark:
			groupID, err := r.getOrCreateGroup(ctx, folderID, "Unsorted")
			if err != nil {
				return err
			}
			r.createBookmark(ctx, groupID, it.URL, it.Title, "", nil)

		case *netscape.Folder:
			groupID, err := r.createGroup(ctx, folderID, it.Title)
			if err != nil {
				return err
			}
			r.result.GroupsCreated++
			if err := r.fillGroup(ctx, groupID, it.Children); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *importRun) importFolderChildren(ctx context.Context, folderID string, items []netscape.Item) error {
	for _, item := range items {
		switch it := item.(type) {
		case *netscape.Bookmark:
			groupID, err := r.getOrCreateGroup(ctx, folderID, "Unsorted")
			if err != nil {
				return err
			}
			r.createBookmark(ctx, groupID, it.URL, it.Title, "", nil)

		case *netscape.Folder:
			groupID, err := r.createGroup(ctx, folderID, it.Title)
			if err != nil {
				return err
			}
			r.result.GroupsCreated++
			if err := r.fillGroup(ctx, groupID, it.Children); err != nil {
				return err
			}
		}
	}
	return nil
}

// fillGroup inserts a group's bookmarks. Folders nested below group level
// have no place in the hierarchy, so the run's strategy decides their fate.
func (r *importRun) fillGroup(ctx context.Context, groupID string, items []netscape.Item) error {
	for _, item := range items {
		switch it := item.(type) {
		case *netscape.Bookmark:
			r.createBookmark(ctx, groupID, it.URL, it.Title, "", nil)

		case *netscape.Folder:
			switch r.strategy {
			case services.StrategyFlatten:
				for _, b := range flattenBookmarks(it) {
					r.createBookmark(ctx, groupID, b.URL, b.Title, "", nil)
				}
			case services.StrategySkip:
				n := countBookmarks(it)
				r.result.BookmarksSkipped += n
				r.result.Warnings = append(r.result.Warnings, fmt.Sprintf("Skipped %d bookmarks in nested folder %q", n, it.Title))
			case services.StrategyRoot:
				n := countBookmarks(it)
				r.result.BookmarksSkipped += n
				r.result.Warnings = append(r.result.Warnings, fmt.Sprintf("Root strategy not supported for nested folder %q, skipped %d bookmarks", it.Title, n))
			}
		}
	}
	return nil
}

func (r *importRun) createWorkspace(ctx context.Context, title string) (string, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return "", err
	}
	max, err := r.svc.workspaces.MaxPosition(ctx, r.userID)
	if err != nil {
		return "", err
	}
	ws := &models.Workspace{
		ID:        uuid.NewString(),
		UserID:    r.userID,
		Title:     title,
		Position:  ordering.Next(max),
		CreatedAt: time.Now(),
	}
	if err := r.svc.workspaces.Create(ctx, ws); err != nil {
		return "", err
	}
	return ws.ID, nil
}

func (r *importRun) createFolder(ctx context.Context, workspaceID, title string) (string, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return "", err
	}
	max, err := r.svc.folders.MaxPosition(ctx, workspaceID)
	if err != nil {
		return "", err
	}
	f := &models.Folder{
		ID:          uuid.NewString(),
		UserID:      r.userID,
		WorkspaceID: workspaceID,
		Title:       title,
		Position:    ordering.Next(max),
		CreatedAt:   time.Now(),
	}
	if err := r.svc.folders.Create(ctx, f); err != nil {
		return "", err
	}
	return f.ID, nil
}

func (r *importRun) createGroup(ctx context.Context, folderID, title string) (string, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return "", err
	}
	max, err := r.svc.groups.MaxPosition(ctx, folderID)
	if err != nil {
		return "", err
	}
	g := &models.Group{
		ID:        uuid.NewString(),
		UserID:    r.userID,
		FolderID:  folderID,
		Title:     title,
		Position:  ordering.Next(max),
		CreatedAt: time.Now(),
	}
	if err := r.svc.groups.Create(ctx, g); err != nil {
		return "", err
	}
	return g.ID, nil
}

func (r *importRun) getOrCreateGroup(ctx context.Context, folderID, title string) (string, error) {
	existing, err := r.svc.groups.GetByTitle(ctx, r.userID, folderID, title)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}
	id, err := r.createGroup(ctx, folderID, title)
	if err != nil {
		return "", err
	}
	r.result.GroupsCreated++
	return id, nil
}

// createBookmark inserts one bookmark and tallies the outcome. A failure is
// recorded as a skip with a warning and never aborts the run.
func (r *importRun) createBookmark(ctx context.Context, groupID, url, title, description string, tags []string) {
	if strings.TrimSpace(title) == "" {
		title = url
	}
	if err := r.insertBookmark(ctx, groupID, url, title, description, tags); err != nil {
		r.result.Warnings = append(r.result.Warnings, fmt.Sprintf("Failed to import bookmark %q: %v", title, err))
		r.result.BookmarksSkipped++
		return
	}
	r.result.BookmarksCreated++
}

func (r *importRun) insertBookmark(ctx context.Context, groupID, url, title, description string, tags []string) error {
	title, err := cleanTitle(title)
	if err != nil {
		return err
	}
	if err := validateURL(url); err != nil {
		return err
	}
	if err := validateDescription(description); err != nil {
		return err
	}
	clean, err := cleanTags(tags)
	if err != nil {
		return err
	}
	max, err := r.svc.bookmarks.MaxPosition(ctx, groupID)
	if err != nil {
		return err
	}
	b := &models.Bookmark{
		ID:          uuid.NewString(),
		UserID:      r.userID,
		GroupID:     groupID,
		URL:         strings.TrimSpace(url),
		Title:       title,
		Description: strings.TrimSpace(description),
		Position:    ordering.Next(max),
		CreatedAt:   time.Now(),
	}
	if err := r.svc.bookmarks.Create(ctx, b); err != nil {
		return err
	}
	if len(clean) == 0 {
		return nil
	}
	return r.svc.tags.ReplaceBookmarkTags(ctx, r.userID, b.ID, clean)
}

func flattenBookmarks(folder *netscape.Folder) []*netscape.Bookmark {
	var out []*netscape.Bookmark
	for _, child := range folder.Children {
		switch it := child.(type) {
		case *netscape.Bookmark:
			out = append(out, it)
		case *netscape.Folder:
			out = append(out, flattenBookmarks(it)...)
		}
	}
	return out
}

func countBookmarks(folder *netscape.Folder) int {
	n := 0
	for _, child := range folder.Children {
		switch it := child.(type) {
		case *netscape.Bookmark:
			n++
		case *netscape.Folder:
			n += countBookmarks(it)
		}
	}
	return n
}
