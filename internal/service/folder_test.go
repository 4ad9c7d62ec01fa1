package service

import (
	"context"
	"errors"
	"testing"

	"github.com/VArterJr/neotypa-booktabs/internal/domain"
)

func TestFolderCreateChecksParentOwnership(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	wsID, _, _ := env.seedContainer(t, "u1")

	if _, err := env.folderSvc.Create(ctx, "u2", wsID, "Sneaky"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("create in foreign workspace = %v, want ErrNotFound", err)
	}
	if _, err := env.folderSvc.Create(ctx, "u1", "no-such-ws", "Lost"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("create in missing workspace = %v, want ErrNotFound", err)
	}
}

func TestFolderMoveTransfersParentage(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	src, err := env.workspaceSvc.Create(ctx, "u1", "Source")
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	dst, err := env.workspaceSvc.Create(ctx, "u1", "Destination")
	if err != nil {
		t.Fatalf("create destination: %v", err)
	}

	moving, err := env.folderSvc.Create(ctx, "u1", src.ID, "Moving")
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	resident, err := env.folderSvc.Create(ctx, "u1", dst.ID, "Resident")
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}

	// Moved folder goes to the front of the destination.
	order := []string{moving.ID, resident.ID}
	if err := env.folderSvc.Move(ctx, "u1", moving.ID, dst.ID, order); err != nil {
		t.Fatalf("move: %v", err)
	}

	got, err := env.folders.GetByID(ctx, moving.ID, "u1")
	if err != nil {
		t.Fatalf("get moved folder: %v", err)
	}
	if got.WorkspaceID != dst.ID {
		t.Errorf("workspace = %s, want %s", got.WorkspaceID, dst.ID)
	}

	ids, err := env.folders.IDs(ctx, "u1", dst.ID)
	if err != nil {
		t.Fatalf("destination ids: %v", err)
	}
	for i := range order {
		if ids[i] != order[i] {
			t.Errorf("destination position %d = %s, want %s", i, ids[i], order[i])
		}
	}

	srcIDs, err := env.folders.IDs(ctx, "u1", src.ID)
	if err != nil {
		t.Fatalf("source ids: %v", err)
	}
	if len(srcIDs) != 0 {
		t.Errorf("source still has %d folders", len(srcIDs))
	}
}

func TestFolderMoveRejectsIncompleteOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	src, _ := env.workspaceSvc.Create(ctx, "u1", "Source")
	dst, _ := env.workspaceSvc.Create(ctx, "u1", "Destination")
	moving, _ := env.folderSvc.Create(ctx, "u1", src.ID, "Moving")
	resident, _ := env.folderSvc.Create(ctx, "u1", dst.ID, "Resident")

	// The order must cover the destination's membership after the move,
	// including the moved folder itself.
	err := env.folderSvc.Move(ctx, "u1", moving.ID, dst.ID, []string{resident.ID})
	if !errors.Is(err, domain.ErrInvalidReorderSet) {
		t.Fatalf("move with partial order = %v, want ErrInvalidReorderSet", err)
	}
}

func TestFolderReorderChecksScopeOwnership(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	wsID, folderID, _ := env.seedContainer(t, "u1")

	err := env.folderSvc.Reorder(ctx, "u2", wsID, []string{folderID})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("reorder foreign workspace = %v, want ErrNotFound", err)
	}
}
