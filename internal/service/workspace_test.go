package service

import (
	"context"
	"errors"
	"testing"

	"github.com/VArterJr/neotypa-booktabs/internal/domain"
)

func TestWorkspaceCreateAssignsDensePositions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	for i, title := range []string{"Work", "Home", "Archive"} {
		ws, err := env.workspaceSvc.Create(ctx, "u1", title)
		if err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
		if ws.Position != i {
			t.Errorf("workspace %q position = %d, want %d", title, ws.Position, i)
		}
	}

	// A second user's scope starts over at zero.
	ws, err := env.workspaceSvc.Create(ctx, "u2", "Other")
	if err != nil {
		t.Fatalf("create for u2: %v", err)
	}
	if ws.Position != 0 {
		t.Errorf("u2 first workspace position = %d, want 0", ws.Position)
	}
}

func TestWorkspaceCreateRejectsBlankTitle(t *testing.T) {
	env := newTestEnv()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := env.workspaceSvc.Create(context.Background(), "u1", title)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Create(%q) error = %v, want ErrValidation", title, err)
		}
	}
}

func TestWorkspaceReorderRoundTrip(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"A", "B", "C"} {
		ws, err := env.workspaceSvc.Create(ctx, "u1", title)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, ws.ID)
	}

	want := []string{ids[2], ids[0], ids[1]}
	if err := env.workspaceSvc.Reorder(ctx, "u1", want); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	got, err := env.workspaces.IDs(ctx, "u1")
	if err != nil {
		t.Fatalf("ids: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d ids, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestWorkspaceReorderRejectsPartialSets(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"A", "B", "C"} {
		ws, err := env.workspaceSvc.Create(ctx, "u1", title)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, ws.ID)
	}

	tests := []struct {
		name    string
		ordered []string
	}{
		{"subset", []string{ids[0], ids[1]}},
		{"foreign id", []string{ids[0], ids[1], ids[2], "stranger"}},
		{"duplicate", []string{ids[0], ids[1], ids[1]}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.workspaceSvc.Reorder(ctx, "u1", tt.ordered)
			if !errors.Is(err, domain.ErrInvalidReorderSet) {
				t.Fatalf("error = %v, want ErrInvalidReorderSet", err)
			}

			// Failed reorder leaves positions untouched.
			got, err := env.workspaces.IDs(ctx, "u1")
			if err != nil {
				t.Fatalf("ids: %v", err)
			}
			for i := range ids {
				if got[i] != ids[i] {
					t.Errorf("position %d = %s, want %s", i, got[i], ids[i])
				}
			}
		})
	}
}

func TestWorkspaceDeleteIsOwnershipChecked(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ws, err := env.workspaceSvc.Create(ctx, "u1", "Mine")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := env.workspaceSvc.Delete(ctx, "u2", ws.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("delete by other user = %v, want ErrNotFound", err)
	}
	if err := env.workspaceSvc.Delete(ctx, "u1", ws.ID); err != nil {
		t.Errorf("delete by owner: %v", err)
	}
}
