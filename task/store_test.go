package task

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	f, err := os.CreateTemp("", "taskbook-task-*.db")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	f.Close()
	path := f.Name()
	t.Cleanup(func() { os.Remove(path) })

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1) // prevent SQLITE_BUSY
	t.Cleanup(func() { db.Close() })

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	return store
}

func TestSQLiteStore_CreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-a", "  Buy milk  ", " two liters ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("ID = %d, want 1", created.ID)
	}
	if created.Title != "Buy milk" {
		t.Errorf("Title = %q, want trimmed %q", created.Title, "Buy milk")
	}
	if created.Description != "two liters" {
		t.Errorf("Description = %q, want trimmed %q", created.Description, "two liters")
	}
	if created.Status != StatusIncomplete {
		t.Errorf("Status = %q, want %q", created.Status, StatusIncomplete)
	}

	got, err := store.Get(ctx, "user-a", created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != created.Title || got.Status != StatusIncomplete {
		t.Errorf("Get = %+v, want fields of %+v", got, created)
	}
	if got.OwnerID != "user-a" {
		t.Errorf("OwnerID = %q, want user-a", got.OwnerID)
	}
}

func TestSQLiteStore_Create_Validation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		title string
		desc  string
		want  error
	}{
		{"empty title", "", "", ErrTitleEmpty},
		{"whitespace title", "   ", "", ErrTitleEmpty},
		{"long title", strings.Repeat("a", MaxTitleLen+1), "", ErrTitleTooLong},
		{"long description", "ok", strings.Repeat("b", MaxDescriptionLen+1), ErrDescriptionTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Create(ctx, "user-a", tc.title, tc.desc)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Create err = %v, want %v", err, tc.want)
			}
		})
	}

	// Store must be untouched by rejected creates.
	tasks, err := store.List(ctx, "user-a", Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("store has %d tasks after rejected creates, want 0", len(tasks))
	}
}

func TestSQLiteStore_OwnerIsolation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-a", "private", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Foreign get is indistinguishable from a missing row.
	if _, err := store.Get(ctx, "user-b", created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get as user-b: err = %v, want ErrNotFound", err)
	}

	// Foreign list never includes it, regardless of filter.
	for _, f := range []Filter{{}, {Status: statusPtr(StatusIncomplete)}} {
		tasks, err := store.List(ctx, "user-b", f)
		if err != nil {
			t.Fatalf("List as user-b: %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("List as user-b returned %d tasks, want 0", len(tasks))
		}
	}

	// Foreign mutations have no effect.
	if _, err := store.Update(ctx, "user-b", created.ID, strPtr("stolen"), nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update as user-b: err = %v, want ErrNotFound", err)
	}
	if _, err := store.Toggle(ctx, "user-b", created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Toggle as user-b: err = %v, want ErrNotFound", err)
	}
	removed, err := store.Delete(ctx, "user-b", created.ID)
	if err != nil {
		t.Fatalf("Delete as user-b: %v", err)
	}
	if removed {
		t.Error("Delete as user-b removed a foreign row")
	}

	got, err := store.Get(ctx, "user-a", created.ID)
	if err != nil {
		t.Fatalf("Get as owner after foreign mutations: %v", err)
	}
	if got.Title != "private" || got.Status != StatusIncomplete {
		t.Errorf("task changed by foreign calls: %+v", got)
	}
}

func TestSQLiteStore_List_OrderAndFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := store.Create(ctx, "user-a", title, ""); err != nil {
			t.Fatalf("Create %q: %v", title, err)
		}
	}
	if _, err := store.Toggle(ctx, "user-a", 2); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	all, err := store.List(ctx, "user-a", Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List: got %d tasks, want 3", len(all))
	}
	// Newest-created first.
	for i, want := range []string{"third", "second", "first"} {
		if all[i].Title != want {
			t.Errorf("List[%d].Title = %q, want %q", i, all[i].Title, want)
		}
	}

	complete, err := store.List(ctx, "user-a", Filter{Status: statusPtr(StatusComplete)})
	if err != nil {
		t.Fatalf("List complete: %v", err)
	}
	if len(complete) != 1 || complete[0].ID != 2 {
		t.Errorf("List complete = %v, want just task 2", complete)
	}
}

func TestSQLiteStore_Update_Partial(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-a", "orig", "orig desc")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Update(ctx, "user-a", created.ID, strPtr("new title"), nil)
	if err != nil {
		t.Fatalf("Update title: %v", err)
	}
	if got.Title != "new title" {
		t.Errorf("Title = %q, want new title", got.Title)
	}
	if got.Description != "orig desc" {
		t.Errorf("Description = %q, want unchanged", got.Description)
	}
	if got.Status != StatusIncomplete {
		t.Errorf("Status changed by Update: %q", got.Status)
	}

	if _, err := store.Update(ctx, "user-a", created.ID, strPtr("  "), nil); !errors.Is(err, ErrTitleEmpty) {
		t.Errorf("Update with blank title: err = %v, want ErrTitleEmpty", err)
	}
}

func TestSQLiteStore_Update_NoFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-a", "stay", "put")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Update(ctx, "user-a", created.ID, nil, nil)
	if err != nil {
		t.Fatalf("Update with no fields: %v", err)
	}
	if got.Title != "stay" || got.Description != "put" {
		t.Errorf("no-op update changed fields: %+v", got)
	}
	if !got.UpdatedAt.Equal(created.UpdatedAt) {
		t.Errorf("no-op update refreshed UpdatedAt: %v -> %v", created.UpdatedAt, got.UpdatedAt)
	}
}

func TestSQLiteStore_Toggle_Involution(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-a", "flip me", "desc")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	once, err := store.Toggle(ctx, "user-a", created.ID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if once.Status != StatusComplete {
		t.Errorf("after first toggle: Status = %q, want complete", once.Status)
	}

	twice, err := store.Toggle(ctx, "user-a", created.ID)
	if err != nil {
		t.Fatalf("Toggle again: %v", err)
	}
	if twice.Status != StatusIncomplete {
		t.Errorf("after second toggle: Status = %q, want incomplete", twice.Status)
	}
	if twice.Title != created.Title || twice.Description != created.Description {
		t.Errorf("toggle changed other fields: %+v", twice)
	}
	if !twice.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("toggle changed CreatedAt: %v -> %v", created.CreatedAt, twice.CreatedAt)
	}
}

func TestSQLiteStore_Delete_Idempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-a", "doomed", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	removed, err := store.Delete(ctx, "user-a", created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !removed {
		t.Error("Delete returned false for existing row")
	}

	removed, err = store.Delete(ctx, "user-a", created.ID)
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if removed {
		t.Error("second Delete returned true")
	}

	if _, err := store.Get(ctx, "user-a", created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_IDsNeverReused(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var lastID int64
	for i := 0; i < 10; i++ {
		created, err := store.Create(ctx, "user-a", "t", "")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if created.ID != lastID+1 {
			t.Fatalf("ID = %d, want %d (sequential, no gaps)", created.ID, lastID+1)
		}
		lastID = created.ID
	}

	if _, err := store.Delete(ctx, "user-a", 5); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	created, err := store.Create(ctx, "user-a", "after delete", "")
	if err != nil {
		t.Fatalf("Create after delete: %v", err)
	}
	if created.ID != lastID+1 {
		t.Errorf("ID after delete = %d, want %d (id 5 must not be reused)", created.ID, lastID+1)
	}
}

func statusPtr(s Status) *Status { return &s }
func strPtr(s string) *string    { return &s }
