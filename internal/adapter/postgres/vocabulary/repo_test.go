package vocabulary_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelichko/lingtube-backend/internal/adapter/postgres/testhelper"
	"github.com/avelichko/lingtube-backend/internal/adapter/postgres/vocabulary"
	"github.com/avelichko/lingtube-backend/internal/domain"
)

func newRepo(t *testing.T) (*vocabulary.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return vocabulary.New(pool), pool
}

func TestRepo_CreateAndList(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	v := testhelper.SeedVideo(t, pool)

	item := domain.VocabularyItem{
		ID:          domain.NewTempID(),
		UserID:      userID,
		VideoID:     v.ID,
		Word:        "world",
		Translation: "عالم",
		State:       domain.StatePending,
	}

	id, err := repo.Create(ctx, item)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("Create returned uuid.Nil")
	}

	items, err := repo.ListByUser(ctx, userID, v.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("ListByUser returned %d items, want 1", len(items))
	}
	got := items[0]
	if got.ID != id.String() {
		t.Errorf("ID = %q, want %q", got.ID, id.String())
	}
	if got.Word != "world" || got.Translation != "عالم" {
		t.Errorf("item = %+v, want word %q / translation %q", got, "world", "عالم")
	}
	if got.State != domain.StateCommitted {
		t.Errorf("State = %q, want %q", got.State, domain.StateCommitted)
	}
}

func TestRepo_Create_Duplicate(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	v := testhelper.SeedVideo(t, pool)

	item := domain.VocabularyItem{
		UserID:      userID,
		VideoID:     v.ID,
		Word:        "hello",
		Translation: "مرحبا",
	}
	if _, err := repo.Create(ctx, item); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	_, err := repo.Create(ctx, item)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("second Create error = %v, want ErrAlreadyExists", err)
	}
}

func TestRepo_Create_SameWordDifferentVideo(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	v1 := testhelper.SeedVideo(t, pool)
	v2 := testhelper.SeedVideo(t, pool)

	item := domain.VocabularyItem{UserID: userID, VideoID: v1.ID, Word: "again", Translation: "مجددا"}
	if _, err := repo.Create(ctx, item); err != nil {
		t.Fatalf("Create for first video: %v", err)
	}

	item.VideoID = v2.ID
	if _, err := repo.Create(ctx, item); err != nil {
		t.Fatalf("Create for second video: %v", err)
	}
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	v := testhelper.SeedVideo(t, pool)
	seeded := testhelper.SeedVocabularyItem(t, pool, userID, v.ID, "gone")

	id, err := uuid.Parse(seeded.ID)
	if err != nil {
		t.Fatalf("parse seeded id: %v", err)
	}

	if err := repo.Delete(ctx, userID, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	items, err := repo.ListByUser(ctx, userID, v.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("ListByUser returned %d items after delete, want 0", len(items))
	}
}

func TestRepo_Delete_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	err := repo.Delete(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete error = %v, want ErrNotFound", err)
	}
}

func TestRepo_Delete_OtherUsersItem(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	owner := uuid.New()
	v := testhelper.SeedVideo(t, pool)
	seeded := testhelper.SeedVocabularyItem(t, pool, owner, v.ID, "private")

	id, err := uuid.Parse(seeded.ID)
	if err != nil {
		t.Fatalf("parse seeded id: %v", err)
	}

	if err := repo.Delete(ctx, uuid.New(), id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete as other user error = %v, want ErrNotFound", err)
	}

	items, err := repo.ListByUser(ctx, owner, v.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("owner's item count = %d, want 1", len(items))
	}
}

func TestRepo_ListByUser_FiltersByVideo(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	v1 := testhelper.SeedVideo(t, pool)
	v2 := testhelper.SeedVideo(t, pool)
	testhelper.SeedVocabularyItem(t, pool, userID, v1.ID, "alpha")
	testhelper.SeedVocabularyItem(t, pool, userID, v2.ID, "beta")

	filtered, err := repo.ListByUser(ctx, userID, v1.ID)
	if err != nil {
		t.Fatalf("ListByUser filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Word != "alpha" {
		t.Fatalf("filtered = %+v, want one item for word alpha", filtered)
	}

	all, err := repo.ListByUser(ctx, userID, "")
	if err != nil {
		t.Fatalf("ListByUser all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all = %d items, want 2", len(all))
	}
}
