package leads

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoUpsertReturnsRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "email", "name", "website_url", "created_at", "updated_at"}).
		AddRow("lead-1", "max@example.at", "Max", "https://example.at", now, now)
	mock.ExpectQuery("INSERT INTO leads").
		WithArgs("lead-1", "max@example.at", "Max", "https://example.at").
		WillReturnRows(rows)

	out, err := repo.Upsert(context.Background(), Lead{
		ID:         "lead-1",
		Email:      "max@example.at",
		Name:       "Max",
		WebsiteURL: "https://example.at",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if out.ID != "lead-1" || out.Email != "max@example.at" {
		t.Fatalf("got %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, email, name, website_url").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "website_url", "created_at", "updated_at"}))

	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepoUpsertKeepsIDForSameEmail(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	first, err := repo.Upsert(ctx, Lead{ID: "lead-1", Email: "Max@Example.at", Name: "Max", WebsiteURL: "https://a.at"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	second, err := repo.Upsert(ctx, Lead{ID: "lead-2", Email: "max@example.at", Name: "Maximilian", WebsiteURL: "https://b.at"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("id changed on resubmit: %q vs %q", first.ID, second.ID)
	}
	if second.Name != "Maximilian" || second.WebsiteURL != "https://b.at" {
		t.Fatalf("fields not updated: %+v", second)
	}

	got, err := repo.GetByEmail(ctx, "MAX@example.AT")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("lookup returned %+v", got)
	}
}

func TestMemoryRepoContextCancelled(t *testing.T) {
	repo := NewMemoryRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := repo.Upsert(ctx, Lead{ID: "x", Email: "x@y.at"}); err == nil {
		t.Fatalf("expected context error")
	}
}
