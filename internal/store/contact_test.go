package store

import (
	"context"
	"testing"
)

func TestContactStore_LatestWins(t *testing.T) {
	db := testDB(t)
	s := NewContactStore(db)
	ctx := context.Background()

	issue := uniqueIssue()
	t.Cleanup(func() { cleanIssues(t, db, issue) })

	if _, err := s.Create(ctx, issue, "first@example.com"); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	// Force a distinct, later created_at for the second row.
	second, err := s.Create(ctx, issue, "second@example.com")
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if _, err := db.Exec(`UPDATE contacts SET created_at = created_at + interval '1 minute' WHERE id = $1`, second.ID); err != nil {
		t.Fatalf("bump created_at: %v", err)
	}

	got, err := s.Latest(ctx, issue)
	if err != nil || got == nil {
		t.Fatalf("Latest: %v, %v", got, err)
	}
	if got.Email != "second@example.com" {
		t.Errorf("Latest email: got %q, want second@example.com", got.Email)
	}

	n, err := s.DeleteByIssue(ctx, issue)
	if err != nil {
		t.Fatalf("DeleteByIssue: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d rows, want 2", n)
	}

	got, err = s.Latest(ctx, issue)
	if err != nil {
		t.Fatalf("Latest after delete: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %+v", got)
	}
}
