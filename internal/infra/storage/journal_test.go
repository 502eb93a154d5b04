package storage

import (
	"path/filepath"
	"testing"
	"time"

	"fx_orders/internal/domain"
)

func setupTestJournal(t *testing.T) *Journal {
	j, err := NewJournal(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("failed to open test journal: %v", err)
	}
	return j
}

func TestAppendAndRecent(t *testing.T) {
	j := setupTestJournal(t)

	recs := []*domain.ActionRecord{
		{Seq: 1, Kind: "init", CreatedAt: time.Now()},
		{Seq: 2, Kind: "add_order", CreatedAt: time.Now()},
		{Seq: 3, Kind: "rate_change", Currency: "USD", Value: "1.3", CreatedAt: time.Now()},
	}
	for _, rec := range recs {
		if err := j.Append(rec); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	recent, err := j.Recent(2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recent))
	}
	if recent[0].Seq != 3 {
		t.Errorf("expected newest record first (seq 3), got seq %d", recent[0].Seq)
	}
	if recent[0].Currency != "USD" || recent[0].Value != "1.3" {
		t.Errorf("rate_change payload not persisted: %+v", recent[0])
	}
}

func TestCount(t *testing.T) {
	j := setupTestJournal(t)

	count, err := j.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty journal, got %d", count)
	}

	for seq := uint64(1); seq <= 5; seq++ {
		if err := j.Append(&domain.ActionRecord{Seq: seq, Kind: "update_price"}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	count, err = j.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 5 {
		t.Errorf("expected 5 records, got %d", count)
	}
}
