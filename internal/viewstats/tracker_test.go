package viewstats

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS lightbox_opens (
		photo_ref TEXT NOT NULL,
		visitor_id BLOB NOT NULL,
		UNIQUE (photo_ref, visitor_id)
	);`); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestRecordOpenDeduplicatesVisitors(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "stats.db"))
	defer db.Close()

	tracker, err := NewTracker(db, []byte("pepper"))
	if err != nil {
		t.Fatal(err)
	}

	if already := tracker.RecordOpen("10.0.0.1", "weddings/full/a.jpg"); already {
		t.Error("first open reported as already seen")
	}
	if already := tracker.RecordOpen("10.0.0.1", "weddings/full/a.jpg"); !already {
		t.Error("repeat open not reported as already seen")
	}
	tracker.RecordOpen("10.0.0.2", "weddings/full/a.jpg")

	if got := tracker.GetOpenCount("weddings/full/a.jpg"); got != 2 {
		t.Errorf("want 2 distinct visitors, got %d", got)
	}
	if got := tracker.GetOpenCount("weddings/full/b.jpg"); got != 0 {
		t.Errorf("untouched photo should count 0, got %d", got)
	}
}

func TestRecordOpenConcurrentVisitors(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "stats.db"))
	defer db.Close()

	tracker, err := NewTracker(db, []byte("pepper"))
	if err != nil {
		t.Fatal(err)
	}

	const visitors = 8
	var wg sync.WaitGroup
	for i := 0; i < visitors; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("10.0.0.%d", n)
			tracker.RecordOpen(id, "weddings/full/a.jpg")
			tracker.RecordOpen(id, "weddings/full/a.jpg")
		}(i)
	}
	wg.Wait()

	if got := tracker.GetOpenCount("weddings/full/a.jpg"); got != visitors {
		t.Errorf("want %d distinct visitors, got %d", visitors, got)
	}
}

func TestHashIsStableAndSalted(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "stats.db"))
	defer db.Close()

	tracker, err := NewTracker(db, []byte("pepper"))
	if err != nil {
		t.Fatal(err)
	}

	first := tracker.GetHash("10.0.0.1")
	if first == "" || first == "10.0.0.1" {
		t.Fatalf("hash must not expose the raw id: %q", first)
	}
	if second := tracker.GetHash("10.0.0.1"); second != first {
		t.Errorf("hash not stable: %q vs %q", first, second)
	}
	if other := tracker.GetHash("10.0.0.2"); other == first {
		t.Error("distinct ids hashed identically")
	}
}

func TestCountsSurviveCloseAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")
	db := openTestDB(t, path)

	tracker, err := NewTracker(db, []byte("pepper"))
	if err != nil {
		t.Fatal(err)
	}
	tracker.RecordOpen("10.0.0.1", "portraits/full/c.jpg")
	tracker.RecordOpen("10.0.0.2", "portraits/full/c.jpg")

	if err := tracker.Close(); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db = openTestDB(t, path)
	defer db.Close()
	reloaded, err := NewTracker(db, []byte("pepper"))
	if err != nil {
		t.Fatal(err)
	}
	if got := reloaded.GetOpenCount("portraits/full/c.jpg"); got != 2 {
		t.Errorf("counts lost across restart: got %d, want 2", got)
	}
}
