package viewstats

import (
	"database/sql"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/crypto/argon2"
)

// Tracker counts lightbox opens per photo, deduplicated per visitor.
// Visitors are salted argon2 hashes of their address, never the address
// itself. Counts live in memory while the server runs and are dumped to
// sqlite on close; the lightbox core knows nothing about any of this.
// The one mutex guards both maps; argon2 hashing runs outside it so slow
// hashes never serialize unrelated visitors.
type Tracker struct {
	mu           sync.Mutex
	hashMap      map[string]string
	openPhotoMap map[string]map[string]struct{}
	salt         []byte
	db           *sql.DB
}

func NewTracker(db *sql.DB, salt []byte) (*Tracker, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("fail to init transaction with db to fill tracker: %w", err)
	}

	rows, err := tx.Query("select photo_ref, visitor_id from lightbox_opens;")
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("fail to query db for lightbox_opens to fill tracker: %w", err)
	}

	openPhotoMap := make(map[string]map[string]struct{})

	for rows.Next() {
		var photoRef string
		visitorId := make([]byte, 32)
		if err = rows.Scan(&photoRef, &visitorId); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("fail scanning lightbox_opens to fill tracker: %w", err)
		}
		visitorIdString := base64.RawStdEncoding.EncodeToString(visitorId)
		if _, ok := openPhotoMap[photoRef]; !ok {
			openPhotoMap[photoRef] = make(map[string]struct{})
		}
		openPhotoMap[photoRef][visitorIdString] = struct{}{}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("fail to commit transaction in db: %w", err)
	}

	return &Tracker{
		hashMap:      make(map[string]string),
		openPhotoMap: openPhotoMap,
		salt:         salt,
		db:           db,
	}, nil
}

// Close dumps the in-memory counts back into sqlite.
func (t *Tracker) Close() error {
	tx, err := t.db.Begin()
	if err != nil {
		return fmt.Errorf("fail to init transaction with db to dump tracker: %w", err)
	}

	if _, err = tx.Exec("delete from lightbox_opens;"); err != nil {
		tx.Rollback()
		return fmt.Errorf("fail to truncate table lightbox_opens: %w", err)
	}

	stmt, err := tx.Prepare("insert or ignore into lightbox_opens (photo_ref, visitor_id) values (?, ?);")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("fail to prepare lightbox_opens insert: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for photoRef, visitorSet := range t.openPhotoMap {
		for visitorId := range visitorSet {
			visitorIdBytes, err := base64.RawStdEncoding.DecodeString(visitorId)
			if err != nil {
				slog.Warn("couldn't parse one of visitor hashes into bytes back", slog.String("hash", visitorId), slog.String("error", err.Error()))
				continue
			}
			if _, err := stmt.Exec(photoRef, visitorIdBytes); err != nil {
				slog.Warn("couldn't insert lightbox open pair into db", slog.String("error", err.Error()))
			}
		}
	}

	return tx.Commit()
}

func (t *Tracker) GetHash(id string) string {
	t.mu.Lock()
	val, ok := t.hashMap[id]
	t.mu.Unlock()
	if ok {
		return val
	}

	// Two visitors racing on a first hash compute the same value twice;
	// cheaper than holding the lock through argon2.
	hash := base64.RawStdEncoding.EncodeToString(argon2.IDKey([]byte(id), t.salt, 1, 64*1024, 4, 32))
	slog.Debug("generated visitor hash", slog.String("hash", hash))

	t.mu.Lock()
	t.hashMap[id] = hash
	t.mu.Unlock()
	return hash
}

// RecordOpen notes that a visitor opened a photo in the lightbox.
func (t *Tracker) RecordOpen(id string, photoRef string) (alreadySeen bool) {
	hash := t.GetHash(id)

	t.mu.Lock()
	defer t.mu.Unlock()

	visitorSet, ok := t.openPhotoMap[photoRef]
	if !ok {
		visitorSet = make(map[string]struct{})
		t.openPhotoMap[photoRef] = visitorSet
	}
	_, alreadySeen = visitorSet[hash]
	visitorSet[hash] = struct{}{}
	return
}

func (t *Tracker) GetOpenCount(photoRef string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if visitorSet, ok := t.openPhotoMap[photoRef]; ok {
		return len(visitorSet)
	}
	return 0
}
