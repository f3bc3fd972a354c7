package reindexer

import (
	"fmt"
	"log/slog"

	"github.com/VeranoAtelier/verano-web/internal/storage"
	"github.com/go-co-op/gocron/v2"
)

// Reindexer re-scans the album bucket on a cron schedule. Photos it has
// not seen before are handed to the callback so cached album pages can be
// rebuilt; a live gallery index is never mutated in place.
type Reindexer struct {
	s           gocron.Scheduler
	knownPhotos map[string]map[string]*storage.Photo
	client      *storage.Client
	onNewPhotos func(album string, photos []*storage.Photo) error
}

func NewReindexer(client *storage.Client, albums []string, cron string, onNewPhotos func(album string, photos []*storage.Photo) error) (*Reindexer, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create new scheduler: %w", err)
	}

	knownPhotos := make(map[string]map[string]*storage.Photo, len(albums))
	for _, album := range albums {
		knownPhotos[album] = make(map[string]*storage.Photo)
	}

	r := &Reindexer{s, knownPhotos, client, onNewPhotos}
	defer r.s.Start()

	r.s.NewJob(gocron.CronJob(cron, false), gocron.NewTask(func(r *Reindexer) {
		newPhotos, err := r.scan()
		if err != nil {
			slog.Error("failed to execute album rescan cron job", slog.String("error", err.Error()))
			return
		}
		for album, photos := range newPhotos {
			if len(photos) == 0 {
				continue
			}
			slog.Info("album gained new photos", slog.String("album", album), slog.Int("count", len(photos)))
			if err = r.onNewPhotos(album, photos); err != nil {
				slog.Error("error happened on callback function after album rescan", slog.String("album", album), slog.String("error", err.Error()))
			}
		}
	}, r))

	if _, err = r.scan(); err != nil {
		return nil, fmt.Errorf("failed to scan existing photos in storage: %w", err)
	}

	return r, nil
}

func (r *Reindexer) Close() error {
	return r.s.Shutdown()
}

func (r *Reindexer) scan() (newPhotos map[string][]*storage.Photo, err error) {
	newPhotos = make(map[string][]*storage.Photo, len(r.knownPhotos))
	for album := range r.knownPhotos {
		photos, err := r.client.ListAlbum(album)
		if err != nil {
			return nil, fmt.Errorf("failed to list '%s' album photos: %w", album, err)
		}
		for _, photo := range photos {
			if _, ok := r.knownPhotos[album][photo.FileName]; !ok {
				newPhotos[album] = append(newPhotos[album], photo)
				r.knownPhotos[album][photo.FileName] = photo
			}
		}
	}
	return newPhotos, nil
}
