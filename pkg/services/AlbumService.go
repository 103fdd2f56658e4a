package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/adampresley/albumshare/pkg/models"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rfberaldo/sqlz"
)

type AlbumServicer interface {
	CreateAlbum(ctx context.Context, album *models.Album) error
	DeleteAlbum(ctx context.Context, id string) error
	GetAlbumByAlbumID(ctx context.Context, albumID string) (*models.Album, error)
	GetAlbumList(ctx context.Context) ([]*models.Album, error)
	Subscribe(ctx context.Context) (<-chan []*models.Album, error)
}

type AlbumServiceConfig struct {
	DB *sqlz.DB
}

type AlbumService struct {
	db          *sqlz.DB
	subscribers *subscriberList
}

type albumRow struct {
	ID        string    `db:"id"`
	AlbumID   string    `db:"album_id"`
	Photos    string    `db:"photos"`
	CreatedAt time.Time `db:"created_at"`
}

type subscriberList struct {
	mu   sync.Mutex
	subs map[chan []*models.Album]struct{}
}

func NewAlbumService(config AlbumServiceConfig) AlbumService {
	return AlbumService{
		db: config.DB,
		subscribers: &subscriberList{
			subs: map[chan []*models.Album]struct{}{},
		},
	}
}

/*
CreateAlbum inserts a new album record. The record is written whole; there
is no update path for an existing album.
*/
func (s AlbumService) CreateAlbum(ctx context.Context, album *models.Album) error {
	var (
		err    error
		photos []byte
	)

	if len(album.Photos) == 0 {
		return models.ErrEmptyAlbum
	}

	if album.ID == "" {
		album.ID = uuid.NewString()
	}

	if photos, err = json.Marshal(album.Photos); err != nil {
		return fmt.Errorf("error encoding photos for album %s: %w", album.AlbumID, err)
	}

	sql := `
INSERT INTO albums (
	id,
	album_id,
	photos,
	created_at
) VALUES (?, ?, ?, ?)
`

	params := []any{
		album.ID,
		album.AlbumID,
		string(photos),
		album.CreatedAt.UTC(),
	}

	if _, err = s.db.Exec(ctx, sql, params...); err != nil {
		return fmt.Errorf("error inserting album %s: %w", album.AlbumID, err)
	}

	s.notify()
	return nil
}

func (s AlbumService) DeleteAlbum(ctx context.Context, id string) error {
	var (
		err      error
		affected int64
	)

	sql := `
DELETE FROM albums
WHERE 1=1
	AND id = ?
`

	result, err := s.db.Exec(ctx, sql, id)

	if err != nil {
		return fmt.Errorf("error deleting album %s: %w", id, err)
	}

	if affected, err = result.RowsAffected(); err != nil {
		return fmt.Errorf("error reading rows affected deleting album %s: %w", id, err)
	}

	if affected == 0 {
		return fmt.Errorf("error deleting album %s: %w", id, models.ErrAlbumNotFound)
	}

	s.notify()
	return nil
}

func (s AlbumService) GetAlbumByAlbumID(ctx context.Context, albumID string) (*models.Album, error) {
	var (
		err error
	)

	row := albumRow{}

	sql := `
SELECT
	a.id
	, a.album_id
	, a.photos
	, a.created_at
FROM albums AS a
WHERE 1=1
	AND a.album_id = ?
ORDER BY a.created_at DESC
LIMIT 1
`

	if err = s.db.QueryRow(ctx, &row, sql, albumID); err != nil {
		if sqlz.IsNotFound(err) {
			return nil, fmt.Errorf("error querying for album %s: %w", albumID, models.ErrAlbumNotFound)
		}

		return nil, fmt.Errorf("error querying for album %s: %w", albumID, err)
	}

	return row.toModel()
}

func (s AlbumService) GetAlbumList(ctx context.Context) ([]*models.Album, error) {
	var (
		err   error
		rows  []albumRow
		album *models.Album
	)

	result := []*models.Album{}

	sql := `
SELECT
	a.id
	, a.album_id
	, a.photos
	, a.created_at
FROM albums AS a
ORDER BY a.created_at DESC
`

	if err = s.db.Query(ctx, &rows, sql); err != nil && !sqlz.IsNotFound(err) {
		return result, fmt.Errorf("error querying for albums: %w", err)
	}

	for _, row := range rows {
		if album, err = row.toModel(); err != nil {
			return result, err
		}

		result = append(result, album)
	}

	return result, nil
}

/*
Subscribe returns a channel that receives the current album list right
away, then the newest list after every create or delete made through this
service. A reader that falls behind only ever sees the latest list. The
channel is closed once ctx is done.
*/
func (s AlbumService) Subscribe(ctx context.Context) (<-chan []*models.Album, error) {
	var (
		err    error
		albums []*models.Album
	)

	if albums, err = s.GetAlbumList(ctx); err != nil {
		return nil, err
	}

	ch := make(chan []*models.Album, 1)
	ch <- albums

	s.subscribers.mu.Lock()
	s.subscribers.subs[ch] = struct{}{}
	s.subscribers.mu.Unlock()

	go func() {
		<-ctx.Done()

		s.subscribers.mu.Lock()
		delete(s.subscribers.subs, ch)
		close(ch)
		s.subscribers.mu.Unlock()
	}()

	return ch, nil
}

func (s AlbumService) notify() {
	s.subscribers.mu.Lock()
	defer s.subscribers.mu.Unlock()

	if len(s.subscribers.subs) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	albums, err := s.GetAlbumList(ctx)

	if err != nil {
		slog.Error("error refreshing album list for subscribers", "error", err)
		return
	}

	for ch := range s.subscribers.subs {
		// Drop a stale snapshot the reader has not picked up yet
		select {
		case <-ch:
		default:
		}

		select {
		case ch <- albums:
		default:
		}
	}
}

func (r albumRow) toModel() (*models.Album, error) {
	result := &models.Album{
		ID:        r.ID,
		AlbumID:   r.AlbumID,
		Photos:    []string{},
		CreatedAt: r.CreatedAt.UTC(),
	}

	if err := json.Unmarshal([]byte(r.Photos), &result.Photos); err != nil {
		return nil, fmt.Errorf("error decoding photos for album %s: %w", r.AlbumID, err)
	}

	return result, nil
}
