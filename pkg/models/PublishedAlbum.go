package models

import "time"

type PublishedAlbum struct {
	ID        string
	AlbumID   string
	Link      string
	Photos    []string
	CreatedAt time.Time
}
