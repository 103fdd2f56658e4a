package models

import (
	"fmt"
	"time"
)

var (
	ErrAlbumNotFound = fmt.Errorf("album not found")
	ErrEmptyAlbum    = fmt.Errorf("album has no photos")
)

/*
Album is a published set of photo URLs grouped under a short, shareable
album ID. ID is assigned by the repository and is only used for deletes.
*/
type Album struct {
	ID        string    `json:"id"`
	AlbumID   string    `json:"albumId"`
	Photos    []string  `json:"photos"`
	CreatedAt time.Time `json:"createdAt"`
}

// CoverPhoto returns the first photo in the album, or an empty string.
func (a *Album) CoverPhoto() string {
	if len(a.Photos) == 0 {
		return ""
	}

	return a.Photos[0]
}
