package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySelection    = errors.New("no images selected")
	ErrMalformedResponse = errors.New("malformed response from image store")
	ErrUploadRejected    = errors.New("image store rejected upload")
)

/*
UploadFailedError reports the first image that could not be uploaded.
Index is zero-based into the selection.
*/
type UploadFailedError struct {
	Index int
	Cause error
}

func (e *UploadFailedError) Error() string {
	return fmt.Sprintf("upload failed for image %d: %v", e.Index, e.Cause)
}

func (e *UploadFailedError) Unwrap() error {
	return e.Cause
}

type PersistenceFailedError struct {
	AlbumID string
	Cause   error
}

func (e *PersistenceFailedError) Error() string {
	return fmt.Sprintf("error saving album %s: %v", e.AlbumID, e.Cause)
}

func (e *PersistenceFailedError) Unwrap() error {
	return e.Cause
}
