package repository

import "errors"

var (
	ErrNotFound      = errors.New("note not found")
	ErrFailedToWrite = errors.New("failed to write note")
	ErrFailedToList  = errors.New("failed to list notes")
)
