package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrTooManyRecords = errors.New("record set exceeds store limit")
)
