package errs

import (
	"errors"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrInvalidReference = errors.New("invalid category")
	ErrInUse            = errors.New("category is assigned to books")
	ErrUnavailable      = errors.New("book not available")
	ErrInvalidArgument  = errors.New("invalid status")
	ErrAlreadyProcessed = errors.New("request already processed")
)
