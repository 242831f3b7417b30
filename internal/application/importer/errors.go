package importer

import "errors"

var (
	ErrMissingFile      = errors.New("file is required")
	ErrInvalidFileType  = errors.New("only csv files are allowed")
	ErrFileTooLarge     = errors.New("file size exceeds the limit")
	ErrEnqueueImport    = errors.New("failed to enqueue import job")
	ErrStoreUnavailable = errors.New("progress store unavailable")
)
