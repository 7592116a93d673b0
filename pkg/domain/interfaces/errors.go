package interfaces

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared by all repository implementations. Callers match
// them with errors.Is regardless of the backing store.
var (
	ErrNotFound      = goerr.New("not found")
	ErrAlreadyExists = goerr.New("already exists")
)
