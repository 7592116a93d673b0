package memory

import "github.com/sustain-lab/esgradar/pkg/domain/interfaces"

var (
	ErrNotFound      = interfaces.ErrNotFound
	ErrAlreadyExists = interfaces.ErrAlreadyExists
)
