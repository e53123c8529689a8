package storage

import (
	"errors"
	"fmt"
)

var ErrWrite = errors.New("storage write failed")

// StorageWriteError reports a failed set or remove.
type StorageWriteError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

func (e *StorageWriteError) Is(target error) bool { return target == ErrWrite }
