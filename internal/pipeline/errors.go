package pipeline

import (
	"errors"
	"fmt"
)

// ErrDirectoryNotFound is returned by Discover when the root does not exist
// or is not a directory. It is fatal for the run.
var ErrDirectoryNotFound = errors.New("directory not found")

// Stage names the per-file step that failed.
type Stage string

const (
	StageResolve   Stage = "resolve"
	StageMkdir     Stage = "mkdir"
	StageCopy      Stage = "copy"
	StageProbe     Stage = "probe"
	StageRead      Stage = "read"
	StageTranscode Stage = "transcode"
	StageWrite     Stage = "write"
)

// FileError is a recovered per-file failure. It carries the source path so
// every error notification identifies the file.
type FileError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
