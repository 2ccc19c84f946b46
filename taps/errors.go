package taps

import "errors"

var (
	// ErrInvalidDirectory raised if the specified path is not a valid path to a directory
	ErrInvalidDirectory = errors.New("the specified path is not a directory")
	// ErrNestedTarget raised if the target directory is located inside the watched source directory
	ErrNestedTarget = errors.New("the target directory cannot be inside the source directory")
	// ErrNoJobs raised if a file tap is created without any files to process
	ErrNoJobs = errors.New("there is nothing to process")
)
