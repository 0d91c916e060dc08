package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Asset folder errors
	ErrMissingPathname = errors.New("asset folder has a payload but no pathname file")
	ErrEmptyPathname   = errors.New("pathname file declares an empty path")
	ErrPayloadNotFile  = errors.New("asset payload is not a regular file")
	ErrUnsafePath      = errors.New("path escapes the destination root")

	// File and directory errors
	ErrExpectedDirectory = errors.New("expected directory but got file")

	// Archive errors
	ErrNotPackage = errors.New("file path extension is not '.unitypackage'")
	ErrUnpack     = errors.New("unpacking archive failed")
)
