package domain

import "errors"

// ErrValidation is an error thrown when request input is invalid
var ErrValidation = errors.New("validation failed")

// ErrUnsupportedMedia is an error thrown when an uploaded blob has a disallowed size or type
var ErrUnsupportedMedia = errors.New("unsupported media")

// ErrMeetingNotFound is an error thrown when a meeting is not found
var ErrMeetingNotFound = errors.New("meeting not found")

// ErrAudioNotFound is an error thrown when a durable audio file is not found
var ErrAudioNotFound = errors.New("audio not found")

// ErrIllegalTransition is an error thrown when a status transition is not a legal successor.
// It indicates a programmer or integration bug, never expected from normal operation.
var ErrIllegalTransition = errors.New("illegal status transition")

// ErrStorageInit is an error thrown when the storage directories cannot be created
var ErrStorageInit = errors.New("storage init failed")

// ErrStorage is an error thrown on a storage I/O failure
var ErrStorage = errors.New("storage failure")

// ErrTempFileExists is an error thrown when a generated temp id collides with an existing file
var ErrTempFileExists = errors.New("temp file already exists")

// ErrExternalProcessing is an error thrown when the external processing engine fails or times out
var ErrExternalProcessing = errors.New("external processing failed")
