package summary

import "errors"

// ErrEmptyIndex is returned when there is nothing to summarize: no clean
// record reached the passenger indices.
var ErrEmptyIndex = errors.New("passenger index is empty")
