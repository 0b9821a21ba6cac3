package errors

import (
	"errors"
	"fmt"
)

// Pipeline stages a FetchParseError can originate from.
const (
	StageFetch   = "fetch"
	StageParse   = "parse"
	StagePersist = "persist"
)

// FetchParseError wraps a failure from the fetch/parse/persist boundary.
type FetchParseError struct {
	Stage string
	Err   error
}

func (e *FetchParseError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *FetchParseError) Unwrap() error { return e.Err }

// NewFetchParseError wraps err with the pipeline stage it occurred in.
func NewFetchParseError(stage string, err error) *FetchParseError {
	return &FetchParseError{Stage: stage, Err: err}
}

// IsFetchParseError reports whether err is a FetchParseError (even when wrapped).
func IsFetchParseError(err error) bool {
	var target *FetchParseError
	return errors.As(err, &target)
}
