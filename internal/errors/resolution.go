// Package errors defines the typed errors shared across the wikiseries
// pipeline. Each resolution failure gets its own type so callers can map
// them to distinct exit codes without string matching.
package errors

import (
	"errors"
	"fmt"
)

// NoResultsError indicates a search returned zero candidates.
type NoResultsError struct {
	Query string
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("no results found for %q", e.Query)
}

// NewNoResultsError creates a NoResultsError for the given query.
func NewNoResultsError(query string) *NoResultsError {
	return &NoResultsError{Query: query}
}

// IsNoResultsError reports whether err is a NoResultsError (even when wrapped).
func IsNoResultsError(err error) bool {
	var target *NoResultsError
	return errors.As(err, &target)
}

// NonIntegerSelectionError indicates operator input during disambiguation
// did not parse as an integer.
type NonIntegerSelectionError struct {
	Input string
}

func (e *NonIntegerSelectionError) Error() string {
	return fmt.Sprintf("selection %q is not a number", e.Input)
}

// NewNonIntegerSelectionError creates a NonIntegerSelectionError for the raw input.
func NewNonIntegerSelectionError(input string) *NonIntegerSelectionError {
	return &NonIntegerSelectionError{Input: input}
}

// IsNonIntegerSelectionError reports whether err is a NonIntegerSelectionError.
func IsNonIntegerSelectionError(err error) bool {
	var target *NonIntegerSelectionError
	return errors.As(err, &target)
}

// InvalidSelectionError indicates an operator selection outside the
// presented candidate range.
type InvalidSelectionError struct {
	Choice int
	Count  int
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("selection %d is out of range (0-%d)", e.Choice, e.Count-1)
}

// NewInvalidSelectionError creates an InvalidSelectionError for a choice
// against a candidate count.
func NewInvalidSelectionError(choice, count int) *InvalidSelectionError {
	return &InvalidSelectionError{Choice: choice, Count: count}
}

// IsInvalidSelectionError reports whether err is an InvalidSelectionError.
func IsInvalidSelectionError(err error) bool {
	var target *InvalidSelectionError
	return errors.As(err, &target)
}

// UnconfirmedSelectionError indicates the operator's chosen candidate did
// not pass the confirmation re-check.
type UnconfirmedSelectionError struct {
	Title string
}

func (e *UnconfirmedSelectionError) Error() string {
	return fmt.Sprintf("selected result %q could not be confirmed as a series page", e.Title)
}

// NewUnconfirmedSelectionError creates an UnconfirmedSelectionError for the
// rejected candidate title.
func NewUnconfirmedSelectionError(title string) *UnconfirmedSelectionError {
	return &UnconfirmedSelectionError{Title: title}
}

// IsUnconfirmedSelectionError reports whether err is an UnconfirmedSelectionError.
func IsUnconfirmedSelectionError(err error) bool {
	var target *UnconfirmedSelectionError
	return errors.As(err, &target)
}
