package extract

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedFragment indicates the selected text is not a parseable markup expression.
	ErrMalformedFragment = errors.New("malformed fragment")

	// ErrSynthesisInput indicates the fragment contains a form no classification rule covers.
	ErrSynthesisInput = errors.New("unsupported fragment input")
)

// MalformedFragmentError wraps the parser failure for a fragment.
type MalformedFragmentError struct {
	Err error
}

func (e *MalformedFragmentError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedFragment, e.Err)
}

func (e *MalformedFragmentError) Unwrap() []error {
	return []error{ErrMalformedFragment, e.Err}
}

// SynthesisInputError reports a node that matched no classification rule.
type SynthesisInputError struct {
	Reason  string
	Snippet string
}

func (e *SynthesisInputError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("%s: %s", ErrSynthesisInput, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %q", ErrSynthesisInput, e.Reason, e.Snippet)
}

func (e *SynthesisInputError) Unwrap() error {
	return ErrSynthesisInput
}

// NameCollisionError reports names that would be passed to the new unit
// from more than one provenance. Reserved is set when the name clashes with
// the props binding the unit declares itself.
type NameCollisionError struct {
	Names    []string
	Reserved bool
}

func (e *NameCollisionError) Error() string {
	if e.Reserved {
		return fmt.Sprintf("%s: names clash with the unit's props binding: %s",
			ErrSynthesisInput, strings.Join(e.Names, ", "))
	}
	return fmt.Sprintf("%s: names used with more than one provenance: %s",
		ErrSynthesisInput, strings.Join(e.Names, ", "))
}

func (e *NameCollisionError) Unwrap() error {
	return ErrSynthesisInput
}
