package csslink

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for configuration and mount operations.
var (
	ErrNilConfig       = errors.New("csslink: config cannot be nil")
	ErrNilDocument     = errors.New("csslink: config requires a document")
	ErrEmptyHref       = errors.New("csslink: stylesheet reference has empty href")
	ErrNoAssetProvider = errors.New("csslink: UseBuildAssets set without an asset provider")
	ErrLoadTimeout     = errors.New("csslink: stylesheet load timed out")
)

// MountError aggregates per-URL mount failures. Every URL settles before
// Mount returns, so Failures is complete: one failing stylesheet never
// hides or blocks the others.
type MountError struct {
	// Failures maps each failed href to its cause.
	Failures map[string]error
}

func (e *MountError) Error() string {
	hrefs := make([]string, 0, len(e.Failures))
	for href := range e.Failures {
		hrefs = append(hrefs, href)
	}
	sort.Strings(hrefs)

	var b strings.Builder
	fmt.Fprintf(&b, "csslink: %d stylesheet(s) failed to mount:", len(e.Failures))
	for _, href := range hrefs {
		fmt.Fprintf(&b, " [%s: %v]", href, e.Failures[href])
	}
	return b.String()
}

// Unwrap exposes the individual causes to errors.Is / errors.As.
func (e *MountError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, err := range e.Failures {
		errs = append(errs, err)
	}
	return errs
}
