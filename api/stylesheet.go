// Package api defines public API contracts for plugin-css.
package api

// StylesheetRef describes one CSS resource an application depends on. It
// has exactly two shapes: URLRef for a bare URL, and LinkRef for an entry
// that carries its own unmount policy.
type StylesheetRef interface {
	stylesheetRef()
}

// URLRef is a bare stylesheet URL. Its unmount policy is the
// configuration-level default.
type URLRef string

func (URLRef) stylesheetRef() {}

// LinkRef is a stylesheet reference with an optional per-entry unmount
// override. A nil ShouldUnmount falls back to the configuration-level
// default.
type LinkRef struct {
	Href          string
	ShouldUnmount *bool
}

func (LinkRef) stylesheetRef() {}

// Bool returns a pointer to v, for use in LinkRef.ShouldUnmount.
func Bool(v bool) *bool { return &v }
