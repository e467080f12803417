// Package api defines public API contracts for plugin-css.
package api

import "context"

// Rel values the adapter queries and creates link elements with.
const (
	RelStylesheet = "stylesheet"
	RelPreload    = "preload"
)

// Document is the platform capability the adapter mutates. Implementations
// must be safe for concurrent use: mount work for different URLs fans out
// across goroutines.
type Document interface {
	// QueryLink returns the first link element matching rel and href
	// anywhere in the document, or nil if none exists. The match is not
	// limited to elements created through this adapter.
	QueryLink(rel, href string) LinkElement
	// CreateLink builds a detached link element with the given rel and
	// href.
	CreateLink(rel, href string) LinkElement
	// AppendToHead inserts the element into the document's metadata
	// section. For stylesheet elements this starts the resource load that
	// LinkElement.Loaded observes.
	AppendToHead(el LinkElement) error
}

// LinkElement is a handle on one link element.
type LinkElement interface {
	Href() string
	Rel() string
	// Attached reports whether the element currently has a parent.
	Attached() bool
	// Detach removes the element from its parent. Detaching an element
	// that has already been detached elsewhere is not an error.
	Detach() error
	// Loaded blocks until the backend signals that the referenced resource
	// finished loading, returning the load error if it failed. The wait is
	// abandoned when ctx ends; the underlying load is not cancelled.
	Loaded(ctx context.Context) error
}

// LinkFactory produces the stylesheet element for href. The default
// factory delegates to doc.CreateLink(RelStylesheet, href).
type LinkFactory func(doc Document, href string) (LinkElement, error)

// AssetProvider exposes build-pipeline-supplied stylesheet URLs, asset
// names already joined with the pipeline's public base path.
type AssetProvider interface {
	CSSURLs() ([]string, error)
}
