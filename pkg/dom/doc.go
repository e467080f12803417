// Package dom provides a document backend for the csslink adapter, built
// on an in-memory HTML tree.
//
// Document implements api.Document over a parsed golang.org/x/net/html
// node tree: link elements are queried by rel and href attributes,
// inserted into <head>, and detached from their parent on removal.
// Inserting a stylesheet link starts an asynchronous resource fetch whose
// outcome completes the element's load signal; a Loader decides how the
// resource is actually fetched. The zero Loader (static mode) marks
// stylesheets loaded as soon as they are inserted, which is what tests and
// server-side rendering want.
package dom
