// Package csslink loads and unloads stylesheets in step with a
// microfrontend application's bootstrap/mount/unmount lifecycle.
//
// The adapter keeps two long-lived structures: a registry mapping each URL
// to its live link element, and a queue of elements pending removal. Mount
// adopts stylesheet elements already present in the document and only
// creates (and later removes) the ones it owns; Unmount claims the pending
// queue atomically, so overlapping unmount calls remove each element
// exactly once.
//
// The package is instrumented with Prometheus counters and, when a Meter
// and Tracer are injected through Config, OpenTelemetry metrics and spans.
//
// Example usage:
//
//	lc, err := csslink.New(&csslink.Config{
//	  Document: doc,
//	  Stylesheets: []api.StylesheetRef{
//	    api.URLRef("https://cdn.example.com/app.css"),
//	    api.LinkRef{Href: "/theme.css", ShouldUnmount: api.Bool(false)},
//	  },
//	})
//	// ...
//
// See README.md for details.
package csslink
