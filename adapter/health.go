// Package adapter provides integrations between plugin-css and external
// systems.
package adapter

import (
	"fmt"

	"github.com/heptiolabs/healthcheck"

	"github.com/srediag/plugin-css/pkg/csslink"
)

// RegisterHealthChecks wires a lifecycle instance into a healthcheck
// handler. Liveness is unconditional; readiness reports failure until
// every stylesheet in the effective list has a live element in the
// registry, so an orchestrator's health probe flips to ready only after a
// successful mount.
func RegisterHealthChecks(h healthcheck.Handler, name string, lc *csslink.CSSLifecycle) {
	h.AddLivenessCheck(name+"-alive", func() error { return nil })
	h.AddReadinessCheck(name+"-stylesheets", func() error {
		got, want := lc.MountedCount(), lc.StylesheetCount()
		if got < want {
			return fmt.Errorf("%d of %d stylesheets mounted", got, want)
		}
		return nil
	})
}
