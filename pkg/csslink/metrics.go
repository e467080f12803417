package csslink

import "github.com/prometheus/client_golang/prometheus"

var (
	linksCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "csslink_links_created_total",
		Help: "Total number of stylesheet link elements created and inserted.",
	})
	linksAdopted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "csslink_links_adopted_total",
		Help: "Total number of pre-existing stylesheet elements adopted instead of created.",
	})
	linksRemoved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "csslink_links_removed_total",
		Help: "Total number of owned stylesheet elements detached on unmount.",
	})
	preloadHints = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "csslink_preload_hints_total",
		Help: "Total number of preload hint elements inserted during bootstrap.",
	})
	mountFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "csslink_mount_failures_total",
		Help: "Total number of per-URL mount failures (load errors and timeouts).",
	})
)

func init() {
	prometheus.MustRegister(linksCreated, linksAdopted, linksRemoved, preloadHints, mountFailures)
}
