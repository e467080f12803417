package csslink

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"

	"github.com/srediag/plugin-css/api"
	"github.com/srediag/plugin-css/pkg/dom"
)

// counterValue extracts a Counter's current value for assertions.
func counterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	_ = c.Write(m)
	return m.GetCounter().GetValue()
}

func TestMountCounters(t *testing.T) {
	createdBefore := counterValue(linksCreated)
	adoptedBefore := counterValue(linksAdopted)
	removedBefore := counterValue(linksRemoved)

	doc, err := dom.Parse(strings.NewReader(
		`<html><head><link rel="stylesheet" href="shared.css"></head><body></body></html>`))
	assert.Nil(t, err)

	lc, err := New(&Config{
		Document: doc,
		Stylesheets: []api.StylesheetRef{
			api.URLRef("shared.css"),
			api.URLRef("owned.css"),
		},
	})
	assert.Nil(t, err)

	ctx := context.Background()
	props := api.AppProps{Name: "metrics-app"}
	assert.Nil(t, lc.Mount(ctx, props))
	assert.Equal(t, 1.0, counterValue(linksCreated)-createdBefore)
	assert.Equal(t, 1.0, counterValue(linksAdopted)-adoptedBefore)

	assert.Nil(t, lc.Unmount(ctx, props))
	assert.Equal(t, 1.0, counterValue(linksRemoved)-removedBefore)
}

func TestPreloadHintCounter(t *testing.T) {
	before := counterValue(preloadHints)

	lc, err := New(&Config{
		Document:    dom.New(),
		Stylesheets: []api.StylesheetRef{api.URLRef("a.css"), api.URLRef("b.css")},
	})
	assert.Nil(t, err)
	assert.Nil(t, lc.Bootstrap(context.Background(), api.AppProps{Name: "metrics-app"}))
	assert.Equal(t, 2.0, counterValue(preloadHints)-before)
}
