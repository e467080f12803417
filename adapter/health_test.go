package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heptiolabs/healthcheck"
	"github.com/stretchr/testify/assert"

	"github.com/srediag/plugin-css/api"
	"github.com/srediag/plugin-css/pkg/csslink"
	"github.com/srediag/plugin-css/pkg/dom"
)

func probe(t *testing.T, h http.Handler, path string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	return rw.Code
}

func TestHealthChecksFollowMountState(t *testing.T) {
	lc, err := csslink.New(&csslink.Config{
		Document:    dom.New(),
		Stylesheets: []api.StylesheetRef{api.URLRef("a.css"), api.URLRef("b.css")},
	})
	assert.Nil(t, err)

	health := healthcheck.NewHandler()
	RegisterHealthChecks(health, "test-app", lc)

	// Alive from the start, not ready until mounted.
	assert.Equal(t, http.StatusOK, probe(t, health, "/live"))
	assert.Equal(t, http.StatusServiceUnavailable, probe(t, health, "/ready"))

	props := api.AppProps{Name: "test-app"}
	assert.Nil(t, lc.Mount(context.Background(), props))
	assert.Equal(t, http.StatusOK, probe(t, health, "/ready"))

	assert.Nil(t, lc.Unmount(context.Background(), props))
	assert.Equal(t, http.StatusServiceUnavailable, probe(t, health, "/ready"))
	assert.Equal(t, http.StatusOK, probe(t, health, "/live"))
}
