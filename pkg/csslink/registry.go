package csslink

import (
	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/srediag/plugin-css/api"
)

// linkRegistry maps each href to the live element currently representing
// it. A URL is present iff an element for it was created or adopted by
// this adapter instance and has not yet been removed.
type linkRegistry struct {
	links cmap.ConcurrentMap[string, api.LinkElement]
}

func newLinkRegistry() *linkRegistry {
	return &linkRegistry{links: cmap.New[api.LinkElement]()}
}

func (r *linkRegistry) set(href string, el api.LinkElement) {
	r.links.Set(href, el)
}

func (r *linkRegistry) get(href string) (api.LinkElement, bool) {
	return r.links.Get(href)
}

func (r *linkRegistry) remove(href string) {
	r.links.Remove(href)
}

func (r *linkRegistry) count() int {
	return r.links.Count()
}

func (r *linkRegistry) hrefs() []string {
	return r.links.Keys()
}
