package csslink

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/srediag/plugin-css/api"
)

// fakeLink is a controllable link element: tests decide when and how its
// load signal completes and can count detach calls.
type fakeLink struct {
	rel  string
	href string

	mu       sync.Mutex
	attached bool

	once    sync.Once
	done    chan struct{}
	loadErr error

	detachCalls int32
}

func newFakeLink(rel, href string) *fakeLink {
	return &fakeLink{rel: rel, href: href, done: make(chan struct{})}
}

func (f *fakeLink) complete(err error) {
	f.once.Do(func() {
		f.loadErr = err
		close(f.done)
	})
}

func (f *fakeLink) Href() string { return f.href }
func (f *fakeLink) Rel() string  { return f.rel }

func (f *fakeLink) Attached() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attached
}

func (f *fakeLink) Detach() error {
	atomic.AddInt32(&f.detachCalls, 1)
	f.mu.Lock()
	f.attached = false
	f.mu.Unlock()
	return nil
}

func (f *fakeLink) detached() int32 {
	return atomic.LoadInt32(&f.detachCalls)
}

func (f *fakeLink) Loaded(ctx context.Context) error {
	select {
	case <-f.done:
		return f.loadErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// fakeDoc is an api.Document over a flat element list. With autoload set,
// inserting a stylesheet completes its load signal using loadErrs.
type fakeDoc struct {
	mu       sync.Mutex
	links    []*fakeLink
	autoload bool
	loadErrs map[string]error
}

func newFakeDoc(autoload bool) *fakeDoc {
	return &fakeDoc{autoload: autoload, loadErrs: make(map[string]error)}
}

func (d *fakeDoc) QueryLink(rel, href string) api.LinkElement {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, l := range d.links {
		if l.rel == rel && l.href == href && l.Attached() {
			return l
		}
	}
	return nil
}

func (d *fakeDoc) CreateLink(rel, href string) api.LinkElement {
	return newFakeLink(rel, href)
}

func (d *fakeDoc) AppendToHead(el api.LinkElement) error {
	l := el.(*fakeLink)
	l.mu.Lock()
	l.attached = true
	l.mu.Unlock()

	d.mu.Lock()
	d.links = append(d.links, l)
	d.mu.Unlock()

	if d.autoload && l.rel == api.RelStylesheet {
		l.complete(d.loadErrs[l.href])
	}
	return nil
}

// attachedCount reports how many elements with rel are currently attached.
func (d *fakeDoc) attachedCount(rel string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, l := range d.links {
		if l.rel == rel && l.Attached() {
			n++
		}
	}
	return n
}
