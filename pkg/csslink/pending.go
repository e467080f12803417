package csslink

import (
	queuepkg "github.com/Workiva/go-datastructures/queue"

	"github.com/srediag/plugin-css/api"
)

// ownedLink is one element this adapter instance created and is
// responsible for removing on the next unmount.
type ownedLink struct {
	el   api.LinkElement
	href string
}

// pendingQueue holds the elements awaiting removal. drain claims the whole
// queue in a single TakeUntil call, which removes matching items under one
// lock hold: a concurrent drain observes an empty queue and gets nothing,
// so each pending element is processed at most once even when unmount is
// invoked by overlapping application instances.
type pendingQueue struct {
	q *queuepkg.Queue
}

func newPendingQueue() *pendingQueue {
	return &pendingQueue{q: queuepkg.New(8)}
}

func (p *pendingQueue) put(el api.LinkElement, href string) {
	// Put only fails on a disposed queue, and the queue lives as long as
	// the adapter.
	if err := p.q.Put(ownedLink{el: el, href: href}); err != nil {
		internalLogger.errorf("pending queue put %s: %v", href, err)
	}
}

func (p *pendingQueue) drain() []ownedLink {
	items, err := p.q.TakeUntil(func(interface{}) bool { return true })
	if err != nil {
		internalLogger.errorf("pending queue drain: %v", err)
		return nil
	}
	out := make([]ownedLink, 0, len(items))
	for _, it := range items {
		out = append(out, it.(ownedLink))
	}
	return out
}

func (p *pendingQueue) len() int64 {
	return p.q.Len()
}
