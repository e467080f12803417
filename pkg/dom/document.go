package dom

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/srediag/plugin-css/api"
)

var (
	// ErrNoHead is returned when a parsed document has no head element.
	ErrNoHead = errors.New("dom: document has no head element")
	// ErrForeignElement is returned when an element from another Document
	// implementation is inserted.
	ErrForeignElement = errors.New("dom: element does not belong to this document")
	// ErrAlreadyAttached is returned when an attached element is inserted
	// a second time.
	ErrAlreadyAttached = errors.New("dom: element is already attached")
)

// Document is an in-memory HTML document. All methods are safe for
// concurrent use.
type Document struct {
	mu       sync.Mutex
	root     *html.Node
	head     *html.Node
	loader   Loader
	wrappers map[*html.Node]*Link
}

var _ api.Document = (*Document)(nil)

// Option configures a Document.
type Option func(*Document)

// WithLoader sets the loader driving stylesheet load signals. A nil loader
// keeps static mode.
func WithLoader(l Loader) Option {
	return func(d *Document) { d.loader = l }
}

// New returns an empty document with an html/head/body skeleton.
func New(opts ...Option) *Document {
	root := &html.Node{Type: html.DocumentNode}
	htmlNode := &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
	head := &html.Node{Type: html.ElementNode, Data: "head", DataAtom: atom.Head}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	root.AppendChild(htmlNode)
	htmlNode.AppendChild(head)
	htmlNode.AppendChild(body)

	d := &Document{root: root, head: head, wrappers: make(map[*html.Node]*Link)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Parse reads an HTML document from r. Elements already present in the
// markup are visible to QueryLink and can be adopted by the adapter.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	head := findElement(root, atom.Head)
	if head == nil {
		return nil, ErrNoHead
	}

	d := &Document{root: root, head: head, wrappers: make(map[*html.Node]*Link)}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// QueryLink returns the first link element with the given rel and href
// anywhere in the document, or nil. Elements that predate this Document's
// bookkeeping (parsed markup, other tooling) are wrapped with their load
// signal already completed.
func (d *Document) QueryLink(rel, href string) api.LinkElement {
	d.mu.Lock()
	defer d.mu.Unlock()

	node := d.findLink(rel, href)
	if node == nil {
		return nil
	}
	if lk, ok := d.wrappers[node]; ok {
		return lk
	}
	lk := newLink(d, node, rel, href)
	lk.complete(nil)
	d.wrappers[node] = lk
	return lk
}

// CreateLink builds a detached link element. Preload links additionally
// carry as="style", matching the hint shape browsers expect.
func (d *Document) CreateLink(rel, href string) api.LinkElement {
	attrs := []html.Attribute{
		{Key: "rel", Val: rel},
		{Key: "href", Val: href},
	}
	if rel == api.RelPreload {
		attrs = append(attrs, html.Attribute{Key: "as", Val: "style"})
	}
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     "link",
		DataAtom: atom.Link,
		Attr:     attrs,
	}

	lk := newLink(d, node, rel, href)
	d.mu.Lock()
	d.wrappers[node] = lk
	d.mu.Unlock()
	return lk
}

// AppendToHead inserts el into <head>. For stylesheet elements the
// resource fetch starts here and completes the element's load signal; for
// preload hints a background prefetch is fired that nobody waits on.
func (d *Document) AppendToHead(el api.LinkElement) error {
	lk, ok := el.(*Link)
	if !ok || lk.doc != d {
		return ErrForeignElement
	}

	d.mu.Lock()
	if lk.node.Parent != nil {
		d.mu.Unlock()
		return ErrAlreadyAttached
	}
	d.head.AppendChild(lk.node)
	d.mu.Unlock()

	switch lk.rel {
	case api.RelStylesheet:
		if d.loader == nil {
			lk.complete(nil)
			break
		}
		go func() {
			lk.complete(d.loader.Fetch(context.Background(), lk.href))
		}()
	case api.RelPreload:
		if d.loader != nil {
			go func() {
				// Best-effort prefetch; the hint never reports failure.
				_ = d.loader.Fetch(context.Background(), lk.href)
			}()
		}
		lk.complete(nil)
	default:
		lk.complete(nil)
	}
	return nil
}

// Render serializes the document.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, d.root)
}

// findLink walks the whole tree, not just <head>: adoption must see
// stylesheet elements wherever other code put them. Caller holds d.mu.
func (d *Document) findLink(rel, href string) *html.Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Link &&
			attr(n, "rel") == rel && attr(n, "href") == href {
			found = n
			return false
		}
		return true
	})
	return found
}

func findElement(root *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == a {
			found = n
			return false
		}
		return true
	})
	return found
}

// walk visits n and its descendants in document order until fn returns
// false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Link is one link element handle.
type Link struct {
	doc  *Document
	node *html.Node
	rel  string
	href string

	once    sync.Once
	done    chan struct{}
	loadErr error
}

var _ api.LinkElement = (*Link)(nil)

func newLink(d *Document, node *html.Node, rel, href string) *Link {
	return &Link{doc: d, node: node, rel: rel, href: href, done: make(chan struct{})}
}

func (l *Link) complete(err error) {
	l.once.Do(func() {
		l.loadErr = err
		close(l.done)
	})
}

// Href returns the element's href attribute.
func (l *Link) Href() string { return l.href }

// Rel returns the element's rel attribute.
func (l *Link) Rel() string { return l.rel }

// Attached reports whether the element currently has a parent.
func (l *Link) Attached() bool {
	l.doc.mu.Lock()
	defer l.doc.mu.Unlock()
	return l.node.Parent != nil
}

// Detach removes the element from its parent. Detaching twice, or an
// element something else already removed, is a no-op.
func (l *Link) Detach() error {
	l.doc.mu.Lock()
	defer l.doc.mu.Unlock()
	if l.node.Parent == nil {
		return nil
	}
	l.node.Parent.RemoveChild(l.node)
	return nil
}

// Loaded blocks until the load signal completes or ctx ends. The signal
// completes exactly once; a wait abandoned on ctx does not cancel the
// underlying fetch.
func (l *Link) Loaded(ctx context.Context) error {
	select {
	case <-l.done:
		return l.loadErr
	case <-ctx.Done():
		return ctx.Err()
	}
}
