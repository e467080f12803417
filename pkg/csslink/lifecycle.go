package csslink

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/srediag/plugin-css/api"
)

const instrumentationName = "github.com/srediag/plugin-css/pkg/csslink"

// CSSLifecycle is one adapter instance: resolved configuration plus the
// shared state that spans every mount/unmount cycle. Construct it once per
// application registration and hand the same instance to each lifecycle
// call.
type CSSLifecycle struct {
	cfg  *Config
	refs []resolvedRef

	registry *linkRegistry
	pending  *pendingQueue

	tracer   trace.Tracer
	loads    metric.Int64Counter
	removals metric.Int64Counter
}

var _ api.Lifecycle = (*CSSLifecycle)(nil)

// New validates cfg, resolves defaults and the effective stylesheet list
// (configured references plus build-pipeline assets when enabled), and
// returns the adapter with empty shared state. Configuration errors are
// reported here, before any document interaction.
func New(cfg *Config) (*CSSLifecycle, error) {
	resolved, err := resolve(cfg)
	if err != nil {
		return nil, err
	}

	var extra []string
	if resolved.UseBuildAssets {
		extra, err = resolved.Assets.CSSURLs()
		if err != nil {
			return nil, fmt.Errorf("csslink: build asset urls: %w", err)
		}
	}
	refs, err := resolveRefs(resolved.Stylesheets, extra, *resolved.ShouldUnmount)
	if err != nil {
		return nil, err
	}

	tracer := resolved.Tracer
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(instrumentationName)
	}
	meter := resolved.Meter
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter(instrumentationName)
	}
	loads, err := meter.Int64Counter("csslink.loads",
		metric.WithDescription("Stylesheet elements created and inserted."))
	if err != nil {
		return nil, fmt.Errorf("csslink: loads counter: %w", err)
	}
	removals, err := meter.Int64Counter("csslink.removals",
		metric.WithDescription("Owned stylesheet elements detached on unmount."))
	if err != nil {
		return nil, fmt.Errorf("csslink: removals counter: %w", err)
	}

	return &CSSLifecycle{
		cfg:      resolved,
		refs:     refs,
		registry: newLinkRegistry(),
		pending:  newPendingQueue(),
		tracer:   tracer,
		loads:    loads,
		removals: removals,
	}, nil
}

// Bootstrap ensures a preload hint exists for every stylesheet URL. Hints
// are best-effort: insertion failures are logged and never fail the phase,
// and nobody waits for a prefetch to complete.
func (l *CSSLifecycle) Bootstrap(ctx context.Context, props api.AppProps) error {
	_, span := l.tracer.Start(ctx, "csslink.Bootstrap")
	defer span.End()

	for _, ref := range l.refs {
		if l.cfg.Document.QueryLink(api.RelPreload, ref.href) != nil {
			continue
		}
		hint := l.cfg.Document.CreateLink(api.RelPreload, ref.href)
		if hint == nil {
			internalLogger.warnf("%s: no preload hint element for %s", props.Name, ref.href)
			continue
		}
		if err := l.cfg.Document.AppendToHead(hint); err != nil {
			internalLogger.warnf("%s: preload hint for %s not inserted: %v", props.Name, ref.href, err)
			continue
		}
		preloadHints.Inc()
	}
	return nil
}

// Mount brings every stylesheet into the document. URLs already present
// anywhere in the document are adopted as-is; the rest are created through
// the configured factory, inserted, and waited on until the backend
// confirms the load or LoadTimeout expires. Per-URL work runs concurrently
// with no ordering promise between URLs; Mount returns only once every URL
// has settled, reporting all failures in a single *MountError.
func (l *CSSLifecycle) Mount(ctx context.Context, props api.AppProps) error {
	ctx, span := l.tracer.Start(ctx, "csslink.Mount")
	defer span.End()

	internalLogger.debugf("%s: mounting %d stylesheet(s)", props.Name, len(l.refs))

	size := l.cfg.MountParallelism
	if size > len(l.refs) {
		size = len(l.refs)
	}
	if size < 1 {
		size = 1
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return fmt.Errorf("csslink: mount pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures map[string]error
	)
	fail := func(href string, err error) {
		mountFailures.Inc()
		mu.Lock()
		if failures == nil {
			failures = make(map[string]error)
		}
		failures[href] = err
		mu.Unlock()
	}

	for _, ref := range l.refs {
		ref := ref
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if err := l.mountOne(ctx, ref); err != nil {
				fail(ref.href, err)
			}
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			fail(ref.href, err)
		}
	}
	wg.Wait()

	if len(failures) > 0 {
		err := &MountError{Failures: failures}
		span.RecordError(err)
		return err
	}
	return nil
}

func (l *CSSLifecycle) mountOne(ctx context.Context, ref resolvedRef) error {
	doc := l.cfg.Document

	if el := doc.QueryLink(api.RelStylesheet, ref.href); el != nil {
		// Another party put this element here, so this instance must not
		// remove it: record it, never enqueue it.
		l.registry.set(ref.href, el)
		linksAdopted.Inc()
		internalLogger.debugf("adopted existing stylesheet %s", ref.href)
		return nil
	}

	el, err := l.cfg.Factory(doc, ref.href)
	if err != nil {
		return fmt.Errorf("create element for %s: %w", ref.href, err)
	}
	l.registry.set(ref.href, el)
	if ref.shouldUnmount {
		l.pending.put(el, ref.href)
	}
	if err := doc.AppendToHead(el); err != nil {
		return fmt.Errorf("insert element for %s: %w", ref.href, err)
	}
	linksCreated.Inc()
	l.loads.Add(ctx, 1)

	waitCtx, cancel := context.WithTimeout(ctx, l.cfg.LoadTimeout)
	defer cancel()
	if err := el.Loaded(waitCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s after %v", ErrLoadTimeout, ref.href, l.cfg.LoadTimeout)
		}
		return fmt.Errorf("load %s: %w", ref.href, err)
	}
	return nil
}

// Unmount removes the elements this instance owns. The pending queue is
// claimed in one atomic drain, so an unmount racing this one observes an
// empty queue and performs no document mutation. Each removal is
// independent: an element already detached by other code is tolerated and
// never stops the rest.
func (l *CSSLifecycle) Unmount(ctx context.Context, props api.AppProps) error {
	ctx, span := l.tracer.Start(ctx, "csslink.Unmount")
	defer span.End()

	claimed := l.pending.drain()
	if len(claimed) == 0 {
		internalLogger.debugf("%s: unmount claimed nothing", props.Name)
		return nil
	}

	for _, owned := range claimed {
		l.registry.remove(owned.href)
		if !owned.el.Attached() {
			internalLogger.debugf("%s: stylesheet %s already detached", props.Name, owned.href)
			continue
		}
		if err := owned.el.Detach(); err != nil {
			internalLogger.warnf("%s: detach %s: %v", props.Name, owned.href, err)
			continue
		}
		linksRemoved.Inc()
		l.removals.Add(ctx, 1)
	}
	return nil
}

// StylesheetCount returns the size of the effective stylesheet list.
func (l *CSSLifecycle) StylesheetCount() int { return len(l.refs) }

// MountedCount returns how many URLs currently have a live element.
func (l *CSSLifecycle) MountedCount() int { return l.registry.count() }

// PendingRemovals returns how many owned elements await the next unmount.
func (l *CSSLifecycle) PendingRemovals() int { return int(l.pending.len()) }

// MountedHrefs returns the URLs currently held in the live registry.
func (l *CSSLifecycle) MountedHrefs() []string { return l.registry.hrefs() }
