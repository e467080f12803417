package csslink

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/srediag/plugin-css/api"
)

const (
	defaultLoadTimeout      = 5000 * time.Millisecond
	defaultMountParallelism = 4
)

// Config holds adapter creation parameters. Zero-value optional fields are
// replaced by their documented defaults when the adapter is created.
type Config struct {
	// Stylesheets is the ordered list of stylesheet references the
	// application depends on.
	Stylesheets []api.StylesheetRef

	// Document is the document the adapter mutates. Required.
	Document api.Document

	// UseBuildAssets appends the build-pipeline-supplied CSS URLs from
	// Assets to the stylesheet list. Requires Assets to be set.
	UseBuildAssets bool

	// Assets supplies build-pipeline CSS URLs when UseBuildAssets is set.
	Assets api.AssetProvider

	// LoadTimeout bounds the wait for each created element's load signal
	// during Mount. Default 5000ms.
	LoadTimeout time.Duration

	// ShouldUnmount is the default unmount policy for references that do
	// not carry their own. Default true.
	ShouldUnmount *bool

	// Factory overrides stylesheet element construction. Default:
	// Document.CreateLink(api.RelStylesheet, href).
	Factory api.LinkFactory

	// MountParallelism caps how many stylesheets mount concurrently.
	// Default 4.
	MountParallelism int

	// Meter and Tracer enable OpenTelemetry instrumentation when set.
	Meter  metric.Meter
	Tracer trace.Tracer
}

// DefaultConfig returns a config with every optional field populated with
// its default. Document and Stylesheets still have to be supplied.
func DefaultConfig() *Config {
	return &Config{
		LoadTimeout:      defaultLoadTimeout,
		ShouldUnmount:    api.Bool(true),
		Factory:          defaultFactory,
		MountParallelism: defaultMountParallelism,
	}
}

// resolve validates cfg and returns a defaulted copy. It fails fast,
// before any document interaction.
func resolve(cfg *Config) (*Config, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Document == nil {
		return nil, ErrNilDocument
	}
	if cfg.UseBuildAssets && cfg.Assets == nil {
		return nil, ErrNoAssetProvider
	}

	out := *cfg
	if out.LoadTimeout <= 0 {
		out.LoadTimeout = defaultLoadTimeout
	}
	if out.ShouldUnmount == nil {
		out.ShouldUnmount = api.Bool(true)
	}
	if out.Factory == nil {
		out.Factory = defaultFactory
	}
	if out.MountParallelism <= 0 {
		out.MountParallelism = defaultMountParallelism
	}
	return &out, nil
}

func defaultFactory(doc api.Document, href string) (api.LinkElement, error) {
	el := doc.CreateLink(api.RelStylesheet, href)
	if el == nil {
		return nil, fmt.Errorf("csslink: document returned no element for %s", href)
	}
	return el, nil
}
