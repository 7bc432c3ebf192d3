package fieldscope

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/fieldscope/pkg/constants"
	"github.com/agentstation/fieldscope/pkg/dataset"
)

// Option is a function that configures a Client.
type Option func(*options)

type options struct {
	searchData    string
	standardsData string
	searchSrc     dataset.Source
	standardsSrc  dataset.Source

	useSample   bool
	fallback    bool
	httpTimeout time.Duration

	autoReload         bool
	autoReloadInterval time.Duration

	logger *zerolog.Logger
}

func defaults() *options {
	return &options{
		searchData:         constants.DefaultSearchData,
		standardsData:      constants.DefaultStandardsData,
		fallback:           true,
		httpTimeout:        constants.DefaultHTTPTimeout,
		autoReloadInterval: constants.DefaultReloadInterval,
	}
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// sources resolves the configured locations.
func (o *options) sources() (search, standards dataset.Source) {
	if o.useSample {
		return dataset.SampleSearchSource(), dataset.SampleStandardsSource()
	}
	search, standards = o.searchSrc, o.standardsSrc
	if search == nil {
		search = dataset.SourceFor(o.searchData, o.httpTimeout)
	}
	if standards == nil {
		standards = dataset.SourceFor(o.standardsData, o.httpTimeout)
	}
	return search, standards
}

// WithSearchData sets the location of the search-field table: a file path
// or an http(s) URL.
func WithSearchData(location string) Option {
	return func(o *options) {
		o.searchData = location
		o.searchSrc = nil
	}
}

// WithStandardsData sets the location of the standards table.
func WithStandardsData(location string) Option {
	return func(o *options) {
		o.standardsData = location
		o.standardsSrc = nil
	}
}

// WithSources sets both tables from arbitrary sources.
func WithSources(search, standards dataset.Source) Option {
	return func(o *options) {
		o.searchSrc = search
		o.standardsSrc = standards
	}
}

// WithSampleData skips the configured locations and loads the built-in sample.
func WithSampleData() Option {
	return func(o *options) {
		o.useSample = true
	}
}

// WithFallbackDisabled makes Load fail instead of substituting the sample.
func WithFallbackDisabled() Option {
	return func(o *options) {
		o.fallback = false
	}
}

// WithHTTPTimeout bounds each remote fetch.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *options) {
		o.httpTimeout = d
	}
}

// WithAutoReload configures whether the datasets are refetched periodically.
func WithAutoReload(enabled bool) Option {
	return func(o *options) {
		o.autoReload = enabled
	}
}

// WithAutoReloadInterval configures how often auto-reload runs.
func WithAutoReloadInterval(interval time.Duration) Option {
	return func(o *options) {
		o.autoReloadInterval = interval
	}
}

// WithLogger sets the logger used for load and reload events.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
