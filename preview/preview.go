// Package preview serves a generated AsyncAPI document with a live
// reloading viewer.
package preview

import (
	_ "embed"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/masnyjimmy/asyncdocket/compilation"
)

//go:embed preview.html
var previewUIBase string

func buildPreviewUI(documentURL, eventsURL string) []byte {
	replacer := strings.NewReplacer(
		"%DOCUMENT_URL%", documentURL,
		"%EVENTS_URL%", eventsURL,
	)

	return []byte(replacer.Replace(previewUIBase))
}

type Options struct {
	BaseURL        string
	AllowedOrigins []string
	// Registry receives the preview metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

func DefaultOptions() Options {
	return Options{
		BaseURL:        "/",
		AllowedOrigins: []string{"*"},
	}
}

type urls struct {
	UI      string
	JSON    string
	YAML    string
	Events  string
	Metrics string
}

func makeURLs(base string) urls {
	base = path.Clean("/" + base)
	return urls{
		UI:      base,
		JSON:    path.Join(base, "asyncapi.json"),
		YAML:    path.Join(base, "asyncapi.yaml"),
		Events:  path.Join(base, "events"),
		Metrics: path.Join(base, "metrics"),
	}
}

type rendered struct {
	json []byte
	yaml []byte
}

// Preview holds the last good document and notifies viewers when it changes.
type Preview struct {
	options     Options
	urls        urls
	registry    *prometheus.Registry
	broadcaster *broadcaster
	metrics     *Metrics

	mu       sync.RWMutex
	document rendered
}

func New(document *compilation.Document, opt Options) (*Preview, error) {
	registry := opt.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	b := newBroadcaster()

	out := &Preview{
		options:     opt,
		urls:        makeURLs(opt.BaseURL),
		registry:    registry,
		broadcaster: b,
		metrics:     newMetrics(registry, b.count),
	}

	doc, err := render(document)
	if err != nil {
		return nil, err
	}
	out.document = doc

	return out, nil
}

func render(document *compilation.Document) (rendered, error) {
	jsonBytes, err := compilation.MarshalJSON(document)
	if err != nil {
		return rendered{}, err
	}
	yamlBytes, err := compilation.MarshalYAML(document)
	if err != nil {
		return rendered{}, err
	}
	return rendered{json: jsonBytes, yaml: yamlBytes}, nil
}

// SetDocument replaces the served document and tells viewers to reload.
// The previous document stays in place when rendering fails.
func (p *Preview) SetDocument(document *compilation.Document) error {
	doc, err := render(document)
	if err != nil {
		p.metrics.ReloadFailuresTotal.Inc()
		return err
	}

	p.mu.Lock()
	p.document = doc
	p.mu.Unlock()

	p.metrics.ReloadsTotal.Inc()
	p.broadcaster.broadcast("reload")
	return nil
}

// ReportFailure counts a docket change that could not be compiled.
func (p *Preview) ReportFailure() {
	p.metrics.ReloadFailuresTotal.Inc()
}

func (p *Preview) Metrics() *Metrics {
	return p.metrics
}

func (p *Preview) URLs() (ui, events string) {
	return p.urls.UI, p.urls.Events
}

func (p *Preview) Handler() http.Handler {
	previewUI := buildPreviewUI(p.urls.JSON, p.urls.Events)

	r := mux.NewRouter()
	r.Use(p.metrics.middleware)

	ui := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(previewUI)
	}
	r.HandleFunc(p.urls.UI, ui).Methods("GET")
	if p.urls.UI != "/" {
		r.HandleFunc(p.urls.UI+"/", ui).Methods("GET")
	}

	r.HandleFunc(p.urls.JSON, p.serveDocument("application/json", func(d rendered) []byte { return d.json })).Methods("GET")
	r.HandleFunc(p.urls.YAML, p.serveDocument("application/yaml", func(d rendered) []byte { return d.yaml })).Methods("GET")
	r.Handle(p.urls.Events, p.broadcaster).Methods("GET")
	r.Handle(p.urls.Metrics, promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})).Methods("GET")

	return cors.New(cors.Options{
		AllowedOrigins: p.options.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	}).Handler(r)
}

func (p *Preview) serveDocument(contentType string, pick func(rendered) []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		p.mu.RLock()
		body := pick(p.document)
		p.mu.RUnlock()

		w.Header().Set("Content-Type", contentType)
		w.Write(body)
	}
}
