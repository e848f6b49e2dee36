// Package api exposes the reason service over HTTP. The endpoints mirror
// the public surface: a random excuse, a filtered excuse, permalinks, and
// the filter metadata the embedded page uses to disable dead-end options.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/kindled/noaas/internal/pick"
	"github.com/kindled/noaas/internal/reason"
	"github.com/kindled/noaas/internal/store"
	"github.com/kindled/noaas/internal/ui"
	"github.com/kindled/noaas/web"
)

// emptyCorpusMessage is the friendly empty-state body: "no data yet" is a
// valid service state, not an error.
const emptyCorpusMessage = "No reasons available right now."

// Server handles HTTP requests for the reason API.
type Server struct {
	lib *store.Library
	cfg store.ServerConfig
}

// New creates an API server over the given corpus library.
func New(lib *store.Library, cfg store.ServerConfig) *Server {
	return &Server{lib: lib, cfg: cfg}
}

// Handler builds the full route table wrapped in CORS and rate limiting.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /no", s.randomReason)
	mux.HandleFunc("GET /no/rich", s.filteredReason)
	mux.HandleFunc("GET /no/{id}", s.reasonByID)
	mux.HandleFunc("GET /reasons", s.listReasons)
	mux.HandleFunc("GET /filters", s.listFilters)
	mux.HandleFunc("GET /health", s.health)
	mux.Handle("GET /", http.FileServerFS(web.Assets))

	return withCORS(withRateLimit(s.cfg.RatePerMinute, mux))
}

// Run starts the HTTP server and shuts it down gracefully when ctx ends.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		ui.Logger.Info("serving", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		err := <-errc
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"reasons": len(s.lib.Snapshot()),
	})
}

func (s *Server) randomReason(w http.ResponseWriter, r *http.Request) {
	res := pick.Pick(s.lib.Snapshot(), pick.Filter{})
	if res.Outcome == pick.EmptyCorpus {
		writeJSON(w, http.StatusOK, map[string]string{"reason": emptyCorpusMessage})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reason": res.Reason.Text})
}

func (s *Server) filteredReason(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)
	res := pick.Pick(s.lib.Snapshot(), filter)
	switch res.Outcome {
	case pick.EmptyCorpus:
		writeJSON(w, http.StatusOK, map[string]string{"reason": emptyCorpusMessage})
	case pick.NoMatch:
		writeError(w, http.StatusNotFound,
			"No reasons match the requested filters. Try removing a filter.")
	default:
		writeJSON(w, http.StatusOK, res.Reason)
	}
}

func (s *Server) reasonByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if rec, ok := s.lib.Snapshot().ByID(id); ok {
		writeJSON(w, http.StatusOK, rec)
		return
	}
	writeError(w, http.StatusNotFound, "reason not found")
}

func (s *Server) listReasons(w http.ResponseWriter, r *http.Request) {
	corpus := s.lib.Snapshot()
	if corpus == nil {
		corpus = reason.Corpus{}
	}
	writeJSON(w, http.StatusOK, corpus)
}

// filterOption is one selectable value plus whether adding it to the active
// filter would still match anything.
type filterOption struct {
	Value     string `json:"value"`
	Available bool   `json:"available"`
}

// listFilters reports every filter value with its viability relative to the
// filter already present in the query, so the page can gray out options
// that would guarantee an empty result.
func (s *Server) listFilters(w http.ResponseWriter, r *http.Request) {
	corpus := s.lib.Snapshot()
	filter := parseFilter(r)

	options := func(field pick.Field, values []string) []filterOption {
		out := make([]filterOption, 0, len(values))
		for _, v := range values {
			out = append(out, filterOption{
				Value:     v,
				Available: pick.OptionViable(corpus, filter, field, v),
			})
		}
		return out
	}

	var types, tones, topics []string
	for _, t := range reason.AllTypes() {
		types = append(types, string(t))
	}
	for _, t := range reason.AllTones() {
		tones = append(tones, string(t))
	}
	for _, t := range reason.AllTopics() {
		topics = append(topics, string(t))
	}

	writeJSON(w, http.StatusOK, map[string][]filterOption{
		"types":  options(pick.FieldType, types),
		"tones":  options(pick.FieldTone, tones),
		"topics": options(pick.FieldTopic, topics),
		"tags":   options(pick.FieldTag, corpusTags(corpus)),
	})
}

// corpusTags returns the distinct tags present in the corpus, sorted.
func corpusTags(c reason.Corpus) []string {
	set := make(map[string]bool)
	for _, r := range c {
		for _, t := range r.Tags {
			set[strings.ToLower(t)] = true
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// parseFilter reads type/tone/topic/tag query params, each a comma list.
func parseFilter(r *http.Request) pick.Filter {
	q := r.URL.Query()
	return pick.Filter{
		Types:  parseList(q.Get("type")),
		Tones:  parseList(q.Get("tone")),
		Topics: parseList(q.Get("topic")),
		Tags:   parseList(q.Get("tag")),
	}
}

func parseList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
