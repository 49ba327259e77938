package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/toqtoga/bicig-toli/internal/logger"
	"github.com/toqtoga/bicig-toli/internal/utils"
	"github.com/toqtoga/bicig-toli/pkg/debounce"
	"github.com/toqtoga/bicig-toli/pkg/dictionary"
	"github.com/toqtoga/bicig-toli/pkg/search"
	"github.com/toqtoga/bicig-toli/pkg/translit"
)

// Options tunes the server.
type Options struct {
	// Debounce is how long a search waits for a newer one before running.
	Debounce time.Duration
	// MaxQueryLen caps queries, in runes. Values < 1 disable the cap.
	MaxQueryLen int
}

// Server handles the IPC for glossary lookups
type Server struct {
	searcher search.Searcher
	glossary *dictionary.Glossary
	opts     Options

	decoder *msgpack.Decoder
	writer  *bufio.Writer
	encoder *msgpack.Encoder
	writeMu sync.Mutex

	debouncer *debounce.Debouncer
	requests  atomic.Int64
	log       *log.Logger
}

// NewServer creates a server speaking over stdin/stdout
func NewServer(searcher search.Searcher, glossary *dictionary.Glossary, opts Options) *Server {
	return NewServerWithIO(searcher, glossary, opts, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing
// responses to w
func NewServerWithIO(searcher search.Searcher, glossary *dictionary.Glossary, opts Options, r io.Reader, w io.Writer) *Server {
	bw := bufio.NewWriter(w)
	s := &Server{
		searcher: searcher,
		glossary: glossary,
		opts:     opts,
		decoder:  msgpack.NewDecoder(bufio.NewReader(r)),
		writer:   bw,
		encoder:  msgpack.NewEncoder(bw),
		log:      logger.New("server"),
	}
	s.debouncer = debounce.New(opts.Debounce, s.sendSuperseded)
	return s
}

// Start answers requests until the input ends. Searches still pending at
// that point are run before Start returns.
func (s *Server) Start() error {
	s.log.Debug("Starting server", "debounce", s.opts.Debounce, "maxQueryLen", s.opts.MaxQueryLen)
	defer s.debouncer.Stop()

	s.send(HealthResponse{Status: StatusReady, Stats: s.stats()})

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.debouncer.Wait()
				s.log.Debug("Input closed, stopping server")
				return nil
			}
			s.sendError("", "invalid msgpack request", 400)
			return fmt.Errorf("failed to decode request: %w", err)
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	s.requests.Add(1)

	switch req.Action {
	case "", ActionSearch:
		s.handleSearch(req)
	case ActionGlossary:
		s.handleGlossary(req)
	case ActionInitials:
		s.handleInitials(req)
	case ActionTranslit:
		s.handleTranslit(req)
	case ActionHealth:
		s.send(HealthResponse{ID: req.ID, Status: StatusOK, Stats: s.stats(), Requests: s.requests.Load()})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

// searchOptions applies the request overrides to the searcher defaults
func (s *Server) searchOptions(req Request) search.Options {
	opts := s.searcher.Defaults()
	if req.Limit > 0 {
		opts.Limit = req.Limit
	}
	if req.MaxDistance != nil {
		opts.MaxDistance = *req.MaxDistance
	}
	if req.Strict != nil {
		opts.Strict = *req.Strict
	}
	return opts
}

func (s *Server) handleSearch(req Request) {
	query := utils.PrepareQuery(req.Query, 0)
	if s.opts.MaxQueryLen > 0 && utf8.RuneCountInString(query) > s.opts.MaxQueryLen {
		s.sendError(req.ID, fmt.Sprintf("query exceeds maximum length of %d characters", s.opts.MaxQueryLen), 400)
		return
	}
	opts := s.searchOptions(req)

	err := s.debouncer.Submit(req.ID, func(ctx context.Context) {
		start := time.Now()
		entries, err := s.searcher.Search(ctx, query, opts)
		elapsed := time.Since(start)

		if err != nil {
			if ctx.Err() != nil {
				s.sendSuperseded(req.ID)
				return
			}
			s.sendError(req.ID, err.Error(), 500)
			return
		}
		s.log.Debugf("Took [ %v ] for query '%s', %d hits", elapsed, query, len(entries))

		hits := toHits(entries)
		for i, rank := range utils.CreateRankList(len(hits)) {
			hits[i].Rank = rank
		}
		s.send(SearchResponse{
			ID:        req.ID,
			Status:    StatusOK,
			Query:     query,
			Latin:     search.IsLatinQuery(query),
			Hits:      hits,
			Count:     len(hits),
			TimeTaken: elapsed.Microseconds(),
		})
	})
	if err != nil {
		s.sendError(req.ID, err.Error(), 503)
	}
}

func (s *Server) handleGlossary(req Request) {
	if s.glossary == nil {
		s.sendError(req.ID, "glossary not loaded", 503)
		return
	}
	words, total := s.glossary.Words(req.Prefix, req.Offset, req.Limit)
	s.send(GlossaryResponse{
		ID:     req.ID,
		Status: StatusOK,
		Prefix: req.Prefix,
		Words:  toHits(words),
		Offset: req.Offset,
		Total:  total,
	})
}

func (s *Server) handleInitials(req Request) {
	if s.glossary == nil {
		s.sendError(req.ID, "glossary not loaded", 503)
		return
	}
	s.send(InitialsResponse{ID: req.ID, Status: StatusOK, Initials: s.glossary.Initials()})
}

func (s *Server) handleTranslit(req Request) {
	r := translit.Render(req.Text)
	s.send(TranslitResponse{
		ID:         req.ID,
		Status:     StatusOK,
		Text:       req.Text,
		Normalized: r.Normalized,
		Strict:     r.Strict,
	})
}

func (s *Server) stats() map[string]int {
	stats := s.searcher.Stats()
	if s.glossary != nil {
		stats["glossary"] = s.glossary.Len()
	}
	return stats
}

// toHits renders entries with both romanizations
func toHits(entries []dictionary.Entry) []Hit {
	hits := make([]Hit, len(entries))
	for i, e := range entries {
		r := translit.Render(e.Traditional)
		hits[i] = Hit{
			Cyrillic:    e.Cyrillic,
			Traditional: e.Traditional,
			Latin:       r.Normalized,
			LatinStrict: r.Strict,
		}
	}
	return hits
}

func (s *Server) sendSuperseded(id string) {
	s.send(SearchResponse{ID: id, Status: StatusSuperseded, Hits: []Hit{}})
}

// send encodes one response and flushes it. Safe for concurrent use.
func (s *Server) send(response any) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.log.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.log.Debug("Request failed", "id", id, "error", message)
	s.send(ErrorResponse{ID: id, Status: StatusError, Error: message, Code: code})
}
