// Package cli is the interactive front end: it reads queries line by line
// and prints the ranked hits in both scripts.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/toqtoga/bicig-toli/internal/utils"
	"github.com/toqtoga/bicig-toli/pkg/dictionary"
	"github.com/toqtoga/bicig-toli/pkg/search"
)

// DefaultQuery is shown once when the CLI starts.
const DefaultQuery = "тамир"

// glossaryPage is the number of headwords per :g page.
const glossaryPage = 20

// InputHandler reads queries from its input and prints results
type InputHandler struct {
	searcher    search.Searcher
	glossary    *dictionary.Glossary
	limit       int
	maxQueryLen int
	showStrict  bool

	in   io.Reader
	out  io.Writer
	view *view
}

// NewInputHandler creates a handler over stdin/stdout
func NewInputHandler(searcher search.Searcher, glossary *dictionary.Glossary, limit, maxQueryLen int, showStrict bool) *InputHandler {
	h := &InputHandler{
		searcher:    searcher,
		glossary:    glossary,
		limit:       limit,
		maxQueryLen: maxQueryLen,
		showStrict:  showStrict,
	}
	return h.WithIO(os.Stdin, os.Stdout)
}

// WithIO redirects the handler's input and output
func (h *InputHandler) WithIO(in io.Reader, out io.Writer) *InputHandler {
	h.in = in
	h.out = out
	h.view = newView(out)
	return h
}

// Start prints the results for DefaultQuery, then answers one query per
// line until the input ends.
func (h *InputHandler) Start() error {
	h.println(h.view.title.Render("Bicig Toli"))
	h.println(h.view.help())
	h.runQuery(DefaultQuery)

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

func (h *InputHandler) handleInput(line string) {
	if utils.IsCommand(line) {
		h.handleCommand(line)
		return
	}

	query := utils.PrepareQuery(line, h.maxQueryLen)
	h.runQuery(query)
}

func (h *InputHandler) handleCommand(line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":rules":
		h.println(h.view.rules())
	case ":initials":
		if h.glossary == nil {
			log.Warn("Glossary not loaded")
			return
		}
		h.println(h.view.initials(h.glossary.Initials()))
	case ":g":
		h.showGlossary(fields[1:])
	case ":help":
		h.println(h.view.help())
	default:
		log.Warnf("Unknown command: %s", fields[0])
		h.println(h.view.help())
	}
}

// showGlossary handles ":g <prefix> [page]"
func (h *InputHandler) showGlossary(args []string) {
	if h.glossary == nil {
		log.Warn("Glossary not loaded")
		return
	}
	prefix, page := "", 1
	if len(args) > 0 {
		prefix = strings.ToLower(args[0])
	}
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
			page = n
		}
	}

	offset := (page - 1) * glossaryPage
	words, total := h.glossary.Words(prefix, offset, glossaryPage)
	h.println(h.view.glossary(prefix, words, offset, total, h.showStrict))
}

func (h *InputHandler) runQuery(query string) {
	opts := h.searcher.Defaults()
	if h.limit > 0 {
		opts.Limit = h.limit
	}

	log.Debug("Processing request", "query", query)
	start := time.Now()
	hits, err := h.searcher.Search(context.Background(), query, opts)
	elapsed := time.Since(start)
	if err != nil {
		log.Errorf("Search failed for '%s': %v", query, err)
		return
	}
	log.Debugf("Took [ %v ] for query '%s'", elapsed, query)

	h.println(h.view.hits(query, search.IsLatinQuery(query), hits, h.showStrict, elapsed))
}

func (h *InputHandler) println(s string) {
	fmt.Fprintln(h.out, s)
}
