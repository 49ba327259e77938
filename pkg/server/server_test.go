package server

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/toqtoga/bicig-toli/pkg/dictionary"
	"github.com/toqtoga/bicig-toli/pkg/search"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// response is the union of every response type, for decoding in tests.
type response struct {
	ID         string         `msgpack:"id"`
	Status     string         `msgpack:"status"`
	Query      string         `msgpack:"q"`
	Latin      bool           `msgpack:"latin"`
	Hits       []Hit          `msgpack:"h"`
	Count      int            `msgpack:"c"`
	Prefix     string         `msgpack:"p"`
	Words      []Hit          `msgpack:"w"`
	Offset     int            `msgpack:"o"`
	Total      int            `msgpack:"total"`
	Initials   []string       `msgpack:"i"`
	Text       string         `msgpack:"text"`
	Normalized string         `msgpack:"n"`
	Strict     string         `msgpack:"s"`
	Stats      map[string]int `msgpack:"stats"`
	Requests   int64          `msgpack:"requests"`
	Error      string         `msgpack:"e"`
	Code       int            `msgpack:"code"`
}

var testEntries = []dictionary.Entry{
	{Cyrillic: "тамир", Traditional: "ᠲᠠᠮᠢᠷ"},
	{Cyrillic: "тамгалах", Traditional: "ᠲᠠᠮᠠᠭᠠᠯᠠᠬᠤ"},
	{Cyrillic: "цамхаг", Traditional: "ᠴᠠᠮᠬᠠᠭ"},
	{Cyrillic: "монгол", Traditional: "ᠮᠣᠩᠭᠣᠯ"},
	{Cyrillic: "хүч тамир", Traditional: "ᠬᠦᠴᠦ ᠲᠠᠮᠢᠷ"},
}

func encodeRequests(t *testing.T, requests ...Request) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	for _, r := range requests {
		require.NoError(t, enc.Encode(r))
	}
	return &buf
}

// run feeds requests to a fresh server and returns the ready message and
// the responses keyed by request ID.
func run(t *testing.T, debounce time.Duration, requests ...Request) (response, map[string]response) {
	t.Helper()

	d := dictionary.New(testEntries)
	engine, err := search.NewEngine(d, search.DefaultOptions(), 16)
	require.NoError(t, err)

	var out bytes.Buffer
	s := NewServerWithIO(engine, dictionary.NewGlossary(d), Options{Debounce: debounce, MaxQueryLen: 16},
		encodeRequests(t, requests...), &out)
	require.NoError(t, s.Start())

	dec := msgpack.NewDecoder(&out)
	var ready response
	require.NoError(t, dec.Decode(&ready))

	byID := make(map[string]response)
	for {
		var r response
		if err := dec.Decode(&r); err != nil {
			require.True(t, errors.Is(err, io.EOF), "unexpected decode error: %v", err)
			break
		}
		_, dup := byID[r.ID]
		require.False(t, dup, "two responses for %q", r.ID)
		byID[r.ID] = r
	}
	return ready, byID
}

func TestReady(t *testing.T) {
	ready, responses := run(t, 0)

	assert.Equal(t, StatusReady, ready.Status)
	assert.Equal(t, 5, ready.Stats["entries"])
	assert.Equal(t, 5, ready.Stats["glossary"])
	assert.Empty(t, responses)
}

func TestSearch(t *testing.T) {
	_, responses := run(t, 0, Request{ID: "q1", Query: "ТАМИР"})

	r := responses["q1"]
	require.Equal(t, StatusOK, r.Status)
	assert.Equal(t, "тамир", r.Query, "queries are lower-cased")
	assert.False(t, r.Latin)
	require.Equal(t, 2, r.Count)
	require.Len(t, r.Hits, 2)

	assert.Equal(t, Hit{Cyrillic: "тамир", Traditional: "ᠲᠠᠮᠢᠷ", Latin: "damir", LatinStrict: "tamir", Rank: 1}, r.Hits[0])
	assert.Equal(t, "хүч тамир", r.Hits[1].Cyrillic)
	assert.Equal(t, uint16(2), r.Hits[1].Rank)
}

func TestSearchLatin(t *testing.T) {
	_, responses := run(t, 0, Request{ID: "q1", Action: ActionSearch, Query: "monggol"})

	r := responses["q1"]
	require.Equal(t, StatusOK, r.Status)
	assert.True(t, r.Latin)
	require.NotEmpty(t, r.Hits)
	assert.Equal(t, "монгол", r.Hits[0].Cyrillic)
	assert.Equal(t, "monggol", r.Hits[0].Latin)
}

func TestSearchOverrides(t *testing.T) {
	noFuzz := -1
	strict := true
	_, responses := run(t, 0,
		Request{ID: "limit", Query: "там", Limit: 1},
		Request{ID: "strict", Query: "tamir", MaxDistance: &noFuzz, Strict: &strict},
	)

	assert.Len(t, responses["limit"].Hits, 1)

	r := responses["strict"]
	require.Equal(t, StatusOK, r.Status)
	require.Len(t, r.Hits, 2)
	assert.Equal(t, "тамир", r.Hits[0].Cyrillic)
}

func TestSearchDebounce(t *testing.T) {
	_, responses := run(t, 50*time.Millisecond,
		Request{ID: "q1", Query: "т"},
		Request{ID: "q2", Query: "та"},
		Request{ID: "q3", Query: "там"},
	)

	assert.Equal(t, StatusSuperseded, responses["q1"].Status)
	assert.Empty(t, responses["q1"].Hits)
	assert.Equal(t, StatusSuperseded, responses["q2"].Status)
	assert.Equal(t, StatusOK, responses["q3"].Status)
	assert.NotEmpty(t, responses["q3"].Hits)
}

func TestSearchQueryTooLong(t *testing.T) {
	_, responses := run(t, 0, Request{ID: "q1", Query: "тамиртамиртамиртамир"})

	r := responses["q1"]
	assert.Equal(t, StatusError, r.Status)
	assert.Equal(t, 400, r.Code)
}

func TestGlossary(t *testing.T) {
	_, responses := run(t, 0,
		Request{ID: "g1", Action: ActionGlossary, Prefix: "там"},
		Request{ID: "g2", Action: ActionGlossary, Offset: 1, Limit: 2},
	)

	g1 := responses["g1"]
	require.Equal(t, StatusOK, g1.Status)
	assert.Equal(t, 2, g1.Total)
	require.Len(t, g1.Words, 2)
	assert.Equal(t, "тамгалах", g1.Words[0].Cyrillic)
	assert.Equal(t, "тамир", g1.Words[1].Cyrillic)
	assert.Equal(t, "tamir", g1.Words[1].LatinStrict)

	g2 := responses["g2"]
	assert.Equal(t, 5, g2.Total)
	assert.Equal(t, 1, g2.Offset)
	require.Len(t, g2.Words, 2)
	assert.Equal(t, "тамгалах", g2.Words[0].Cyrillic)
}

func TestInitials(t *testing.T) {
	_, responses := run(t, 0, Request{ID: "i1", Action: ActionInitials})

	assert.Equal(t, []string{"м", "т", "х", "ц"}, responses["i1"].Initials)
}

func TestTranslit(t *testing.T) {
	_, responses := run(t, 0, Request{ID: "x1", Action: ActionTranslit, Text: "ᠲᠡᠭᠡ"})

	r := responses["x1"]
	assert.Equal(t, StatusOK, r.Status)
	assert.Equal(t, "ᠲᠡᠭᠡ", r.Text)
	assert.Equal(t, "dehe", r.Normalized)
	assert.Equal(t, "tege", r.Strict)
}

func TestHealthAndUnknownAction(t *testing.T) {
	_, responses := run(t, 0,
		Request{ID: "h1", Action: ActionHealth},
		Request{ID: "u1", Action: "reload"},
	)

	h := responses["h1"]
	assert.Equal(t, StatusOK, h.Status)
	assert.Equal(t, int64(1), h.Requests)
	assert.Equal(t, 5, h.Stats["entries"])

	u := responses["u1"]
	assert.Equal(t, StatusError, u.Status)
	assert.Contains(t, u.Error, "reload")
}

func TestInvalidInput(t *testing.T) {
	d := dictionary.New(testEntries)
	engine, err := search.NewEngine(d, search.DefaultOptions(), 0)
	require.NoError(t, err)

	var out bytes.Buffer
	s := NewServerWithIO(engine, nil, Options{}, bytes.NewReader([]byte{0xc1}), &out)
	assert.Error(t, s.Start())

	dec := msgpack.NewDecoder(&out)
	var ready, failure response
	require.NoError(t, dec.Decode(&ready))
	require.NoError(t, dec.Decode(&failure))
	assert.Equal(t, StatusError, failure.Status)
}
