/*
Package server implements msgpack IPC for glossary lookups.

Clients write msgpack-encoded requests to stdin and read msgpack-encoded
responses from stdout. Messages are not delimited: each one is a single
msgpack map, decoded back to back from the stream.

Every request carries an ID, echoed in its response, and an action. A
request without an action is a search:

	{"id": "q1", "q": "тамир", "l": 20}

The search response lists the ranked hits in both scripts and both Latin
renderings:

	{"id": "q1", "status": "ok", "q": "тамир", "latin": false,
	 "h": [{"c": "тамир", "t": "ᠲᠠᠮᠢᠷ", "n": "damir", "s": "tamir", "r": 1}],
	 "c": 1, "t": 412}

Searches are debounced: while a search waits out the debounce window, a
newer search replaces it and the older one is answered with status
"superseded" and no hits. A search already running is cancelled the same
way.

Other actions are answered at once:

	{"id": "g1", "action": "glossary", "p": "там", "o": 0, "l": 50}
	{"id": "i1", "action": "initials"}
	{"id": "x1", "action": "translit", "text": "ᠮᠣᠩᠭᠣᠯ"}
	{"id": "h1", "action": "health"}

Failures are reported as {"id": ..., "status": "error", "e": message, "code": n}.
*/
package server

// Actions understood by the server.
const (
	ActionSearch   = "search"
	ActionGlossary = "glossary"
	ActionInitials = "initials"
	ActionTranslit = "translit"
	ActionHealth   = "health"
)

// Response statuses.
const (
	StatusReady      = "ready"
	StatusOK         = "ok"
	StatusSuperseded = "superseded"
	StatusError      = "error"
)

// Request is any client message. Fields not used by the action are ignored.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`

	// search
	Query       string `msgpack:"q,omitempty"`
	Limit       int    `msgpack:"l,omitempty"`
	MaxDistance *int   `msgpack:"d,omitempty"`
	Strict      *bool  `msgpack:"strict,omitempty"`

	// glossary, also uses Limit
	Prefix string `msgpack:"p,omitempty"`
	Offset int    `msgpack:"o,omitempty"`

	// translit
	Text string `msgpack:"text,omitempty"`
}

// Hit is one glossary entry as sent to clients
type Hit struct {
	Cyrillic    string `msgpack:"c"`
	Traditional string `msgpack:"t"`
	Latin       string `msgpack:"n"`
	LatinStrict string `msgpack:"s"`
	Rank        uint16 `msgpack:"r,omitempty"`
}

// SearchResponse answers a search
type SearchResponse struct {
	ID        string `msgpack:"id"`
	Status    string `msgpack:"status"`
	Query     string `msgpack:"q"`
	Latin     bool   `msgpack:"latin"`
	Hits      []Hit  `msgpack:"h"`
	Count     int    `msgpack:"c"`
	TimeTaken int64  `msgpack:"t"` // microseconds
}

// GlossaryResponse answers a glossary page request
type GlossaryResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Prefix string `msgpack:"p"`
	Words  []Hit  `msgpack:"w"`
	Offset int    `msgpack:"o"`
	Total  int    `msgpack:"total"`
}

// InitialsResponse lists the glossary initials in alphabetical order
type InitialsResponse struct {
	ID       string   `msgpack:"id"`
	Status   string   `msgpack:"status"`
	Initials []string `msgpack:"i"`
}

// TranslitResponse holds both romanizations of a text
type TranslitResponse struct {
	ID         string `msgpack:"id"`
	Status     string `msgpack:"status"`
	Text       string `msgpack:"text"`
	Normalized string `msgpack:"n"`
	Strict     string `msgpack:"s"`
}

// HealthResponse reports the server state; also sent with status "ready"
// once at start-up.
type HealthResponse struct {
	ID       string         `msgpack:"id,omitempty"`
	Status   string         `msgpack:"status"`
	Stats    map[string]int `msgpack:"stats"`
	Requests int64          `msgpack:"requests"`
}

// ErrorResponse reports a failed request
type ErrorResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Error  string `msgpack:"e"`
	Code   int    `msgpack:"code"`
}
