/*
Package dictionary loads the glossary dataset and serves read-only views of it.

The dataset is a flat list of headwords, each given in Cyrillic and in
traditional Mongolian script. It is read once at start-up and never mutated
afterwards, so a *Dictionary and the slices it returns can be shared by any
number of concurrent searches.

Two on-disk formats are understood:

	data.json      [{"tolgoi_ug": "тамир", "tolgoi_ug_hudam": "ᠲᠠᠮᠢᠷ"}, ...]
	data.msgpack   snapshot produced by Convert

Headwords are NFC-normalized and trimmed on load.
*/
package dictionary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/unicode/norm"
)

// snapshotVersion is bumped whenever the msgpack layout changes.
const snapshotVersion = 1

// Entry is one glossary record.
type Entry struct {
	Cyrillic    string `json:"tolgoi_ug" msgpack:"c"`
	Traditional string `json:"tolgoi_ug_hudam" msgpack:"t"`
}

// snapshot is the msgpack file layout.
type snapshot struct {
	Version int     `msgpack:"v"`
	Entries []Entry `msgpack:"e"`
}

// Dictionary holds the loaded dataset.
type Dictionary struct {
	entries []Entry
	skipped int
	source  string
	format  FileFormat
}

// Stats describes a loaded dictionary.
type Stats struct {
	Entries int
	Skipped int
	Source  string
	Format  string
}

// New wraps an in-memory dataset. Entries are cleaned the same way as on load.
func New(entries []Entry) *Dictionary {
	clean, skipped := cleanEntries(entries)
	return &Dictionary{entries: clean, skipped: skipped, source: "memory"}
}

// Load reads a dataset file, detecting its format from the extension.
func Load(path string) (*Dictionary, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	var raw []Entry
	switch format {
	case FormatJSON:
		raw, err = decodeJSON(data)
	case FormatMsgpack:
		raw, err = decodeMsgpack(data)
	default:
		err = fmt.Errorf("unsupported format %v", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s: %w", path, err)
	}

	entries, skipped := cleanEntries(raw)
	if skipped > 0 {
		log.Warnf("Skipped %d empty entries in %s", skipped, path)
	}
	log.Debugf("Loaded %d entries from %s (%s)", len(entries), path, format)

	return &Dictionary{
		entries: entries,
		skipped: skipped,
		source:  path,
		format:  format,
	}, nil
}

func decodeJSON(data []byte) ([]Entry, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	var out []Entry
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeMsgpack(data []byte) ([]Entry, error) {
	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, expected %d", snap.Version, snapshotVersion)
	}
	return snap.Entries, nil
}

// cleanEntries NFC-normalizes and trims headwords and drops records that
// have neither headword. It returns the kept entries and the drop count.
func cleanEntries(raw []Entry) ([]Entry, int) {
	out := make([]Entry, 0, len(raw))
	for _, e := range raw {
		e.Cyrillic = norm.NFC.String(strings.TrimSpace(e.Cyrillic))
		e.Traditional = norm.NFC.String(strings.TrimSpace(e.Traditional))
		if e.Cyrillic == "" && e.Traditional == "" {
			continue
		}
		out = append(out, e)
	}
	return out, len(raw) - len(out)
}

// Convert loads the dataset at src and writes it to dst as a msgpack snapshot.
func Convert(src, dst string) (int, error) {
	d, err := Load(src)
	if err != nil {
		return 0, err
	}

	data, err := msgpack.Marshal(snapshot{Version: snapshotVersion, Entries: d.entries})
	if err != nil {
		return 0, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write snapshot %s: %w", dst, err)
	}

	log.Debugf("Wrote %d entries to %s", len(d.entries), dst)
	return len(d.entries), nil
}

// Entries returns the dataset in file order. The slice is shared and must
// not be modified.
func (d *Dictionary) Entries() []Entry {
	return d.entries
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// GetStats returns a summary of the loaded dataset.
func (d *Dictionary) GetStats() Stats {
	return Stats{
		Entries: len(d.entries),
		Skipped: d.skipped,
		Source:  d.source,
		Format:  d.format.String(),
	}
}
