// Package catalog presents a directory of source files as a memoized, keyed
// collection of parsed metadata records.
//
// A store maps each file in its folder to a key (basename minus extension)
// and parses files lazily through an injected extraction function. A record,
// once parsed, is cached for the rest of the session; rescans update the
// key→file map but never invalidate already-parsed records.
package catalog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	"golang.org/x/sync/singleflight"

	"github.com/seisflow/seisflow/internal/seiserr"
)

// Extractor parses one source file into values matched positionally to the
// store's index. Warnings report optional fields that were defaulted; a
// non-nil error means the file is unusable and nothing is cached.
type Extractor func(path string) (values []any, warnings []string, err error)

// WarnFunc receives non-fatal advisory warnings raised during extraction.
type WarnFunc func(key, msg string)

// Store manages one source directory.
type Store struct {
	folder  string
	ext     string // file extension without the dot, e.g. "toml"
	kind    string // noun used in not-found errors, e.g. "event"
	index   []string
	extract Extractor
	warn    WarnFunc
	ignore  []glob.Glob

	mu        sync.Mutex
	keyToPath map[string]string
	records   map[string]*Record

	group singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithWarnFunc replaces the default log.Printf warning sink.
func WithWarnFunc(fn WarnFunc) Option {
	return func(s *Store) { s.warn = fn }
}

// WithIgnore adds glob patterns (matched against the bare filename) that
// Scan skips, e.g. "*_backup.toml".
func WithIgnore(patterns ...string) Option {
	return func(s *Store) {
		for _, p := range patterns {
			s.ignore = append(s.ignore, glob.MustCompile(p))
		}
	}
}

// NewStore creates a store over folder for files named <key>.<ext>. The
// index declares the ordered field list every record exposes; extract must
// return exactly one value per index field.
func NewStore(folder, ext, kind string, index []string, extract Extractor, opts ...Option) *Store {
	s := &Store{
		folder:  folder,
		ext:     strings.TrimPrefix(ext, "."),
		kind:    kind,
		index:   index,
		extract: extract,
		warn: func(key, msg string) {
			log.Printf("warning: %s %q: %s", kind, key, msg)
		},
		keyToPath: make(map[string]string),
		records:   make(map[string]*Record),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Folder returns the source directory this store manages.
func (s *Store) Folder() string { return s.folder }

// Index returns the declared field list.
func (s *Store) Index() []string {
	out := make([]string, len(s.index))
	copy(out, s.index)
	return out
}

// Scan lists the source files currently in the folder and replaces the
// key→file map wholesale. Already-cached records are untouched, even for
// keys that disappeared. Safe to call repeatedly; cost is one directory
// listing, no parsing.
func (s *Store) Scan() error {
	entries, err := os.ReadDir(s.folder)
	if err != nil {
		return fmt.Errorf("scanning %s folder: %w", s.kind, err)
	}

	suffix := "." + s.ext
	found := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, suffix) {
			continue
		}
		if s.ignored(name) {
			continue
		}
		key := strings.TrimSuffix(name, suffix)
		found[key] = filepath.Join(s.folder, name)
	}

	s.mu.Lock()
	s.keyToPath = found
	s.mu.Unlock()
	return nil
}

func (s *Store) ignored(name string) bool {
	for _, g := range s.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Count returns the number of keys known from the last Scan. This reflects
// what exists on disk, not how many records have been parsed.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keyToPath)
}

// Has reports whether ref's key was present at the last Scan.
func (s *Store) Has(ref Ref) bool {
	key := ref.recordKey()
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keyToPath[key]
	return ok
}

// Get returns the record for ref, parsing its source file on first access.
// The extraction function runs exactly once per key per session, even under
// concurrent callers; a failed extraction is not cached and a later Get
// retries. Keys absent from the last Scan return a NotFoundError even when
// an older record is still cached.
func (s *Store) Get(ref Ref) (*Record, error) {
	key := ref.recordKey()

	s.mu.Lock()
	path, ok := s.keyToPath[key]
	if !ok {
		s.mu.Unlock()
		return nil, &seiserr.NotFoundError{Kind: s.kind, Name: key}
	}
	if rec, ok := s.records[key]; ok {
		s.mu.Unlock()
		return rec, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do(key, func() (any, error) {
		// A concurrent caller may have completed the parse between our
		// cache check and joining the flight.
		s.mu.Lock()
		if rec, ok := s.records[key]; ok {
			s.mu.Unlock()
			return rec, nil
		}
		s.mu.Unlock()

		values, warnings, err := s.extract(path)
		if err != nil {
			return nil, err
		}
		if len(values) != len(s.index) {
			return nil, &seiserr.MalformedSourceError{
				Path:   path,
				Reason: fmt.Sprintf("extractor returned %d values for %d index fields", len(values), len(s.index)),
			}
		}
		rec := &Record{
			key:    key,
			fields: s.index,
			values: make(map[string]any, len(s.index)),
		}
		for i, field := range s.index {
			rec.values[field] = values[i]
		}
		for _, w := range warnings {
			s.warn(key, w)
		}

		s.mu.Lock()
		s.records[key] = rec
		s.mu.Unlock()
		return rec, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Record), nil
}

// Keys returns the keys known from the last Scan in ascending lexical
// order, without parsing anything.
func (s *Store) Keys() []string {
	s.mu.Lock()
	keys := make([]string, 0, len(s.keyToPath))
	for key := range s.keyToPath {
		keys = append(keys, key)
	}
	s.mu.Unlock()
	sort.Strings(keys)
	return keys
}

// ListAll rescans the folder, parses every known key, and returns the keys
// in ascending lexical order. After ListAll the cache is warm for every
// file currently on disk.
func (s *Store) ListAll() ([]string, error) {
	if err := s.Scan(); err != nil {
		return nil, err
	}

	keys := s.Keys()
	for _, key := range keys {
		if _, err := s.Get(Key(key)); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// GetAll warms the cache like ListAll and returns an independent copy of
// the full key→record mapping. Mutating the returned records cannot affect
// cached state.
func (s *Store) GetAll() (map[string]*Record, error) {
	keys, err := s.ListAll()
	if err != nil {
		return nil, err
	}

	out := make(map[string]*Record, len(keys))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		if rec, ok := s.records[key]; ok {
			out[key] = rec.clone()
		}
	}
	return out, nil
}
