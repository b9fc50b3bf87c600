package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"
)

// JSONFile implements Storage backed by a flat JSON file mapping deal key
// to first-seen timestamp. There is a single logical writer, so no locking
// is needed; the whole file is rewritten on every mutation.
type JSONFile struct {
	path string
	seen map[string]time.Time
	log  *slog.Logger
}

// OpenJSONFile loads the cache at path. An absent or malformed file is
// treated as an empty cache; malformed content is logged.
func OpenJSONFile(path string, log *slog.Logger) *JSONFile {
	s := &JSONFile{
		path: path,
		seen: map[string]time.Time{},
		log:  log,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Error("read deal cache", "path", path, "error", err)
		}
		return s
	}

	var seen map[string]time.Time
	if err := json.Unmarshal(data, &seen); err != nil {
		log.Error("parse deal cache, starting empty", "path", path, "error", err)
		return s
	}
	if seen == nil {
		// A file containing JSON null decodes into a nil map without error.
		log.Error("parse deal cache, starting empty", "path", path, "error", "file contains null")
		return s
	}
	s.seen = seen
	return s
}

// IsPosted reports whether a deal key has already been announced.
func (s *JSONFile) IsPosted(key string) bool {
	_, ok := s.seen[key]
	return ok
}

// MarkPosted records a deal key with its first-seen time and persists.
func (s *JSONFile) MarkPosted(key string, firstSeen time.Time) error {
	if _, ok := s.seen[key]; ok {
		return nil
	}
	s.seen[key] = firstSeen.UTC()
	return s.save()
}

// Reset clears all recorded keys and persists the empty cache.
func (s *JSONFile) Reset() error {
	s.seen = map[string]time.Time{}
	return s.save()
}

// Len returns the number of recorded keys.
func (s *JSONFile) Len() int {
	return len(s.seen)
}

func (s *JSONFile) save() error {
	data, err := json.Marshal(s.seen)
	if err != nil {
		return fmt.Errorf("encode deal cache: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write deal cache: %w", err)
	}
	return nil
}
