package store

import (
	"slices"
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path          string     `json:"path"`
	Pattern       string     `json:"pattern"`
	Formats       []string   `json:"formats"`
	Languages     []string   `json:"languages"`
	WatcherActive bool       `json:"watcher_active"`
	LastEvent     *time.Time `json:"last_event,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	formats := make([]string, 0, len(s.config.Formats))
	for ext := range s.config.Formats {
		formats = append(formats, ext)
	}
	slices.Sort(formats)

	return StoreState{
		Path:          s.Path,
		Pattern:       s.config.Pattern,
		Formats:       formats,
		Languages:     s.config.Languages.All(),
		WatcherActive: s.watcherActive,
		LastEvent:     s.lastEvent,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "notebook-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

func (s *Store) recordEvent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastEvent = &now
}
