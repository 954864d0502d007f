package session

import (
	"sync"

	"github.com/thechupa55/CP/internal/model"
	"github.com/thechupa55/CP/internal/service/cache"
	"github.com/thechupa55/CP/internal/service/mapping"
)

// Session is the only process-wide mutable state: the currently loaded
// table per entity type, the mapping resolver, and the computation
// cache. All three are partitioned by file identity and reset in full —
// never merged, never patched — when a file is replaced.
type Session struct {
	mu       sync.RWMutex
	tables   map[model.Entity]*model.RawTable
	resolver *mapping.Resolver
	cache    *cache.Cache
}

// New creates an empty session.
func New() *Session {
	return &Session{
		tables:   make(map[model.Entity]*model.RawTable),
		resolver: mapping.NewResolver(),
		cache:    cache.New(),
	}
}

// SetTable installs a freshly loaded table for its entity type. Mapping
// state and cache entries tied to the entity's previous file identity
// are dropped before the new file's fields are resolved.
func (s *Session) SetTable(t *model.RawTable) *model.Mapping {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.tables[t.Entity]; ok {
		s.cache.InvalidateFile(prev.FileID)
	}
	s.tables[t.Entity] = t
	s.resolver.ResetForNewFile(t.Entity, t.FileID)
	return s.resolver.ResolveAll(t)
}

// Table returns the entity's loaded table, nil when none.
func (s *Session) Table(entity model.Entity) *model.RawTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tables[entity]
}

// Mapping returns the entity's current mapping, nil when no file is loaded.
func (s *Session) Mapping(entity model.Entity) *model.Mapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.Mapping(entity)
}

// Override records a user's explicit column choice and drops the file's
// cached computations, since the mapping snapshot they were keyed on is
// stale.
func (s *Session) Override(entity model.Entity, field model.LogicalField, column string) (*model.Mapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.resolver.Override(entity, field, column)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateFile(m.FileID)
	return m, nil
}

// Cache exposes the session's computation cache.
func (s *Session) Cache() *cache.Cache {
	return s.cache
}

// View is a consistent snapshot for one refresh: mapping resolution for
// everything loaded completes before any engine reads it.
type View struct {
	Child    *model.RawTable
	Adult    *model.RawTable
	ChildMap *model.Mapping
	AdultMap *model.Mapping
}

// Snapshot captures the current tables and mappings under one lock.
func (s *Session) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{
		Child:    s.tables[model.EntityChild],
		Adult:    s.tables[model.EntityAdult],
		ChildMap: s.resolver.Mapping(model.EntityChild),
		AdultMap: s.resolver.Mapping(model.EntityAdult),
	}
}
