package store

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

// ProfileStore keys profiles by id. SetProfiles replaces the cache, MergeProfiles
// adds to it.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]model.Profile
	loading  bool
	err      string
}

func (s *ProfileStore) SetProfiles(profiles []model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles = make(map[uuid.UUID]model.Profile, len(profiles))
	for _, p := range profiles {
		s.profiles[p.ID] = p
	}
}

func (s *ProfileStore) MergeProfiles(profiles map[uuid.UUID]model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profiles == nil {
		s.profiles = make(map[uuid.UUID]model.Profile, len(profiles))
	}
	for id, p := range profiles {
		s.profiles[id] = p
	}
}

// Profiles returns the cached profiles ordered by id, nil before the first load.
func (s *ProfileStore) Profiles() []model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.profiles == nil {
		return nil
	}
	result := make([]model.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID.String() < result[j].ID.String()
	})
	return result
}

func (s *ProfileStore) Profile(id uuid.UUID) (model.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	return p, ok
}

// Missing returns the distinct ids absent from the cache, in request order.
func (s *ProfileStore) Missing(ids []uuid.UUID) []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[uuid.UUID]struct{}, len(ids))
	var missing []uuid.UUID
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, cached := s.profiles[id]; !cached {
			missing = append(missing, id)
		}
	}
	return missing
}

// Forget drops one cached profile so the next fetch reloads it.
func (s *ProfileStore) Forget(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, id)
}

func (s *ProfileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles = nil
	s.err = ""
}

func (s *ProfileStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *ProfileStore) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

func (s *ProfileStore) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *ProfileStore) SetError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = message
}
