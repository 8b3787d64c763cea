package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

// Snapshot is one owner's dashboard view: businesses, their products and
// orders, and the customers referenced by those orders.
type Snapshot struct {
	Businesses []model.Business `json:"businesses"`
	Products   []model.Product  `json:"products"`
	Orders     []model.Order    `json:"orders"`
	Profiles   []model.Profile  `json:"profiles"`
	Loading    bool             `json:"loading"`
	Error      string           `json:"error,omitempty"`
}

// Set groups the four containers of a dashboard. Publish and Fail overwrite all
// four under one lock so readers never observe a mix of two loads.
type Set struct {
	mu         sync.Mutex
	Businesses *BusinessStore
	Products   *ProductStore
	Orders     *OrderStore
	Profiles   *ProfileStore
}

func NewSet() *Set {
	return &Set{
		Businesses: &BusinessStore{},
		Products:   &ProductStore{},
		Orders:     &OrderStore{},
		Profiles:   &ProfileStore{},
	}
}

// Begin marks every container loading and discards stale data.
func (s *Set) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setLoading(true)
	s.Businesses.Clear()
	s.Products.Clear()
	s.Orders.Clear()
	s.Profiles.Clear()
}

func (s *Set) Publish(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.write(snapshot)
	s.setError("")
}

// Fail publishes what was loaded before the failure and the same message on
// every container.
func (s *Set) Fail(partial Snapshot, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.write(partial)
	s.setError(message)
}

func (s *Set) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setLoading(false)
}

func (s *Set) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Businesses: s.Businesses.Items(),
		Products:   s.Products.Items(),
		Orders:     s.Orders.Items(),
		Profiles:   s.Profiles.Profiles(),
		Loading:    s.Businesses.Loading(),
		Error:      s.Businesses.Error(),
	}
}

func (s *Set) write(snapshot Snapshot) {
	writeContainer(s.Businesses, snapshot.Businesses)
	writeContainer(s.Products, snapshot.Products)
	writeContainer(s.Orders, snapshot.Orders)
	if snapshot.Profiles == nil {
		s.Profiles.Clear()
	} else {
		s.Profiles.SetProfiles(snapshot.Profiles)
	}
}

func writeContainer[T any](c *Container[T], items []T) {
	if items == nil {
		c.Clear()
		return
	}
	c.Set(items)
}

func (s *Set) setLoading(loading bool) {
	s.Businesses.SetLoading(loading)
	s.Products.SetLoading(loading)
	s.Orders.SetLoading(loading)
	s.Profiles.SetLoading(loading)
}

func (s *Set) setError(message string) {
	s.Businesses.SetError(message)
	s.Products.SetError(message)
	s.Orders.SetError(message)
	s.Profiles.SetError(message)
}

// Registry owns one Set per business owner.
type Registry struct {
	mu   sync.Mutex
	sets map[uuid.UUID]*Set
}

func NewRegistry() *Registry {
	return &Registry{sets: make(map[uuid.UUID]*Set)}
}

func (r *Registry) ForOwner(ownerID uuid.UUID) *Set {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.sets[ownerID]
	if !ok {
		set = NewSet()
		r.sets[ownerID] = set
	}
	return set
}

func (r *Registry) Forget(ownerID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets, ownerID)
}
