package catalog

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository keeps the whole catalog in maps. It backs the
// JSON flat-file store mode and every service/handler test. Reads
// hand out copies so a snapshot given to the selection engine never
// aliases repository state.
type InMemoryRepository struct {
	mu           sync.RWMutex
	destinations map[int]Destination
	activities   map[int]Activity
	nextDestID   int
	nextActID    int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		destinations: make(map[int]Destination),
		activities:   make(map[int]Activity),
		nextDestID:   1,
		nextActID:    1,
	}
}

// --------------------------------------------------
// Destinations
// --------------------------------------------------

func (r *InMemoryRepository) ListDestinations(ctx context.Context) ([]Destination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Destination, 0, len(r.destinations))
	for _, d := range r.destinations {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) GetDestination(ctx context.Context, id int) (*Destination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.destinations[id]
	if !ok {
		return nil, &NotFoundError{Kind: "destination", ID: id}
	}
	return &d, nil
}

func (r *InMemoryRepository) CreateDestination(ctx context.Context, d *Destination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == 0 {
		d.ID = r.nextDestID
	}
	if d.ID >= r.nextDestID {
		r.nextDestID = d.ID + 1
	}
	r.destinations[d.ID] = *d
	return nil
}

func (r *InMemoryRepository) UpdateDestination(ctx context.Context, d *Destination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.destinations[d.ID]; !ok {
		return &NotFoundError{Kind: "destination", ID: d.ID}
	}
	r.destinations[d.ID] = *d
	return nil
}

func (r *InMemoryRepository) DeleteDestination(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.destinations[id]; !ok {
		return &NotFoundError{Kind: "destination", ID: id}
	}
	delete(r.destinations, id)
	for actID, a := range r.activities {
		if a.DestinationID == id {
			delete(r.activities, actID)
		}
	}
	return nil
}

// --------------------------------------------------
// Activities
// --------------------------------------------------

func (r *InMemoryRepository) ListActivities(ctx context.Context, destinationID int) ([]Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Activity{}
	for _, a := range r.activities {
		if a.DestinationID == destinationID {
			out = append(out, cloneActivity(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) GetActivity(ctx context.Context, id int) (*Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.activities[id]
	if !ok {
		return nil, &NotFoundError{Kind: "activity", ID: id}
	}
	c := cloneActivity(a)
	return &c, nil
}

func (r *InMemoryRepository) CreateActivity(ctx context.Context, a *Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.destinations[a.DestinationID]; !ok {
		return &NotFoundError{Kind: "destination", ID: a.DestinationID}
	}
	if a.ID == 0 {
		a.ID = r.nextActID
	}
	if a.ID >= r.nextActID {
		r.nextActID = a.ID + 1
	}
	assignSubItemIDs(a.SubItems)
	r.activities[a.ID] = cloneActivity(*a)
	return nil
}

func (r *InMemoryRepository) UpdateActivity(ctx context.Context, a *Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.activities[a.ID]
	if !ok {
		return &NotFoundError{Kind: "activity", ID: a.ID}
	}
	// Category edits never touch the sub-item list.
	updated := cloneActivity(*a)
	updated.SubItems = stored.SubItems
	r.activities[a.ID] = updated
	return nil
}

func (r *InMemoryRepository) DeleteActivity(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.activities[id]; !ok {
		return &NotFoundError{Kind: "activity", ID: id}
	}
	// Sub-items live inside the activity, so the cascade is implicit.
	delete(r.activities, id)
	return nil
}

// --------------------------------------------------
// Sub-items
// --------------------------------------------------

func (r *InMemoryRepository) CreateSubItem(ctx context.Context, activityID int, s *SubItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[activityID]
	if !ok {
		return &NotFoundError{Kind: "activity", ID: activityID}
	}
	if s.ID == 0 {
		next := 1
		for _, existing := range a.SubItems {
			if existing.ID >= next {
				next = existing.ID + 1
			}
		}
		s.ID = next
	}
	a.SubItems = append(a.SubItems, cloneSubItem(*s))
	r.activities[activityID] = a
	return nil
}

func (r *InMemoryRepository) UpdateSubItem(ctx context.Context, activityID int, s *SubItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[activityID]
	if !ok {
		return &NotFoundError{Kind: "activity", ID: activityID}
	}
	for i := range a.SubItems {
		if a.SubItems[i].ID == s.ID {
			a.SubItems[i] = cloneSubItem(*s)
			r.activities[activityID] = a
			return nil
		}
	}
	return &NotFoundError{Kind: "sub-item", ID: s.ID}
}

func (r *InMemoryRepository) DeleteSubItem(ctx context.Context, activityID, subItemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[activityID]
	if !ok {
		return &NotFoundError{Kind: "activity", ID: activityID}
	}
	for i := range a.SubItems {
		if a.SubItems[i].ID == subItemID {
			a.SubItems = append(a.SubItems[:i], a.SubItems[i+1:]...)
			r.activities[activityID] = a
			return nil
		}
	}
	return &NotFoundError{Kind: "sub-item", ID: subItemID}
}

// --------------------------------------------------
// Bulk import/export
// --------------------------------------------------

// ReplaceAll swaps the whole catalog atomically: the new state is
// staged first and only installed once every record checked out.
func (r *InMemoryRepository) ReplaceAll(ctx context.Context, dests []Destination, acts []Activity) error {
	staged := NewInMemoryRepository()
	for i := range dests {
		d := dests[i]
		if err := staged.CreateDestination(ctx, &d); err != nil {
			return err
		}
	}
	for i := range acts {
		a := cloneActivity(acts[i])
		if err := staged.CreateActivity(ctx, &a); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.destinations = staged.destinations
	r.activities = staged.activities
	r.nextDestID = staged.nextDestID
	r.nextActID = staged.nextActID
	return nil
}

func (r *InMemoryRepository) ExportAll(ctx context.Context) ([]Destination, []Activity, error) {
	dests, err := r.ListDestinations(ctx)
	if err != nil {
		return nil, nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	acts := make([]Activity, 0, len(r.activities))
	for _, a := range r.activities {
		acts = append(acts, cloneActivity(a))
	}
	sort.Slice(acts, func(i, j int) bool { return acts[i].ID < acts[j].ID })
	return dests, acts, nil
}

// --------------------------------------------------
// Copy helpers
// --------------------------------------------------

func cloneActivity(a Activity) Activity {
	c := a
	c.SubItems = make([]SubItem, len(a.SubItems))
	for i, s := range a.SubItems {
		c.SubItems[i] = cloneSubItem(s)
	}
	return c
}

func cloneSubItem(s SubItem) SubItem {
	c := s
	if s.Levels != nil {
		levels := *s.Levels
		c.Levels = &levels
	}
	return c
}
