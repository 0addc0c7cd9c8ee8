package catalog

import (
	"context"
	"fmt"
)

// Service wraps the repository with write-time validation. Reads hand
// out immutable snapshots for the selection engine; the engine never
// reaches back into storage.
type Service struct {
	repo      Repository
	sliderMax int
}

func NewService(repo Repository, sliderMax int) *Service {
	return &Service{repo: repo, sliderMax: sliderMax}
}

// SliderMax is the configured upper slider bound (levels run 0..max).
func (s *Service) SliderMax() int {
	return s.sliderMax
}

// Snapshot returns a destination together with its full activity
// list, the unit of input every engine call works on.
func (s *Service) Snapshot(ctx context.Context, destinationID int) (*Destination, []Activity, error) {
	dest, err := s.repo.GetDestination(ctx, destinationID)
	if err != nil {
		return nil, nil, err
	}
	acts, err := s.repo.ListActivities(ctx, destinationID)
	if err != nil {
		return nil, nil, err
	}
	return dest, acts, nil
}

// --------------------------------------------------
// Destinations
// --------------------------------------------------

func (s *Service) ListDestinations(ctx context.Context) ([]Destination, error) {
	return s.repo.ListDestinations(ctx)
}

func (s *Service) GetDestination(ctx context.Context, id int) (*Destination, error) {
	return s.repo.GetDestination(ctx, id)
}

func (s *Service) CreateDestination(ctx context.Context, d *Destination) error {
	if err := s.validateDestination(d); err != nil {
		return err
	}
	return s.repo.CreateDestination(ctx, d)
}

func (s *Service) UpdateDestination(ctx context.Context, d *Destination) error {
	if err := s.validateDestination(d); err != nil {
		return err
	}
	return s.repo.UpdateDestination(ctx, d)
}

func (s *Service) DeleteDestination(ctx context.Context, id int) error {
	return s.repo.DeleteDestination(ctx, id)
}

// --------------------------------------------------
// Activities
// --------------------------------------------------

func (s *Service) GetActivity(ctx context.Context, id int) (*Activity, error) {
	return s.repo.GetActivity(ctx, id)
}

func (s *Service) CreateActivity(ctx context.Context, a *Activity) error {
	if err := s.validateActivity(a); err != nil {
		return err
	}
	if _, err := s.repo.GetDestination(ctx, a.DestinationID); err != nil {
		return err
	}
	return s.repo.CreateActivity(ctx, a)
}

func (s *Service) UpdateActivity(ctx context.Context, a *Activity) error {
	if err := s.validateActivity(a); err != nil {
		return err
	}
	return s.repo.UpdateActivity(ctx, a)
}

func (s *Service) DeleteActivity(ctx context.Context, id int) error {
	// sub-items go with their category
	return s.repo.DeleteActivity(ctx, id)
}

// --------------------------------------------------
// Sub-items
// --------------------------------------------------

func (s *Service) CreateSubItem(ctx context.Context, activityID int, item *SubItem) error {
	if err := s.validateSubItem(item); err != nil {
		return err
	}
	return s.repo.CreateSubItem(ctx, activityID, item)
}

func (s *Service) UpdateSubItem(ctx context.Context, activityID int, item *SubItem) error {
	if err := s.validateSubItem(item); err != nil {
		return err
	}
	return s.repo.UpdateSubItem(ctx, activityID, item)
}

func (s *Service) DeleteSubItem(ctx context.Context, activityID, subItemID int) error {
	return s.repo.DeleteSubItem(ctx, activityID, subItemID)
}

// --------------------------------------------------
// Bulk import/export
// --------------------------------------------------

func (s *Service) ExportCatalog(ctx context.Context) ([]Destination, []Activity, error) {
	return s.repo.ExportAll(ctx)
}

// ReplaceCatalog validates an imported batch and swaps it in whole.
// Any bad record rejects the entire batch; nothing is partially
// committed.
func (s *Service) ReplaceCatalog(ctx context.Context, dests []Destination, acts []Activity) error {
	destIDs := map[int]bool{}
	for i := range dests {
		if err := s.validateDestination(&dests[i]); err != nil {
			return fmt.Errorf("destination %q: %w", dests[i].Name, err)
		}
		destIDs[dests[i].ID] = true
	}
	for i := range acts {
		if err := s.validateActivity(&acts[i]); err != nil {
			return fmt.Errorf("activity %q: %w", acts[i].Title, err)
		}
		if !destIDs[acts[i].DestinationID] {
			return &NotFoundError{Kind: "destination", ID: acts[i].DestinationID}
		}
	}
	return s.repo.ReplaceAll(ctx, dests, acts)
}

// --------------------------------------------------
// Validation (admin/import boundary only; already-stored bad data
// degrades to "no match" in the engine instead)
// --------------------------------------------------

func (s *Service) validateDestination(d *Destination) error {
	if d.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	switch d.SelectionMode {
	case ModeSlider, ModeCheckboxes:
	default:
		return &ValidationError{
			Field:  "selection_mode",
			Reason: fmt.Sprintf("must be %q or %q", ModeSlider, ModeCheckboxes),
		}
	}
	if d.PointsBudget < 0 {
		return &ValidationError{Field: "points_budget", Reason: "must not be negative"}
	}
	return nil
}

func (s *Service) validateActivity(a *Activity) error {
	if a.Title == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if err := s.validateRange(a.Levels); err != nil {
		return err
	}
	for i := range a.SubItems {
		if err := s.validateSubItem(&a.SubItems[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) validateSubItem(item *SubItem) error {
	if item.Title == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if item.Points < 0 {
		return &ValidationError{Field: "points", Reason: "must not be negative"}
	}
	if item.Levels != nil {
		return s.validateRange(*item.Levels)
	}
	return nil
}

func (s *Service) validateRange(r LevelRange) error {
	if r.Min < 0 || r.Max > s.sliderMax {
		return &ValidationError{
			Field:  "slider_level",
			Reason: fmt.Sprintf("levels must lie between 0 and %d", s.sliderMax),
		}
	}
	if r.Min > r.Max {
		return &ValidationError{Field: "slider_level", Reason: "min must not exceed max"}
	}
	return nil
}
