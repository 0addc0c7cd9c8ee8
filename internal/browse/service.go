package browse

import (
	"context"

	"github.com/FlorianMayr1208/present-picker/internal/catalog"
	"github.com/FlorianMayr1208/present-picker/internal/selection"
)

// Service glues catalog snapshots to the pure selection engine. All
// state lives in the catalog service; everything here is a single
// snapshot-in, view-out pass.
type Service struct {
	catalog *catalog.Service
}

func NewService(catalogService *catalog.Service) *Service {
	return &Service{catalog: catalogService}
}

// DestinationView is the detail payload for one destination. In
// slider mode Activities is the filtered view; in checkbox mode it is
// the full catalog with selection flags intact.
type DestinationView struct {
	Destination catalog.Destination   `json:"destination"`
	Activities  []catalog.Activity    `json:"activities"`
	SliderValue int                   `json:"slider_value"`
	SliderMax   int                   `json:"slider_max"`
	Mode        catalog.SelectionMode `json:"selection_mode"`
}

// SelectionSummary is a priced selection plus the budget verdict.
// The budget is reported, never enforced.
type SelectionSummary struct {
	Destination  string               `json:"destination"`
	LineItems    []selection.LineItem `json:"line_items"`
	TotalPoints  int                  `json:"total_points"`
	PointsBudget int                  `json:"points_budget"`
	WithinBudget bool                 `json:"within_budget"`
}

func (s *Service) ListDestinations(ctx context.Context) ([]catalog.Destination, error) {
	return s.catalog.ListDestinations(ctx)
}

func (s *Service) DestinationView(ctx context.Context, destinationID, slider int) (*DestinationView, error) {
	dest, acts, err := s.catalog.Snapshot(ctx, destinationID)
	if err != nil {
		return nil, err
	}

	view := &DestinationView{
		Destination: *dest,
		SliderValue: slider,
		SliderMax:   s.catalog.SliderMax(),
		Mode:        dest.SelectionMode,
	}

	if dest.SelectionMode == catalog.ModeCheckboxes {
		view.Activities = selection.UnfilteredCatalog(*dest, acts)
	} else {
		view.Activities = selection.FilterBySlider(*dest, acts, slider)
	}
	return view, nil
}

func (s *Service) ActivitiesByLevel(ctx context.Context, destinationID, slider int) ([]catalog.Activity, error) {
	dest, acts, err := s.catalog.Snapshot(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	return selection.FilterBySlider(*dest, acts, slider), nil
}

func (s *Service) GiftListings(ctx context.Context, destinationID int) (parents, friends []selection.GiftItem, err error) {
	dest, acts, err := s.catalog.Snapshot(ctx, destinationID)
	if err != nil {
		return nil, nil, err
	}
	parents, friends = selection.GiftListings(*dest, acts)
	return parents, friends, nil
}

func (s *Service) PriceSelection(ctx context.Context, destinationID int, entries []selection.Entry, strict bool) (*SelectionSummary, error) {
	dest, acts, err := s.catalog.Snapshot(ctx, destinationID)
	if err != nil {
		return nil, err
	}

	if strict {
		if err := selection.ValidateSelection(acts, entries); err != nil {
			return nil, err
		}
	}

	items, total := selection.AssembleSelection(acts, entries)
	return &SelectionSummary{
		Destination:  dest.Name,
		LineItems:    items,
		TotalPoints:  total,
		PointsBudget: dest.PointsBudget,
		WithinBudget: dest.PointsBudget == 0 || total <= dest.PointsBudget,
	}, nil
}

func (s *Service) RenderPrintView(ctx context.Context, destinationID int, entries []selection.Entry) (string, error) {
	summary, err := s.PriceSelection(ctx, destinationID, entries, false)
	if err != nil {
		return "", err
	}
	return renderPrintHTML(summary)
}
