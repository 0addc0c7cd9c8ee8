package browse

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/FlorianMayr1208/present-picker/internal/catalog"
	"github.com/FlorianMayr1208/present-picker/internal/selection"
)

func newTestService(t *testing.T, mode catalog.SelectionMode, budget int) (*Service, *catalog.Destination, *catalog.Activity) {
	t.Helper()

	catalogService := catalog.NewService(catalog.NewInMemoryRepository(), 5)

	dest := &catalog.Destination{
		Name:          "Vienna",
		SelectionMode: mode,
		PointsBudget:  budget,
	}
	if err := catalogService.CreateDestination(context.Background(), dest); err != nil {
		t.Fatalf("seed destination: %v", err)
	}

	act := &catalog.Activity{
		DestinationID: dest.ID,
		Title:         "Museum",
		Levels:        catalog.LevelRange{Min: 2, Max: 4},
		SubItems: []catalog.SubItem{
			{Title: "Guided tour", Points: 10},
			{Title: "Audio guide", Points: 5},
			{Title: "Birthday cake", Points: 20, FromParents: true},
		},
	}
	if err := catalogService.CreateActivity(context.Background(), act); err != nil {
		t.Fatalf("seed activity: %v", err)
	}

	return NewService(catalogService), dest, act
}

func TestDestinationViewSliderMode(t *testing.T) {
	s, dest, _ := newTestService(t, catalog.ModeSlider, 0)

	view, err := s.DestinationView(context.Background(), dest.ID, 3)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.Mode != catalog.ModeSlider {
		t.Errorf("expected slider mode, got %q", view.Mode)
	}
	if view.SliderMax != 5 {
		t.Errorf("expected slider max 5, got %d", view.SliderMax)
	}
	if len(view.Activities) != 1 {
		t.Fatalf("expected 1 activity at level 3, got %d", len(view.Activities))
	}
	for _, item := range view.Activities[0].SubItems {
		if item.FromParents {
			t.Errorf("gift item leaked into browsing view: %q", item.Title)
		}
	}

	// outside the activity's range the view is empty
	view, err = s.DestinationView(context.Background(), dest.ID, 0)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(view.Activities) != 0 {
		t.Errorf("expected no activities at level 0, got %d", len(view.Activities))
	}
}

func TestDestinationViewCheckboxMode(t *testing.T) {
	s, dest, _ := newTestService(t, catalog.ModeCheckboxes, 0)

	// slider value is irrelevant in checkbox mode
	view, err := s.DestinationView(context.Background(), dest.ID, 0)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(view.Activities) != 1 {
		t.Fatalf("expected full catalog, got %d activities", len(view.Activities))
	}
	if len(view.Activities[0].SubItems) != 3 {
		t.Errorf("expected all 3 sub-items including gifts, got %d", len(view.Activities[0].SubItems))
	}
}

func TestDestinationViewMissing(t *testing.T) {
	s, _, _ := newTestService(t, catalog.ModeSlider, 0)

	_, err := s.DestinationView(context.Background(), 999, 0)
	var nf *catalog.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestGiftListings(t *testing.T) {
	s, dest, _ := newTestService(t, catalog.ModeSlider, 0)

	parents, friends, err := s.GiftListings(context.Background(), dest.ID)
	if err != nil {
		t.Fatalf("gifts: %v", err)
	}
	if len(parents) != 1 || parents[0].Item.Title != "Birthday cake" {
		t.Errorf("expected the cake on the parents list, got %+v", parents)
	}
	if len(friends) != 0 {
		t.Errorf("expected empty friends list, got %+v", friends)
	}
}

func TestPriceSelectionBudget(t *testing.T) {
	s, dest, act := newTestService(t, catalog.ModeCheckboxes, 12)

	entries := []selection.Entry{
		{ActivityID: act.ID, SubItemID: 1},
		{ActivityID: act.ID, SubItemID: 2},
	}

	summary, err := s.PriceSelection(context.Background(), dest.ID, entries, false)
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if summary.TotalPoints != 15 {
		t.Errorf("expected total 15, got %d", summary.TotalPoints)
	}
	if summary.WithinBudget {
		t.Errorf("15 points against a budget of 12 should be over budget")
	}
	if summary.PointsBudget != 12 {
		t.Errorf("expected budget 12, got %d", summary.PointsBudget)
	}
}

func TestPriceSelectionZeroBudgetAlwaysWithin(t *testing.T) {
	s, dest, act := newTestService(t, catalog.ModeCheckboxes, 0)

	entries := []selection.Entry{{ActivityID: act.ID, SubItemID: 3}}

	summary, err := s.PriceSelection(context.Background(), dest.ID, entries, false)
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if !summary.WithinBudget {
		t.Errorf("no budget configured means never over budget")
	}
	if summary.TotalPoints != 20 {
		t.Errorf("gifts still count toward the total, got %d", summary.TotalPoints)
	}
}

func TestPriceSelectionStrict(t *testing.T) {
	s, dest, act := newTestService(t, catalog.ModeCheckboxes, 0)

	entries := []selection.Entry{
		{ActivityID: act.ID, SubItemID: 1},
		{ActivityID: act.ID, SubItemID: 99},
	}

	// lenient: the dangling ref is skipped
	summary, err := s.PriceSelection(context.Background(), dest.ID, entries, false)
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if summary.TotalPoints != 10 {
		t.Errorf("expected total 10 with the bad ref skipped, got %d", summary.TotalPoints)
	}

	// strict: the same selection is rejected
	_, err = s.PriceSelection(context.Background(), dest.ID, entries, true)
	var re *selection.ReferenceError
	if !errors.As(err, &re) {
		t.Fatalf("expected ReferenceError, got %v", err)
	}
}

func TestRenderPrintView(t *testing.T) {
	s, dest, act := newTestService(t, catalog.ModeCheckboxes, 50)

	entries := []selection.Entry{
		{ActivityID: act.ID, SubItemID: 1},
		{ActivityID: act.ID, SubItemID: 3, FromParents: true},
	}

	html, err := s.RenderPrintView(context.Background(), dest.ID, entries)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{"Vienna", "Museum", "Guided tour", "Geschenk der Eltern", "30"} {
		if !strings.Contains(html, want) {
			t.Errorf("print view missing %q", want)
		}
	}
}
