package catalog

import (
	"context"
	"errors"
	"testing"
)

func newTestService() *Service {
	return NewService(NewInMemoryRepository(), 5)
}

func seedDestination(t *testing.T, s *Service) *Destination {
	t.Helper()
	d := &Destination{
		Name:          "Vienna",
		SelectionMode: ModeSlider,
		PointsBudget:  100,
	}
	if err := s.CreateDestination(context.Background(), d); err != nil {
		t.Fatalf("seed destination: %v", err)
	}
	return d
}

func seedActivity(t *testing.T, s *Service, destID int) *Activity {
	t.Helper()
	a := &Activity{
		DestinationID: destID,
		Title:         "Museum",
		Levels:        LevelRange{Min: 1, Max: 3},
		SubItems: []SubItem{
			{Title: "Guided tour", Points: 10},
			{Title: "Audio guide", Points: 5},
		},
	}
	if err := s.CreateActivity(context.Background(), a); err != nil {
		t.Fatalf("seed activity: %v", err)
	}
	return a
}

func TestCreateDestinationAssignsID(t *testing.T) {
	s := newTestService()

	d := seedDestination(t, s)
	if d.ID == 0 {
		t.Fatalf("expected assigned id, got 0")
	}

	got, err := s.GetDestination(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Vienna" {
		t.Errorf("expected Vienna, got %q", got.Name)
	}
}

func TestCreateDestinationValidation(t *testing.T) {
	s := newTestService()

	cases := []struct {
		name string
		dest Destination
	}{
		{"missing name", Destination{SelectionMode: ModeSlider}},
		{"bad mode", Destination{Name: "X", SelectionMode: "wheel"}},
		{"negative budget", Destination{Name: "X", SelectionMode: ModeCheckboxes, PointsBudget: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.CreateDestination(context.Background(), &tc.dest)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestCreateActivityUnknownDestination(t *testing.T) {
	s := newTestService()

	a := &Activity{DestinationID: 999, Title: "Museum"}
	err := s.CreateActivity(context.Background(), a)

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestCreateActivityRejectsOutOfBoundsLevels(t *testing.T) {
	s := newTestService()
	d := seedDestination(t, s)

	a := &Activity{
		DestinationID: d.ID,
		Title:         "Museum",
		Levels:        LevelRange{Min: 2, Max: 9},
	}
	err := s.CreateActivity(context.Background(), a)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateActivityRejectsInvertedRange(t *testing.T) {
	s := newTestService()
	d := seedDestination(t, s)

	a := &Activity{
		DestinationID: d.ID,
		Title:         "Museum",
		Levels:        LevelRange{Min: 4, Max: 2},
	}
	err := s.CreateActivity(context.Background(), a)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSubItemIDsScopedToActivity(t *testing.T) {
	s := newTestService()
	d := seedDestination(t, s)

	a1 := seedActivity(t, s, d.ID)
	a2 := seedActivity(t, s, d.ID)

	got1, _ := s.GetActivity(context.Background(), a1.ID)
	got2, _ := s.GetActivity(context.Background(), a2.ID)

	// both activities number their sub-items from 1
	if got1.SubItems[0].ID != 1 || got2.SubItems[0].ID != 1 {
		t.Errorf("expected sub-item numbering to restart per activity, got %d and %d",
			got1.SubItems[0].ID, got2.SubItems[0].ID)
	}

	item := &SubItem{Title: "Night ticket", Points: 20}
	if err := s.CreateSubItem(context.Background(), a1.ID, item); err != nil {
		t.Fatalf("create sub-item: %v", err)
	}
	if item.ID != 3 {
		t.Errorf("expected next id 3, got %d", item.ID)
	}
}

func TestMixedSubItemIDsNeverCollide(t *testing.T) {
	s := newTestService()
	d := seedDestination(t, s)

	a := &Activity{
		DestinationID: d.ID,
		Title:         "Museum",
		Levels:        LevelRange{Min: 0, Max: 5},
		SubItems: []SubItem{
			{Title: "Guided tour", Points: 10},
			{ID: 2, Title: "Audio guide", Points: 5},
			{Title: "Night ticket", Points: 20},
		},
	}
	if err := s.CreateActivity(context.Background(), a); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.GetActivity(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	seen := map[int]bool{}
	for _, item := range got.SubItems {
		if item.ID == 0 {
			t.Errorf("sub-item %q was never assigned an id", item.Title)
		}
		if seen[item.ID] {
			t.Errorf("duplicate sub-item id %d", item.ID)
		}
		seen[item.ID] = true
	}
	// default ids continue past the explicit 2
	if !seen[3] || !seen[4] {
		t.Errorf("expected default ids 3 and 4 after the explicit 2, got %+v", got.SubItems)
	}
}

func TestDeleteDestinationCascades(t *testing.T) {
	s := newTestService()
	d := seedDestination(t, s)
	a := seedActivity(t, s, d.ID)

	if err := s.DeleteDestination(context.Background(), d.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err := s.GetActivity(context.Background(), a.ID)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected activity gone with destination, got %v", err)
	}
}

func TestUpdateSubItemMissing(t *testing.T) {
	s := newTestService()
	d := seedDestination(t, s)
	a := seedActivity(t, s, d.ID)

	err := s.UpdateSubItem(context.Background(), a.ID, &SubItem{ID: 99, Title: "X"})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestReplaceCatalogRejectsDanglingActivity(t *testing.T) {
	s := newTestService()
	d := seedDestination(t, s)
	seedActivity(t, s, d.ID)

	dests := []Destination{{ID: 1, Name: "Rome", SelectionMode: ModeCheckboxes}}
	acts := []Activity{{ID: 1, DestinationID: 42, Title: "Colosseum"}}

	err := s.ReplaceCatalog(context.Background(), dests, acts)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for dangling destination ref, got %v", err)
	}

	// the old catalog must survive a rejected batch
	got, err := s.ListDestinations(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Vienna" {
		t.Errorf("expected original catalog intact, got %+v", got)
	}
}

func TestReplaceCatalogSwapsWhole(t *testing.T) {
	s := newTestService()
	d := seedDestination(t, s)
	seedActivity(t, s, d.ID)

	dests := []Destination{{ID: 7, Name: "Rome", SelectionMode: ModeCheckboxes}}
	acts := []Activity{{
		ID:            3,
		DestinationID: 7,
		Title:         "Colosseum",
		Levels:        LevelRange{Min: 0, Max: 5},
	}}

	if err := s.ReplaceCatalog(context.Background(), dests, acts); err != nil {
		t.Fatalf("replace: %v", err)
	}

	gotDests, gotActs, err := s.ExportCatalog(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(gotDests) != 1 || gotDests[0].Name != "Rome" {
		t.Errorf("expected only the new destination, got %+v", gotDests)
	}
	if len(gotActs) != 1 || gotActs[0].Title != "Colosseum" {
		t.Errorf("expected only the new activity, got %+v", gotActs)
	}
}
