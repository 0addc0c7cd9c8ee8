package selection

import (
	"reflect"
	"testing"

	"github.com/FlorianMayr1208/present-picker/internal/catalog"
)

// --------------------------------------------------
// Fixtures
// --------------------------------------------------

func sliderDest() catalog.Destination {
	return catalog.Destination{
		ID:            1,
		Name:          "Island - Feuer und Eis",
		SelectionMode: catalog.ModeSlider,
	}
}

func rng(min, max int) catalog.LevelRange {
	return catalog.LevelRange{Min: min, Max: max}
}

func testActivities() []catalog.Activity {
	return []catalog.Activity{
		{
			ID: 10, DestinationID: 1, Title: "City walk",
			Levels: rng(2, 4),
			SubItems: []catalog.SubItem{
				{ID: 1, Title: "Old town", Points: 10},
				{ID: 2, Title: "Harbour tour", Points: 25},
			},
		},
		{
			ID: 11, DestinationID: 1, Title: "Glacier hike",
			Levels: rng(0, 5),
			SubItems: []catalog.SubItem{
				{ID: 1, Title: "Ice cave", Points: 40,
					Levels: &catalog.LevelRange{Min: 3, Max: 5}},
				{ID: 2, Title: "Viewpoint", Points: 5},
			},
		},
		{
			ID: 12, DestinationID: 1, Title: "Spa day",
			Levels:   rng(0, 5),
			SubItems: []catalog.SubItem{},
		},
	}
}

// --------------------------------------------------
// Range filtering
// --------------------------------------------------

func TestFilterBySliderRangeBounds(t *testing.T) {
	dest := sliderDest()
	acts := []catalog.Activity{
		{ID: 10, DestinationID: 1, Title: "City walk", Levels: rng(2, 4)},
	}

	cases := []struct {
		slider int
		want   int
	}{
		{1, 0},
		{2, 1},
		{3, 1},
		{4, 1},
		{5, 0},
		{-3, 0},
		{100, 0},
	}

	for _, c := range cases {
		got := FilterBySlider(dest, acts, c.slider)
		if len(got) != c.want {
			t.Errorf("slider=%d: got %d activities, want %d", c.slider, len(got), c.want)
		}
	}
}

func TestFilterBySliderSortsByMinStable(t *testing.T) {
	dest := sliderDest()
	acts := []catalog.Activity{
		{ID: 1, DestinationID: 1, Title: "c", Levels: rng(3, 5)},
		{ID: 2, DestinationID: 1, Title: "a", Levels: rng(1, 5)},
		{ID: 3, DestinationID: 1, Title: "b1", Levels: rng(2, 5)},
		{ID: 4, DestinationID: 1, Title: "b2", Levels: rng(2, 5)},
	}

	got := FilterBySlider(dest, acts, 4)

	wantOrder := []int{2, 3, 4, 1}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d activities, want %d", len(got), len(wantOrder))
	}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d: got activity %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestFilterBySliderIdempotent(t *testing.T) {
	dest := sliderDest()
	acts := testActivities()

	first := FilterBySlider(dest, acts, 3)
	second := FilterBySlider(dest, acts, 3)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different outputs")
	}
}

func TestFilterBySliderSubItemOverrideRange(t *testing.T) {
	dest := sliderDest()
	acts := testActivities()

	// Glacier hike matches at every slider value, but "Ice cave"
	// carries its own [3,5] range.
	got := FilterBySlider(dest, acts, 1)

	var glacier *catalog.Activity
	for i := range got {
		if got[i].ID == 11 {
			glacier = &got[i]
		}
	}
	if glacier == nil {
		t.Fatal("glacier hike missing from result")
	}
	if len(glacier.SubItems) != 1 || glacier.SubItems[0].Title != "Viewpoint" {
		t.Fatalf("expected only Viewpoint at slider=1, got %+v", glacier.SubItems)
	}

	got = FilterBySlider(dest, acts, 4)
	for i := range got {
		if got[i].ID == 11 && len(got[i].SubItems) != 2 {
			t.Fatalf("expected both sub-items at slider=4, got %d", len(got[i].SubItems))
		}
	}
}

func TestFilterBySliderMalformedRangeMatchesNothing(t *testing.T) {
	dest := sliderDest()
	acts := []catalog.Activity{
		{ID: 1, DestinationID: 1, Levels: rng(4, 2)},
	}

	for v := -1; v <= 6; v++ {
		if got := FilterBySlider(dest, acts, v); len(got) != 0 {
			t.Fatalf("slider=%d: malformed range matched", v)
		}
	}
}

func TestFilterBySliderKeepsCategoryWithoutSubItems(t *testing.T) {
	dest := sliderDest()
	got := FilterBySlider(dest, testActivities(), 2)

	found := false
	for _, a := range got {
		if a.ID == 12 {
			found = true
		}
	}
	if !found {
		t.Fatal("sub-item-less category should stay visible when its range matches")
	}
}

func TestFilterBySliderIgnoresOtherDestinations(t *testing.T) {
	dest := sliderDest()
	acts := []catalog.Activity{
		{ID: 1, DestinationID: 2, Levels: rng(0, 5)},
	}
	if got := FilterBySlider(dest, acts, 3); len(got) != 0 {
		t.Fatal("activity of another destination leaked into result")
	}
}

// --------------------------------------------------
// Gift handling
// --------------------------------------------------

func TestGiftSubItemsNeverInBrowsingView(t *testing.T) {
	dest := sliderDest()
	acts := []catalog.Activity{
		{
			ID: 10, DestinationID: 1, Levels: rng(0, 5),
			SubItems: []catalog.SubItem{
				{ID: 1, Title: "Normal"},
				{ID: 2, Title: "Parents gift", FromParents: true},
				{ID: 3, Title: "Friends gift", FromFriends: true},
			},
		},
	}

	for v := 0; v <= 5; v++ {
		got := FilterBySlider(dest, acts, v)
		for _, a := range got {
			for _, s := range a.SubItems {
				if s.IsGift() {
					t.Fatalf("slider=%d: gift sub-item %q surfaced in browsing view", v, s.Title)
				}
			}
		}
	}
}

func TestEmptyCategorySuppression(t *testing.T) {
	dest := sliderDest()
	acts := []catalog.Activity{
		{
			ID: 10, DestinationID: 1, Levels: rng(0, 5),
			SubItems: []catalog.SubItem{
				{ID: 1, Title: "Only a gift", FromParents: true},
			},
		},
	}

	for v := 0; v <= 5; v++ {
		if got := FilterBySlider(dest, acts, v); len(got) != 0 {
			t.Fatalf("slider=%d: category with only gift sub-items not suppressed", v)
		}
	}
}

func TestGiftListingsSplit(t *testing.T) {
	dest := sliderDest()
	acts := []catalog.Activity{
		{
			ID: 10, DestinationID: 1, Title: "Surprises", Levels: rng(0, 5),
			SubItems: []catalog.SubItem{
				{ID: 1, Title: "From mum and dad", FromParents: true},
				{ID: 2, Title: "From the gang", FromFriends: true},
				{ID: 3, Title: "Regular"},
			},
		},
	}

	parents, friends := GiftListings(dest, acts)

	if len(parents) != 1 || parents[0].Item.Title != "From mum and dad" {
		t.Fatalf("unexpected parents listing: %+v", parents)
	}
	if len(friends) != 1 || friends[0].Item.Title != "From the gang" {
		t.Fatalf("unexpected friends listing: %+v", friends)
	}
	if parents[0].ActivityTitle != "Surprises" {
		t.Errorf("gift item lost its category pairing")
	}
}

func TestGiftListingsBothFlagsParentsWins(t *testing.T) {
	dest := sliderDest()
	acts := []catalog.Activity{
		{
			ID: 10, DestinationID: 1, Levels: rng(0, 5),
			SubItems: []catalog.SubItem{
				{ID: 1, Title: "Ambiguous", FromParents: true, FromFriends: true},
			},
		},
	}

	parents, friends := GiftListings(dest, acts)
	if len(parents) != 1 {
		t.Fatalf("double-flagged item missing from parents list")
	}
	if len(friends) != 0 {
		t.Fatalf("double-flagged item must not appear in both lists")
	}
}

// --------------------------------------------------
// Checkbox mode
// --------------------------------------------------

func TestUnfilteredCatalogPassThrough(t *testing.T) {
	dest := catalog.Destination{ID: 1, SelectionMode: catalog.ModeCheckboxes, PointsBudget: 100}
	acts := []catalog.Activity{
		{
			ID: 10, DestinationID: 1, Levels: rng(4, 4),
			SubItems: []catalog.SubItem{
				{ID: 1, Title: "Kept despite level", Mandatory: true, DefaultSelected: true},
				{ID: 2, Title: "Gift kept too", FromParents: true},
			},
		},
		{ID: 99, DestinationID: 2, Levels: rng(0, 5)},
	}

	got := UnfilteredCatalog(dest, acts)
	if len(got) != 1 {
		t.Fatalf("got %d activities, want 1", len(got))
	}
	if len(got[0].SubItems) != 2 {
		t.Fatalf("checkbox mode must not filter sub-items, got %d", len(got[0].SubItems))
	}
	if !got[0].SubItems[0].Mandatory || !got[0].SubItems[0].DefaultSelected {
		t.Error("selection flags must survive the pass-through")
	}
}
