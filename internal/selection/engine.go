package selection

import (
	"sort"

	"github.com/FlorianMayr1208/present-picker/internal/catalog"
)

// FilterBySlider returns the categories of a slider-mode destination
// visible at the given slider value, sorted ascending by range
// minimum (input order preserved for equal minimums).
//
// Sub-items are filtered independently: a sub-item carrying its own
// level range may drop out even though its category matched, and
// gift-flagged sub-items never appear here. A category whose
// sub-items were all filtered away is suppressed; a category that
// owns no sub-items at all stays visible.
//
// Any integer slider value is accepted. Nothing matching is an empty
// result, never an error.
func FilterBySlider(dest catalog.Destination, activities []catalog.Activity, slider int) []catalog.Activity {
	out := make([]catalog.Activity, 0, len(activities))

	for _, a := range activities {
		if a.DestinationID != dest.ID {
			continue
		}
		if !a.Levels.Contains(slider) {
			continue
		}

		visible := make([]catalog.SubItem, 0, len(a.SubItems))
		for _, s := range a.SubItems {
			if s.IsGift() {
				continue
			}
			if !s.EffectiveLevels(a.Levels).Contains(slider) {
				continue
			}
			visible = append(visible, s)
		}

		if len(a.SubItems) > 0 && len(visible) == 0 {
			continue
		}

		a.SubItems = visible
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Levels.Min < out[j].Levels.Min
	})

	return out
}

// GiftListings splits the full sub-item set of a destination into the
// parents and friends listings, independent of slider value or
// selection state. A sub-item flagged for both goes to the parents
// list only.
func GiftListings(dest catalog.Destination, activities []catalog.Activity) (parents, friends []GiftItem) {
	parents = []GiftItem{}
	friends = []GiftItem{}

	for _, a := range activities {
		if a.DestinationID != dest.ID {
			continue
		}
		for _, s := range a.SubItems {
			entry := GiftItem{
				ActivityID:    a.ID,
				ActivityTitle: a.Title,
				Item:          s,
			}
			switch {
			case s.FromParents:
				parents = append(parents, entry)
			case s.FromFriends:
				friends = append(friends, entry)
			}
		}
	}

	return parents, friends
}

// UnfilteredCatalog returns the full activity set of a checkbox-mode
// destination, flags intact. No level filtering and no gift removal
// happens here; budget accounting is the pricer's job and gift
// separation is GiftListings'.
func UnfilteredCatalog(dest catalog.Destination, activities []catalog.Activity) []catalog.Activity {
	out := make([]catalog.Activity, 0, len(activities))
	for _, a := range activities {
		if a.DestinationID != dest.ID {
			continue
		}
		out = append(out, a)
	}
	return out
}
