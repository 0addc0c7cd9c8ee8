package selection

import (
	"fmt"
	"strings"

	"github.com/FlorianMayr1208/present-picker/internal/catalog"
)

// ReferenceError lists selection entries that do not resolve against
// the catalog. Returned only by ValidateSelection; AssembleSelection
// itself skips bad references silently.
type ReferenceError struct {
	Missing []Entry
}

func (e *ReferenceError) Error() string {
	pairs := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		pairs[i] = fmt.Sprintf("(%d,%d)", m.ActivityID, m.SubItemID)
	}
	return "unknown selection references: " + strings.Join(pairs, ", ")
}

// AssembleSelection resolves an ordered set of chosen entries into
// line items, in selection order, and sums their points. Entries that
// do not resolve are skipped; gift-sourced entries still count toward
// the total. Callers wanting strict behaviour run ValidateSelection
// first.
func AssembleSelection(activities []catalog.Activity, entries []Entry) ([]LineItem, int) {
	items := make([]LineItem, 0, len(entries))
	total := 0

	for _, e := range entries {
		a, s, ok := resolve(activities, e)
		if !ok {
			continue
		}
		items = append(items, LineItem{
			ActivityID:    a.ID,
			ActivityTitle: a.Title,
			SubItemID:     s.ID,
			Title:         s.Title,
			Description:   s.Description,
			Points:        s.Points,
			ImageFilename: s.ImageFilename,
			FromParents:   e.FromParents,
		})
		total += s.Points
	}

	return items, total
}

// ValidateSelection checks every entry against the catalog and
// returns a *ReferenceError naming all unresolved pairs, or nil when
// everything resolves.
func ValidateSelection(activities []catalog.Activity, entries []Entry) error {
	var missing []Entry
	for _, e := range entries {
		if _, _, ok := resolve(activities, e); !ok {
			missing = append(missing, e)
		}
	}
	if len(missing) > 0 {
		return &ReferenceError{Missing: missing}
	}
	return nil
}

func resolve(activities []catalog.Activity, e Entry) (*catalog.Activity, *catalog.SubItem, bool) {
	for i := range activities {
		if activities[i].ID != e.ActivityID {
			continue
		}
		for j := range activities[i].SubItems {
			if activities[i].SubItems[j].ID == e.SubItemID {
				return &activities[i], &activities[i].SubItems[j], true
			}
		}
		// sub-item ids are only unique per activity, keep scanning in
		// case another activity carries the same id
	}
	return nil, nil, false
}
