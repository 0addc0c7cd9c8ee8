package catalog

import "context"

// Repository defines all data access for the catalog. The selection
// engine never touches it; it only ever sees snapshots handed out by
// the service.
type Repository interface {

	// Destinations
	ListDestinations(ctx context.Context) ([]Destination, error)
	GetDestination(ctx context.Context, id int) (*Destination, error)
	CreateDestination(ctx context.Context, d *Destination) error
	UpdateDestination(ctx context.Context, d *Destination) error
	DeleteDestination(ctx context.Context, id int) error

	// Activities (returned with their sub-items populated,
	// in stored order)
	ListActivities(ctx context.Context, destinationID int) ([]Activity, error)
	GetActivity(ctx context.Context, id int) (*Activity, error)
	CreateActivity(ctx context.Context, a *Activity) error
	UpdateActivity(ctx context.Context, a *Activity) error
	DeleteActivity(ctx context.Context, id int) error

	// Sub-items, keyed by their owning activity
	CreateSubItem(ctx context.Context, activityID int, s *SubItem) error
	UpdateSubItem(ctx context.Context, activityID int, s *SubItem) error
	DeleteSubItem(ctx context.Context, activityID, subItemID int) error

	// Bulk import/export. ReplaceAll swaps the entire catalog in one
	// transaction: on any error nothing is committed.
	ReplaceAll(ctx context.Context, dests []Destination, acts []Activity) error
	ExportAll(ctx context.Context) ([]Destination, []Activity, error)
}

// assignSubItemIDs numbers the zero-id sub-items of an activity,
// continuing past the highest id already present. Both repository
// implementations use it so a mixed payload of explicit and default
// ids never collides.
func assignSubItemIDs(items []SubItem) {
	next := 1
	for i := range items {
		if items[i].ID >= next {
			next = items[i].ID + 1
		}
	}
	for i := range items {
		if items[i].ID == 0 {
			items[i].ID = next
			next++
		}
	}
}
