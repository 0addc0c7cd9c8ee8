package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Destinations
// --------------------------------------------------

func (r *PostgresRepository) ListDestinations(ctx context.Context) ([]Destination, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description_short, image_cover, selection_mode, points_budget
		FROM destinations
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dests []Destination
	for rows.Next() {
		var d Destination
		if err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.DescriptionShort,
			&d.ImageCover,
			&d.SelectionMode,
			&d.PointsBudget,
		); err != nil {
			return nil, err
		}
		dests = append(dests, d)
	}
	return dests, rows.Err()
}

func (r *PostgresRepository) GetDestination(ctx context.Context, id int) (*Destination, error) {
	var d Destination
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description_short, image_cover, selection_mode, points_budget
		FROM destinations
		WHERE id = $1
	`, id).Scan(
		&d.ID,
		&d.Name,
		&d.DescriptionShort,
		&d.ImageCover,
		&d.SelectionMode,
		&d.PointsBudget,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "destination", ID: id}
		}
		return nil, err
	}
	return &d, nil
}

func (r *PostgresRepository) CreateDestination(ctx context.Context, d *Destination) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO destinations (name, description_short, image_cover, selection_mode, points_budget)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, d.Name, d.DescriptionShort, d.ImageCover, d.SelectionMode, d.PointsBudget).Scan(&d.ID)
}

func (r *PostgresRepository) UpdateDestination(ctx context.Context, d *Destination) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE destinations
		SET name = $1,
		    description_short = $2,
		    image_cover = $3,
		    selection_mode = $4,
		    points_budget = $5
		WHERE id = $6
	`, d.Name, d.DescriptionShort, d.ImageCover, d.SelectionMode, d.PointsBudget, d.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &NotFoundError{Kind: "destination", ID: d.ID}
	}
	return nil
}

func (r *PostgresRepository) DeleteDestination(ctx context.Context, id int) error {
	// activities and sub_items cascade via FK
	cmd, err := r.db.Exec(ctx, `DELETE FROM destinations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &NotFoundError{Kind: "destination", ID: id}
	}
	return nil
}

// --------------------------------------------------
// Activities
// --------------------------------------------------

func (r *PostgresRepository) ListActivities(ctx context.Context, destinationID int) ([]Activity, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, destination_id, title, description, image_filename,
		       slider_level_min, slider_level_max
		FROM activities
		WHERE destination_id = $1
		ORDER BY id
	`, destinationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	acts := []Activity{}
	index := map[int]int{}
	for rows.Next() {
		var a Activity
		if err := rows.Scan(
			&a.ID,
			&a.DestinationID,
			&a.Title,
			&a.Description,
			&a.ImageFilename,
			&a.Levels.Min,
			&a.Levels.Max,
		); err != nil {
			return nil, err
		}
		a.SubItems = []SubItem{}
		index[a.ID] = len(acts)
		acts = append(acts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subRows, err := r.db.Query(ctx, `
		SELECT s.activity_id, s.id, s.title, s.description, s.points, s.image_filename,
		       s.default_selected, s.mandatory, s.from_parents, s.from_friends,
		       s.is_spontaneous, s.slider_level_min, s.slider_level_max
		FROM sub_items s
		JOIN activities a ON a.id = s.activity_id
		WHERE a.destination_id = $1
		ORDER BY s.activity_id, s.id
	`, destinationID)
	if err != nil {
		return nil, err
	}
	defer subRows.Close()

	for subRows.Next() {
		var activityID int
		s, err := scanSubItem(subRows, &activityID)
		if err != nil {
			return nil, err
		}
		if i, ok := index[activityID]; ok {
			acts[i].SubItems = append(acts[i].SubItems, s)
		}
	}
	return acts, subRows.Err()
}

func (r *PostgresRepository) GetActivity(ctx context.Context, id int) (*Activity, error) {
	var a Activity
	err := r.db.QueryRow(ctx, `
		SELECT id, destination_id, title, description, image_filename,
		       slider_level_min, slider_level_max
		FROM activities
		WHERE id = $1
	`, id).Scan(
		&a.ID,
		&a.DestinationID,
		&a.Title,
		&a.Description,
		&a.ImageFilename,
		&a.Levels.Min,
		&a.Levels.Max,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "activity", ID: id}
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT activity_id, id, title, description, points, image_filename,
		       default_selected, mandatory, from_parents, from_friends,
		       is_spontaneous, slider_level_min, slider_level_max
		FROM sub_items
		WHERE activity_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	a.SubItems = []SubItem{}
	for rows.Next() {
		var activityID int
		s, err := scanSubItem(rows, &activityID)
		if err != nil {
			return nil, err
		}
		a.SubItems = append(a.SubItems, s)
	}
	return &a, rows.Err()
}

func (r *PostgresRepository) CreateActivity(ctx context.Context, a *Activity) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO activities (destination_id, title, description, image_filename,
		                        slider_level_min, slider_level_max)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, a.DestinationID, a.Title, a.Description, a.ImageFilename,
		a.Levels.Min, a.Levels.Max).Scan(&a.ID)
	if err != nil {
		return err
	}

	assignSubItemIDs(a.SubItems)
	for i := range a.SubItems {
		if err := insertSubItem(ctx, tx, a.ID, &a.SubItems[i]); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) UpdateActivity(ctx context.Context, a *Activity) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE activities
		SET title = $1,
		    description = $2,
		    image_filename = $3,
		    slider_level_min = $4,
		    slider_level_max = $5
		WHERE id = $6
	`, a.Title, a.Description, a.ImageFilename, a.Levels.Min, a.Levels.Max, a.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &NotFoundError{Kind: "activity", ID: a.ID}
	}
	return nil
}

func (r *PostgresRepository) DeleteActivity(ctx context.Context, id int) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &NotFoundError{Kind: "activity", ID: id}
	}
	return nil
}

// --------------------------------------------------
// Sub-items
// --------------------------------------------------

func (r *PostgresRepository) CreateSubItem(ctx context.Context, activityID int, s *SubItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM activities WHERE id = $1)`, activityID,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return &NotFoundError{Kind: "activity", ID: activityID}
	}

	if s.ID == 0 {
		// sub-item ids are scoped to their activity
		if err := tx.QueryRow(ctx, `
			SELECT COALESCE(MAX(id), 0) + 1 FROM sub_items WHERE activity_id = $1
		`, activityID).Scan(&s.ID); err != nil {
			return err
		}
	}

	if err := insertSubItem(ctx, tx, activityID, s); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepository) UpdateSubItem(ctx context.Context, activityID int, s *SubItem) error {
	var min, max *int
	if s.Levels != nil {
		min, max = &s.Levels.Min, &s.Levels.Max
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE sub_items
		SET title = $1,
		    description = $2,
		    points = $3,
		    image_filename = $4,
		    default_selected = $5,
		    mandatory = $6,
		    from_parents = $7,
		    from_friends = $8,
		    is_spontaneous = $9,
		    slider_level_min = $10,
		    slider_level_max = $11
		WHERE activity_id = $12 AND id = $13
	`, s.Title, s.Description, s.Points, s.ImageFilename,
		s.DefaultSelected, s.Mandatory, s.FromParents, s.FromFriends,
		s.Spontaneous, min, max, activityID, s.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &NotFoundError{Kind: "sub-item", ID: s.ID}
	}
	return nil
}

func (r *PostgresRepository) DeleteSubItem(ctx context.Context, activityID, subItemID int) error {
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM sub_items WHERE activity_id = $1 AND id = $2
	`, activityID, subItemID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &NotFoundError{Kind: "sub-item", ID: subItemID}
	}
	return nil
}

// --------------------------------------------------
// Bulk import/export
// --------------------------------------------------

// ReplaceAll swaps the whole catalog in one transaction. Ids are
// reassigned; activities are re-pointed at the new destination ids.
func (r *PostgresRepository) ReplaceAll(ctx context.Context, dests []Destination, acts []Activity) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		TRUNCATE destinations, activities, sub_items RESTART IDENTITY CASCADE
	`); err != nil {
		return err
	}

	destIDs := map[int]int{}
	for _, d := range dests {
		var newID int
		err := tx.QueryRow(ctx, `
			INSERT INTO destinations (name, description_short, image_cover, selection_mode, points_budget)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, d.Name, d.DescriptionShort, d.ImageCover, d.SelectionMode, d.PointsBudget).Scan(&newID)
		if err != nil {
			return err
		}
		destIDs[d.ID] = newID
	}

	for _, a := range acts {
		destID, ok := destIDs[a.DestinationID]
		if !ok {
			return &NotFoundError{Kind: "destination", ID: a.DestinationID}
		}

		var newID int
		err := tx.QueryRow(ctx, `
			INSERT INTO activities (destination_id, title, description, image_filename,
			                        slider_level_min, slider_level_max)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, destID, a.Title, a.Description, a.ImageFilename,
			a.Levels.Min, a.Levels.Max).Scan(&newID)
		if err != nil {
			return err
		}

		items := make([]SubItem, len(a.SubItems))
		copy(items, a.SubItems)
		assignSubItemIDs(items)
		for i := range items {
			if err := insertSubItem(ctx, tx, newID, &items[i]); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) ExportAll(ctx context.Context) ([]Destination, []Activity, error) {
	dests, err := r.ListDestinations(ctx)
	if err != nil {
		return nil, nil, err
	}

	var acts []Activity
	for _, d := range dests {
		list, err := r.ListActivities(ctx, d.ID)
		if err != nil {
			return nil, nil, err
		}
		acts = append(acts, list...)
	}
	return dests, acts, nil
}

// --------------------------------------------------
// Scan helpers
// --------------------------------------------------

func insertSubItem(ctx context.Context, tx pgx.Tx, activityID int, s *SubItem) error {
	var min, max *int
	if s.Levels != nil {
		min, max = &s.Levels.Min, &s.Levels.Max
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO sub_items (activity_id, id, title, description, points, image_filename,
		                       default_selected, mandatory, from_parents, from_friends,
		                       is_spontaneous, slider_level_min, slider_level_max)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, activityID, s.ID, s.Title, s.Description, s.Points, s.ImageFilename,
		s.DefaultSelected, s.Mandatory, s.FromParents, s.FromFriends,
		s.Spontaneous, min, max)
	return err
}

func scanSubItem(rows pgx.Rows, activityID *int) (SubItem, error) {
	var s SubItem
	var min, max *int
	err := rows.Scan(
		activityID,
		&s.ID,
		&s.Title,
		&s.Description,
		&s.Points,
		&s.ImageFilename,
		&s.DefaultSelected,
		&s.Mandatory,
		&s.FromParents,
		&s.FromFriends,
		&s.Spontaneous,
		&min,
		&max,
	)
	if err != nil {
		return s, err
	}
	if min != nil && max != nil {
		s.Levels = &LevelRange{Min: *min, Max: *max}
	}
	return s, nil
}
