package transfer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FlorianMayr1208/present-picker/internal/catalog"
)

// The spreadsheet layout is flat: one row per sub-item with the
// category columns repeated, and a category-only row when a category
// owns no sub-items. The same layout serves XLSX and CSV.

var destinationHeaders = []string{
	"ID",
	"Name",
	"Short Description",
	"Cover Image",
	"Selection Mode",
	"Points Budget",
}

var activityHeaders = []string{
	"Activity ID",
	"Destination ID",
	"Category Title",
	"Category Description",
	"Category Image",
	"Category Level Min",
	"Category Level Max",
	"Sub-Item ID",
	"Sub-Item Title",
	"Sub-Item Description",
	"Points",
	"Default Selected",
	"Mandatory",
	"From Parents",
	"From Friends",
	"Is Spontaneous",
	"Sub-Item Image",
	"Sub-Item Level Min",
	"Sub-Item Level Max",
}

// --------------------------------------------------
// Row building (export)
// --------------------------------------------------

func destinationRows(dests []catalog.Destination) [][]string {
	rows := [][]string{destinationHeaders}
	for _, d := range dests {
		rows = append(rows, []string{
			strconv.Itoa(d.ID),
			d.Name,
			d.DescriptionShort,
			d.ImageCover,
			string(d.SelectionMode),
			strconv.Itoa(d.PointsBudget),
		})
	}
	return rows
}

func activityRows(acts []catalog.Activity) [][]string {
	rows := [][]string{activityHeaders}
	for _, a := range acts {
		base := []string{
			strconv.Itoa(a.ID),
			strconv.Itoa(a.DestinationID),
			a.Title,
			a.Description,
			a.ImageFilename,
			strconv.Itoa(a.Levels.Min),
			strconv.Itoa(a.Levels.Max),
		}

		if len(a.SubItems) == 0 {
			row := append(append([]string{}, base...),
				"", "", "", "", "", "", "", "", "", "", "", "")
			rows = append(rows, row)
			continue
		}

		for _, s := range a.SubItems {
			subMin, subMax := "", ""
			if s.Levels != nil {
				subMin = strconv.Itoa(s.Levels.Min)
				subMax = strconv.Itoa(s.Levels.Max)
			}
			row := append(append([]string{}, base...),
				strconv.Itoa(s.ID),
				s.Title,
				s.Description,
				strconv.Itoa(s.Points),
				strconv.FormatBool(s.DefaultSelected),
				strconv.FormatBool(s.Mandatory),
				strconv.FormatBool(s.FromParents),
				strconv.FormatBool(s.FromFriends),
				strconv.FormatBool(s.Spontaneous),
				s.ImageFilename,
				subMin,
				subMax,
			)
			rows = append(rows, row)
		}
	}
	return rows
}

// --------------------------------------------------
// Row parsing (import)
// --------------------------------------------------

// columnIndex maps header names to positions so column order and
// trailing extra columns do not matter.
type columnIndex map[string]int

func indexHeaders(header []string) columnIndex {
	idx := columnIndex{}
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func (idx columnIndex) str(row []string, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (idx columnIndex) intVal(row []string, name string) (int, error) {
	raw := idx.str(row, name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("column %q: %q is not a number", name, raw)
	}
	return v, nil
}

func (idx columnIndex) optInt(row []string, name string) (*int, error) {
	raw := idx.str(row, name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("column %q: %q is not a number", name, raw)
	}
	return &v, nil
}

func (idx columnIndex) boolVal(row []string, name string) bool {
	switch strings.ToLower(idx.str(row, name)) {
	case "true", "yes", "1", "x":
		return true
	}
	return false
}

func parseDestinationRows(rows [][]string) ([]catalog.Destination, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("destinations table is empty")
	}
	idx := indexHeaders(rows[0])

	var dests []catalog.Destination
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		id, err := idx.intVal(row, "ID")
		if err != nil {
			return nil, fmt.Errorf("destinations row %d: %w", n+2, err)
		}
		budget, err := idx.intVal(row, "Points Budget")
		if err != nil {
			return nil, fmt.Errorf("destinations row %d: %w", n+2, err)
		}

		mode := catalog.SelectionMode(idx.str(row, "Selection Mode"))
		if mode == "" {
			mode = catalog.ModeSlider
		}

		dests = append(dests, catalog.Destination{
			ID:               id,
			Name:             idx.str(row, "Name"),
			DescriptionShort: idx.str(row, "Short Description"),
			ImageCover:       idx.str(row, "Cover Image"),
			SelectionMode:    mode,
			PointsBudget:     budget,
		})
	}
	return dests, nil
}

// parseActivityRows reassembles the flat rows into activities with
// nested sub-items, grouped by activity id. Legacy files carrying a
// single "Slider Level" column upconvert to (level, level).
func parseActivityRows(rows [][]string, sliderMax int) ([]catalog.Activity, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("activities table is empty")
	}
	idx := indexHeaders(rows[0])

	var acts []catalog.Activity
	byID := map[int]int{}

	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		lineNo := n + 2

		actID, err := idx.intVal(row, "Activity ID")
		if err != nil {
			return nil, fmt.Errorf("activities row %d: %w", lineNo, err)
		}
		destID, err := idx.intVal(row, "Destination ID")
		if err != nil {
			return nil, fmt.Errorf("activities row %d: %w", lineNo, err)
		}

		pos, seen := byID[actID]
		if seen && acts[pos].DestinationID != destID {
			// stored activity ids are global, so the same id under two
			// destinations cannot round-trip; reject instead of merging
			return nil, fmt.Errorf("activities row %d: activity id %d is already used by destination %d",
				lineNo, actID, acts[pos].DestinationID)
		}
		if !seen {
			levels, err := parseCategoryLevels(idx, row, sliderMax)
			if err != nil {
				return nil, fmt.Errorf("activities row %d: %w", lineNo, err)
			}

			pos = len(acts)
			byID[actID] = pos
			acts = append(acts, catalog.Activity{
				ID:            actID,
				DestinationID: destID,
				Title:         idx.str(row, "Category Title"),
				Description:   idx.str(row, "Category Description"),
				ImageFilename: idx.str(row, "Category Image"),
				Levels:        levels,
			})
		}

		if idx.str(row, "Sub-Item ID") == "" && idx.str(row, "Sub-Item Title") == "" {
			// category-only row
			continue
		}

		subID, err := idx.intVal(row, "Sub-Item ID")
		if err != nil {
			return nil, fmt.Errorf("activities row %d: %w", lineNo, err)
		}
		points, err := idx.intVal(row, "Points")
		if err != nil {
			return nil, fmt.Errorf("activities row %d: %w", lineNo, err)
		}
		subMin, err := idx.optInt(row, "Sub-Item Level Min")
		if err != nil {
			return nil, fmt.Errorf("activities row %d: %w", lineNo, err)
		}
		subMax, err := idx.optInt(row, "Sub-Item Level Max")
		if err != nil {
			return nil, fmt.Errorf("activities row %d: %w", lineNo, err)
		}

		item := catalog.SubItem{
			ID:              subID,
			Title:           idx.str(row, "Sub-Item Title"),
			Description:     idx.str(row, "Sub-Item Description"),
			Points:          points,
			ImageFilename:   idx.str(row, "Sub-Item Image"),
			DefaultSelected: idx.boolVal(row, "Default Selected"),
			Mandatory:       idx.boolVal(row, "Mandatory"),
			FromParents:     idx.boolVal(row, "From Parents"),
			FromFriends:     idx.boolVal(row, "From Friends"),
			Spontaneous:     idx.boolVal(row, "Is Spontaneous"),
		}
		if subMin != nil || subMax != nil {
			r := catalog.LevelRange{}
			if subMin != nil {
				r.Min = *subMin
			}
			if subMax != nil {
				r.Max = *subMax
			} else {
				r.Max = r.Min
			}
			item.Levels = &r
		}

		acts[pos].SubItems = append(acts[pos].SubItems, item)
	}
	return acts, nil
}

func parseCategoryLevels(idx columnIndex, row []string, sliderMax int) (catalog.LevelRange, error) {
	// legacy single-level schema
	if _, hasLegacy := idx["Slider Level"]; hasLegacy {
		if _, hasMin := idx["Category Level Min"]; !hasMin {
			v, err := idx.intVal(row, "Slider Level")
			if err != nil {
				return catalog.LevelRange{}, err
			}
			return catalog.LevelRange{Min: v, Max: v}, nil
		}
	}

	min, err := idx.optInt(row, "Category Level Min")
	if err != nil {
		return catalog.LevelRange{}, err
	}
	max, err := idx.optInt(row, "Category Level Max")
	if err != nil {
		return catalog.LevelRange{}, err
	}

	r := catalog.LevelRange{Min: 0, Max: sliderMax}
	if min != nil {
		r.Min = *min
	}
	if max != nil {
		r.Max = *max
	}
	return r, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
