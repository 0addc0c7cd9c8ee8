package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// jsonDestination and jsonActivity mirror the flat-file layout the
// original data set ships in. Pointer fields tell a missing key apart
// from zero: legacy rows carry a single "slider_level" instead of the
// min/max pair, and sub-items without levels inherit the category's.
type jsonDestination struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	DescriptionShort string `json:"description_short"`
	ImageCover       string `json:"image_cover"`
	SelectionMode    string `json:"selection_mode"`
	PointsBudget     int    `json:"points_budget"`
}

type jsonActivity struct {
	ID             int           `json:"id"`
	DestinationID  int           `json:"destination_id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	ImageFilename  string        `json:"image_filename"`
	SliderLevel    *int          `json:"slider_level"`
	SliderLevelMin *int          `json:"slider_level_min"`
	SliderLevelMax *int          `json:"slider_level_max"`
	SubItems       []jsonSubItem `json:"sub_items"`
}

type jsonSubItem struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Points          int    `json:"points"`
	ImageFilename   string `json:"image_filename"`
	DefaultSelected bool   `json:"default_selected"`
	Mandatory       bool   `json:"mandatory"`
	FromParents     bool   `json:"from_parents"`
	FromFriends     bool   `json:"from_friends"`
	Spontaneous     bool   `json:"is_spontaneous"`
	SliderLevelMin  *int   `json:"slider_level_min"`
	SliderLevelMax  *int   `json:"slider_level_max"`
}

// LoadJSONCatalog builds an in-memory repository from
// destinations.json and activities.json in dir. This is the one
// place legacy single-level records get upconverted to (level,level)
// ranges; the rest of the system only ever sees the range shape.
func LoadJSONCatalog(dir string, sliderMax int) (*InMemoryRepository, error) {
	var rawDests []jsonDestination
	if err := readJSONFile(filepath.Join(dir, "destinations.json"), &rawDests); err != nil {
		return nil, err
	}

	var rawActs []jsonActivity
	if err := readJSONFile(filepath.Join(dir, "activities.json"), &rawActs); err != nil {
		return nil, err
	}

	repo := NewInMemoryRepository()
	ctx := context.Background()

	for _, rd := range rawDests {
		mode := SelectionMode(rd.SelectionMode)
		if mode != ModeCheckboxes {
			mode = ModeSlider
		}
		d := Destination{
			ID:               rd.ID,
			Name:             rd.Name,
			DescriptionShort: rd.DescriptionShort,
			ImageCover:       rd.ImageCover,
			SelectionMode:    mode,
			PointsBudget:     rd.PointsBudget,
		}
		if err := repo.CreateDestination(ctx, &d); err != nil {
			return nil, err
		}
	}

	for _, ra := range rawActs {
		a := Activity{
			ID:            ra.ID,
			DestinationID: ra.DestinationID,
			Title:         ra.Title,
			Description:   ra.Description,
			ImageFilename: ra.ImageFilename,
			Levels:        resolveLevels(ra.SliderLevel, ra.SliderLevelMin, ra.SliderLevelMax, sliderMax),
		}
		for _, rs := range ra.SubItems {
			s := SubItem{
				ID:              rs.ID,
				Title:           rs.Title,
				Description:     rs.Description,
				Points:          rs.Points,
				ImageFilename:   rs.ImageFilename,
				DefaultSelected: rs.DefaultSelected,
				Mandatory:       rs.Mandatory,
				FromParents:     rs.FromParents,
				FromFriends:     rs.FromFriends,
				Spontaneous:     rs.Spontaneous,
			}
			if rs.SliderLevelMin != nil || rs.SliderLevelMax != nil {
				override := resolveLevels(nil, rs.SliderLevelMin, rs.SliderLevelMax, sliderMax)
				s.Levels = &override
			}
			a.SubItems = append(a.SubItems, s)
		}

		if err := repo.CreateActivity(ctx, &a); err != nil {
			return nil, err
		}
	}

	return repo, nil
}

// resolveLevels upconverts a legacy single level to (level, level)
// and fills half-open pairs with the configured bounds.
func resolveLevels(legacy, min, max *int, sliderMax int) LevelRange {
	if legacy != nil && min == nil && max == nil {
		return LevelRange{Min: *legacy, Max: *legacy}
	}

	r := LevelRange{Min: 0, Max: sliderMax}
	if min != nil {
		r.Min = *min
	}
	if max != nil {
		r.Max = *max
	}
	return r
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
