package catalog

// SelectionMode decides which browsing flow a destination uses:
// the adventure slider or the checkbox list with a points budget.
type SelectionMode string

const (
	ModeSlider     SelectionMode = "slider"
	ModeCheckboxes SelectionMode = "checkboxes"
)

// LevelRange is an inclusive slider-level range.
type LevelRange struct {
	Min int `json:"slider_level_min"`
	Max int `json:"slider_level_max"`
}

// Contains reports whether v falls inside the range. A malformed
// range (Min > Max) matches nothing instead of erroring, so legacy
// bad rows degrade to "not shown".
func (r LevelRange) Contains(v int) bool {
	return r.Min <= v && v <= r.Max
}

// Destination is the top-level catalog unit.
type Destination struct {
	ID               int           `json:"id"`
	Name             string        `json:"name"`
	DescriptionShort string        `json:"description_short"`
	ImageCover       string        `json:"image_cover"`
	SelectionMode    SelectionMode `json:"selection_mode"`
	PointsBudget     int           `json:"points_budget"`
}

// Activity is a themed category of sub-items, gated by a level range.
type Activity struct {
	ID            int        `json:"id"`
	DestinationID int        `json:"destination_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	ImageFilename string     `json:"image_filename"`
	Levels        LevelRange `json:"levels"`
	SubItems      []SubItem  `json:"sub_items"`
}

// SubItem is one selectable option inside a category.
// Levels is nil when the sub-item inherits its category's range.
type SubItem struct {
	ID              int         `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Points          int         `json:"points"`
	ImageFilename   string      `json:"image_filename"`
	DefaultSelected bool        `json:"default_selected"`
	Mandatory       bool        `json:"mandatory"`
	FromParents     bool        `json:"from_parents"`
	FromFriends     bool        `json:"from_friends"`
	Spontaneous     bool        `json:"is_spontaneous"`
	Levels          *LevelRange `json:"levels,omitempty"`
}

// EffectiveLevels resolves the range a sub-item is filtered by:
// its own override if present, otherwise the parent category's range.
func (s SubItem) EffectiveLevels(parent LevelRange) LevelRange {
	if s.Levels != nil {
		return *s.Levels
	}
	return parent
}

// IsGift reports whether the sub-item belongs to a gift listing
// instead of normal browsing.
func (s SubItem) IsGift() bool {
	return s.FromParents || s.FromFriends
}
