package selection

import "github.com/FlorianMayr1208/present-picker/internal/catalog"

// GiftItem is one sub-item surfaced in a gift listing, paired with
// its owning category.
type GiftItem struct {
	ActivityID    int             `json:"activity_id"`
	ActivityTitle string          `json:"activity_title"`
	Item          catalog.SubItem `json:"item"`
}

// Entry references one chosen sub-item. FromParents is carried
// through from the caller so gift-sourced picks stay marked on the
// printed summary.
type Entry struct {
	ActivityID  int  `json:"activity_id"`
	SubItemID   int  `json:"sub_item_id"`
	FromParents bool `json:"from_parents"`
}

// LineItem is one resolved row of an assembled selection.
type LineItem struct {
	ActivityID    int    `json:"activity_id"`
	ActivityTitle string `json:"activity_title"`
	SubItemID     int    `json:"sub_item_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Points        int    `json:"points"`
	ImageFilename string `json:"image_filename"`
	FromParents   bool   `json:"from_parents"`
}
