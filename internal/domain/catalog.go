package domain

// Language is a user-selectable message language
type Language struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	IsDefault bool   `db:"is_default"`
}

// Category is a node of the catalog tree.
// ChildCount is loaded on every read and never cached.
type Category struct {
	ID         int64  `db:"id"`
	ParentID   *int64 `db:"parent_id"`
	HasModels  bool   `db:"has_models"`
	Priority   int    `db:"priority"`
	Name       string `db:"name"`
	ChildCount int    `db:"child_count"`
}

// IsSuper reports whether the category has subcategories
func (c *Category) IsSuper() bool {
	return c.ChildCount > 0
}

// IsRoot reports whether the category sits at the top of the tree
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// Item is a catalog entry inside a leaf category
type Item struct {
	ID         int64 `db:"id"`
	CategoryID int64 `db:"category_id"`
}

// Entry is the localized description of an item
type Entry struct {
	ID              int64  `db:"id"`
	ItemID          int64  `db:"item_id"`
	Description     string `db:"description"`
	LongDescription string `db:"long_description"`
	Price           int64  `db:"price"`
	Currency        string `db:"currency"`
	ShowPrice       bool   `db:"show_price"`
}

// Cover is an image attached to an item or an info page
type Cover struct {
	ID   int64  `db:"id"`
	File string `db:"file"`
}

// MapPoint is a location attached to an info page
type MapPoint struct {
	ID   int64   `db:"id"`
	Lat  float64 `db:"lat"`
	Long float64 `db:"long"`
}

// InfoPage is a non-catalog page shown next to the root categories
type InfoPage struct {
	ID          int64  `db:"id"`
	Priority    int    `db:"priority"`
	Name        string `db:"name"`
	Description string `db:"description"`
}
