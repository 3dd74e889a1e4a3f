package domain

// Image is a single gallery entry as described by the metadata document
type Image struct {
	ID          string   `json:"id"`
	Filename    string   `json:"filename"`
	Path        string   `json:"path"`
	Thumbnail   *string  `json:"thumbnail,omitempty"`
	Category    string   `json:"category"`
	DateAdded   string   `json:"dateAdded"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags"`
}

// HasDescription reports whether the image carries a description
func (i Image) HasDescription() bool {
	return i.Description != nil
}

// DescriptionOr returns the description or fallback when absent
func (i Image) DescriptionOr(fallback string) string {
	if i.Description == nil {
		return fallback
	}
	return *i.Description
}

// HasThumbnail reports whether a separate thumbnail path is present
func (i Image) HasThumbnail() bool {
	return i.Thumbnail != nil && *i.Thumbnail != ""
}

// ThumbnailOr returns the thumbnail path or fallback when absent
func (i Image) ThumbnailOr(fallback string) string {
	if !i.HasThumbnail() {
		return fallback
	}
	return *i.Thumbnail
}

// Title is the text shown on a card and on placeholders
func (i Image) Title() string {
	if i.Filename != "" {
		return i.Filename
	}
	return i.ID
}

// GalleryData is the loaded metadata document
type GalleryData struct {
	Images     []Image  `json:"images"`
	Categories []string `json:"categories"`
}

// ViewMode controls how gallery cards are laid out
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// ThemeMode is the user-selected theme
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
	ThemeAuto  ThemeMode = "auto"
)

// Valid reports whether the mode is one of the three legal values
func (m ThemeMode) Valid() bool {
	switch m {
	case ThemeLight, ThemeDark, ThemeAuto:
		return true
	}
	return false
}

// StringPtr is a convenience for building optional fields
func StringPtr(s string) *string {
	return &s
}
