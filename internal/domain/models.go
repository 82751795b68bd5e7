package domain

// MediaKind tells the grid which thumbnail renderer draws an item
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// Item is a selectable media reference and its position in the host-supplied list
type Item struct {
	Source        string
	PositionIndex int
	Kind          MediaKind
	Name          string // label shown under the thumbnail, defaults to the source
}

// Label returns the display label for the item
func (i Item) Label() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Source
}

// Pick is one entry of the picked set as reported to the host
type Pick struct {
	Source        string `json:"source" toml:"source"`
	PositionIndex int    `json:"position_index" toml:"position_index"`
}
