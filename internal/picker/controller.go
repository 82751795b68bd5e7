package picker

import "imagepicker/internal/domain"

// SelectionChange is what the host callback receives after every click.
//
// In multi-select mode Picks holds the whole picked set. In single-select mode
// Single is the one picked entry, or nil when nothing is picked, and Picks holds
// at most that entry.
type SelectionChange struct {
	Multiple bool
	Picks    []domain.Pick
	Single   *domain.Pick

	// Clicked is the item that triggered the change and Removed tells whether
	// the click took it out of the set. When a single-select click evicts the
	// previous pick, Clicked is the evicted pick and Removed is true. Both are
	// zero for a bare Notify.
	Clicked domain.Pick
	Removed bool
}

// SelectionHandler is the host callback for selection changes
type SelectionHandler func(SelectionChange)

// Props is what the host hands to a Controller
type Props struct {
	Items              []domain.Item
	Multiple           bool
	Preselected        *Preselection
	SniffIndex         bool
	OnSelectionChanged SelectionHandler
}

// DefaultProps returns props for a multi-select grid without preselection
func DefaultProps() Props {
	return Props{
		Multiple:    true,
		Preselected: &Preselection{},
	}
}

// Tile is one rendered grid cell: the item, whether it is picked and the click
// handler bound to it. Key is the ordinal and only identifies the cell.
type Tile struct {
	Key      int
	Item     domain.Item
	Selected bool
	OnClick  func()
}

// Controller owns the picked set of a thumbnail grid
type Controller struct {
	items       []domain.Item
	multiple    bool
	sniff       bool
	onChange    SelectionHandler
	preselected *Preselection
	picked      PickedSet
}

// New creates a controller and derives its initial picked set from the
// preselection, recovering indexes when SniffIndex is set
func New(props Props) *Controller {
	c := &Controller{
		items:       props.Items,
		multiple:    props.Multiple,
		sniff:       props.SniffIndex,
		onChange:    props.OnSelectionChanged,
		preselected: props.Preselected,
	}
	var pre Preselection
	if props.Preselected != nil {
		pre = *props.Preselected
	}
	c.picked = DeriveInitialSelection(props.Items, pre, props.SniffIndex)
	return c
}

// ReplacePreselection handles the host swapping its preselection input. The
// same pointer is a no-op. A new one is adopted without index recovery even if
// sniffing is enabled; see AdoptSelection. Reports whether the set was replaced.
func (c *Controller) ReplacePreselection(pre *Preselection) bool {
	if pre == c.preselected {
		return false
	}
	c.preselected = pre
	if pre == nil {
		c.picked = PickedSet{}
		return true
	}
	c.picked = AdoptSelection(*pre)
	return true
}

// Click toggles item in the picked set and notifies the host. In single-select
// mode the toggle starts from an empty set, so any other pick is dropped.
// The item is not checked against the item list.
func (c *Controller) Click(item domain.Item) {
	base := c.picked
	if !c.multiple {
		base = PickedSet{}
	}

	removed := base.Has(item.Source)
	var next PickedSet
	if removed {
		next = base.Without(item.Source)
	} else {
		next = base.With(item.Source, item.PositionIndex)
	}

	clicked := domain.Pick{Source: item.Source, PositionIndex: item.PositionIndex}
	if !c.multiple && !removed {
		if evicted, ok := c.evicted(item.Source); ok {
			clicked, removed = evicted, true
		}
	}

	c.picked = next
	c.emit(c.change(next, clicked, removed))
}

// evicted returns the first current pick other than src, the one a
// single-select click drops
func (c *Controller) evicted(src string) (domain.Pick, bool) {
	for _, p := range c.picked.Picks() {
		if p.Source != src {
			return p, true
		}
	}
	return domain.Pick{}, false
}

// Notify reports set to the host callback, if there is one
func (c *Controller) Notify(set PickedSet) {
	c.emit(c.change(set, domain.Pick{}, false))
}

func (c *Controller) change(set PickedSet, clicked domain.Pick, removed bool) SelectionChange {
	picks := set.Picks()
	change := SelectionChange{
		Multiple: c.multiple,
		Clicked:  clicked,
		Removed:  removed,
	}
	if c.multiple {
		change.Picks = picks
		return change
	}
	change.Picks = []domain.Pick{}
	if len(picks) > 0 {
		first := picks[0]
		change.Single = &first
		change.Picks = append(change.Picks, first)
	}
	return change
}

func (c *Controller) emit(change SelectionChange) {
	if c.onChange == nil {
		return
	}
	c.onChange(change)
}

// RenderItem builds the tile for item at ordinal position i
func (c *Controller) RenderItem(item domain.Item, i int) Tile {
	return Tile{
		Key:      i,
		Item:     item,
		Selected: c.picked.Has(item.Source),
		OnClick:  func() { c.Click(item) },
	}
}

// Render builds one tile per item, in item order
func (c *Controller) Render() []Tile {
	tiles := make([]Tile, 0, len(c.items))
	for i, item := range c.items {
		tiles = append(tiles, c.RenderItem(item, i))
	}
	return tiles
}

// Picked returns the current picked set
func (c *Controller) Picked() PickedSet { return c.picked }

// Items returns the host's item list
func (c *Controller) Items() []domain.Item { return c.items }

// Multiple reports whether the grid is in multi-select mode
func (c *Controller) Multiple() bool { return c.multiple }

// SetItems replaces the item list. The picked set is left alone.
func (c *Controller) SetItems(items []domain.Item) {
	c.items = items
}
