package picker

import (
	"reflect"
	"strings"

	"github.com/spf13/cast"

	"imagepicker/internal/domain"
)

// Preselection is the host's initial selection. It comes in one of two shapes:
// plain sources, whose indexes may have to be recovered from the item list, or
// source/index pairs that are taken as given. Picks wins when both are set.
type Preselection struct {
	Sources []string
	Picks   []domain.Pick
}

// PreselectSources returns a preselection of plain sources
func PreselectSources(sources ...string) *Preselection {
	return &Preselection{Sources: sources}
}

// PreselectPicks returns a preselection of source/index pairs
func PreselectPicks(picks ...domain.Pick) *Preselection {
	return &Preselection{Picks: picks}
}

// Paired reports whether the preselection carries its own indexes
func (p Preselection) Paired() bool {
	return len(p.Picks) > 0
}

// Len returns the number of preselected entries
func (p Preselection) Len() int {
	if p.Paired() {
		return len(p.Picks)
	}
	return len(p.Sources)
}

// DeriveInitialSelection builds the picked set a controller starts with. Paired
// entries are copied verbatim. Plain sources get UnknownIndex unless sniff is on,
// in which case the index of the first item with the same source is used.
func DeriveInitialSelection(items []domain.Item, pre Preselection, sniff bool) PickedSet {
	if pre.Paired() {
		return NewPickedSet(pre.Picks...)
	}
	picks := make([]domain.Pick, 0, len(pre.Sources))
	for _, src := range pre.Sources {
		idx := UnknownIndex
		if sniff {
			idx = sniffIndex(items, src)
		}
		picks = append(picks, domain.Pick{Source: src, PositionIndex: idx})
	}
	return NewPickedSet(picks...)
}

// AdoptSelection converts a replacement preselection into a picked set without
// any index recovery: plain sources always get UnknownIndex. Only construction
// sniffs; a later replacement is adopted as-is even when sniffing is enabled.
func AdoptSelection(pre Preselection) PickedSet {
	return DeriveInitialSelection(nil, pre, false)
}

// sniffIndex returns the slice position of the first item whose source matches
func sniffIndex(items []domain.Item, src string) int {
	for i, item := range items {
		if item.Source == src {
			return i
		}
	}
	return UnknownIndex
}

// ParsePreselection turns loosely typed host data (config files, JSON) into a
// Preselection. The first element decides the shape: a map means pairs, anything
// else means plain sources. Malformed entries fall back to "" and UnknownIndex.
// Input that is not a list, or an empty list, yields an empty preselection.
func ParsePreselection(raw any) *Preselection {
	switch v := raw.(type) {
	case nil:
		return &Preselection{}
	case *Preselection:
		return v
	case Preselection:
		return &v
	case []string:
		return PreselectSources(v...)
	case []domain.Pick:
		return PreselectPicks(v...)
	}

	entries := toEntries(raw)
	if len(entries) == 0 {
		return &Preselection{}
	}

	if _, ok := entryMap(entries[0]); !ok {
		sources := make([]string, 0, len(entries))
		for _, e := range entries {
			sources = append(sources, cast.ToString(e))
		}
		return PreselectSources(sources...)
	}

	picks := make([]domain.Pick, 0, len(entries))
	for _, e := range entries {
		m, _ := entryMap(e)
		picks = append(picks, pickFromMap(m))
	}
	return PreselectPicks(picks...)
}

// toEntries flattens any slice or array into a list of entries; typed slices
// such as []int are not handled by cast
func toEntries(raw any) []any {
	if entries, err := cast.ToSliceE(raw); err == nil {
		return entries
	}
	v := reflect.ValueOf(raw)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil
	}
	entries := make([]any, v.Len())
	for i := range entries {
		entries[i] = v.Index(i).Interface()
	}
	return entries
}

func entryMap(e any) (map[string]any, bool) {
	switch v := e.(type) {
	case map[string]any, map[any]any:
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[k] = val
		}
		return m, true
	default:
		return nil, false
	}
	m, err := cast.ToStringMapE(e)
	if err != nil {
		return nil, false
	}
	return m, true
}

func pickFromMap(m map[string]any) domain.Pick {
	pick := domain.Pick{PositionIndex: UnknownIndex}
	for k, v := range m {
		switch strings.ReplaceAll(strings.ToLower(k), "_", "") {
		case "source", "src":
			pick.Source = cast.ToString(v)
		case "positionindex", "index":
			if idx, err := cast.ToIntE(v); err == nil {
				pick.PositionIndex = idx
			}
		}
	}
	return pick
}
