package ui

import (
	"imagepicker/internal/domain"
	"imagepicker/internal/picker"
)

// PreselectionReplacedMsg tells the grid the host swapped its preselection
type PreselectionReplacedMsg struct {
	Preselection *picker.Preselection
}

// ItemsMsg replaces the grid's item list. Focus is clamped to the new list and
// the picked set is kept.
type ItemsMsg struct {
	Items []domain.Item
}

// thumbsWarmedMsg reports the end of thumbnail pre-decoding
type thumbsWarmedMsg struct {
	err error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
