package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventItemsDiscovered  EventType = "ItemsDiscovered"
	EventSelectionChanged EventType = "SelectionChanged"
	EventError            EventType = "Error"
	EventScanStarted      EventType = "ScanStarted"
	EventScanCompleted    EventType = "ScanCompleted"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventConfigChanged    EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ItemsDiscoveredEvent carries the full, ordered item list of a finished scan
type ItemsDiscoveredEvent struct {
	Root  string
	Items []Item
}

func (e ItemsDiscoveredEvent) Type() EventType { return EventItemsDiscovered }

// SelectionChangedEvent is emitted by the host whenever the picked set changes
type SelectionChangedEvent struct {
	Picks   []Pick
	Clicked Pick
	Removed bool
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ScanStartedEvent is emitted when media scanning begins
type ScanStartedEvent struct {
	Root string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ScanCompletedEvent is emitted when media scanning completes
type ScanCompletedEvent struct {
	Root       string
	ItemsFound int
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	BaseDir string
	Path    string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when the config file changed on disk and was reloaded.
// Preselected is the raw preselection value as decoded from the file.
type ConfigChangedEvent struct {
	Path        string
	Preselected []any
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
