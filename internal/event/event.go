// internal/event/event.go
package event

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Editor session events
	TypeGridModified   // One or more cells changed (paint, undo, redo)
	TypeGridReplaced   // Grid rebuilt wholesale (resize, import, clear)
	TypeHistoryChanged // canUndo/canRedo may have changed

	// Front-end events
	TypeOutputToggled // Output pane shown or hidden
	TypeFormatChanged // Output format switched
	TypeOutputCopied  // Output text sent to the clipboard
	TypeViewScrolled  // Grid or output pane panned

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

func (t Type) String() string {
	switch t {
	case TypeGridModified:
		return "GridModified"
	case TypeGridReplaced:
		return "GridReplaced"
	case TypeHistoryChanged:
		return "HistoryChanged"
	case TypeOutputToggled:
		return "OutputToggled"
	case TypeFormatChanged:
		return "FormatChanged"
	case TypeOutputCopied:
		return "OutputCopied"
	case TypeViewScrolled:
		return "ViewScrolled"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	default:
		return "Unknown"
	}
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// GridModifiedData lists how many cells a paint, undo or redo touched.
type GridModifiedData struct {
	Cells int
}

// GridReplacedData describes the new grid extent and why it was rebuilt.
type GridReplacedData struct {
	Cols, Rows int
	Reason     string // "resize", "import", "clear"
}

// HistoryChangedData carries the undo/redo availability flags.
type HistoryChangedData struct {
	CanUndo bool
	CanRedo bool
}

// OutputToggledData reports the new visibility of the output pane.
type OutputToggledData struct {
	Visible bool
}

// FormatChangedData carries the selected output format name.
type FormatChangedData struct {
	Format string
}

// OutputCopiedData reports how many lines were copied and where.
type OutputCopiedData struct {
	Lines  int
	System bool
}

// ViewScrolledData is a relative scroll request. Positive values move the
// view down or right.
type ViewScrolledData struct {
	Rows, Cols  int
	OutputLines int
}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}
