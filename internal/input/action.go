// internal/input/action.go
package input

// Action represents a command or operation to be performed by the editor.
type Action int

// Define the set of possible editor actions.
const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit

	// --- History ---
	ActionUndo
	ActionRedo
	ActionClear // Wipe the grid and its history

	// --- Output ---
	ActionCopy
	ActionToggleOutput
	ActionToggleFormat
	ActionCycleTheme

	// --- Viewport ---
	ActionPanUp
	ActionPanDown
	ActionPanLeft
	ActionPanRight
	ActionScrollOutputUp
	ActionScrollOutputDown

	// --- Prompts ---
	ActionResizePrompt // Opens the COLSxROWS prompt
	ActionImportPrompt // Opens the image path prompt
	ActionInsertRune   // Requires Rune argument
	ActionDeleteBackward
	ActionSubmit
	ActionCancel
)

var actionNames = map[Action]string{
	ActionQuit:             "quit",
	ActionUndo:             "undo",
	ActionRedo:             "redo",
	ActionClear:            "clear",
	ActionCopy:             "copy",
	ActionToggleOutput:     "toggle-output",
	ActionToggleFormat:     "toggle-format",
	ActionCycleTheme:       "cycle-theme",
	ActionPanUp:            "pan-up",
	ActionPanDown:          "pan-down",
	ActionPanLeft:          "pan-left",
	ActionPanRight:         "pan-right",
	ActionScrollOutputUp:   "scroll-output-up",
	ActionScrollOutputDown: "scroll-output-down",
	ActionResizePrompt:     "resize",
	ActionImportPrompt:     "import",
	ActionInsertRune:       "insert-rune",
	ActionDeleteBackward:   "delete-backward",
	ActionSubmit:           "submit",
	ActionCancel:           "cancel",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
}
