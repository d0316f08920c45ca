// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps specific key events to editor actions.
type Keymap map[tcell.Key]Action        // For special keys (Delete, Esc, Ctrl combos)
type RuneKeymap map[rune]Action         // For single letter shortcuts
type ModKeymap map[tcell.ModMask]Keymap // For keys combined with modifiers (Ctrl, Alt, Shift)

// InputProcessor translates tcell key events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

// loadDefaultBindings sets up the initial key mappings.
func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[tcell.KeyDelete] = ActionClear
	p.keymap[tcell.KeyEscape] = ActionQuit
	p.keymap[tcell.KeyCtrlC] = ActionQuit
	p.keymap[tcell.KeyCtrlZ] = ActionUndo
	p.keymap[tcell.KeyCtrlY] = ActionRedo
	p.keymap[tcell.KeyUp] = ActionPanUp
	p.keymap[tcell.KeyDown] = ActionPanDown
	p.keymap[tcell.KeyLeft] = ActionPanLeft
	p.keymap[tcell.KeyRight] = ActionPanRight
	p.keymap[tcell.KeyPgUp] = ActionScrollOutputUp
	p.keymap[tcell.KeyPgDn] = ActionScrollOutputDown

	// --- Modifier Keys ---
	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlZ] = ActionUndo
	ctrlMap[tcell.KeyCtrlY] = ActionRedo
	ctrlMap[tcell.KeyCtrlQ] = ActionQuit
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	// Ctrl+Shift+Z is the second redo chord.
	p.modKeymap[tcell.ModCtrl|tcell.ModShift] = Keymap{tcell.KeyCtrlZ: ActionRedo}

	// --- Rune Mappings ---
	p.runeKeymap['u'] = ActionUndo
	p.runeKeymap['r'] = ActionRedo
	p.runeKeymap['o'] = ActionToggleOutput
	p.runeKeymap['f'] = ActionToggleFormat
	p.runeKeymap['y'] = ActionCopy
	p.runeKeymap['n'] = ActionResizePrompt
	p.runeKeymap['i'] = ActionImportPrompt
	p.runeKeymap['t'] = ActionCycleTheme
	p.runeKeymap['q'] = ActionQuit
}

// Bind maps a rune shortcut to action, replacing any existing binding.
func (p *InputProcessor) Bind(r rune, action Action) {
	p.runeKeymap[r] = action
}

// ProcessEvent takes a tcell key event and returns the corresponding
// ActionEvent for normal (drawing) mode.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	// 1. Check Modifier + Key combinations
	if modKeyMap, modOk := p.modKeymap[mod]; modOk {
		if action, keyOk := modKeyMap[key]; keyOk {
			return ActionEvent{Action: action}
		}
	}
	// Control keys already imply Ctrl; drop it so the plain map applies.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	// 2. Check simple Key mappings
	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	// 3. Check Rune mappings
	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		if action, ok := p.runeKeymap[ev.Rune()]; ok {
			return ActionEvent{Action: action, Rune: ev.Rune()}
		}
	}

	// 4. No mapping found
	return ActionEvent{Action: ActionUnknown}
}

// ProcessPromptEvent decodes a key while a prompt is open.
// Shortcuts are not interpreted; runes are text.
func (p *InputProcessor) ProcessPromptEvent(ev *tcell.EventKey) ActionEvent {
	switch ev.Key() {
	case tcell.KeyEnter:
		return ActionEvent{Action: ActionSubmit}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionEvent{Action: ActionCancel}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ActionEvent{Action: ActionDeleteBackward}
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
		}
	}
	return ActionEvent{Action: ActionUnknown}
}
