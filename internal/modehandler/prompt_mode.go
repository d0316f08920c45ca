package modehandler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/bitgrid/internal/grid"
	"github.com/bethropolis/bitgrid/internal/input"
	"github.com/bethropolis/bitgrid/internal/logger"
	"github.com/bethropolis/bitgrid/internal/quantize"
)

const (
	resizeLabel = "Size (COLSxROWS): "
	importLabel = "Image: "
)

// ErrBadDimensions is returned by ParseDimensions for text that is not
// of the form COLSxROWS.
var ErrBadDimensions = errors.New("expected COLSxROWS")

// ParseDimensions reads "COLSxROWS". The separator may also be 'X', '*',
// ',' or whitespace. Range checking is left to the grid.
func ParseDimensions(text string) (cols, rows int, err error) {
	fields := strings.FieldsFunc(strings.TrimSpace(text), func(r rune) bool {
		switch r {
		case 'x', 'X', '*', ',', ' ', '\t':
			return true
		}
		return false
	})
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadDimensions, text)
	}
	cols, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadDimensions, text)
	}
	rows, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadDimensions, text)
	}
	return cols, rows, nil
}

func (mh *ModeHandler) enterPrompt(mode InputMode) {
	mh.currentMode = mode
	mh.promptBuffer = mh.promptBuffer[:0]
	if mode == ModeResize {
		g := mh.editor.Grid()
		mh.promptBuffer = append(mh.promptBuffer, []rune(fmt.Sprintf("%dx%d", g.Cols(), g.Rows()))...)
	}
	mh.statusBar.ResetTemporaryMessage()
	mh.updatePrompt()
	logger.Debugf("ModeHandler: Entering %s mode", mode)
}

func (mh *ModeHandler) exitPrompt() {
	mh.currentMode = ModeNormal
	mh.promptBuffer = mh.promptBuffer[:0]
	mh.statusBar.ClearPrompt()
}

func (mh *ModeHandler) promptLabel() string {
	if mh.currentMode == ModeImport {
		return importLabel
	}
	return resizeLabel
}

func (mh *ModeHandler) updatePrompt() {
	mh.statusBar.SetPrompt(mh.promptLabel(), string(mh.promptBuffer))
}

// handleActionPrompt edits the prompt text. Shortcuts are not active here.
func (mh *ModeHandler) handleActionPrompt(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.promptBuffer = append(mh.promptBuffer, actionEvent.Rune)
		mh.updatePrompt()

	case input.ActionDeleteBackward:
		if len(mh.promptBuffer) == 0 {
			mh.exitPrompt()
			return true
		}
		mh.promptBuffer = mh.promptBuffer[:len(mh.promptBuffer)-1]
		mh.updatePrompt()

	case input.ActionSubmit:
		mode, text := mh.currentMode, string(mh.promptBuffer)
		mh.exitPrompt()
		if mode == ModeImport {
			mh.importImage(text)
		} else {
			mh.resize(text)
		}

	case input.ActionCancel:
		mh.exitPrompt()
		logger.Debugf("ModeHandler: Prompt canceled")

	default:
		return false
	}
	return true
}

func (mh *ModeHandler) resize(text string) {
	cols, rows, err := ParseDimensions(text)
	if err == nil {
		err = mh.editor.Resize(cols, rows)
	}
	if err != nil {
		if errors.Is(err, grid.ErrInvalidDimensions) {
			mh.statusBar.SetTemporaryMessage("Size must be 1-%d x 1-%d", grid.MaxCols, grid.MaxRows)
		} else {
			mh.statusBar.SetTemporaryMessage("Invalid size: %v", err)
		}
		logger.Debugf("ModeHandler: resize rejected: %v", err)
		return
	}
	mh.statusBar.SetTemporaryMessage("Resized to %dx%d", cols, rows)
}

func (mh *ModeHandler) importImage(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	img, err := quantize.Open(path)
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Import failed: %v", err)
		logger.Warnf("ModeHandler: import of '%s' failed: %v", path, err)
		return
	}
	threshold := mh.threshold
	if mh.autoThreshold {
		threshold = quantize.AutoThreshold(img)
	}
	if err := mh.editor.Import(img, threshold); err != nil {
		mh.statusBar.SetTemporaryMessage("Import failed: %v", err)
		logger.Warnf("ModeHandler: import of '%s' failed: %v", path, err)
		return
	}
	mh.statusBar.SetTemporaryMessage("Imported %s (threshold %.0f)", path, threshold)
}

// GetPromptBuffer returns the text typed into the open prompt.
func (mh *ModeHandler) GetPromptBuffer() string {
	if mh.currentMode == ModeNormal {
		return ""
	}
	return string(mh.promptBuffer)
}
