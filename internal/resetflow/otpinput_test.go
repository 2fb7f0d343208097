package resetflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetDigitStripsAndAdvances(t *testing.T) {
	var e CodeEntry

	e.SetDigit(0, "a1")
	assert.Equal(t, "1", e.Code())
	assert.Equal(t, 1, e.Focus(), "entering a digit advances focus")

	e.SetDigit(1, "23")
	assert.Equal(t, "12", e.Code(), "only the first digit of the input is kept")
	assert.Equal(t, 2, e.Focus())

	e.SetDigit(1, "")
	assert.Equal(t, "1", e.Code(), "empty input clears the slot")
	assert.Equal(t, 2, e.Focus(), "clearing does not move focus")

	e.SetDigit(1, "x")
	assert.Equal(t, "1", e.Code(), "non-digit input clears the slot too")
}

func TestSetDigitLastSlotKeepsFocus(t *testing.T) {
	var e CodeEntry
	for i := 0; i < CodeLength; i++ {
		e.SetDigit(i, "7")
	}
	assert.Equal(t, CodeLength-1, e.Focus())
	assert.Equal(t, "777777", e.Code())
}

func TestPasteMixedContent(t *testing.T) {
	var e CodeEntry
	handled := e.Paste("12a3456")
	assert.True(t, handled)
	assert.Equal(t, "123456", e.Code())
	assert.Equal(t, 5, e.Focus(), "focus lands on the last filled slot")
}

func TestPasteTruncatesToSixDigits(t *testing.T) {
	var e CodeEntry
	e.Paste("1234567890")
	assert.Equal(t, "123456", e.Code())
	assert.Equal(t, 5, e.Focus())
}

func TestPastePartialClearsTail(t *testing.T) {
	var e CodeEntry
	e.Paste("999999")
	e.Paste("12")
	assert.Equal(t, "12", e.Code(), "a paste replaces the whole entry")
	assert.Equal(t, 1, e.Focus())
}

func TestPasteWithoutDigitsIsNoOp(t *testing.T) {
	var e CodeEntry
	e.Paste("123")
	before := e.Code()
	focus := e.Focus()

	assert.True(t, e.Paste(""), "default paste is suppressed even for an empty paste")
	assert.True(t, e.Paste("abc"))
	assert.Equal(t, before, e.Code())
	assert.Equal(t, focus, e.Focus())
}

func TestBackspace(t *testing.T) {
	var e CodeEntry
	e.SetDigit(0, "1")
	e.SetDigit(1, "2") // focus now on slot 2, which is empty

	e.Backspace()
	assert.Equal(t, 1, e.Focus(), "backspace on an empty slot moves focus back")
	assert.Equal(t, "12", e.Code())

	e.Backspace()
	assert.Equal(t, "1", e.Code(), "backspace on a filled slot clears it in place")
	assert.Equal(t, 1, e.Focus())
}

func TestArrowsMoveFocusOnly(t *testing.T) {
	var e CodeEntry
	e.Paste("123456")

	e.ArrowLeft()
	e.ArrowLeft()
	assert.Equal(t, 3, e.Focus())
	assert.Equal(t, "123456", e.Code())

	e.ArrowRight()
	assert.Equal(t, 4, e.Focus())

	for i := 0; i < 10; i++ {
		e.ArrowRight()
	}
	assert.Equal(t, CodeLength-1, e.Focus(), "focus is clamped at the last slot")

	for i := 0; i < 10; i++ {
		e.ArrowLeft()
	}
	assert.Equal(t, 0, e.Focus(), "focus is clamped at the first slot")
}

func TestReset(t *testing.T) {
	var e CodeEntry
	e.Paste("123456")
	e.Reset()
	assert.Equal(t, "", e.Code())
	assert.Equal(t, 0, e.Focus())
}
