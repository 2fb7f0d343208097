package resetflow

// CodeLength is the number of entry slots for a passcode.
const CodeLength = 6

// CodeEntry models the 6-slot passcode input: one digit per slot plus a
// focus cursor. All normalization (digit stripping, auto-advance, paste
// distribution) lives here so the flow only ever sees a clean code.
type CodeEntry struct {
	slots [CodeLength]byte // '0'-'9', 0 = empty
	focus int
}

func (e *CodeEntry) Focus() int { return e.focus }

// Code returns the digits currently entered, in slot order, skipping
// empty slots.
func (e *CodeEntry) Code() string {
	buf := make([]byte, 0, CodeLength)
	for _, s := range e.slots {
		if s != 0 {
			buf = append(buf, s)
		}
	}
	return string(buf)
}

func (e *CodeEntry) Len() int { return len(e.Code()) }

// SetDigit applies a keystroke to slot i: non-digits are stripped, at most
// one digit is kept, and entering a digit advances focus to the next slot.
// Input with no digit clears the slot.
func (e *CodeEntry) SetDigit(i int, input string) {
	if i < 0 || i >= CodeLength {
		return
	}
	d := firstDigit(input)
	if d == 0 {
		e.slots[i] = 0
		return
	}
	e.slots[i] = d
	if i < CodeLength-1 {
		e.focus = i + 1
	} else {
		e.focus = i
	}
}

// Backspace clears the focused slot; on an already-empty slot it moves
// focus to the previous one instead.
func (e *CodeEntry) Backspace() {
	if e.slots[e.focus] == 0 {
		if e.focus > 0 {
			e.focus--
		}
		return
	}
	e.slots[e.focus] = 0
}

// Arrow keys move focus without touching slot contents.
func (e *CodeEntry) ArrowLeft() {
	if e.focus > 0 {
		e.focus--
	}
}

func (e *CodeEntry) ArrowRight() {
	if e.focus < CodeLength-1 {
		e.focus++
	}
}

// Paste replaces the whole entry with the pasted digits: non-digits are
// stripped, the rest truncated to six, distributed from slot one, and
// focus lands on the last filled slot. An all-junk paste changes nothing.
// The return value is always true: default paste handling is suppressed
// either way.
func (e *CodeEntry) Paste(text string) bool {
	digits := make([]byte, 0, CodeLength)
	for i := 0; i < len(text) && len(digits) < CodeLength; i++ {
		if text[i] >= '0' && text[i] <= '9' {
			digits = append(digits, text[i])
		}
	}
	if len(digits) == 0 {
		return true
	}
	for i := range e.slots {
		if i < len(digits) {
			e.slots[i] = digits[i]
		} else {
			e.slots[i] = 0
		}
	}
	e.focus = len(digits) - 1
	return true
}

func (e *CodeEntry) Reset() {
	e.slots = [CodeLength]byte{}
	e.focus = 0
}

func firstDigit(s string) byte {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return s[i]
		}
	}
	return 0
}
