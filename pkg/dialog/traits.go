package dialog

import (
	"fmt"
	"strings"
	"unicode"
)

// KeyboardKind restricts which characters an input accepts.
type KeyboardKind int

const (
	KeyboardDefault KeyboardKind = iota
	KeyboardASCII
	KeyboardNumbersAndPunctuation
	KeyboardURL
	KeyboardNumberPad
	KeyboardPhonePad
	KeyboardEmail
)

var keyboardNames = map[KeyboardKind]string{
	KeyboardDefault:               "default",
	KeyboardASCII:                 "ascii",
	KeyboardNumbersAndPunctuation: "numbers-and-punctuation",
	KeyboardURL:                   "url",
	KeyboardNumberPad:             "number-pad",
	KeyboardPhonePad:              "phone-pad",
	KeyboardEmail:                 "email",
}

func (k KeyboardKind) String() string {
	if s, ok := keyboardNames[k]; ok {
		return s
	}
	return fmt.Sprintf("keyboard(%d)", int(k))
}

// Accepts reports whether r may be typed with this keyboard.
func (k KeyboardKind) Accepts(r rune) bool {
	switch k {
	case KeyboardASCII:
		return r < unicode.MaxASCII
	case KeyboardNumbersAndPunctuation:
		return unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) || r == ' '
	case KeyboardURL, KeyboardEmail:
		return r < unicode.MaxASCII && !unicode.IsSpace(r)
	case KeyboardNumberPad:
		return unicode.IsDigit(r)
	case KeyboardPhonePad:
		return unicode.IsDigit(r) || strings.ContainsRune("+*#()- ", r)
	default:
		return true
	}
}

// ParseKeyboardKind parses the name used in form definitions.
func ParseKeyboardKind(s string) (KeyboardKind, error) {
	if s == "" {
		return KeyboardDefault, nil
	}
	for k, name := range keyboardNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return KeyboardDefault, fmt.Errorf("unknown keyboard %q", s)
}

// Capitalization controls automatic upper-casing while typing.
type Capitalization int

const (
	CapitalizeNone Capitalization = iota
	CapitalizeWords
	CapitalizeSentences
	CapitalizeAllCharacters
)

var capitalizationNames = map[Capitalization]string{
	CapitalizeNone:          "none",
	CapitalizeWords:         "words",
	CapitalizeSentences:     "sentences",
	CapitalizeAllCharacters: "all",
}

func (c Capitalization) String() string {
	if s, ok := capitalizationNames[c]; ok {
		return s
	}
	return fmt.Sprintf("capitalization(%d)", int(c))
}

// Apply returns r as it should be inserted after prev.
func (c Capitalization) Apply(prev string, r rune) rune {
	switch c {
	case CapitalizeAllCharacters:
		return unicode.ToUpper(r)
	case CapitalizeWords:
		if prev == "" || unicode.IsSpace(lastRune(prev)) {
			return unicode.ToUpper(r)
		}
	case CapitalizeSentences:
		if startsSentence(prev) {
			return unicode.ToUpper(r)
		}
	}
	return r
}

func startsSentence(prev string) bool {
	trimmed := strings.TrimRightFunc(prev, unicode.IsSpace)
	if trimmed == "" {
		return true
	}
	if len(trimmed) == len(prev) {
		// still inside a word
		return false
	}
	if strings.ContainsRune(prev[len(trimmed):], '\n') {
		return true
	}
	return strings.ContainsRune(".!?", lastRune(trimmed))
}

func lastRune(s string) rune {
	rs := []rune(s)
	if len(rs) == 0 {
		return 0
	}
	return rs[len(rs)-1]
}

// ParseCapitalization parses the name used in form definitions.
// An empty name yields the sentence default.
func ParseCapitalization(s string) (Capitalization, error) {
	if s == "" {
		return CapitalizeSentences, nil
	}
	for c, name := range capitalizationNames {
		if strings.EqualFold(name, s) {
			return c, nil
		}
	}
	return CapitalizeSentences, fmt.Errorf("unknown capitalization %q", s)
}

// Correction selects the autocorrection mode of an input.
type Correction int

const (
	CorrectionDefault Correction = iota
	CorrectionNo
	CorrectionYes
)

var correctionNames = map[Correction]string{
	CorrectionDefault: "default",
	CorrectionNo:      "no",
	CorrectionYes:     "yes",
}

func (c Correction) String() string {
	if s, ok := correctionNames[c]; ok {
		return s
	}
	return fmt.Sprintf("correction(%d)", int(c))
}

// ParseCorrection parses the name used in form definitions.
func ParseCorrection(s string) (Correction, error) {
	if s == "" {
		return CorrectionDefault, nil
	}
	for c, name := range correctionNames {
		if strings.EqualFold(name, s) {
			return c, nil
		}
	}
	return CorrectionDefault, fmt.Errorf("unknown correction %q", s)
}

// ReturnKey is the affordance offered by the return key of an input.
type ReturnKey int

const (
	ReturnKeyDefault ReturnKey = iota
	ReturnKeyNext
	ReturnKeyDone
)
