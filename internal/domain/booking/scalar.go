package booking

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

type scalarKind uint8

const (
	kindAbsent scalarKind = iota
	kindString
	kindNumber
	kindBool
)

// Scalar is a JSON value the backend may send either as a string or a number.
// Truthiness follows the page data convention: "" and 0 count as absent.
type Scalar struct {
	text string
	kind scalarKind
}

// Text builds a string scalar.
func Text(s string) Scalar { return Scalar{text: s, kind: kindString} }

// Number builds a numeric scalar.
func Number(n float64) Scalar {
	return Scalar{text: strconv.FormatFloat(n, 'f', -1, 64), kind: kindNumber}
}

func (s Scalar) IsZero() bool { return s.kind == kindAbsent }

// Present reports whether the value is set and non-empty.
func (s Scalar) Present() bool {
	switch s.kind {
	case kindString:
		return s.text != ""
	case kindNumber:
		f, err := strconv.ParseFloat(s.text, 64)
		return err == nil && f != 0
	case kindBool:
		return s.text == "true"
	}
	return false
}

func (s Scalar) String() string { return s.text }

// Float reads the value as a number; anything non-numeric reads as 0.
func (s Scalar) Float() float64 {
	if s.kind != kindNumber && s.kind != kindString {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s.text), 64)
	if err != nil {
		return 0
	}
	return f
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = Scalar{}
	case len(data) > 0 && data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = Text(text)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*s = Scalar{text: string(data), kind: kindBool}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*s = Scalar{text: n.String(), kind: kindNumber}
	}
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case kindString:
		return json.Marshal(s.text)
	case kindNumber, kindBool:
		return []byte(s.text), nil
	}
	return []byte("null"), nil
}
