package workflow

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrInvalidRange indicates a selection range that cannot be parsed or
// does not fit the source file.
var ErrInvalidRange = errors.New("invalid selection range")

// Position is a 1-indexed line and column. Columns count characters.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Range is a selection from Start (inclusive) to End (exclusive).
type Range struct {
	Start Position
	End   Position
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// ParseRange parses "LINE:COL-LINE:COL".
func ParseRange(s string) (Range, error) {
	startText, endText, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Range{}, fmt.Errorf("%w: %q: expected LINE:COL-LINE:COL", ErrInvalidRange, s)
	}

	start, err := parsePosition(startText)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
	}
	end, err := parsePosition(endText)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
	}

	if end.Line < start.Line || (end.Line == start.Line && end.Column < start.Column) {
		return Range{}, fmt.Errorf("%w: %q: end is before start", ErrInvalidRange, s)
	}
	return Range{Start: start, End: end}, nil
}

func parsePosition(s string) (Position, error) {
	lineText, colText, ok := strings.Cut(s, ":")
	if !ok {
		return Position{}, fmt.Errorf("position %q must be LINE:COL", s)
	}
	line, err := strconv.Atoi(lineText)
	if err != nil || line < 1 {
		return Position{}, fmt.Errorf("line %q must be a positive number", lineText)
	}
	col, err := strconv.Atoi(colText)
	if err != nil || col < 1 {
		return Position{}, fmt.Errorf("column %q must be a positive number", colText)
	}
	return Position{Line: line, Column: col}, nil
}

// Selection is the selected text of a source file and its byte offsets.
type Selection struct {
	Range     Range
	StartByte int
	EndByte   int
	Text      string
}

// Select resolves r against content. A column one past the last character
// of a line addresses the end of that line.
func Select(content []byte, r Range) (*Selection, error) {
	start, err := offsetOf(content, r.Start)
	if err != nil {
		return nil, err
	}
	end, err := offsetOf(content, r.End)
	if err != nil {
		return nil, err
	}

	return &Selection{
		Range:     r,
		StartByte: start,
		EndByte:   end,
		Text:      string(content[start:end]),
	}, nil
}

// Replace returns content with the selection replaced by text.
func (s *Selection) Replace(content []byte, text string) []byte {
	out := make([]byte, 0, len(content)-(s.EndByte-s.StartByte)+len(text))
	out = append(out, content[:s.StartByte]...)
	out = append(out, text...)
	out = append(out, content[s.EndByte:]...)
	return out
}

func offsetOf(content []byte, p Position) (int, error) {
	offset := 0
	for line := 1; line < p.Line; line++ {
		i := bytes.IndexByte(content[offset:], '\n')
		if i < 0 {
			return 0, fmt.Errorf("%w: line %d is past the end of the file", ErrInvalidRange, p.Line)
		}
		offset += i + 1
	}

	for col := 1; col < p.Column; col++ {
		if offset >= len(content) || content[offset] == '\n' {
			return 0, fmt.Errorf("%w: column %d is past the end of line %d", ErrInvalidRange, p.Column, p.Line)
		}
		_, size := utf8.DecodeRune(content[offset:])
		offset += size
	}
	return offset, nil
}
