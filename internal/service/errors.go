package service

import "fmt"

// MalformedSourceError reports source text that could not be parsed at all.
// It is fatal for the run: no Report is emitted so downstream stages never
// see a partial result.
type MalformedSourceError struct {
	Language string
	Line     int
	Column   int
	Msg      string
}

func (e *MalformedSourceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed %s source at line %d, column %d: %s", e.Language, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("malformed %s source: %s", e.Language, e.Msg)
}
