package command

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError is the single error kind for rejected script input.
// Line is 1-based; zero means the position is unknown.
type ParseError struct {
	Line    int
	Content string
	Reason  string
	Err     error
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Content != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Content)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseLine validates a single command line and builds the matching variant.
// The returned error, if any, is a *ParseError without a line number.
func ParseLine(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return nil, &ParseError{Content: line, Reason: "invalid action format"}
	}

	if len(parts[0]) != 1 {
		return nil, &ParseError{Content: line, Reason: "invalid action signature"}
	}
	tag := parts[0][0]
	want, ok := arity[tag]
	if !ok {
		return nil, &ParseError{Content: line, Reason: "invalid action signature"}
	}

	params := parts[1:]
	if len(params) != want {
		return nil, &ParseError{
			Content: line,
			Reason:  fmt.Sprintf("invalid action parameters length, should be: %s", Usage(tag)),
		}
	}

	values := make([]int64, len(params))
	for i, p := range params {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, &ParseError{Content: line, Reason: "invalid parameter format in action", Err: err}
		}
		values[i] = v
	}

	switch tag {
	case TagQuery:
		return Query{From: values[0], To: values[1], At: values[2]}, nil
	case TagAdd:
		return Add{Route: values[0], Capacity: values[1], At: values[2]}, nil
	case TagPlus:
		return Plus{Route: values[0], Capacity: values[1], At: values[2]}, nil
	default:
		return Cancel{Route: values[0], At: values[1]}, nil
	}
}

// Usage returns the expected shape of a command line for tag.
func Usage(tag byte) string {
	switch tag {
	case TagQuery:
		return "Q <from-route> <to-route> <time>"
	case TagAdd:
		return "A <route> <capacity> <time>"
	case TagPlus:
		return "P <route> <capacity> <time>"
	case TagCancel:
		return "C <route> <time>"
	}
	return ""
}
