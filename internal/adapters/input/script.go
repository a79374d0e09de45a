// Package input reads simulation scripts from a line-oriented text stream.
//
// A script is a header line "<routes> <actions>", a line of initial route
// capacities, then command lines. Every rejection is a *command.ParseError
// and no command reaches the simulation unless the whole script is valid.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/routesim/internal/core/command"
)

// ReadMode controls how many command lines are consumed.
type ReadMode string

const (
	// ReadLimited stops after the header's action count (or at EOF).
	ReadLimited ReadMode = "limited"
	// ReadAll reads to EOF and treats the action count as advisory.
	ReadAll ReadMode = "all"
)

// ParseReadMode validates a read mode name.
func ParseReadMode(s string) (ReadMode, error) {
	switch ReadMode(s) {
	case ReadLimited, ReadAll:
		return ReadMode(s), nil
	}
	return "", fmt.Errorf("unknown read mode %q (valid: %s, %s)", s, ReadLimited, ReadAll)
}

// Script is a fully validated simulation input.
type Script struct {
	DeclaredRoutes  int
	DeclaredActions int
	Capacities      []int64
	Commands        []command.Command
}

// ReadScript parses a complete script from r.
func ReadScript(r io.Reader, mode ReadMode) (*Script, error) {
	lr := &lineReader{r: bufio.NewReader(r)}

	header, ok, err := lr.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &command.ParseError{Line: 1, Reason: "invalid number of arguments in first line, should be <routes> <actions>"}
	}
	routes, actions, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	capsLine, ok, err := lr.next()
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(capsLine) == "" {
		return nil, &command.ParseError{Line: 2, Reason: "routes can't be empty"}
	}
	capacities, err := parseCapacities(capsLine, routes)
	if err != nil {
		return nil, err
	}

	script := &Script{
		DeclaredRoutes:  routes,
		DeclaredActions: actions,
		Capacities:      capacities,
	}

	for mode == ReadAll || len(script.Commands) < actions {
		line, ok, err := lr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		cmd, err := command.ParseLine(line)
		if err != nil {
			var perr *command.ParseError
			if errors.As(err, &perr) {
				perr.Line = lr.lineNo
			}
			return nil, err
		}
		script.Commands = append(script.Commands, cmd)
	}

	return script, nil
}

func parseHeader(line string) (int, int, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return 0, 0, &command.ParseError{
			Line:    1,
			Content: line,
			Reason:  "invalid number of arguments in first line, should be <routes> <actions>",
		}
	}

	values := make([]int, 2)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, 0, &command.ParseError{Line: 1, Content: line, Reason: "invalid number format in first line", Err: err}
		}
		values[i] = v
	}
	return values[0], values[1], nil
}

func parseCapacities(line string, declared int) ([]int64, error) {
	parts := strings.Fields(line)
	capacities := make([]int64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, &command.ParseError{Line: 2, Content: line, Reason: "invalid number format in routes", Err: err}
		}
		capacities[i] = v
	}

	if len(capacities) != declared {
		return nil, &command.ParseError{
			Line:    2,
			Content: line,
			Reason:  fmt.Sprintf("invalid number of routes, should be %d as specified in first line", declared),
		}
	}
	return capacities, nil
}

// lineReader yields lines without their terminators and tracks line numbers.
// Lines are not length-limited.
type lineReader struct {
	r      *bufio.Reader
	lineNo int
}

func (lr *lineReader) next() (string, bool, error) {
	line, err := lr.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false, fmt.Errorf("failed to read input: %w", err)
	}
	if err == io.EOF && line == "" {
		return "", false, nil
	}
	lr.lineNo++
	return strings.TrimRight(line, "\r\n"), true, nil
}
