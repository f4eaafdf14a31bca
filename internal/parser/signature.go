package parser

import (
	"regexp"
	"strings"

	"github.com/toyz/mockslot/internal/errors"
)

var identPattern = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_]*$`)

// Signature is a method declaration line split into its raw parts
type Signature struct {
	Name    string // method name
	Args    string // text between the argument parentheses
	Results string // result list with any outer parentheses removed, empty when none
}

// SplitSignature splits a trimmed method line such as `Read(p []byte) (int, error)`.
//
// The line is scanned once with a parenthesis depth counter: the first '(' at depth 0
// ends the name, and the argument list ends when the depth returns to 0. Argument and
// result types may themselves contain parenthesized function types, so the first or
// last parenthesis cannot be used as a delimiter.
func SplitSignature(line string) (Signature, error) {
	line = strings.TrimSpace(line)

	open, closeIdx, depth := -1, -1, 0
scan:
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '(':
			if open == -1 {
				open = i
			}
			depth++
		case ')':
			depth--
			if depth < 0 {
				break scan
			}
			if depth == 0 && open != -1 {
				closeIdx = i
				break scan
			}
		}
	}

	if open == -1 {
		return Signature{}, errors.NewSyntaxErrorWithToken("method declaration has no argument list", line)
	}
	if closeIdx == -1 {
		return Signature{}, errors.NewSyntaxErrorWithToken("unbalanced parentheses in method declaration", line)
	}

	name := strings.TrimSpace(line[:open])
	if !identPattern.MatchString(name) {
		return Signature{}, errors.NewSyntaxErrorWithToken("invalid method name", line)
	}

	results, err := stripResultParens(strings.TrimSpace(line[closeIdx+1:]))
	if err != nil {
		return Signature{}, err
	}

	return Signature{
		Name:    name,
		Args:    strings.TrimSpace(line[open+1 : closeIdx]),
		Results: results,
	}, nil
}

// stripResultParens removes one outer pair of parentheses when it wraps the whole result
// list. Anything else is a single unnamed result type and is returned as is.
func stripResultParens(results string) (string, error) {
	if results == "" || results[0] != '(' {
		return results, nil
	}

	end := matchingClose(results, 0)
	if end == -1 {
		return "", errors.NewSyntaxErrorWithToken("unbalanced parentheses in result list", results)
	}
	if end != len(results)-1 {
		return results, nil
	}
	return strings.TrimSpace(results[1:end]), nil
}
