package parser

// maskSource blanks out comments, and string and rune literals when maskStrings is set.
// Every masked byte becomes a space except newlines, so byte offsets and line numbers
// in the result match the input.
func maskSource(src string, maskStrings bool) string {
	out := []byte(src)
	blank := func(from, to int) {
		for i := from; i < to && i < len(out); i++ {
			if out[i] != '\n' {
				out[i] = ' '
			}
		}
	}

	for i := 0; i < len(src); {
		switch {
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '/':
			end := i
			for end < len(src) && src[end] != '\n' {
				end++
			}
			blank(i, end)
			i = end
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '*':
			end := i + 2
			for end < len(src) && !(src[end] == '*' && end+1 < len(src) && src[end+1] == '/') {
				end++
			}
			end += 2
			if end > len(src) {
				end = len(src)
			}
			blank(i, end)
			i = end
		case src[i] == '"' || src[i] == '\'':
			end := skipQuoted(src, i)
			if maskStrings {
				blank(i+1, end-1)
			}
			i = end
		case src[i] == '`':
			end := i + 1
			for end < len(src) && src[end] != '`' {
				end++
			}
			if end < len(src) {
				end++
			}
			if maskStrings {
				blank(i+1, end-1)
			}
			i = end
		default:
			i++
		}
	}

	return string(out)
}

// skipQuoted returns the offset just past the interpreted string or rune literal
// starting at start. Unterminated literals stop at the end of the line.
func skipQuoted(src string, start int) int {
	quote := src[start]
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '\n':
			return i
		case quote:
			return i + 1
		}
	}
	return len(src)
}

// lineAt returns the 1-based line number of offset
func lineAt(src string, offset int) int {
	line := 1
	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
		}
	}
	return line
}

// matchingClose returns the index of the bracket closing the one at open, or -1.
// Only the bracket kind at open is counted.
func matchingClose(s string, open int) int {
	var closer byte
	switch s[open] {
	case '(':
		closer = ')'
	case '[':
		closer = ']'
	case '{':
		closer = '}'
	default:
		return -1
	}

	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case s[open]:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
