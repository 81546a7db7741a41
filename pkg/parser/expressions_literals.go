package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"slang/interpreter-go/pkg/ast"
)

func (c *converter) literal(node *sitter.Node) ast.Expression {
	raw := sliceContent(node, c.source)
	var value any
	switch node.Kind() {
	case "number":
		value = parseNumber(raw)
	case "string":
		value = decodeString(raw)
	case "true":
		value = true
	case "false":
		value = false
	case "null":
		value = nil
	}
	return annotate(ast.NewLiteral(value, raw), node)
}

// parseNumber handles decimal, hex, octal and binary literals with optional
// numeric separators.
func parseNumber(raw string) float64 {
	clean := strings.ReplaceAll(raw, "_", "")
	if len(clean) > 2 && clean[0] == '0' {
		switch clean[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			if n, err := strconv.ParseUint(clean, 0, 64); err == nil {
				return float64(n)
			}
		}
	}
	if n, err := strconv.ParseFloat(clean, 64); err == nil {
		return n
	}
	return 0
}

// decodeString strips the quotes from a string literal and resolves escapes.
func decodeString(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' || i+1 >= len(body) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch esc := body[i]; esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case 'x':
			if i+2 < len(body) {
				if n, err := strconv.ParseUint(body[i+1:i+3], 16, 8); err == nil {
					b.WriteRune(rune(n))
					i += 2
					continue
				}
			}
			b.WriteByte(esc)
		case 'u':
			r, width := unicodeEscape(body[i+1:])
			if width == 0 {
				b.WriteByte(esc)
				continue
			}
			b.WriteRune(r)
			i += width
		default:
			b.WriteByte(esc)
		}
	}
	return b.String()
}

// unicodeEscape reads the part after `\u`: four hex digits or a braced code
// point. It returns the rune and how many bytes it consumed.
func unicodeEscape(s string) (rune, int) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return 0, 0
		}
		n, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return 0, 0
		}
		return rune(n), end + 1
	}
	if len(s) < 4 {
		return 0, 0
	}
	n, err := strconv.ParseUint(s[:4], 16, 32)
	if err != nil {
		return 0, 0
	}
	return rune(n), 4
}
