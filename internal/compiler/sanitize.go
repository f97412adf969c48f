package compiler

import (
	"regexp"
	"strings"
)

// Shape classifies how submitted source exposes its render function.
type Shape int

const (
	// ShapeBody: no export at all; the whole text is treated as the body
	// of an anonymous render function.
	ShapeBody Shape = iota
	// ShapeNamedExport: `export default function Foo() {...}`.
	ShapeNamedExport
	// ShapeIdentifierExport: `export default Foo;` with Foo defined earlier.
	ShapeIdentifierExport
	// ShapeExpressionExport: `export default <expression>;`.
	ShapeExpressionExport
	// ShapeCanonical: already-sanitized text declaring the canonical name.
	ShapeCanonical
)

func (s Shape) String() string {
	switch s {
	case ShapeBody:
		return "body"
	case ShapeNamedExport:
		return "named-export"
	case ShapeIdentifierExport:
		return "identifier-export"
	case ShapeExpressionExport:
		return "expression-export"
	case ShapeCanonical:
		return "canonical"
	}
	return "unknown"
}

// CanonicalName is the synthesized binding every sanitized source ends up
// declaring, so a second sanitize pass is a no-op.
const CanonicalName = "__Scenario"

// CanonicalSource is sanitized, body-normalized source plus the identifier
// the synthesizer must return as the component.
type CanonicalSource struct {
	Text       string
	CallTarget string
	Shape      Shape
}

var (
	exportDefaultRe      = regexp.MustCompile(`(^|\n)\s*export\s+default\b`)
	exportNamedFuncRe    = regexp.MustCompile(`(^|\n)(\s*)export\s+default\s+(async\s+)?function\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`)
	exportIdentRe        = regexp.MustCompile(`(^|\n)\s*export\s+default\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*;?[ \t]*(\n|$)`)
	exportPrefixRe       = regexp.MustCompile(`export\s+default`)
	canonicalDeclaredRe  = regexp.MustCompile(`(^|\n)\s*(function\s+` + CanonicalName + `\b|(const|let|var)\s+` + CanonicalName + `\b)`)
	importLineRe         = regexp.MustCompile(`^import\b`)
	moduleSpecTerminalRe = regexp.MustCompile(`["'][^"']*["']\s*;?\s*$`)
)

// Sanitize normalizes an arbitrary claimed render-function source into its
// canonical shape: import declarations stripped, default exports rewritten
// to plain declarations, and the call target bound to the canonical name so
// a trailing reference to it always resolves.
func Sanitize(raw string) (*CanonicalSource, error) {
	text := stripImports(raw)

	switch n := len(exportDefaultRe.FindAllStringIndex(text, -1)); {
	case n > 1:
		return nil, &ShapeError{Reason: "multiple default exports"}
	case n == 0:
		if canonicalDeclaredRe.MatchString(text) {
			return &CanonicalSource{Text: text, CallTarget: CanonicalName, Shape: ShapeCanonical}, nil
		}
		// Whole text is the render body, verbatim.
		body := "function " + CanonicalName + "() {\n" + text + "\n}\n"
		return &CanonicalSource{Text: body + CanonicalName + ";\n", CallTarget: CanonicalName, Shape: ShapeBody}, nil
	}

	if m := exportNamedFuncRe.FindStringSubmatchIndex(text); m != nil {
		name := text[m[8]:m[9]]
		// Pair the export keyword with its enclosing construct before
		// rewriting anything: an unmatched function body means we cannot
		// safely strip the wrapper.
		if !functionBodyBalanced(text, m[1]-1) {
			return nil, &ShapeError{Reason: "unmatched brace in default-exported function"}
		}
		out := exportPrefixRe.ReplaceAllString(text, "")
		out += "\nconst " + CanonicalName + " = " + name + ";\n"
		return &CanonicalSource{Text: out, CallTarget: name, Shape: ShapeNamedExport}, nil
	}

	if m := exportIdentRe.FindStringSubmatch(text); m != nil {
		name := m[2]
		out := exportIdentRe.ReplaceAllString(text, "$1")
		out += "\nconst " + CanonicalName + " = " + name + ";\n"
		return &CanonicalSource{Text: out, CallTarget: name, Shape: ShapeIdentifierExport}, nil
	}

	// Anonymous function or arbitrary expression: bind it to the canonical
	// name. Covers `export default () => ...`, `export default function (...)`,
	// and class expressions alike.
	out := exportPrefixRe.ReplaceAllString(text, "const "+CanonicalName+" =")
	return &CanonicalSource{Text: out, CallTarget: CanonicalName, Shape: ShapeExpressionExport}, nil
}

// stripImports removes every import declaration, line by line, tolerating
// statements that span lines or omit the terminating semicolon.
func stripImports(src string) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	skipping := false
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if skipping {
			if importTerminated(t) {
				skipping = false
			}
			continue
		}
		if importLineRe.MatchString(t) {
			if !importTerminated(t) {
				skipping = true
			}
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// importTerminated reports whether a line plausibly ends an import
// statement: an explicit semicolon or a trailing module specifier.
func importTerminated(line string) bool {
	if strings.HasSuffix(line, ";") {
		return true
	}
	return moduleSpecTerminalRe.MatchString(line)
}

// functionBodyBalanced walks from the function's parameter list (which may
// itself contain braces in destructuring patterns) to its body brace and
// verifies the body closes. This is the structural counterpart to the
// unsafe "strip the last brace" shortcut: declarations after the exported
// function stay untouched either way.
func functionBodyBalanced(text string, openParen int) bool {
	if openParen < 0 || openParen >= len(text) || text[openParen] != '(' {
		return false
	}
	closeParen := matchDelim(text, openParen, '(', ')')
	if closeParen < 0 {
		return false
	}
	j := strings.Index(text[closeParen:], "{")
	if j < 0 {
		return false
	}
	return matchBrace(text, closeParen+j) >= 0
}

func matchBrace(text string, open int) int {
	return matchDelim(text, open, '{', '}')
}

// matchDelim returns the index of the delimiter closing the one at `open`,
// ignoring delimiters inside strings, template literals, and comments.
// Returns -1 when unbalanced.
func matchDelim(text string, open int, lo, hi byte) int {
	depth := 0
	i := open
	for i < len(text) {
		c := text[i]
		switch c {
		case lo:
			depth++
		case hi:
			depth--
			if depth == 0 {
				return i
			}
		case '\'', '"', '`':
			i = skipString(text, i)
			continue
		case '/':
			if i+1 < len(text) {
				switch text[i+1] {
				case '/':
					for i < len(text) && text[i] != '\n' {
						i++
					}
					continue
				case '*':
					end := strings.Index(text[i+2:], "*/")
					if end < 0 {
						return -1
					}
					i += end + 4
					continue
				}
			}
		}
		i++
	}
	return -1
}

// skipString advances past a string literal starting at i, honoring escapes.
// Template literal interpolations are treated as part of the literal.
func skipString(text string, i int) int {
	quote := text[i]
	i++
	for i < len(text) {
		switch text[i] {
		case '\\':
			i += 2
			continue
		case quote:
			return i + 1
		}
		if quote != '`' && text[i] == '\n' {
			return i // unterminated; let the parser complain
		}
		i++
	}
	return i
}

// Validate is the optional pre-mount quality gate: source that never touches
// a scene primitive cannot render anything useful.
func Validate(raw string) error {
	for _, name := range []string{"box", "sphere", "line", "grid", "group", "SCENE"} {
		if strings.Contains(raw, name) {
			return nil
		}
	}
	return ErrValidation
}
