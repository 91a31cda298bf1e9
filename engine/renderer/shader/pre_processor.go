// pre_processor.go implements the conditional-compilation pass run over shader sources
// before they reach the GPU compiler. WGSL has no preprocessor of its own, so variant
// selection is expressed with C-style line directives:
//
//	#define NAME      marks NAME as defined
//	#undef NAME       removes NAME
//	#ifdef NAME       keeps the following lines when NAME is defined
//	#ifndef NAME      keeps the following lines when NAME is not defined
//	#else             flips the innermost conditional
//	#endif            closes the innermost conditional
//
// Directives must start their line (leading whitespace allowed). Macro substitution is not
// performed; a value after the name of #define is accepted and ignored.
package shader

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPreprocess is wrapped by every error Preprocess returns.
var ErrPreprocess = errors.New("shader preprocess failed")

// condFrame is one open #ifdef/#ifndef block.
type condFrame struct {
	line      int
	parentOn  bool
	taken     bool
	seenElse  bool
	emitLines bool
}

// Preprocess concatenates ordered source snippets and resolves conditional directives.
// Each snippet is treated as ending with a newline so directives in consecutive snippets
// never merge into one line.
//
// Parameters:
//   - sources: the ordered snippets, typically feature define snippets followed by a template
//
// Returns:
//   - string: the source with directives removed and inactive blocks dropped
//   - error: an error wrapping ErrPreprocess for unknown, malformed or unbalanced directives
func Preprocess(sources ...string) (string, error) {
	defined := make(map[string]bool)
	var stack []condFrame
	var out strings.Builder

	on := func() bool {
		return len(stack) == 0 || stack[len(stack)-1].emitLines
	}

	lineNum := 0
	for _, src := range sources {
		for line := range strings.SplitSeq(strings.TrimSuffix(src, "\n"), "\n") {
			lineNum++
			trimmed := strings.TrimSpace(line)
			if !strings.HasPrefix(trimmed, "#") {
				if on() {
					out.WriteString(line)
					out.WriteByte('\n')
				}
				continue
			}

			fields := strings.Fields(trimmed[1:])
			if len(fields) == 0 {
				return "", fmt.Errorf("%w: line %d: empty directive", ErrPreprocess, lineNum)
			}
			directive, args := fields[0], fields[1:]

			switch directive {
			case "define", "undef":
				if len(args) == 0 {
					return "", fmt.Errorf("%w: line %d: #%s requires a name", ErrPreprocess, lineNum, directive)
				}
				if on() {
					if directive == "define" {
						defined[args[0]] = true
					} else {
						delete(defined, args[0])
					}
				}
			case "ifdef", "ifndef":
				if len(args) != 1 {
					return "", fmt.Errorf("%w: line %d: #%s requires exactly one name", ErrPreprocess, lineNum, directive)
				}
				cond := defined[args[0]]
				if directive == "ifndef" {
					cond = !cond
				}
				parent := on()
				stack = append(stack, condFrame{
					line:      lineNum,
					parentOn:  parent,
					taken:     cond,
					emitLines: parent && cond,
				})
			case "else":
				if len(stack) == 0 {
					return "", fmt.Errorf("%w: line %d: #else without #ifdef", ErrPreprocess, lineNum)
				}
				top := &stack[len(stack)-1]
				if top.seenElse {
					return "", fmt.Errorf("%w: line %d: duplicate #else for block opened at line %d", ErrPreprocess, lineNum, top.line)
				}
				top.seenElse = true
				top.emitLines = top.parentOn && !top.taken
			case "endif":
				if len(stack) == 0 {
					return "", fmt.Errorf("%w: line %d: #endif without #ifdef", ErrPreprocess, lineNum)
				}
				stack = stack[:len(stack)-1]
			default:
				return "", fmt.Errorf("%w: line %d: unknown directive #%s", ErrPreprocess, lineNum, directive)
			}
		}
	}

	if len(stack) > 0 {
		return "", fmt.Errorf("%w: block opened at line %d is never closed", ErrPreprocess, stack[len(stack)-1].line)
	}
	return out.String(), nil
}
