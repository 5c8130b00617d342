package irtext

import (
	"io"
	"os"
	"strings"

	"github.com/coldfront-lang/corefront/internal/config"
	"github.com/coldfront-lang/corefront/internal/ir"
	"github.com/mattn/go-isatty"
)

// TraceRender renders decl the way Render does, but — when opts.Trace is set
// and w is a real terminal — highlights each OpLabel/OpAssert line, mirroring
// the teacher's CompilerError.Format(color bool) pattern: the same boolean
// switch on ANSI escapes, just decided by a real isatty check (github.com/
// mattn/go-isatty) instead of a caller-supplied flag, since trace output has
// no caller in a position to say whether its destination is a terminal.
func TraceRender(decl *ir.Decl, opts config.Options, w io.Writer) string {
	rendered := Render(decl)
	if !opts.Trace || !isTerminal(w) {
		return rendered
	}
	return colorizeTrace(rendered)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

const (
	ansiLabel  = "\033[1;36m" // cyan bold, label lines
	ansiAssert = "\033[1;33m" // yellow bold, runtime-assertion lines
	ansiReset  = "\033[0m"
)

// colorizeTrace highlights label and assertion lines line-by-line, leaving
// everything else untouched — assertions and labels are the two things a
// developer staring at a RuntimeAssertions-rewritten dump most wants to spot.
func colorizeTrace(rendered string) string {
	lines := strings.Split(rendered, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.Contains(trimmed, ir.OpLabel.String()):
			lines[i] = ansiLabel + line + ansiReset
		case strings.Contains(trimmed, ir.OpAssert.String()):
			lines[i] = ansiAssert + line + ansiReset
		}
	}
	return strings.Join(lines, "\n")
}
