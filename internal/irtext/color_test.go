package irtext

import (
	"bytes"
	"strings"
	"testing"

	"github.com/coldfront-lang/corefront/internal/config"
)

func TestTraceRenderPlainWhenNotTerminal(t *testing.T) {
	decl := sampleDecl()
	var buf bytes.Buffer
	out := TraceRender(decl, config.Options{Trace: true}, &buf)
	if strings.Contains(out, "\033[") {
		t.Fatal("expected no ANSI escapes when the writer isn't a real terminal")
	}
	if out != Render(decl) {
		t.Fatal("expected TraceRender to match plain Render for a non-terminal writer")
	}
}

func TestTraceRenderPlainWhenDisabled(t *testing.T) {
	decl := sampleDecl()
	var buf bytes.Buffer
	out := TraceRender(decl, config.Options{Trace: false}, &buf)
	if out != Render(decl) {
		t.Fatal("expected TraceRender to be a plain passthrough with Trace disabled")
	}
}
