package readme

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/ghreadme/ghreadme/internal/config"
)

const (
	minWidth    = 20
	wrapBreaks  = " ,.;-+|/"
	bulletGlyph = "• "
)

// RenderTerminal renders markdown as styled text wrapped to width.
// Links render as "text (url)".
func RenderTerminal(markdown string, theme config.Theme, width int) string {
	if markdown == "" {
		return ""
	}
	if width < minWidth {
		width = minWidth
	}

	source := []byte(markdown)
	document := getMarkdown().Parser().Parse(text.NewReader(source))

	// Fixed profile: output is always ANSI256, regardless of the detected terminal.
	lipRenderer := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	r := &terminalRenderer{
		source:      source,
		palette:     PaletteFor(theme),
		width:       width,
		lipRenderer: lipRenderer,
	}
	_ = ast.Walk(document, r.walk)

	return strings.TrimRight(r.output.String(), "\n")
}

type terminalRenderer struct {
	source      []byte
	palette     Palette
	width       int
	lipRenderer *lipgloss.Renderer

	output strings.Builder
	inline strings.Builder

	listDepth     int
	pendingBullet string

	boldCount   int
	italicCount int

	trailingNewlines int
}

func (r *terminalRenderer) newStyle() lipgloss.Style {
	return r.lipRenderer.NewStyle()
}

func (r *terminalRenderer) indent() string {
	return strings.Repeat("  ", r.listDepth)
}

func (r *terminalRenderer) writeOutput(s string) {
	if s == "" {
		return
	}
	r.output.WriteString(s)

	trailing := len(s) - len(strings.TrimRight(s, "\n"))
	if trailing == len(s) {
		r.trailingNewlines += trailing
	} else {
		r.trailingNewlines = trailing
	}
}

func (r *terminalRenderer) ensureNewline() {
	if r.output.Len() > 0 && r.trailingNewlines < 1 {
		r.writeOutput("\n")
	}
}

func (r *terminalRenderer) ensureBlankLine() {
	if r.output.Len() == 0 {
		return
	}
	for r.trailingNewlines < 2 {
		r.writeOutput("\n")
	}
}

// flushInline wraps the collected inline text and prefixes it with the
// pending bullet or the current indent.
func (r *terminalRenderer) flushInline() string {
	content := r.inline.String()
	r.inline.Reset()
	if strings.TrimSpace(ansi.Strip(content)) == "" {
		return ""
	}

	first := r.indent()
	if r.pendingBullet != "" {
		first = r.pendingBullet
		r.pendingBullet = ""
	}
	rest := strings.Repeat(" ", ansi.StringWidth(first))

	lines := strings.Split(ansi.Wrap(content, r.width-len(rest), wrapBreaks), "\n")
	for i, line := range lines {
		if i == 0 {
			lines[i] = first + line
		} else {
			lines[i] = rest + line
		}
	}
	return strings.Join(lines, "\n")
}

func (r *terminalRenderer) styledText(s string) string {
	style := r.newStyle().Foreground(r.palette.NormalText)
	if r.boldCount > 0 {
		style = style.Bold(true)
	}
	if r.italicCount > 0 {
		style = style.Italic(true)
	}
	return style.Render(s)
}

func (r *terminalRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			r.inline.Reset()
			return ast.WalkContinue, nil
		}
		if flushed := r.flushInline(); flushed != "" {
			r.writeOutput(flushed)
			r.ensureNewline()
			if r.listDepth == 0 {
				r.ensureBlankLine()
			}
		}

	case ast.KindHeading:
		if entering {
			r.inline.Reset()
			return ast.WalkContinue, nil
		}
		r.leaveHeading(node.(*ast.Heading))

	case ast.KindList:
		if entering {
			r.ensureNewline()
			r.listDepth++
		} else {
			r.listDepth--
			r.ensureBlankLine()
		}

	case ast.KindListItem:
		if entering {
			bullet := r.newStyle().Foreground(r.palette.FaintText).Render(bulletGlyph)
			r.pendingBullet = strings.Repeat("  ", r.listDepth-1) + bullet
		} else {
			r.ensureNewline()
		}

	case ast.KindThematicBreak:
		if entering {
			rule := r.newStyle().Foreground(r.palette.BorderColor).Render(strings.Repeat("─", r.width))
			r.ensureBlankLine()
			r.writeOutput(rule)
			r.ensureBlankLine()
		}

	case ast.KindText:
		if entering {
			t := node.(*ast.Text)
			r.inline.WriteString(r.styledText(string(t.Segment.Value(r.source))))
			if t.SoftLineBreak() {
				r.inline.WriteString(" ")
			}
			if t.HardLineBreak() {
				r.inline.WriteString("\n")
			}
		}

	case ast.KindString:
		if entering {
			r.inline.WriteString(r.styledText(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		emphasis := node.(*ast.Emphasis)
		delta := 1
		if !entering {
			delta = -1
		}
		if emphasis.Level >= 2 {
			r.boldCount += delta
		} else {
			r.italicCount += delta
		}

	case ast.KindCodeSpan:
		if entering {
			code := r.collectText(node)
			r.inline.WriteString(r.newStyle().Foreground(r.palette.FaintText).Render(code))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			r.renderLink(node.(*ast.Link))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(r.source))
			r.inline.WriteString(r.newStyle().Foreground(r.palette.LinkForeground).Render(url))
		}

	case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock:
		if entering {
			r.renderLiteralBlock(node)
			return ast.WalkSkipChildren, nil
		}
	}

	return ast.WalkContinue, nil
}

func (r *terminalRenderer) leaveHeading(heading *ast.Heading) {
	content := ansi.Strip(r.inline.String())
	r.inline.Reset()
	if content == "" {
		return
	}

	style := r.newStyle().Bold(true)
	if heading.Level == 1 {
		style = style.Foreground(r.palette.TitleForeground)
	} else {
		style = style.Foreground(r.palette.HeaderForeground)
	}

	r.ensureBlankLine()
	r.writeOutput(ansi.Wrap(style.Render(content), r.width, wrapBreaks))
	r.ensureNewline()
	if heading.Level == 1 {
		r.writeOutput(r.newStyle().Foreground(r.palette.BorderColor).Render(strings.Repeat("─", min(ansi.StringWidth(content), r.width))))
		r.ensureNewline()
	}
	r.ensureBlankLine()
}

func (r *terminalRenderer) renderLink(link *ast.Link) {
	label := r.newStyle().Foreground(r.palette.LinkForeground).Underline(true).Render(r.collectText(link))
	r.inline.WriteString(label)

	if url := string(link.Destination); url != "" {
		r.inline.WriteString(" " + r.newStyle().Foreground(r.palette.FaintText).Render("("+url+")"))
	}
}

func (r *terminalRenderer) renderLiteralBlock(node ast.Node) {
	var block strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		block.Write(segment.Value(r.source))
	}

	faint := r.newStyle().Foreground(r.palette.FaintText)
	r.ensureBlankLine()
	for _, line := range strings.Split(strings.TrimRight(block.String(), "\n"), "\n") {
		r.writeOutput(r.indent() + faint.Render(line))
		r.ensureNewline()
	}
	r.ensureBlankLine()
}

// collectText returns the plain text of node's descendants.
func (r *terminalRenderer) collectText(node ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(r.source))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
