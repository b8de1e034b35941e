package md2deck

import (
	"fmt"
	"regexp"
	"strings"
)

// Precompiled line patterns.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Fence open: three backticks, optional language token, nothing else
	fenceOpenPattern = regexp.MustCompile("^\\s*```\\s*([^\\s`]*)\\s*$")

	// Fence close: three backticks alone on the line
	fenceClosePattern = regexp.MustCompile("^\\s*```\\s*$")

	// Heading and subtitle markers (ATX style, single and double hash)
	headingPattern  = regexp.MustCompile(`^#\s+(.*)$`)
	subtitlePattern = regexp.MustCompile(`^##\s+(.*)$`)

	// Slide directives
	notePattern       = regexp.MustCompile(`(?i)^\s*>\s*note:(.*)$`)
	backgroundPattern = regexp.MustCompile(`(?i)^\s*>\s*bg:(.*)$`)

	// Image alone on its line: ![alt](target)
	imagePattern = regexp.MustCompile(`^\s*!\[([^\]]*)\]\(([^)]*)\)\s*$`)

	// Trailing sizing tag on an image target
	sizingTagPattern = regexp.MustCompile(`(?i)^(.*)#(cover|contain)\s*$`)

	// Table alignment row: only pipes, colons, dashes and whitespace
	tableSeparatorPattern = regexp.MustCompile(`^[\s|:\-]+$`)

	// Bullet: indent, marker, required whitespace, text
	bulletPattern = regexp.MustCompile(`^([ \t]*)([-*]|\d+\.)\s+(.*)$`)
)

// lineKind is the classification of one source line outside a code fence.
// Values are ordered by precedence.
type lineKind int

const (
	lineBlank lineKind = iota
	lineFence
	lineHeading
	lineSubtitle
	lineNote
	lineBackground
	lineImage
	lineTable
	lineBullet
	lineText
)

// classify returns the first matching kind for line, in precedence order.
func classify(line string) lineKind {
	switch {
	case strings.TrimSpace(line) == "":
		return lineBlank
	case fenceOpenPattern.MatchString(line):
		return lineFence
	case headingPattern.MatchString(line):
		return lineHeading
	case subtitlePattern.MatchString(line):
		return lineSubtitle
	case notePattern.MatchString(line):
		return lineNote
	case backgroundPattern.MatchString(line):
		return lineBackground
	case imagePattern.MatchString(line):
		return lineImage
	case isTableLine(line):
		return lineTable
	case bulletPattern.MatchString(line):
		return lineBullet
	default:
		return lineText
	}
}

// isBoundary reports whether a line of this kind ends a paragraph run.
func (k lineKind) isBoundary() bool {
	return k != lineBlank && k != lineText
}

// isPipeRow reports whether the trimmed line is delimited by leading and trailing pipes.
func isPipeRow(line string) bool {
	t := strings.TrimSpace(line)
	return len(t) >= 2 && strings.HasPrefix(t, "|") && strings.HasSuffix(t, "|")
}

// isTableSeparator reports whether a pipe row is an alignment row.
func isTableSeparator(line string) bool {
	return tableSeparatorPattern.MatchString(line)
}

// isTableLine reports whether line can start a table.
func isTableLine(line string) bool {
	return isPipeRow(line) && !isTableSeparator(line)
}

// scanState is the fold state threaded through the line scan.
// A nil fence means the scanner is idle.
type scanState struct {
	fence *openFence
}

// openFence accumulates the lines of an unterminated code block.
type openFence struct {
	language string
	lines    []string
}

// fenceStep consumes one line inside an open fence. It returns the next state
// and, when the line closes the fence, the finished Code block.
func fenceStep(s scanState, line string) (scanState, *Code) {
	if fenceClosePattern.MatchString(line) {
		code := s.fence.flush()
		return scanState{}, &code
	}
	lines := append(s.fence.lines, line)
	return scanState{fence: &openFence{language: s.fence.language, lines: lines}}, nil
}

// flush turns the accumulated lines into a Code block.
func (f *openFence) flush() Code {
	return Code{Text: strings.Join(f.lines, "\n"), Language: f.language}
}

// deckBuilder collects slides in document order.
type deckBuilder struct {
	slides  []Slide
	current *Slide
}

// currentSlide returns the open slide, starting an untitled one if none is open.
// Every rule that may start an implicit slide goes through here.
func (d *deckBuilder) currentSlide() *Slide {
	if d.current == nil {
		d.current = &Slide{}
	}
	return d.current
}

// startSlide seals the open slide and opens a new one.
func (d *deckBuilder) startSlide(title string) {
	d.seal()
	d.current = &Slide{Title: title}
}

// seal pushes the open slide to the output, naming it if its title is blank.
func (d *deckBuilder) seal() {
	if d.current == nil {
		return
	}
	s := *d.current
	if s.Title == "" {
		s.Title = fmt.Sprintf("Slide %d", len(d.slides)+1)
	}
	d.slides = append(d.slides, s)
	d.current = nil
}

// add appends a block to the current slide.
func (d *deckBuilder) add(b Block) {
	s := d.currentSlide()
	s.Blocks = append(s.Blocks, b)
}

// Parse converts document text into slides. It never fails: lines that match
// no marker become paragraph text and an unterminated code fence is closed at
// end of input.
func Parse(text string) []Slide {
	lines := splitLines(text)
	var (
		deck  deckBuilder
		state scanState
	)

	for i := 0; i < len(lines); {
		line := lines[i]

		if state.fence != nil {
			var code *Code
			state, code = fenceStep(state, line)
			if code != nil {
				deck.add(*code)
			}
			i++
			continue
		}

		switch classify(line) {
		case lineBlank:
			i++
		case lineFence:
			lang := fenceOpenPattern.FindStringSubmatch(line)[1]
			state = scanState{fence: &openFence{language: lang}}
			i++
		case lineHeading:
			deck.startSlide(strings.TrimSpace(headingPattern.FindStringSubmatch(line)[1]))
			state = scanState{}
			i++
		case lineSubtitle:
			deck.currentSlide().Subtitle = strings.TrimSpace(subtitlePattern.FindStringSubmatch(line)[1])
			i++
		case lineNote:
			appendNote(deck.currentSlide(), notePattern.FindStringSubmatch(line)[1])
			i++
		case lineBackground:
			s := deck.currentSlide()
			if bg := strings.TrimSpace(backgroundPattern.FindStringSubmatch(line)[1]); bg != "" {
				s.Background = bg
			}
			i++
		case lineImage:
			deck.add(parseImage(line))
			i++
		case lineTable:
			var table Table
			table, i = parseTable(lines, i)
			deck.add(table)
		case lineBullet:
			var bullets Bullets
			bullets, i = parseBullets(lines, i)
			deck.add(bullets)
		default:
			var para Paragraph
			para, i = parseParagraph(lines, i)
			deck.add(para)
		}
	}

	if state.fence != nil {
		deck.add(state.fence.flush())
	}
	deck.seal()
	return deck.slides
}

// splitLines normalizes line terminators and splits text into lines.
// A single trailing terminator does not produce an extra empty line.
func splitLines(text string) []string {
	text = crlfOrCR.ReplaceAllString(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// appendNote adds a trimmed note line to the slide. Empty notes are ignored.
func appendNote(s *Slide, raw string) {
	note := strings.TrimSpace(raw)
	if note == "" {
		return
	}
	if s.Notes == "" {
		s.Notes = note
		return
	}
	s.Notes += "\n" + note
}

// parseImage builds an Image from a line already matched by imagePattern.
func parseImage(line string) Image {
	m := imagePattern.FindStringSubmatch(line)
	img := Image{AltText: m[1], Path: strings.TrimSpace(m[2])}
	if tag := sizingTagPattern.FindStringSubmatch(m[2]); tag != nil {
		img.Path = strings.TrimSpace(tag[1])
		img.Sizing = SizingMode(strings.ToLower(tag[2]))
	}
	return img
}

// parseTable collects the table starting at lines[start] and returns it with
// the index of the first line after it. Alignment rows are skipped.
func parseTable(lines []string, start int) (Table, int) {
	var t Table
	i := start
	for ; i < len(lines) && isPipeRow(lines[i]); i++ {
		if isTableSeparator(lines[i]) {
			continue
		}
		t.Rows = append(t.Rows, splitRow(lines[i]))
	}
	return t, i
}

// splitRow strips the outer pipes of a row and trims each cell.
func splitRow(line string) []string {
	inner := strings.TrimSpace(line)
	inner = strings.TrimSuffix(strings.TrimPrefix(inner, "|"), "|")
	cells := strings.Split(inner, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// parseBullets collects consecutive bullet lines starting at lines[start].
func parseBullets(lines []string, start int) (Bullets, int) {
	var b Bullets
	i := start
	for ; i < len(lines); i++ {
		m := bulletPattern.FindStringSubmatch(lines[i])
		if m == nil {
			break
		}
		b.Items = append(b.Items, BulletItem{
			Text:        strings.TrimSpace(m[3]),
			Kind:        bulletKind(m[2]),
			IndentLevel: indentLevel(m[1]),
		})
	}
	return b, i
}

// bulletKind maps a list marker to its kind.
func bulletKind(marker string) BulletKind {
	if strings.HasSuffix(marker, ".") {
		return BulletNumbered
	}
	return BulletPlain
}

// indentLevel converts leading whitespace to a nesting level.
// Tabs count as two spaces; two columns make one level.
func indentLevel(indent string) int {
	width := 0
	for _, r := range indent {
		if r == '\t' {
			width += 2
		} else {
			width++
		}
	}
	return min(width/2, MaxIndentLevel)
}

// parseParagraph collects text lines starting at lines[start] until a blank
// line, a block boundary, or end of input.
func parseParagraph(lines []string, start int) (Paragraph, int) {
	collected := []string{strings.TrimSpace(lines[start])}
	i := start + 1
	for ; i < len(lines); i++ {
		if kind := classify(lines[i]); kind == lineBlank || kind.isBoundary() {
			break
		}
		collected = append(collected, strings.TrimSpace(lines[i]))
	}
	return Paragraph{Text: strings.Join(collected, "\n")}, i
}
