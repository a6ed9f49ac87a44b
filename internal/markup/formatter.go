// Package markup converts free-form recipe text into a styled HTML document
// by guessing the role of each line. The heuristics are intentionally loose:
// a short all-caps ingredient reads as a header, and named blocks are closed
// by counting rather than by tracking nesting.
package markup

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maximumColonHeaderLength = 50
	spacerParagraph          = "<p>&nbsp;</p>\n"
	blockCloser              = "</div>"
)

// Block is a highlighted container opened by a keyword header.
type Block string

const (
	BlockChefNotes     Block = "chef-notes"
	BlockSubstitutions Block = "substitutions"
	BlockWinePairing   Block = "wine-pairing"
)

func (block Block) opener() string {
	return `<div class="` + string(block) + `">`
}

// blockClosingOrder is the order in which unclosed blocks are balanced.
var blockClosingOrder = []Block{BlockChefNotes, BlockSubstitutions, BlockWinePairing}

type listKind int

const (
	listNone listKind = iota
	listUnordered
	listOrdered
)

func (kind listKind) open() string {
	if kind == listOrdered {
		return "<ol>\n"
	}
	return "<ul>\n"
}

func (kind listKind) close() string {
	if kind == listOrdered {
		return "</ol>\n"
	}
	return "</ul>\n"
}

var orderedListPrefixes = []string{"1.", "2.", "3.", "4.", "5.", "6.", "7.", "8.", "9.", "10."}

type formatter struct {
	body     strings.Builder
	openList listKind
}

// Format renders raw recipe text as a complete HTML document. It never fails;
// all text content is escaped.
func Format(rawText string) string {
	body := FormatBody(rawText)
	var document strings.Builder
	document.Grow(len(documentHead) + len(body) + len(documentTail))
	document.WriteString(documentHead)
	document.WriteString(body)
	document.WriteString(documentTail)
	return document.String()
}

// FormatBody renders only the markup that goes inside <body>.
func FormatBody(rawText string) string {
	f := &formatter{}
	lines := strings.Split(strings.TrimSpace(rawText), "\n")
	for index, line := range lines {
		f.writeLine(index, strings.TrimSpace(line))
	}
	f.closeList()
	f.balanceBlocks()
	return f.body.String()
}

func (f *formatter) writeLine(index int, line string) {
	if line == "" {
		f.closeList()
		f.body.WriteString(spacerParagraph)
		return
	}
	if index == 0 {
		f.writeElement("h1", line)
		return
	}
	if isSectionHeader(line) {
		f.closeList()
		f.writeHeader(line)
		return
	}
	if kind, item, ok := parseListItem(line); ok {
		if f.openList != kind {
			f.closeList()
			f.body.WriteString(kind.open())
			f.openList = kind
		}
		f.writeElement("li", item)
		return
	}
	f.closeList()
	f.writeElement("p", line)
}

func (f *formatter) writeHeader(line string) {
	header := titleCase(strings.TrimRight(line, ":"))
	upper := strings.ToUpper(line)
	switch {
	case containsAny(upper, "INGREDIENTS"):
		f.writeElement("h2", header)
	case containsAny(upper, "INSTRUCTIONS", "DIRECTIONS", "METHOD"):
		f.writeElement("h2", header)
	case containsAny(upper, "NOTES", "TIPS"):
		f.openBlock(BlockChefNotes, header)
	case containsAny(upper, "SUBSTITUTIONS", "ALTERNATIVES"):
		f.openBlock(BlockSubstitutions, header)
	case containsAny(upper, "WINE", "PAIRING"):
		f.openBlock(BlockWinePairing, header)
	case containsAny(upper, "PLATING", "PRESENTATION"):
		f.writeElement("h2", header)
	default:
		f.writeElement("h3", header)
	}
}

func (f *formatter) openBlock(block Block, header string) {
	f.body.WriteString(block.opener())
	f.writeElement("h2", header)
}

func (f *formatter) writeElement(tag string, text string) {
	f.body.WriteString("<" + tag + ">")
	f.body.WriteString(html.EscapeString(text))
	f.body.WriteString("</" + tag + ">\n")
}

func (f *formatter) closeList() {
	if f.openList == listNone {
		return
	}
	f.body.WriteString(f.openList.close())
	f.openList = listNone
}

// balanceBlocks appends closers for each block type in turn, comparing that
// type's opener count with the total closer count so far. Interleaved blocks
// can end up over- or under-closed.
func (f *formatter) balanceBlocks() {
	opened := make(map[Block]int, len(blockClosingOrder))
	rendered := f.body.String()
	for _, block := range blockClosingOrder {
		opened[block] = strings.Count(rendered, block.opener())
	}
	for _, block := range blockClosingOrder {
		closed := strings.Count(f.body.String(), blockCloser)
		for missing := opened[block] - closed; missing > 0; missing-- {
			f.body.WriteString(blockCloser + "\n")
		}
	}
}

func isSectionHeader(line string) bool {
	if isUpper(line) {
		return true
	}
	return strings.HasSuffix(line, ":") && utf8.RuneCountInString(line) < maximumColonHeaderLength
}

// isUpper reports whether the line has at least one cased letter and no
// lower- or title-case letters.
func isUpper(line string) bool {
	hasCased := false
	for _, r := range line {
		if unicode.IsLower(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

func parseListItem(line string) (listKind, string, bool) {
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") {
		_, markerWidth := utf8.DecodeRuneInString(line)
		return listUnordered, strings.TrimSpace(line[markerWidth:]), true
	}
	if !strings.Contains(line, " ") {
		return listNone, "", false
	}
	for _, prefix := range orderedListPrefixes {
		if strings.HasPrefix(line, prefix) {
			dot := strings.Index(line, ".")
			return listOrdered, strings.TrimSpace(line[dot+1:]), true
		}
	}
	return listNone, "", false
}

// titleCase upper-cases the first cased letter of every run of cased letters
// and lower-cases the rest, so "CHEF'S NOTES" becomes "Chef'S Notes".
func titleCase(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	previousCased := false
	for _, r := range text {
		cased := unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
		switch {
		case cased && !previousCased:
			sb.WriteRune(unicode.ToTitle(r))
		case cased:
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteRune(r)
		}
		previousCased = cased
	}
	return sb.String()
}

func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
