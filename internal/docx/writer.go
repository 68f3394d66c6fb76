package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	cferrors "github.com/chazuruo/chatfill/internal/errors"
)

// block is one paragraph-level unit of the generated document.
type block struct {
	heading int // 0 for body text, 1-6 for headings
	runs    []textRun
}

// textRun is a contiguous span of text with uniform formatting.
type textRun struct {
	text   string
	bold   bool
	italic bool
	brk    bool // explicit line break, text ignored
}

// Write converts fill markup back into the bytes of a .docx file. The markup
// is the Document.HTML dialect plus whatever substitution inserted: <mark>
// wrappers are unwrapped, <br> becomes a line break, bold/italic tags carry
// through to run properties. Unknown tags contribute their text only.
func Write(markup string) ([]byte, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, &cferrors.DocumentError{Op: "generate", Err: fmt.Errorf("parse markup: %w", err)}
	}

	blocks := collectBlocks(root)

	var doc bytes.Buffer
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	doc.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, b := range blocks {
		writeParagraph(&doc, b)
	}
	doc.WriteString(`<w:sectPr/></w:body></w:document>`)

	out, err := packageDocx(doc.Bytes())
	if err != nil {
		return nil, &cferrors.DocumentError{Op: "generate", Err: err}
	}
	if len(out) == 0 {
		return nil, &cferrors.DocumentError{Op: "generate", Err: cferrors.ErrConversion}
	}
	return out, nil
}

// CompletedName derives the download filename: lease.docx -> lease-completed.docx.
// A name without the expected extension gets the suffix appended.
func CompletedName(name string) string {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, Extension) {
		return name[:len(name)-len(Extension)] + "-completed" + Extension
	}
	return name + "-completed" + Extension
}

// collectBlocks flattens the parsed markup tree into paragraph blocks.
func collectBlocks(root *html.Node) []block {
	var blocks []block

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "li", "td", "th":
				if b := inlineBlock(n, 0); len(b.runs) > 0 {
					blocks = append(blocks, b)
				}
				return
			case "h1", "h2", "h3", "h4", "h5", "h6":
				level := int(n.Data[1] - '0')
				if b := inlineBlock(n, level); len(b.runs) > 0 {
					blocks = append(blocks, b)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	// Markup with no block elements at all (plain text) still yields one
	// paragraph rather than an empty document.
	if len(blocks) == 0 {
		if b := inlineBlock(root, 0); len(b.runs) > 0 {
			blocks = append(blocks, b)
		}
	}

	return blocks
}

// inlineBlock gathers the inline runs beneath a block element.
func inlineBlock(n *html.Node, heading int) block {
	b := block{heading: heading}

	var walk func(n *html.Node, bold, italic bool)
	walk = func(n *html.Node, bold, italic bool) {
		switch n.Type {
		case html.TextNode:
			if n.Data != "" {
				b.runs = append(b.runs, textRun{text: n.Data, bold: bold, italic: italic})
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "strong", "b":
				bold = true
			case "em", "i":
				italic = true
			case "br":
				b.runs = append(b.runs, textRun{brk: true})
				return
			case "script", "style":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, bold, italic)
		}
	}
	walk(n, false, false)

	// Trim blocks that hold only whitespace.
	empty := true
	for _, r := range b.runs {
		if r.brk || strings.TrimSpace(r.text) != "" {
			empty = false
			break
		}
	}
	if empty {
		b.runs = nil
	}

	return b
}

func writeParagraph(buf *bytes.Buffer, b block) {
	buf.WriteString("<w:p>")
	if b.heading > 0 {
		fmt.Fprintf(buf, `<w:pPr><w:pStyle w:val="Heading%d"/></w:pPr>`, b.heading)
	}
	for _, r := range b.runs {
		buf.WriteString("<w:r>")
		if r.bold || r.italic {
			buf.WriteString("<w:rPr>")
			if r.bold {
				buf.WriteString("<w:b/>")
			}
			if r.italic {
				buf.WriteString("<w:i/>")
			}
			buf.WriteString("</w:rPr>")
		}
		if r.brk {
			buf.WriteString("<w:br/>")
		} else {
			buf.WriteString(`<w:t xml:space="preserve">`)
			writeEscaped(buf, r.text)
			buf.WriteString("</w:t>")
		}
		buf.WriteString("</w:r>")
	}
	buf.WriteString("</w:p>")
}

func writeEscaped(buf *bytes.Buffer, s string) {
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
}

// packageDocx zips the document body together with the fixed package parts.
func packageDocx(documentXML []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(relsXML)},
		{"word/document.xml", documentXML},
	}

	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := w.Write(part.content); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close package: %w", err)
	}
	return buf.Bytes(), nil
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`
