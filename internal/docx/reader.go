// Package docx converts Word documents to and from the text and markup the
// fill pipeline works on. Reading unzips the OOXML package and walks
// word/document.xml; writing is the inverse walk, from markup back to a
// minimal OOXML package.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	cferrors "github.com/chazuruo/chatfill/internal/errors"
)

// ContentType is the MIME type of a .docx document.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Extension is the only upload extension the pipeline accepts.
const Extension = ".docx"

// Document holds the two renditions of an uploaded template: plain text for
// placeholder extraction and markup for preview and substitution.
type Document struct {
	// Text is the plain-text rendition, one paragraph per line block.
	Text string
	// HTML is the markup rendition used for preview and substitution.
	HTML string
}

// Read converts the bytes of a .docx file into a Document.
func Read(data []byte) (*Document, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &cferrors.DocumentError{Op: "read", Err: fmt.Errorf("open docx: %w", err)}
	}

	var docFile *zip.File
	for _, f := range reader.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, &cferrors.DocumentError{Op: "read", Err: fmt.Errorf("document.xml not found")}
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, &cferrors.DocumentError{Op: "read", Err: fmt.Errorf("open document.xml: %w", err)}
	}
	defer rc.Close()

	xmlContent, err := io.ReadAll(rc)
	if err != nil {
		return nil, &cferrors.DocumentError{Op: "read", Err: fmt.Errorf("read document.xml: %w", err)}
	}

	return parseDocumentXML(xmlContent)
}

// OOXML structures, namespace prefixes stripped before unmarshaling.
type wordDocument struct {
	Body wordBody `xml:"body"`
}

type wordBody struct {
	Blocks []wordBlock `xml:",any"`
}

// wordBlock is one top-level body child, kept in document order so a
// table between paragraphs stays between them. Children that are
// neither paragraphs nor tables (sectPr, bookmarks) decode to an empty
// block and are skipped during rendering.
type wordBlock struct {
	Paragraph *wordParagraph
	Table     *wordTable
}

func (b *wordBlock) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	switch start.Name.Local {
	case "p":
		var p wordParagraph
		if err := d.DecodeElement(&p, &start); err != nil {
			return err
		}
		b.Paragraph = &p
	case "tbl":
		var t wordTable
		if err := d.DecodeElement(&t, &start); err != nil {
			return err
		}
		b.Table = &t
	default:
		return d.Skip()
	}
	return nil
}

type wordParagraph struct {
	Properties wordParagraphProps `xml:"pPr"`
	Runs       []wordRun          `xml:"r"`
}

type wordParagraphProps struct {
	Style        *wordStyleRef   `xml:"pStyle"`
	OutlineLevel *wordOutlineLvl `xml:"outlineLvl"`
}

type wordStyleRef struct {
	Val string `xml:"val,attr"`
}

type wordOutlineLvl struct {
	Val int `xml:"val,attr"`
}

type wordRun struct {
	Properties wordRunProps `xml:"rPr"`
	Text       []wordText   `xml:"t"`
	Breaks     []struct{}   `xml:"br"`
}

type wordRunProps struct {
	Bold   *struct{} `xml:"b"`
	Italic *struct{} `xml:"i"`
}

type wordText struct {
	Content string `xml:",chardata"`
	Space   string `xml:"space,attr"`
}

type wordTable struct {
	Rows []wordTableRow `xml:"tr"`
}

type wordTableRow struct {
	Cells []wordTableCell `xml:"tc"`
}

type wordTableCell struct {
	Paragraphs []wordParagraph `xml:"p"`
}

var (
	openPrefixRe  = regexp.MustCompile(`<w:`)
	closePrefixRe = regexp.MustCompile(`</w:`)
	xmlnsRe       = regexp.MustCompile(`xmlns:w="[^"]*"`)
	headingRe     = regexp.MustCompile(`(?i)^heading([1-6])$`)
	runTextRe     = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
)

func parseDocumentXML(xmlContent []byte) (*Document, error) {
	cleaned := cleanNamespaces(xmlContent)

	var doc wordDocument
	if err := xml.Unmarshal(cleaned, &doc); err != nil {
		// Fallback to regex-based extraction
		return fallbackParse(xmlContent)
	}

	return renderDocument(&doc), nil
}

// cleanNamespaces removes common Word XML namespace prefixes for simpler
// unmarshaling.
func cleanNamespaces(content []byte) []byte {
	s := string(content)
	s = openPrefixRe.ReplaceAllString(s, `<`)
	s = closePrefixRe.ReplaceAllString(s, `</`)
	s = xmlnsRe.ReplaceAllString(s, ``)
	return []byte(s)
}

func renderDocument(doc *wordDocument) *Document {
	var textParts []string
	var html strings.Builder

	for _, block := range doc.Body.Blocks {
		switch {
		case block.Paragraph != nil:
			text := paragraphText(block.Paragraph)
			if strings.TrimSpace(text) == "" {
				continue
			}
			textParts = append(textParts, text)
			html.WriteString(paragraphHTML(block.Paragraph))
		case block.Table != nil:
			text := tableText(block.Table)
			if strings.TrimSpace(text) == "" {
				continue
			}
			textParts = append(textParts, text)
			html.WriteString(tableHTML(block.Table))
		}
	}

	return &Document{
		Text: strings.Join(textParts, "\n\n"),
		HTML: html.String(),
	}
}

func paragraphText(p *wordParagraph) string {
	var builder strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Text {
			builder.WriteString(t.Content)
		}
	}
	return builder.String()
}

// headingLevel returns 1-6 when the paragraph is styled as a heading, 0
// otherwise.
func headingLevel(p *wordParagraph) int {
	if p.Properties.Style != nil {
		if m := headingRe.FindStringSubmatch(p.Properties.Style.Val); m != nil {
			level, _ := strconv.Atoi(m[1])
			return level
		}
	}
	if p.Properties.OutlineLevel != nil {
		level := p.Properties.OutlineLevel.Val + 1
		if level >= 1 && level <= 6 {
			return level
		}
	}
	return 0
}

func paragraphHTML(p *wordParagraph) string {
	var inner strings.Builder
	for _, r := range p.Runs {
		var runText strings.Builder
		for _, t := range r.Text {
			runText.WriteString(escapeText(t.Content))
		}
		content := runText.String()
		if content == "" {
			if len(r.Breaks) > 0 {
				inner.WriteString("<br />")
			}
			continue
		}
		if r.Properties.Bold != nil {
			content = "<strong>" + content + "</strong>"
		}
		if r.Properties.Italic != nil {
			content = "<em>" + content + "</em>"
		}
		inner.WriteString(content)
	}

	if level := headingLevel(p); level > 0 {
		return fmt.Sprintf("<h%d>%s</h%d>", level, inner.String(), level)
	}
	return "<p>" + inner.String() + "</p>"
}

func tableText(tbl *wordTable) string {
	var rows []string
	for _, row := range tbl.Rows {
		var cells []string
		for _, cell := range row.Cells {
			var cellText []string
			for _, p := range cell.Paragraphs {
				if text := paragraphText(&p); text != "" {
					cellText = append(cellText, text)
				}
			}
			cells = append(cells, strings.Join(cellText, " "))
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	return strings.Join(rows, "\n")
}

func tableHTML(tbl *wordTable) string {
	var b strings.Builder
	b.WriteString("<table>")
	for _, row := range tbl.Rows {
		b.WriteString("<tr>")
		for _, cell := range row.Cells {
			b.WriteString("<td>")
			for _, p := range cell.Paragraphs {
				if text := paragraphText(&p); strings.TrimSpace(text) != "" {
					b.WriteString("<p>" + escapeText(text) + "</p>")
				}
			}
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	return b.String()
}

// fallbackParse recovers run text with a regex when the XML does not
// unmarshal cleanly (some producers emit structures encoding/xml chokes on).
func fallbackParse(content []byte) (*Document, error) {
	matches := runTextRe.FindAllSubmatch(content, -1)

	var builder strings.Builder
	for _, match := range matches {
		if len(match) > 1 {
			builder.Write(match[1])
			builder.WriteString(" ")
		}
	}

	text := strings.TrimSpace(builder.String())
	if text == "" {
		return nil, &cferrors.DocumentError{Op: "read", Err: cferrors.ErrConversion}
	}

	var html strings.Builder
	for _, para := range strings.Split(text, "  ") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		html.WriteString("<p>" + escapeText(para) + "</p>")
	}

	return &Document{Text: text, HTML: html.String()}, nil
}

// escapeText escapes the characters that are meaningful in markup.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
