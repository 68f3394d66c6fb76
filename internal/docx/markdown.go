package docx

import (
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

var excessiveLinesRe = regexp.MustCompile(`\n{4,}`)

// MarkdownConverter renders fill markup as markdown for terminal previews.
type MarkdownConverter struct {
	converter *md.Converter
}

// NewMarkdownConverter creates a markdown converter for document markup.
func NewMarkdownConverter() *MarkdownConverter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &MarkdownConverter{converter: converter}
}

// Convert transforms document markup to markdown.
func (c *MarkdownConverter) Convert(markup string) (string, error) {
	markdown, err := c.converter.ConvertString(markup)
	if err != nil {
		return "", err
	}
	markdown = excessiveLinesRe.ReplaceAllString(markdown, "\n\n\n")
	return strings.TrimSpace(markdown), nil
}
