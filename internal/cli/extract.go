// Package cli provides Cobra command definitions for chatfill.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chazuruo/chatfill/internal/docx"
	cferrors "github.com/chazuruo/chatfill/internal/errors"
	"github.com/chazuruo/chatfill/internal/placeholder"
)

// ExtractOptions contains the options for the extract command.
type ExtractOptions struct {
	Format  string
	Preview bool
}

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <file.docx>",
		Short: "List the fillable placeholders in a document",
		Long: `Extract parses a .docx template and lists every fillable placeholder
it finds, in the order the fill conversation will ask about them.

Recognized token styles include {{name}}, [[name]], <<name>>, <name>,
[name], __name__ and **name**. Bare blanks like ________ are reported
with a label derived from the surrounding sentence.

Supported formats:
- table (default): aligned columns
- json: JSON array
- yaml: YAML list

Examples:
  chatfill extract lease.docx                  # Table of placeholders
  chatfill extract lease.docx --format json    # JSON output
  chatfill extract lease.docx --preview        # Markdown preview of the document`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "output format (table, json, yaml)")
	cmd.Flags().BoolVar(&opts.Preview, "preview", false, "print a Markdown rendition of the document instead")

	return cmd
}

func runExtract(opts *ExtractOptions, path string) error {
	doc, _, err := readDocument(path)
	if err != nil {
		return err
	}

	if opts.Preview {
		markdown, err := docx.NewMarkdownConverter().Convert(doc.HTML)
		if err != nil {
			return fmt.Errorf("failed to render preview: %w", err)
		}
		fmt.Println(markdown)
		return nil
	}

	placeholders := placeholder.Extract(doc.Text)

	switch opts.Format {
	case "table":
		if len(placeholders) == 0 {
			fmt.Println("No placeholders found.")
			return nil
		}
		tbl := table.New("#", "ID", "Label", "Raw", "Question")
		for i, p := range placeholders {
			tbl.AddRow(i+1, p.ID, p.Label, p.Raw, p.Question)
		}
		tbl.Print()

	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(placeholders); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

	case "yaml":
		out, err := yaml.Marshal(placeholders)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		fmt.Print(string(out))

	default:
		return fmt.Errorf("invalid format: %s (must be table, json, or yaml)", opts.Format)
	}

	return nil
}

// readDocument loads and parses a .docx file from disk.
func readDocument(path string) (*docx.Document, []byte, error) {
	if !strings.HasSuffix(strings.ToLower(path), docx.Extension) {
		return nil, nil, fmt.Errorf("unsupported file type: %s (expected %s): %w", path, docx.Extension, cferrors.ErrUnsupported)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := docx.Read(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, data, nil
}
