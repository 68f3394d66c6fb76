// Package cli provides Cobra command definitions for chatfill.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chazuruo/chatfill/internal/docx"
	cferrors "github.com/chazuruo/chatfill/internal/errors"
	"github.com/chazuruo/chatfill/internal/fill"
	"github.com/chazuruo/chatfill/internal/placeholder"
	"github.com/chazuruo/chatfill/internal/tui"
)

// FillOptions contains the options for the fill command.
type FillOptions struct {
	ConfigPath string
	Answers    []string
	Form       bool
	Yes        bool
	Output     string
}

// NewFillCommand creates the fill command.
func NewFillCommand() *cobra.Command {
	opts := &FillOptions{}

	cmd := &cobra.Command{
		Use:   "fill <file.docx>",
		Short: "Fill a document's placeholders and write the completed copy",
		Long: `Fill walks through a template's placeholders one question at a time,
collects your answers, and writes a completed copy of the document.

Answers can be supplied up front with --answer, asked for in a chat
conversation (default), or gathered through a single form with --form.
With --yes no questions are asked: placeholders without a preset answer
keep their raw tokens in the output. Date placeholders must be answered
in YYYY-MM-DD form.

Examples:
  chatfill fill lease.docx
  chatfill fill lease.docx --form
  chatfill fill lease.docx --answer tenant-name-1="Ada Lovelace" -o done.docx
  chatfill fill lease.docx --answer tenant-name-1="Ada Lovelace" --yes
  chatfill fill lease.docx --no-tui < answers.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path")
	cmd.Flags().StringArrayVarP(&opts.Answers, "answer", "a", nil, "preset answer as <id>=<value> (repeatable)")
	cmd.Flags().BoolVar(&opts.Form, "form", false, "collect answers through a single form instead of the chat")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "do not prompt; placeholders without a --answer keep their raw tokens")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output path (default: <name>-completed.docx)")

	return cmd
}

func runFill(opts *FillOptions, path string) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	doc, _, err := readDocument(path)
	if err != nil {
		return err
	}

	placeholders := placeholder.Extract(doc.Text)
	session := fill.NewSession(placeholders)
	session.SetEnforceDates(cfg.Fill.RequireDateFormat)
	session.Start()

	if err := applyPresetAnswers(session, placeholders, opts.Answers); err != nil {
		return err
	}

	if session.State() != fill.StateComplete && !opts.Yes {
		switch {
		case IsNoTUI() || !cfg.TUI.Enabled:
			err = promptPlain(session)
		case opts.Form || cfg.Fill.PromptStyle == "form":
			err = promptForm(session, placeholders, cfg.Fill.RequireDateFormat)
		default:
			err = promptChat(session)
		}
		if err != nil {
			return err
		}
	}

	// With --yes an incomplete session is fine: unanswered
	// placeholders keep their raw tokens in the output.
	if session.State() != fill.StateComplete && !opts.Yes {
		return fmt.Errorf("not all placeholders were answered")
	}

	markup := fill.Apply(doc.HTML, placeholders, session.Answers())
	data, err := docx.Write(markup)
	if err != nil {
		return fmt.Errorf("failed to generate document: %w", err)
	}

	outPath := opts.Output
	if outPath == "" {
		outPath = filepath.Join(filepath.Dir(path), docx.CompletedName(filepath.Base(path)))
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	answered, total := session.Progress()
	fmt.Printf("Wrote %s (%d of %d placeholders filled)\n", outPath, answered, total)
	return nil
}

// applyPresetAnswers feeds --answer values through the session so they
// get the same validation as interactive answers.
func applyPresetAnswers(session *fill.Session, placeholders []placeholder.Placeholder, pairs []string) error {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid --answer %q (expected <id>=<value>)", pair)
		}

		index := -1
		for i, p := range placeholders {
			if p.ID == key || strings.EqualFold(p.Label, key) {
				index = i
				break
			}
		}
		if index < 0 {
			return fmt.Errorf("unknown placeholder %q in --answer", key)
		}

		if err := session.Select(index); err != nil {
			return err
		}
		if err := session.Submit(value); err != nil {
			return fmt.Errorf("invalid answer for %q: %w", key, err)
		}
	}
	return nil
}

// promptChat runs the conversational Bubble Tea flow.
func promptChat(session *fill.Session) error {
	model := tui.NewChatModelFromSession(session)
	program := tea.NewProgram(model)
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}
	if chat, ok := final.(*tui.ChatModel); ok && chat.DidCancel() {
		return fmt.Errorf("fill cancelled: %w", cferrors.ErrCanceled)
	}
	return nil
}

// promptForm collects the remaining answers through one huh form.
func promptForm(session *fill.Session, placeholders []placeholder.Placeholder, requireDates bool) error {
	var remaining []placeholder.Placeholder
	indexByID := make(map[string]int, len(placeholders))
	for i, p := range placeholders {
		indexByID[p.ID] = i
		if _, ok := session.Answer(p.ID); !ok {
			remaining = append(remaining, p)
		}
	}

	answers, err := tui.RunFillForm(remaining, requireDates)
	if err != nil {
		return cferrors.Wrap(err, "fill form")
	}
	for id, value := range answers {
		if err := session.Select(indexByID[id]); err != nil {
			return err
		}
		if err := session.Submit(value); err != nil {
			return err
		}
	}
	return nil
}

// promptPlain asks each question on stdout and reads answers from
// stdin, for scripting and --no-tui use.
func promptPlain(session *fill.Session) error {
	scanner := bufio.NewScanner(os.Stdin)
	for session.State() == fill.StateChatting {
		current, _ := session.Current()
		fmt.Printf("%s\n> ", current.Question)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read answer: %w", err)
			}
			return fmt.Errorf("input closed before all placeholders were answered")
		}
		if err := session.Submit(scanner.Text()); err != nil {
			switch err {
			case fill.ErrEmptyAnswer:
				fmt.Println("Please provide a value.")
			case fill.ErrDateFormat:
				fmt.Println("Please enter the date in YYYY-MM-DD format.")
			default:
				fmt.Printf("Invalid answer: %v\n", err)
			}
		}
	}
	return nil
}
