package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/treediff/domain"
)

// DiffFormatterImpl implements the DiffOutputFormatter interface
type DiffFormatterImpl struct{}

// NewDiffFormatter creates a new diff output formatter
func NewDiffFormatter() *DiffFormatterImpl {
	return &DiffFormatterImpl{}
}

// Write renders a response in the given format
func (f *DiffFormatterImpl) Write(response *domain.DiffResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.writeText(response, writer)
	case domain.OutputFormatJSON:
		return f.writeJSON(response, writer)
	case domain.OutputFormatYAML:
		return f.writeYAML(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteDir renders a directory diff response
func (f *DiffFormatterImpl) WriteDir(response *domain.DirDiffResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.writeDirText(response, writer)
	case domain.OutputFormatJSON:
		return f.writeJSON(response, writer)
	case domain.OutputFormatYAML:
		return f.writeYAML(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

var (
	insertColor = color.New(color.FgGreen)
	deleteColor = color.New(color.FgRed)
	updateColor = color.New(color.FgYellow)
	moveColor   = color.New(color.FgCyan)
	dimColor    = color.New(color.Faint)
)

func (f *DiffFormatterImpl) writeText(response *domain.DiffResponse, writer io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s -> %s\n", response.LeftPath, response.RightPath)

	if response.Summary.Identical() {
		b.WriteString("trees are identical\n")
		_, err := io.WriteString(writer, b.String())
		return err
	}

	for _, op := range response.Operations {
		b.WriteString(formatOpLine(op))
		b.WriteString("\n")
	}

	s := response.Summary
	fmt.Fprintf(&b, "\n%d ops: %d insert, %d delete, %d update, %d move (%d/%d nodes matched)\n",
		s.TotalOps, s.Inserts, s.Deletes, s.Updates, s.Moves, s.MatchedNodes, s.LeftNodes)
	if response.Verified {
		b.WriteString(dimColor.Sprint("verified: script reproduces the right tree") + "\n")
	}

	_, err := io.WriteString(writer, b.String())
	return err
}

func formatOpLine(op domain.EditOperation) string {
	target := op.Path
	if op.Label != "" && op.Type == domain.EditOpInsert {
		target = fmt.Sprintf("%s (%s)", op.Path, op.Kind)
	}

	switch op.Type {
	case domain.EditOpInsert:
		line := fmt.Sprintf("+ %s", target)
		if op.NewValue != "" {
			line += " = " + op.NewValue
		}
		if op.Subtree {
			line += " (subtree)"
		}
		return insertColor.Sprint(line)
	case domain.EditOpDelete:
		line := fmt.Sprintf("- %s", op.Path)
		if op.OldValue != "" {
			line += " = " + op.OldValue
		}
		return deleteColor.Sprint(line)
	case domain.EditOpUpdate:
		return updateColor.Sprintf("~ %s: ", op.Path) + inlineValueDiff(op.OldValue, op.NewValue)
	default:
		return moveColor.Sprintf("> %s to %s[%d]", op.Path, op.ToPath, op.Position)
	}
}

// inlineValueDiff renders a character-level diff between the old and new
// leaf values, deletions struck red and insertions green.
func inlineValueDiff(oldValue, newValue string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldValue, newValue, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString(deleteColor.Add(color.CrossedOut).Sprint(d.Text))
		case diffmatchpatch.DiffInsert:
			b.WriteString(insertColor.Sprint(d.Text))
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

func (f *DiffFormatterImpl) writeDirText(response *domain.DirDiffResponse, writer io.Writer) error {
	var b strings.Builder

	for _, file := range response.Files {
		switch file.Status {
		case "added":
			b.WriteString(insertColor.Sprintf("A %s", file.RelPath))
		case "removed":
			b.WriteString(deleteColor.Sprintf("D %s", file.RelPath))
		case "changed":
			summary := ""
			if file.Summary != nil {
				summary = fmt.Sprintf(" (+%d -%d ~%d >%d)",
					file.Summary.Inserts, file.Summary.Deletes, file.Summary.Updates, file.Summary.Moves)
			}
			b.WriteString(updateColor.Sprintf("M %s%s", file.RelPath, summary))
		case "identical":
			continue
		default:
			b.WriteString(fmt.Sprintf("E %s: %s", file.RelPath, file.Error))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n%d changed, %d added, %d removed\n",
		response.Changed, response.Added, response.Removed)

	_, err := io.WriteString(writer, b.String())
	return err
}

func (f *DiffFormatterImpl) writeJSON(v any, writer io.Writer) error {
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode JSON output", err)
	}
	return nil
}

func (f *DiffFormatterImpl) writeYAML(v any, writer io.Writer) error {
	enc := yaml.NewEncoder(writer)
	defer enc.Close()
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode YAML output", err)
	}
	return nil
}
