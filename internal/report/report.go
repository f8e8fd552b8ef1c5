// Package report renders validation reports as styled text, JSON or
// Datalog facts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"dlcheck/internal/facts"
	"dlcheck/internal/logging"
	"dlcheck/internal/validate"
)

// Section is the report of one validated module.
type Section struct {
	Name   string
	Report *validate.Report
}

// Options configures rendering.
type Options struct {
	// NoColor disables lipgloss styling in the text format.
	NoColor bool
	// Verbose lists every resolved type, not only failures.
	Verbose bool
}

// Write renders sections in format: text, json or facts.
func Write(w io.Writer, format string, sections []Section, opts Options) error {
	logging.Get(logging.CategoryReport).Debug("rendering %d sections as %s", len(sections), format)
	switch format {
	case "", "text":
		return Text(w, sections, opts)
	case "json":
		return JSON(w, sections)
	case "facts":
		return Facts(w, sections)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// Text writes a human-readable report.
func Text(w io.Writer, sections []Section, opts Options) error {
	styles := NewStyles(DetectTheme())
	if opts.NoColor {
		styles = PlainStyles()
	}

	var sb strings.Builder
	for _, s := range sections {
		r := s.Report
		if r == nil {
			continue
		}
		sb.WriteString(styles.Title.Render(s.Name))
		sb.WriteString(" " + styles.Muted.Render("session "+r.SessionID.String()))
		sb.WriteByte('\n')

		if opts.Verbose {
			for _, res := range r.Resolutions {
				label := fmt.Sprintf("%-7s", res.Category)
				switch res.Category {
				case validate.ResolvedData:
					label = styles.Data.Render(label)
				case validate.ResolvedLogic:
					label = styles.Logic.Render(label)
				default:
					label = styles.Exempt.Render(label)
				}
				fmt.Fprintf(&sb, "  %s %s\n", label, res.Name)
			}
		}

		for _, f := range r.Failures {
			fmt.Fprintf(&sb, "  %s %s\n", styles.Failure.Render("FAIL   "), f.Name)
			fmt.Fprintf(&sb, "          not Data:  %s\n", styles.Reason.Render(f.DataReason))
			fmt.Fprintf(&sb, "          not Logic: %s\n", styles.Reason.Render(f.LogicReason))
		}

		summary := fmt.Sprintf("checked %d types: %d data, %d logic, %d exempt, %d failed (%s)",
			r.Checked(), r.Data, r.Logic, r.Exempt, len(r.Failures), r.Duration.Round(time.Microsecond))
		sb.WriteString(styles.Summary.Render(summary))
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

type jsonFailure struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	DataReason  string `json:"data_reason"`
	LogicReason string `json:"logic_reason"`
}

type jsonSection struct {
	Name        string                `json:"name"`
	Session     string                `json:"session"`
	Resolutions []validate.Resolution `json:"resolutions"`
	Failures    []jsonFailure         `json:"failures"`
	Data        int                   `json:"data"`
	Logic       int                   `json:"logic"`
	Exempt      int                   `json:"exempt"`
	DurationMS  float64               `json:"duration_ms"`
}

// JSON writes one indented document holding every section.
func JSON(w io.Writer, sections []Section) error {
	out := make([]jsonSection, 0, len(sections))
	for _, s := range sections {
		r := s.Report
		if r == nil {
			continue
		}
		js := jsonSection{
			Name:        s.Name,
			Session:     r.SessionID.String(),
			Resolutions: r.Resolutions,
			Failures:    make([]jsonFailure, 0, len(r.Failures)),
			Data:        r.Data,
			Logic:       r.Logic,
			Exempt:      r.Exempt,
			DurationMS:  float64(r.Duration) / float64(time.Millisecond),
		}
		if js.Resolutions == nil {
			js.Resolutions = []validate.Resolution{}
		}
		for _, f := range r.Failures {
			js.Failures = append(js.Failures, jsonFailure{
				Type:        string(f.Type),
				Name:        f.Name,
				DataReason:  f.DataReason,
				LogicReason: f.LogicReason,
			})
		}
		out = append(out, js)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Facts writes type_category and classification_failure facts.
func Facts(w io.Writer, sections []Section) error {
	var fs []facts.Fact
	for _, s := range sections {
		if s.Report == nil {
			continue
		}
		for _, res := range s.Report.Resolutions {
			fs = append(fs, facts.TypeCategory(string(res.Type), res.Category.String()))
		}
		for _, f := range s.Report.Failures {
			fs = append(fs, facts.ClassificationFailure(string(f.Type), f.DataReason, f.LogicReason))
		}
	}
	if _, err := facts.Atoms(fs); err != nil {
		return fmt.Errorf("invalid fact: %w", err)
	}
	_, err := io.WriteString(w, facts.Program(fs))
	return err
}
