package timers

import (
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rodaine/table"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

// Format selects how reports are rendered.
type Format int

const (
	// FormatTable renders an aligned table with a colored title.
	FormatTable Format = iota
	// FormatYAML renders the [Report] as a YAML document.
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTable:
		return "table"
	case FormatYAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Row is the line of a report for one partition.
type Row struct {
	Key        int     `yaml:"key"`
	Label      string  `yaml:"label"`
	Seconds    float64 `yaml:"seconds"`
	Percentage float64 `yaml:"percentage"`
	Entrances  uint64  `yaml:"entrances"`
}

// Report holds the rows of a tree in ascending key order, the root last.
type Report struct {
	Name  string  `yaml:"name"`
	Rank  int     `yaml:"rank"`
	Total float64 `yaml:"total_seconds"`
	Rows  []Row   `yaml:"partitions"`
}

// PrintResults prints the report of t. It returns false without printing on
// every rank but 0, on trees built with too many keys, and while partitions
// other than the root are still open.
func (t *TimersTree) PrintResults() bool {
	rank := t.Rank()
	if !ShouldEmit(rank) {
		return false
	}

	r, ok := t.Report()
	if !ok {
		return false
	}

	w := t.out
	if w == nil {
		w = output
	}
	if err := r.Render(w, t.format); err != nil {
		logger.Error("failed to print results",
			slog.String("tree", t.name), slog.Any("error", err))
		return false
	}
	return true
}

// Report validates t and builds its report without modifying it. The self
// time of the still open root partition is included in the root row.
// Unlike [TimersTree.PrintResults] it does not depend on the rank.
func (t *TimersTree) Report() (Report, bool) {
	if !t.validate() {
		return Report{}, false
	}

	acc := t.acc.copy()
	if root, ok := t.stack.bottom(); ok {
		acc.add(root.Key, root.self(t.clock.Now()))
	}

	total := acc.total()
	divisor := total
	if divisor <= 0 {
		divisor = 1
	}

	r := Report{
		Name:  t.name,
		Rank:  t.Rank(),
		Total: total,
		Rows:  make([]Row, 0, t.NumTimers()),
	}
	for k := 0; k < t.NumTimers(); k++ {
		label, err := t.labelOf(k)
		if err != nil {
			logger.Error("could not match partition, displayed time should not be trusted",
				slog.String("tree", t.name), slog.Int("key", k), slog.Any("error", err))
			return Report{}, false
		}
		r.Rows = append(r.Rows, Row{
			Key:        k,
			Label:      label,
			Seconds:    acc.elapsed[k],
			Percentage: 100 * acc.elapsed[k] / divisor,
			Entrances:  acc.entrances[k],
		})
	}
	return r, true
}

// validate reports whether t is in a state that can be reported: built with
// a valid number of keys, and with exactly the root partition open.
func (t *TimersTree) validate() bool {
	if !t.valid {
		logger.Warn("tree has more keys than partitions, not reporting",
			slog.String("tree", t.name), slog.Int("keys", t.numKeys))
		return false
	}

	if t.stack.size() != 1 {
		logger.Warn("expected only the root partition to be open",
			slog.String("tree", t.name), slog.Int("depth", t.stack.size()))
		return false
	}

	if root, _ := t.stack.bottom(); root.Key != t.numKeys {
		logger.Warn("open partition is not the root",
			slog.String("tree", t.name), slog.Int("key", root.Key))
		return false
	}

	return true
}

func (t *TimersTree) labelOf(key int) (string, error) {
	if key == t.numKeys {
		return RootLabel, nil
	}
	return LabelOf(key)
}

// Render writes r to w in format f.
func (r Report) Render(w io.Writer, f Format) error {
	switch f {
	case FormatTable:
		return r.renderTable(w)
	case FormatYAML:
		return r.renderYAML(w)
	}
	return fmt.Errorf("unknown report format %s", f)
}

func (r Report) renderTable(w io.Writer) error {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()

	tbl := table.New(
		"partition",
		"seconds",
		"percentage",
		"entrances",
	)
	tbl.WithHeaderFormatter(headerFmt)
	tbl.WithWriter(w)

	for _, row := range r.Rows {
		entrances, err := safecast.Conv[int64](row.Entrances)
		if err != nil {
			return fmt.Errorf("entrances of %s: %w", row.Label, err)
		}
		tbl.AddRow(
			row.Label,
			humanize.FtoaWithDigits(row.Seconds, 6),
			fmt.Sprintf("%.2f", row.Percentage),
			humanize.Comma(entrances))
	}

	if _, err := color.New(color.FgGreen).Add(color.Bold).Fprintf(w, "\n%s:\n", r.Name); err != nil {
		return err
	}
	tbl.Print()
	return nil
}

func (r Report) renderYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
