package audit

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"relocation_quest/internal/domain"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// Reporter writes audit results as tables. Discrepancy lists are cut at
// Preview rows.
type Reporter struct {
	w       io.Writer
	Preview int
}

func NewReporter(w io.Writer, preview int) *Reporter {
	return &Reporter{w: w, Preview: preview}
}

func (r *Reporter) heading(format string, args ...any) {
	fmt.Fprintf(r.w, "\n=== "+format+" ===\n", args...)
}

func (r *Reporter) TableAudit(a TableAudit) {
	r.heading("%s TABLES", a.Instance)
	if a.ListErr != "" {
		fmt.Fprintf(r.w, "error listing tables: %s\n", a.ListErr)
	} else {
		rows := make([][]string, 0, len(a.Tables))
		for _, t := range a.Tables {
			rows = append(rows, []string{t.Name, t.Type})
		}
		fmt.Fprintln(r.w, renderTable([]string{"Table", "Type"}, rows, nil))
	}

	rows := make([][]string, 0, len(a.Counts))
	for _, c := range a.Counts {
		if c.Found {
			rows = append(rows, []string{c.Name, strconv.FormatInt(c.Rows, 10), ""})
		} else {
			rows = append(rows, []string{c.Name, "-", "NOT FOUND or ERROR: " + c.Err})
		}
	}
	fmt.Fprintln(r.w, renderTable([]string{"Table", "Rows", "Note"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
}

func (r *Reporter) ColumnAudit(a ColumnAudit) {
	for _, t := range a.Tables {
		r.heading("%s %s COLUMNS", a.Instance, t.Table)
		switch {
		case t.Err != "":
			fmt.Fprintf(r.w, "error: %s\n", t.Err)
		case !t.Found():
			fmt.Fprintln(r.w, "not found")
		default:
			rows := make([][]string, 0, len(t.Columns))
			for _, c := range t.Columns {
				nullable := "NO"
				if c.Nullable {
					nullable = "YES"
				}
				rows = append(rows, []string{c.Name, c.DataType, nullable})
			}
			fmt.Fprintln(r.w, renderTable([]string{"Column", "Type", "Nullable"}, rows, nil))
		}
	}
}

func (r *Reporter) Parity(p ParityReport) {
	r.heading("ARTICLE PARITY %s -> %s", p.Source, p.Target)
	if p.Err != "" {
		fmt.Fprintf(r.w, "error: %s\n", p.Err)
		return
	}

	fmt.Fprintf(r.w, "%s articles: %d\n", p.Source, p.SourceCount)
	fmt.Fprintf(r.w, "%s articles: %d\n", p.Target, p.TargetCount)

	fmt.Fprintf(r.w, "\nIn %s but NOT in %s: %d\n", p.Source, p.Target, len(p.MissingInTarget))
	r.preview(p.MissingInTarget)

	fmt.Fprintf(r.w, "\nIn %s but NOT in %s: %d\n", p.Target, p.Source, len(p.ExtraInTarget))
	r.preview(p.ExtraInTarget)
}

func (r *Reporter) preview(keys []domain.ArticleKey) {
	if len(keys) == 0 {
		return
	}
	shown, more := Preview(keys, r.Preview)

	rows := make([][]string, 0, len(shown))
	for _, k := range shown {
		country := ""
		if k.Country != nil {
			country = *k.Country
		}
		rows = append(rows, []string{k.Title, k.Slug, country})
	}
	fmt.Fprintln(r.w, renderTable([]string{"Title", "Slug", "Country"}, rows, nil))
	if more > 0 {
		fmt.Fprintf(r.w, "... and %d more\n", more)
	}
}

func (r *Reporter) Coverage(c CoverageReport) {
	r.heading("DESTINATION COVERAGE (%s)", c.Instance)

	rows := make([][]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		switch {
		case e.Err != "":
			rows = append(rows, []string{e.Destination, "-", "error: " + e.Err})
		case e.Gap():
			rows = append(rows, []string{e.Destination, "0", "NO ARTICLES"})
		default:
			rows = append(rows, []string{e.Destination, strconv.FormatInt(e.Articles, 10), ""})
		}
	}
	fmt.Fprintln(r.w, renderTable([]string{"Destination", "Articles", "Note"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
}

func (r *Reporter) Breakdown(b BreakdownReport) {
	r.heading("%s ARTICLES", b.Instance)
	if b.Err != "" {
		fmt.Fprintf(r.w, "error counting articles: %s\n", b.Err)
	} else {
		fmt.Fprintf(r.w, "total: %d\n", b.Total)
	}

	for _, d := range b.Breakdowns {
		fmt.Fprintf(r.w, "\nby %s:\n", d.Dimension)
		if d.Err != "" {
			fmt.Fprintf(r.w, "error: %s\n", d.Err)
			continue
		}
		rows := make([][]string, 0, len(d.Rows))
		for _, row := range d.Rows {
			value := "(none)"
			if row.Value != nil {
				value = *row.Value
			}
			rows = append(rows, []string{value, strconv.FormatInt(row.Count, 10)})
		}
		fmt.Fprintln(r.w, renderTable([]string{d.Dimension, "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
	}
}

func (r *Reporter) Discovery(d DiscoveryReport) {
	if d.Partition != "" {
		r.heading("%s ARTICLES BY %s", d.Source, d.Partition)
		if d.PartitionErr != "" {
			fmt.Fprintf(r.w, "error: %s\n", d.PartitionErr)
		} else {
			rows := make([][]string, 0, len(d.ByPartition))
			for _, row := range d.ByPartition {
				value := "(none)"
				if row.Value != nil {
					value = *row.Value
				}
				rows = append(rows, []string{value, strconv.FormatInt(row.Count, 10)})
			}
			fmt.Fprintln(r.w, renderTable([]string{d.Partition, "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
		}
	}

	r.heading("RELOCATION CANDIDATES %s -> %s", d.Source, d.Target)
	if d.Err != "" {
		fmt.Fprintf(r.w, "error: %s\n", d.Err)
		return
	}
	fmt.Fprintf(r.w, "candidates in %s: %d\n", d.Source, len(d.Candidates))
	fmt.Fprintf(r.w, "\nNOT in %s: %d\n", d.Target, len(d.Missing))
	r.preview(d.Missing)
}

// CopySteps summarises the reference data copy, one row per step.
func (r *Reporter) CopySteps(steps []domain.CopyStats) {
	r.heading("REFERENCE DATA")

	rows := make([][]string, 0, len(steps))
	for _, s := range steps {
		note := ""
		if s.Err != "" {
			note = "error: " + s.Err
		}
		rows = append(rows, []string{
			s.Step,
			strconv.Itoa(s.Fetched),
			strconv.Itoa(s.New),
			strconv.Itoa(s.Updated),
			strconv.Itoa(s.Unchanged),
			strconv.Itoa(s.Skipped),
			strconv.Itoa(s.Errors),
			note,
		})
	}
	fmt.Fprintln(r.w, renderTable(
		[]string{"Step", "Fetched", "New", "Updated", "Unchanged", "Skipped", "Errors", "Note"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
	))
}

// Preview returns at most n leading items and how many were left out.
func Preview[T any](items []T, n int) ([]T, int) {
	if n <= 0 || len(items) <= n {
		return items, 0
	}
	return items[:n], len(items) - n
}

func (r *Reporter) Migration(s domain.MigrationStats) {
	title := "MIGRATION"
	if s.DryRun {
		title = "MIGRATION (dry run)"
	}
	r.heading("%s %s", title, s.RunID)

	partition := "(all rows)"
	if !s.Partition.IsZero() {
		partition = s.Partition.Column + " = " + s.Partition.Value
	}

	rows := [][]string{
		{"partition", partition},
		{"fetched", strconv.Itoa(s.Fetched)},
		{"new", strconv.Itoa(s.New)},
		{"updated", strconv.Itoa(s.Updated)},
		{"unchanged", strconv.Itoa(s.Unchanged)},
		{"skipped (already in target)", strconv.Itoa(s.Skipped)},
		{"errors", strconv.Itoa(s.Errors)},
		{"published", strconv.Itoa(s.Published)},
		{"duration", s.Duration.Round(time.Millisecond).String()},
	}
	fmt.Fprintln(r.w, renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
}
