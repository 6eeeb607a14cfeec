package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/taskseries/internal/model"
)

// MarkdownTitle is the H1 heading of the grouped report.
const MarkdownTitle = "Model Series Groups"

// MarkdownWriter outputs the mapping grouped by series:
//
//	# Model Series Groups
//	## Series: <series>
//	- `<task>`
//
// Series are ordered by name with Uncategorized last, tasks by name.
type MarkdownWriter struct {
	baseWriter

	chart   bool
	summary bool
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithChart adds a mermaid pie chart of tasks per series.
func WithChart(enabled bool) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.chart = enabled
	}
}

// WithSummary adds a table with the number of tasks per series.
func WithSummary(enabled bool) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.summary = enabled
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the grouped report in Markdown format.
func (w *MarkdownWriter) Write(m *model.Mapping) (int, error) {
	return w.WriteGroups(model.GroupBySeries(m))
}

// WriteGroups outputs already grouped tasks in Markdown format.
func (w *MarkdownWriter) WriteGroups(groups []model.SeriesGroup) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(MarkdownTitle)
	md.PlainText("")

	if w.summary && len(groups) > 0 {
		w.writeSummary(md, groups)
	}
	if w.chart && len(groups) > 0 {
		w.writePieChart(md, groups)
	}

	for _, g := range groups {
		md.H2("Series: " + g.Series)
		md.PlainText("")

		items := make([]string, len(g.Tasks))
		for i, task := range g.Tasks {
			items[i] = "`" + task + "`"
		}
		md.BulletList(items...)
		md.PlainText("")
	}
	// Body lines are joined by line feeds, so the last one closes the
	// trailing blank line.
	md.PlainText("")

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, groups []model.SeriesGroup) {
	rows := make([][]string, 0, len(groups)+1)
	total := 0
	for _, g := range groups {
		rows = append(rows, []string{g.Series, strconv.Itoa(len(g.Tasks))})
		total += len(g.Tasks)
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(total) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Series", "Tasks"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, groups []model.SeriesGroup) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Tasks per Series"),
		piechart.WithShowData(true),
	)
	for _, g := range groups {
		chart.LabelAndIntValue(g.Series, uint64(len(g.Tasks)))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}
