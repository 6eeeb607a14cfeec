package logtable

import (
	"fmt"
	"strconv"
	"strings"
)

// Column widths of the rendered tables.
const (
	TaskKeyWidth  = 13
	ModelKeyWidth = 15
	ValueWidth    = 30
)

// table renders "| key | value |" rows padded to fixed widths.
// Widths count Unicode code points.
type table struct {
	keyWidth   int
	valueWidth int
	lines      []string
}

func newTable(keyWidth, valueWidth int) *table {
	return &table{keyWidth: keyWidth, valueWidth: valueWidth}
}

func (t *table) row(key, value string) {
	t.lines = append(t.lines, fmt.Sprintf("| %-*s | %-*s |", t.keyWidth, key, t.valueWidth, value))
}

func (t *table) separator() {
	t.lines = append(t.lines,
		"|"+strings.Repeat("-", t.keyWidth+2)+"|"+strings.Repeat("-", t.valueWidth+2)+"|")
}

func (t *table) areas(areas []AreaCount) {
	for _, a := range sortByCount(areas) {
		t.row(a.Area, a.display())
	}
}

// numberText prefers the digits as written over the parsed value.
func numberText(text string, n int) string {
	if text != "" {
		return text
	}
	return strconv.Itoa(n)
}

func (t *table) String() string {
	return strings.Join(t.lines, "\n")
}

// FormatTaskTable renders one task log record.
func FormatTaskTable(rec TaskRecord) string {
	t := newTable(TaskKeyWidth, ValueWidth)
	t.row("taskId", rec.TaskID)
	t.separator()
	t.row("taskName", rec.TaskName)
	t.row("areaSumCount", numberText(rec.AreaSumCountText, rec.AreaSumCount))
	t.row("Area", "Count")
	t.separator()
	t.areas(rec.Areas)
	return t.String()
}

// FormatModelTable renders one model statistics record.
func FormatModelTable(rec ModelRecord) string {
	t := newTable(ModelKeyWidth, ValueWidth)
	t.row("companyId", rec.CompanyID)
	t.row("industryId", rec.IndustryID)
	t.separator()
	t.row("startDate", rec.StartDate)
	t.row("endDate", rec.EndDate)
	t.row("modelName", rec.ModelName)
	t.row("countNum", numberText(rec.CountNumText, rec.CountNum))
	t.row("area", "count")
	t.separator()
	t.areas(rec.Areas)
	return t.String()
}
