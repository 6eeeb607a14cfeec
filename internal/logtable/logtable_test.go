package logtable

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

const taskLine = "taskId: 101, taskName: 旧梦剪辑 v20 mobileListSize: 3 areaSumCount: 12 areaCountMap: {北京=2, 上海=7, 广州=3}"

const modelLine = "companyId: 7, industryId: 12, startDate: 2024-05-01 00:00:00, endDate: 2024-05-31 23:59:59, modelName:gzy_test countNum:42 areaCountMap: {杭州=10, 苏州=32}"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseTaskLine(t *testing.T) {
	t.Parallel()

	t.Run("parses a well formed line", func(t *testing.T) {
		t.Parallel()

		rec, warnings, ok := ParseTaskLine(taskLine)
		if !ok {
			t.Fatal("expected line to parse")
		}
		if len(warnings) != 0 {
			t.Errorf("unexpected warnings: %v", warnings)
		}
		if rec.TaskID != "101" || rec.TaskName != "旧梦剪辑 v20" {
			t.Errorf("unexpected identity: %+v", rec)
		}
		if rec.MobileListSize != 3 || rec.AreaSumCount != 12 {
			t.Errorf("unexpected counts: %+v", rec)
		}
		if len(rec.Areas) != 3 || rec.Areas[1] != (AreaCount{Area: "上海", Count: 7, Text: "7"}) {
			t.Errorf("unexpected areas: %+v", rec.Areas)
		}
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		t.Parallel()

		if _, _, ok := ParseTaskLine("hello world"); ok {
			t.Error("expected line to be rejected")
		}
	})

	t.Run("skips malformed pairs with a warning", func(t *testing.T) {
		t.Parallel()

		line := "taskId: 1, taskName: a mobileListSize: 0 areaSumCount: 1 areaCountMap: {x=1, broken, y=z}"
		rec, warnings, ok := ParseTaskLine(line)
		if !ok {
			t.Fatal("expected line to parse")
		}
		if len(warnings) != 2 {
			t.Errorf("expected 2 warnings, got %v", warnings)
		}
		if len(rec.Areas) != 1 || rec.Areas[0].Area != "x" {
			t.Errorf("unexpected areas: %+v", rec.Areas)
		}
	})

	t.Run("repeated area keeps first position and last value", func(t *testing.T) {
		t.Parallel()

		line := "taskId: 1, taskName: a mobileListSize: 0 areaSumCount: 3 areaCountMap: {bj=05, sh=1, bj=2}"
		rec, warnings, ok := ParseTaskLine(line)
		if !ok {
			t.Fatal("expected line to parse")
		}
		if len(warnings) != 0 {
			t.Errorf("unexpected warnings: %v", warnings)
		}
		want := []AreaCount{
			{Area: "bj", Count: 2, Text: "2"},
			{Area: "sh", Count: 1, Text: "1"},
		}
		if !reflect.DeepEqual(rec.Areas, want) {
			t.Errorf("got %+v, want %+v", rec.Areas, want)
		}
	})

	t.Run("accepts an empty area map", func(t *testing.T) {
		t.Parallel()

		line := "taskId: 1, taskName: a mobileListSize: 0 areaSumCount: 0 areaCountMap: {}"
		rec, _, ok := ParseTaskLine(line)
		if !ok {
			t.Fatal("expected line to parse")
		}
		if len(rec.Areas) != 0 {
			t.Errorf("expected no areas, got %+v", rec.Areas)
		}
	})
}

func TestParseModelLine(t *testing.T) {
	t.Parallel()

	rec, warnings, ok := ParseModelLine(modelLine)
	if !ok {
		t.Fatal("expected line to parse")
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	want := ModelRecord{
		CompanyID:    "7",
		IndustryID:   "12",
		StartDate:    "2024-05-01",
		EndDate:      "2024-05-31",
		ModelName:    "gzy_test",
		CountNum:     42,
		CountNumText: "42",
		Areas: []AreaCount{
			{Area: "杭州", Count: 10, Text: "10"},
			{Area: "苏州", Count: 32, Text: "32"},
		},
	}
	if !reflect.DeepEqual(rec, want) {
		t.Errorf("got %+v, want %+v", rec, want)
	}
}

func TestFormatTaskTable(t *testing.T) {
	t.Parallel()

	rec := TaskRecord{
		TaskID:       "9",
		TaskName:     "demo",
		AreaSumCount: 5,
		Areas:        []AreaCount{{Area: "a", Count: 1}, {Area: "b", Count: 4}},
	}
	want := strings.Join([]string{
		"| taskId        | 9                              |",
		"|---------------|--------------------------------|",
		"| taskName      | demo                           |",
		"| areaSumCount  | 5                              |",
		"| Area          | Count                          |",
		"|---------------|--------------------------------|",
		"| b             | 4                              |",
		"| a             | 1                              |",
	}, "\n")
	if got := FormatTaskTable(rec); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatTaskTableKeepsDigitsAsWritten(t *testing.T) {
	t.Parallel()

	line := "taskId: 3, taskName: z mobileListSize: 1 areaSumCount: 007 areaCountMap: {bj=05, sh=10}"
	rec, _, ok := ParseTaskLine(line)
	if !ok {
		t.Fatal("expected line to parse")
	}
	if rec.AreaSumCount != 7 {
		t.Errorf("expected parsed sum 7, got %d", rec.AreaSumCount)
	}
	lines := strings.Split(FormatTaskTable(rec), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	for i, want := range map[int]string{
		3: "| areaSumCount  | 007                            |",
		6: "| sh            | 10                             |",
		7: "| bj            | 05                             |",
	} {
		if lines[i] != want {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want)
		}
	}
}

func TestFormatModelTable(t *testing.T) {
	t.Parallel()

	rec, _, ok := ParseModelLine(modelLine)
	if !ok {
		t.Fatal("expected line to parse")
	}
	lines := strings.Split(FormatModelTable(rec), "\n")
	if len(lines) != 11 {
		t.Fatalf("expected 11 lines, got %d:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if lines[0] != "| companyId       | 7                              |" {
		t.Errorf("unexpected first row %q", lines[0])
	}
	if !strings.HasPrefix(lines[9], "| 苏州") || !strings.HasPrefix(lines[10], "| 杭州") {
		t.Errorf("areas not sorted by count: %q, %q", lines[9], lines[10])
	}
}

func TestFormatter(t *testing.T) {
	t.Parallel()

	t.Run("task log ends with the city sum", func(t *testing.T) {
		t.Parallel()

		input := taskLine + "\n\nnot a record\n" +
			"taskId: 102, taskName: other mobileListSize: 1 areaSumCount: 4 areaCountMap: {上海=1, 深圳=3}\n"
		var out bytes.Buffer
		summary, err := NewFormatter(discardLogger()).FormatTaskLog(strings.NewReader(input), &out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Records != 2 || summary.Skipped != 1 {
			t.Errorf("unexpected summary: %+v", summary)
		}
		if !strings.HasSuffix(out.String(), "\n\n\ncity_sum: \n上海: 8\n广州: 3\n深圳: 3\n北京: 2") {
			t.Errorf("unexpected trailer:\n%s", out.String())
		}
		if strings.Count(out.String(), "| taskId ") != 2 {
			t.Errorf("expected two tables:\n%s", out.String())
		}
	})

	t.Run("city sum adds parsed counts", func(t *testing.T) {
		t.Parallel()

		input := "taskId: 1, taskName: a mobileListSize: 0 areaSumCount: 3 areaCountMap: {bj=05, sh=1, bj=2}\n" +
			"taskId: 2, taskName: b mobileListSize: 0 areaSumCount: 08 areaCountMap: {sh=08}\n"
		var out bytes.Buffer
		if _, err := NewFormatter(discardLogger()).FormatTaskLog(strings.NewReader(input), &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(out.String(), "city_sum: \nsh: 9\nbj: 2") {
			t.Errorf("unexpected trailer:\n%s", out.String())
		}
		if strings.Count(out.String(), "| bj ") != 1 {
			t.Errorf("expected a single bj row:\n%s", out.String())
		}
	})

	t.Run("model stats end with the total count", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		summary, err := NewFormatter(nil).Format(KindModel, strings.NewReader(modelLine+"\n"+modelLine), &out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.TotalCount != 84 {
			t.Errorf("expected total 84, got %d", summary.TotalCount)
		}
		if !strings.HasSuffix(out.String(), "\n\n\nTotal countNum: 84") {
			t.Errorf("unexpected trailer:\n%s", out.String())
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()

		_, err := NewFormatter(nil).Format(Kind("other"), strings.NewReader(""), io.Discard)
		if !errors.Is(err, ErrUnknownKind) {
			t.Errorf("expected ErrUnknownKind, got %v", err)
		}
	})
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	if k, err := ParseKind(" Model "); err != nil || k != KindModel {
		t.Errorf("got %q, %v", k, err)
	}
	if _, err := ParseKind("csv"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}
