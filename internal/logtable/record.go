package logtable

import (
	"regexp"
	"strconv"
	"strings"
)

// TaskRecord is one line of a raw task log. AreaSumCountText keeps the
// digits as written for display.
type TaskRecord struct {
	TaskID           string      `json:"taskId"`
	TaskName         string      `json:"taskName"`
	MobileListSize   int         `json:"mobileListSize"`
	AreaSumCount     int         `json:"areaSumCount"`
	AreaSumCountText string      `json:"-"`
	Areas            []AreaCount `json:"areaCountMap"`
}

// ModelRecord is one line of a model statistics export. CountNumText
// keeps the digits as written for display.
type ModelRecord struct {
	CompanyID    string      `json:"companyId"`
	IndustryID   string      `json:"industryId"`
	StartDate    string      `json:"startDate"`
	EndDate      string      `json:"endDate"`
	ModelName    string      `json:"modelName"`
	CountNum     int         `json:"countNum"`
	CountNumText string      `json:"-"`
	Areas        []AreaCount `json:"areaCountMap"`
}

var taskLinePattern = regexp.MustCompile(
	`^taskId:\s*(?P<taskId>\d+),\s*` +
		`taskName:\s*(?P<taskName>.*?)\s+mobileListSize:\s*(?P<mobileListSize>\d+)\s*` +
		`areaSumCount:\s*(?P<areaSumCount>\d+)\s*` +
		`areaCountMap:\s*(?P<areaCountMap>\{.*\})`,
)

var modelLinePattern = regexp.MustCompile(
	`^companyId:\s*(?P<companyId>\d+),\s*industryId:\s*(?P<industryId>\d+),\s*` +
		`startDate:\s*(?P<startDate>[\d-]+ \d+:\d+:\d+),\s*endDate:\s*(?P<endDate>[\d-]+ \d+:\d+:\d+),\s*` +
		`modelName:(?P<modelName>[^:]+)\s+countNum:(?P<countNum>\d+)\s+` +
		`areaCountMap:\s*(?P<areaCountMap>\{.*\})`,
)

// groups returns the named submatches of re in line, or nil.
func groups(re *regexp.Regexp, line string) map[string]string {
	match := re.FindStringSubmatch(line)
	if match == nil {
		return nil
	}
	out := make(map[string]string, len(match))
	for i, name := range re.SubexpNames() {
		if name != "" {
			out[name] = match[i]
		}
	}
	return out
}

// ParseTaskLine parses one task log line. ok is false when the line does
// not have the task log layout; warnings list skipped area pairs.
func ParseTaskLine(line string) (rec TaskRecord, warnings []string, ok bool) {
	g := groups(taskLinePattern, line)
	if g == nil {
		return TaskRecord{}, nil, false
	}

	// The patterns only admit digits here.
	mobile, _ := strconv.Atoi(g["mobileListSize"]) //nolint:errcheck
	sum, _ := strconv.Atoi(g["areaSumCount"])      //nolint:errcheck

	areas, warnings := parseAreaMap(g["areaCountMap"])
	return TaskRecord{
		TaskID:           g["taskId"],
		TaskName:         strings.TrimSpace(g["taskName"]),
		MobileListSize:   mobile,
		AreaSumCount:     sum,
		AreaSumCountText: g["areaSumCount"],
		Areas:            areas,
	}, warnings, true
}

// ParseModelLine parses one model statistics line. Only the date part of
// the start and end timestamps is kept.
func ParseModelLine(line string) (rec ModelRecord, warnings []string, ok bool) {
	g := groups(modelLinePattern, line)
	if g == nil {
		return ModelRecord{}, nil, false
	}

	count, _ := strconv.Atoi(g["countNum"]) //nolint:errcheck

	areas, warnings := parseAreaMap(g["areaCountMap"])
	return ModelRecord{
		CompanyID:    g["companyId"],
		IndustryID:   g["industryId"],
		StartDate:    datePart(g["startDate"]),
		EndDate:      datePart(g["endDate"]),
		ModelName:    strings.TrimSpace(g["modelName"]),
		CountNum:     count,
		CountNumText: g["countNum"],
		Areas:        areas,
	}, warnings, true
}

func datePart(ts string) string {
	date, _, _ := strings.Cut(ts, " ")
	return date
}
