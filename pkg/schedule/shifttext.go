package schedule

import (
	"regexp"
	"strings"
)

// ShiftText is the parsed content of one weekly-grid cell. All fields
// empty means "no shift here" (off day or unparsable cell).
type ShiftText struct {
	StartTime string
	EndTime   string
	Role      string
}

// Empty reports whether the cell yielded no usable time range.
func (s ShiftText) Empty() bool {
	return s.StartTime == "" || s.EndTime == ""
}

var roleRe = regexp.MustCompile(`\(([^)]*)\)`)

// rangePatterns are evaluated in priority order against the cell text
// with the role label already stripped; the first match wins. Each
// pattern captures exactly two groups, start and end, which are fed
// through NormalizeTime.
var rangePatterns = []*regexp.Regexp{
	// 10am - 6pm, 9:30am-5:30pm
	regexp.MustCompile(`(?i)([0-9]{1,2}(?::[0-9]{2})?\s*(?:am|pm))\s*-\s*([0-9]{1,2}(?::[0-9]{2})?\s*(?:am|pm))`),
	// 10:00 - 18:00
	regexp.MustCompile(`([0-9]{1,2}:[0-9]{2})\s*-\s*([0-9]{1,2}:[0-9]{2})`),
	// 10 - 18
	regexp.MustCompile(`([0-9]{1,2})\s*-\s*([0-9]{1,2})`),
}

// ExtractShift parses a weekly-grid cell such as "10am - 6pm (COLD PREP)"
// into start/end times and an optional role label. An empty cell or one
// reading "off" yields the empty ShiftText, as does a cell no range
// pattern recognizes; the caller skips those.
func ExtractShift(cellText string) ShiftText {
	text := strings.TrimSpace(cellText)
	if text == "" || strings.EqualFold(text, "off") {
		return ShiftText{}
	}

	var out ShiftText
	if m := roleRe.FindStringSubmatch(text); m != nil {
		out.Role = strings.TrimSpace(m[1])
		text = strings.TrimSpace(roleRe.ReplaceAllString(text, ""))
	}

	for _, pattern := range rangePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			out.StartTime = NormalizeTime(strings.TrimSpace(m[1]))
			out.EndTime = NormalizeTime(strings.TrimSpace(m[2]))
			break
		}
	}
	return out
}
