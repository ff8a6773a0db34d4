package schedule

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// iCalendar (RFC 5545) export of a generated plan. The portal serves the
// file for download so students can pull their study plan into any
// calendar app.

const (
	icsTimeLayout = "20060102T150405Z" // basic UTC form
	icsLineLimit  = 75                 // octets, per RFC 5545 §3.1
)

// ics PRIORITY values; lower means higher priority per the RFC.
var icsPriorities = map[string]int{
	PriorityHigh:   1,
	PriorityMedium: 5,
	PriorityLow:    9,
}

var icsNowFunc = time.Now // mockable

// WriteICS serializes every session of the plan as a VEVENT.
func WriteICS(w io.Writer, days []DaySchedule) error {
	iw := &icsWriter{w: w}
	iw.line("BEGIN:VCALENDAR")
	iw.line("VERSION:2.0")
	iw.line("PRODID:-//EduHub//Study Planner//EN")
	iw.line("CALSCALE:GREGORIAN")
	iw.line("METHOD:PUBLISH")

	stamp := icsNowFunc().UTC().Format(icsTimeLayout)
	for _, day := range days {
		for _, s := range day.Sessions {
			iw.line("BEGIN:VEVENT")
			iw.line(fmt.Sprintf("UID:%d-%s@eduhub", icsNowFunc().UTC().UnixNano(), uuid.New()))
			iw.line("DTSTAMP:" + stamp)
			iw.line("DTSTART:" + s.StartTime.UTC().Format(icsTimeLayout))
			iw.line("DTEND:" + s.EndTime.UTC().Format(icsTimeLayout))
			iw.line("SUMMARY:Study: " + escapeICSText(s.Subject))
			iw.line("DESCRIPTION:" + escapeICSText(s.Title))
			iw.line(fmt.Sprintf("PRIORITY:%d", icsPriorities[s.Priority]))
			iw.line("END:VEVENT")
		}
	}

	iw.line("END:VCALENDAR")
	return iw.err
}

// ExportICS renders the plan to an in-memory .ics document.
func ExportICS(days []DaySchedule) []byte {
	var buf bytes.Buffer
	_ = WriteICS(&buf, days) // bytes.Buffer never errors
	return buf.Bytes()
}

// icsWriter emits CRLF-terminated, folded content lines, capturing the
// first write error.
type icsWriter struct {
	w   io.Writer
	err error
}

func (iw *icsWriter) line(s string) {
	if iw.err != nil {
		return
	}
	for _, part := range foldICSLine(s) {
		if _, err := io.WriteString(iw.w, part+"\r\n"); err != nil {
			iw.err = err
			return
		}
	}
}

// foldICSLine splits a content line into the initial line plus
// space-prefixed continuations, none longer than the RFC limit.
func foldICSLine(s string) []string {
	if len(s) <= icsLineLimit {
		return []string{s}
	}
	parts := []string{s[:icsLineLimit]}
	s = s[icsLineLimit:]
	for len(s) > icsLineLimit-1 {
		parts = append(parts, " "+s[:icsLineLimit-1])
		s = s[icsLineLimit-1:]
	}
	parts = append(parts, " "+s)
	return parts
}

// escapeICSText escapes TEXT values per RFC 5545 §3.3.11.
func escapeICSText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\r\n", `\n`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
