package fixtures

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// Day is one calendar square of a fixture page.
type Day struct {
	Date  string
	Count int
}

// Week builds consecutive days starting at `start` (YYYY-MM-DD) with the given counts.
func Week(start string, counts ...int) []Day {
	t0, err := time.Parse("2006-01-02", start)
	if err != nil {
		panic(err)
	}
	days := make([]Day, len(counts))
	for i, c := range counts {
		days[i] = Day{Date: t0.AddDate(0, 0, i).Format("2006-01-02"), Count: c}
	}
	return days
}

// Page wraps the calendar markup into a profile page.
func Page(calendar string) string {
	return `<!DOCTYPE html><html><head><title>octocat</title></head><body>
<div class="application-main"><h2 class="f4 text-normal mb-2">contributions in the last year</h2>
<div class="js-yearly-contributions">` + calendar + `</div></div></body></html>`
}

// LegacyPage renders the SVG calendar with data-count attributes and two padding
// squares without a date.
func LegacyPage(days []Day) string {
	var sb strings.Builder
	sb.WriteString(`<svg width="828" height="128" class="js-calendar-graph-svg"><g transform="translate(10, 20)">`)
	sb.WriteString(`<rect class="ContributionCalendar-day" width="10" height="10"></rect>`)
	for i, d := range days {
		sb.WriteString(fmt.Sprintf(
			`<rect class="ContributionCalendar-day" width="10" height="10" x="%d" y="%d" data-date="%s" data-count="%d" data-level="1"></rect>`,
			14*(i/7), 13*(i%7), d.Date, d.Count))
	}
	sb.WriteString(`<rect class="ContributionCalendar-day" width="10" height="10"></rect>`)
	sb.WriteString(`</g></svg>`)
	return Page(sb.String())
}

// TextPage renders the cells with the readable description inside of them.
func TextPage(days []Day) string {
	var sb strings.Builder
	sb.WriteString(`<table class="ContributionCalendar-grid"><tbody><tr>`)
	sb.WriteString(`<td class="ContributionCalendar-label"><span>Mon</span></td>`)
	sb.WriteString(`<td class="ContributionCalendar-day"></td>`)
	for _, d := range days {
		sb.WriteString(fmt.Sprintf(`<td class="ContributionCalendar-day" data-date="%s">%s</td>`,
			d.Date, html.EscapeString(Describe(d))))
	}
	sb.WriteString(`</tr></tbody></table>`)
	return Page(sb.String())
}

// TooltipPage renders the current markup: empty <td> cells referenced by <tool-tip>-s.
func TooltipPage(days []Day) string {
	var sb strings.Builder
	sb.WriteString(`<table class="ContributionCalendar-grid"><tbody><tr>`)
	for i, d := range days {
		sb.WriteString(fmt.Sprintf(
			`<td tabindex="0" data-ix="%d" data-date="%s" id="contribution-day-component-%d-%d" data-level="0" role="gridcell" class="ContributionCalendar-day"></td>`,
			i/7, d.Date, i%7, i/7))
	}
	sb.WriteString(`</tr></tbody></table>`)
	for i, d := range days {
		sb.WriteString(fmt.Sprintf(`<tool-tip for="contribution-day-component-%d-%d" popover="manual">%s</tool-tip>`,
			i%7, i/7, html.EscapeString(Describe(d))))
	}
	return Page(sb.String())
}

// Describe produces the readable text GitHub shows for a day.
func Describe(d Day) string {
	switch d.Count {
	case 0:
		return fmt.Sprintf("No contributions on %s.", d.Date)
	case 1:
		return fmt.Sprintf("1 contribution on %s.", d.Date)
	}
	return fmt.Sprintf("%s contributions on %s.", thousands(d.Count), d.Date)
}

func thousands(n int) string {
	s := fmt.Sprint(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

// Year generates 371 days ending at `end` with a deterministic weekly pattern.
func Year(end string) []Day {
	t1, err := time.Parse("2006-01-02", end)
	if err != nil {
		panic(err)
	}
	t0 := t1.AddDate(0, 0, -370)
	days := make([]Day, 371)
	for i := range days {
		date := t0.AddDate(0, 0, i)
		count := (i*7 + 3) % 11
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			count /= 3
		}
		days[i] = Day{Date: date.Format("2006-01-02"), Count: count}
	}
	return days
}

// NotFound is the body of the profile page of an unknown user.
const NotFound = "Not Found"

// NoCalendarPage is a valid page without the contributions block.
const NoCalendarPage = `<!DOCTYPE html><html><body><div class="application-main">
<p>This organization has no public members.</p></div></body></html>`
