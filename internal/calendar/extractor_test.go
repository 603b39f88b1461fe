package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cyraxred/contribviolin/internal/core"
	"github.com/cyraxred/contribviolin/internal/table"
	"github.com/cyraxred/contribviolin/internal/test/fixtures"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureExtractor() *Extractor {
	return NewExtractor(core.NewLogger())
}

func date(s string) time.Time {
	t, _ := time.Parse(table.DateFormat, s)
	return t
}

func counts(records []table.Record) []int {
	result := make([]int, len(records))
	for i, r := range records {
		result[i] = r.Count
	}
	return result
}

func TestExtractLegacyAttributes(t *testing.T) {
	week := fixtures.Week("2024-01-01", 1, 0, 3, 2, 5, 0, 4)
	records, err := fixtureExtractor().Extract(fixtures.LegacyPage(week))
	require.NoError(t, err)
	require.Len(t, records, 7)
	assert.Equal(t, []int{1, 0, 3, 2, 5, 0, 4}, counts(records))
	assert.Equal(t, date("2024-01-01"), records[0].Date)
	assert.Equal(t, date("2024-01-07"), records[6].Date)
}

func TestExtractText(t *testing.T) {
	week := fixtures.Week("2024-01-01", 0, 1, 1234, 2, 0, 0, 7)
	records, err := fixtureExtractor().Extract(fixtures.TextPage(week))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1234, 2, 0, 0, 7}, counts(records))
}

func TestExtractTooltips(t *testing.T) {
	year := fixtures.Year("2024-06-30")
	records, err := fixtureExtractor().Extract(fixtures.TooltipPage(year))
	require.NoError(t, err)
	require.Len(t, records, 371)
	for i, r := range records {
		assert.Equal(t, year[i].Count, r.Count)
		assert.Equal(t, year[i].Date, r.Date.Format(table.DateFormat))
	}
}

func TestExtractDuplicatesKeptInOrder(t *testing.T) {
	days := []fixtures.Day{{Date: "2024-01-01", Count: 2}, {Date: "2024-01-01", Count: 5}}
	records, err := fixtureExtractor().Extract(fixtures.LegacyPage(days))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, counts(records))
	tbl := table.New(records)
	assert.Equal(t, 1, tbl.Len())
	count, _ := tbl.Get(date("2024-01-01"))
	assert.Equal(t, 5, count)
}

func TestExtractMissingContainer(t *testing.T) {
	_, err := fixtureExtractor().Extract(fixtures.NoCalendarPage)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrStructuralParse))

	_, err = fixtureExtractor().Extract(fixtures.NotFound)
	assert.True(t, errors.Is(err, core.ErrStructuralParse))
}

func TestExtractNoCells(t *testing.T) {
	_, err := fixtureExtractor().Extract(fixtures.Page("<p>loading...</p>"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrStructuralParse))
}

func TestExtractAllZero(t *testing.T) {
	week := fixtures.Week("2024-01-01", 0, 0, 0, 0, 0, 0, 0)
	_, err := fixtureExtractor().Extract(fixtures.LegacyPage(week))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNoContributions))
	_, err = fixtureExtractor().Extract(fixtures.TooltipPage(week))
	assert.True(t, errors.Is(err, core.ErrNoContributions))
}

func TestExtractMalformed(t *testing.T) {
	page := fixtures.Page(`<svg><rect class="ContributionCalendar-day" data-date="2024-13-45" data-count="1"></rect></svg>`)
	_, err := fixtureExtractor().Extract(page)
	assert.True(t, errors.Is(err, core.ErrStructuralParse))

	page = fixtures.Page(`<svg><rect class="ContributionCalendar-day" data-date="2024-01-01" data-count="many"></rect></svg>`)
	_, err = fixtureExtractor().Extract(page)
	assert.True(t, errors.Is(err, core.ErrStructuralParse))
	assert.Contains(t, err.Error(), "cell #0")
}

func TestExtractSkipsPlaceholders(t *testing.T) {
	page := fixtures.Page(`<svg>` +
		`<rect class="ContributionCalendar-day" data-count="many"></rect>` +
		`<rect class="ContributionCalendar-day" data-date="2024-01-01" data-count="3"></rect>` +
		`</svg>`)
	records, err := fixtureExtractor().Extract(page)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].Count)
}

func selection(t *testing.T, markup string) *goquery.Selection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		"<table><tbody><tr>" + markup + "</tr></tbody></table>"))
	require.NoError(t, err)
	s := doc.Find("td")
	require.Equal(t, 1, s.Length())
	return s
}

func TestParseCell(t *testing.T) {
	cell, err := ParseCell(selection(t, `<td></td>`), nil)
	require.NoError(t, err)
	assert.Nil(t, cell.Date)
	assert.Nil(t, cell.Count)

	cell, err = ParseCell(selection(t, `<td data-date="2024-02-29"></td>`), nil)
	require.NoError(t, err)
	require.NotNil(t, cell.Date)
	assert.Equal(t, date("2024-02-29"), *cell.Date)
	assert.Nil(t, cell.Count)

	cell, err = ParseCell(selection(t, `<td data-date="2024-02-29" data-count="0">3 contributions</td>`), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, *cell.Count)

	cell, err = ParseCell(selection(t, `<td id="d1" data-date="2024-02-29"></td>`),
		map[string]string{"d1": "4 contributions on February 29th."})
	require.NoError(t, err)
	assert.Equal(t, 4, *cell.Count)

	_, err = ParseCell(selection(t, `<td data-date="2024-02-29" data-count="-1"></td>`), nil)
	assert.True(t, errors.Is(err, core.ErrStructuralParse))

	cell, err = ParseCell(selection(t, `<td data-count="many">?</td>`), nil)
	require.NoError(t, err)
	assert.Nil(t, cell.Date)
	assert.Nil(t, cell.Count)
}

func TestParseCountText(t *testing.T) {
	count, err := ParseCountText("No contributions on Monday, January 1, 2024")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	count, err = ParseCountText("3 contributions on Monday, January 1, 2024")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	count, err = ParseCountText("  1,024 contributions on June 2nd.")
	require.NoError(t, err)
	assert.Equal(t, 1024, count)
	_, err = ParseCountText("Lots of contributions")
	assert.True(t, errors.Is(err, core.ErrStructuralParse))
	_, err = ParseCountText("   ")
	assert.Error(t, err)
}
