package calendar

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cyraxred/contribviolin/internal/core"
	"github.com/cyraxred/contribviolin/internal/table"
	"github.com/pkg/errors"
)

const (
	// ContainerSelector matches the yearly contributions block of the profile page.
	ContainerSelector = "div.js-yearly-contributions"
	// CellSelector matches the calendar squares, both the legacy SVG <rect>-s and the <td>-s.
	CellSelector = ".ContributionCalendar-day"
	// TooltipSelector matches the elements which carry the readable count of the <td> cells.
	TooltipSelector = "tool-tip[for]"

	// AttrDate holds the ISO date of a cell.
	AttrDate = "data-date"
	// AttrCount holds the number of contributions in the legacy markup.
	AttrCount = "data-count"

	// noneToken starts the text of the empty days: "No contributions on ...".
	noneToken = "No"
)

// Cell is a single calendar square. Nil fields were absent in the markup.
type Cell struct {
	Date  *time.Time
	Count *int
}

// Extractor parses the profile page HTML.
type Extractor struct {
	l core.Logger
}

// NewExtractor creates a new Extractor which reports to the given logger.
func NewExtractor(l core.Logger) *Extractor {
	return &Extractor{l: l}
}

// Extract returns the calendar days in document order. Placeholders are skipped.
func (ex *Extractor) Extract(html string) ([]table.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.Wrapf(core.ErrStructuralParse, "%v", err)
	}
	container := doc.Find(ContainerSelector).First()
	if container.Length() == 0 {
		return nil, errors.Wrapf(core.ErrStructuralParse, "no %s element", ContainerSelector)
	}
	tooltips := map[string]string{}
	doc.Find(TooltipSelector).Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("for")
		tooltips[id] = strings.TrimSpace(s.Text())
	})

	var records []table.Record
	skipped := 0
	var parseErr error
	container.Find(CellSelector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		cell, err := ParseCell(s, tooltips)
		if err != nil {
			parseErr = errors.Wrapf(err, "cell #%d", i)
			return false
		}
		if cell.Date == nil || cell.Count == nil {
			skipped++
			return true
		}
		records = append(records, table.Record{Date: *cell.Date, Count: *cell.Count})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(records) == 0 {
		return nil, errors.Wrapf(core.ErrStructuralParse, "no %s cells with dates", CellSelector)
	}
	if ex.l != nil {
		ex.l.Infof("extracted %d calendar days, skipped %d placeholders", len(records), skipped)
	}
	for _, r := range records {
		if r.Count > 0 {
			return records, nil
		}
	}
	return nil, errors.Wrapf(core.ErrNoContributions, "%d calendar days", len(records))
}

// ParseCell reads the date and the count of a calendar square.
// Missing attributes leave the fields nil, malformed values are errors.
// Placeholders without a date are returned as is, their count is not read.
func ParseCell(s *goquery.Selection, tooltips map[string]string) (Cell, error) {
	cell := Cell{}
	if value, exists := s.Attr(AttrDate); exists && value != "" {
		date, err := time.Parse(table.DateFormat, strings.TrimSpace(value))
		if err != nil {
			return cell, errors.Wrapf(core.ErrStructuralParse, "malformed %s=%q", AttrDate, value)
		}
		cell.Date = &date
	}
	if cell.Date == nil {
		return cell, nil
	}
	if value, exists := s.Attr(AttrCount); exists {
		count, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || count < 0 {
			return cell, errors.Wrapf(core.ErrStructuralParse, "malformed %s=%q", AttrCount, value)
		}
		cell.Count = &count
		return cell, nil
	}
	text := strings.TrimSpace(s.Text())
	if text == "" {
		if id, exists := s.Attr("id"); exists {
			text = tooltips[id]
		}
	}
	if text == "" {
		return cell, nil
	}
	count, err := ParseCountText(text)
	if err != nil {
		return cell, err
	}
	cell.Count = &count
	return cell, nil
}

// ParseCountText interprets the readable description of a day, e.g.
// "No contributions on May 1st." or "1,024 contributions on May 2nd.".
func ParseCountText(text string) (int, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, errors.Wrap(core.ErrStructuralParse, "empty count text")
	}
	token := fields[0]
	if token == noneToken {
		return 0, nil
	}
	count, err := strconv.Atoi(strings.ReplaceAll(token, ",", ""))
	if err != nil || count < 0 {
		return 0, errors.Wrapf(core.ErrStructuralParse, "malformed count text %q", text)
	}
	return count, nil
}
