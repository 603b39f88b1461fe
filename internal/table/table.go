package table

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// DateFormat is the layout of the calendar dates, "YYYY-MM-DD".
const DateFormat = "2006-01-02"

// Weekdays is the number of day-of-week buckets.
const Weekdays = 7

// WeekdayNames are the short labels of the buckets, Monday first.
var WeekdayNames = [Weekdays]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Record is a single calendar day.
type Record struct {
	Date  time.Time
	Count int
}

// Table is the collection of Record-s keyed by date. Inserting the same date twice
// keeps the latest count.
type Table struct {
	counts map[time.Time]int
	// dates are sorted in ascending order
	dates []time.Time
}

// Summary is the day-of-week aggregate which is consumed by the renderer and the report.
type Summary struct {
	// Buckets holds the counts per weekday (Monday=0) in chronological order.
	Buckets [Weekdays][]int
	// Means holds the arithmetic mean of each bucket; NaN if the bucket is empty.
	Means [Weekdays]float64
	// MaxCount is the largest daily count.
	MaxCount int
	// Start is the first date in the table.
	Start time.Time
	// End is the last date in the table.
	End time.Time
	// Total is the sum of all the counts.
	Total int
	// Days is the number of records.
	Days int
}

// New builds the table from the extracted records in document order.
func New(records []Record) *Table {
	tbl := &Table{counts: make(map[time.Time]int, len(records))}
	for _, r := range records {
		tbl.Insert(r)
	}
	return tbl
}

// Truncate drops the time of day and the location so that the same calendar date
// always produces the same key.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Insert adds or overwrites the record for its date.
func (tbl *Table) Insert(r Record) {
	date := Truncate(r.Date)
	if _, exists := tbl.counts[date]; !exists {
		i := sort.Search(len(tbl.dates), func(i int) bool { return !tbl.dates[i].Before(date) })
		tbl.dates = append(tbl.dates, time.Time{})
		copy(tbl.dates[i+1:], tbl.dates[i:])
		tbl.dates[i] = date
	}
	tbl.counts[date] = r.Count
}

// Len returns the number of distinct dates.
func (tbl *Table) Len() int {
	return len(tbl.dates)
}

// Get returns the count for the date and whether it exists.
func (tbl *Table) Get(date time.Time) (int, bool) {
	count, exists := tbl.counts[Truncate(date)]
	return count, exists
}

// Records returns the records in chronological order.
func (tbl *Table) Records() []Record {
	records := make([]Record, len(tbl.dates))
	for i, date := range tbl.dates {
		records[i] = Record{Date: date, Count: tbl.counts[date]}
	}
	return records
}

// DayOfWeek maps the date to 0..6, Monday is 0.
func DayOfWeek(date time.Time) int {
	return (int(date.Weekday()) + 6) % Weekdays
}

// GroupList splits the counts into the weekday buckets.
func (tbl *Table) GroupList() [Weekdays][]int {
	var buckets [Weekdays][]int
	for _, date := range tbl.dates {
		day := DayOfWeek(date)
		buckets[day] = append(buckets[day], tbl.counts[date])
	}
	return buckets
}

// GroupMean calculates the mean count of each weekday bucket.
// Empty buckets yield NaN.
func (tbl *Table) GroupMean() [Weekdays]float64 {
	var means [Weekdays]float64
	for day, bucket := range tbl.GroupList() {
		means[day] = Mean(bucket)
	}
	return means
}

// Mean returns the arithmetic mean of the counts or NaN if there are none.
func Mean(counts []int) float64 {
	if len(counts) == 0 {
		return math.NaN()
	}
	return stat.Mean(Floats(counts), nil)
}

// Floats converts the counts to float64.
func Floats(counts []int) []float64 {
	result := make([]float64, len(counts))
	for i, c := range counts {
		result[i] = float64(c)
	}
	return result
}

// MaxCount returns the largest count, 0 for an empty table.
func (tbl *Table) MaxCount() int {
	max := 0
	for _, count := range tbl.counts {
		if count > max {
			max = count
		}
	}
	return max
}

// DateRange returns the first and the last date. Both are zero for an empty table.
func (tbl *Table) DateRange() (time.Time, time.Time) {
	if len(tbl.dates) == 0 {
		return time.Time{}, time.Time{}
	}
	return tbl.dates[0], tbl.dates[len(tbl.dates)-1]
}

// Summarize calculates the aggregate in a single call.
func (tbl *Table) Summarize() *Summary {
	summary := &Summary{
		Buckets:  tbl.GroupList(),
		MaxCount: tbl.MaxCount(),
		Days:     tbl.Len(),
	}
	for day, bucket := range summary.Buckets {
		summary.Means[day] = Mean(bucket)
	}
	for _, count := range tbl.counts {
		summary.Total += count
	}
	summary.Start, summary.End = tbl.DateRange()
	return summary
}
