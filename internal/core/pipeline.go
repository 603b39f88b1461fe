package core

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/cyraxred/contribviolin/internal/table"
	"github.com/pkg/errors"
)

// Fetcher downloads the public profile page of a user.
type Fetcher interface {
	// Fetch returns the raw HTML body of the profile page.
	Fetch(ctx context.Context, username string) (string, error)
}

// Extractor turns the profile page into calendar records in document order.
type Extractor interface {
	Extract(html string) ([]table.Record, error)
}

// Renderer draws the day-of-week aggregate and encodes the image to the writer.
type Renderer interface {
	Render(username string, summary *table.Summary, w io.Writer) error
}

const (
	// MessageFetch is the status text reported before downloading the profile page.
	MessageFetch = "fetch"
	// MessageExtract is the status text reported before parsing the calendar.
	MessageExtract = "extract"
	// MessageAggregate is the status text reported before building the table.
	MessageAggregate = "aggregate"
	// MessageRender is the status text reported before drawing the figure.
	MessageRender = "render"
	// MessageFinalize is the status text reported after the figure is ready.
	MessageFinalize = "finalize"
)

// stages is the number of steps reported through OnProgress.
const stages = 4

// Result holds everything a successful Pipeline.Run() produced.
type Result struct {
	// Username is the analysed GitHub login.
	Username string
	// Table is the deduplicated contribution table.
	Table *table.Table
	// Summary is the day-of-week aggregate which was drawn.
	Summary *table.Summary
	// Image is the encoded figure. Nothing is written to disk by the pipeline.
	Image []byte
	// RunTime is the duration of Pipeline.Run().
	RunTime time.Duration
	// RunTimePerStage is the time elapsed by each stage, in milliseconds.
	RunTimePerStage map[string]float64
}

// Pipeline is the linear fetch → extract → aggregate → render chain.
// The collaborators are injected so that tests can replace any of them.
type Pipeline struct {
	// OnProgress is the callback which is invoked in Run() to output it's
	// progress. The first argument is the number of complete steps, the
	// second is the total number of steps and the third is some description of the current action.
	OnProgress func(int, int, string)

	fetcher   Fetcher
	extractor Extractor
	renderer  Renderer

	// The logger for printing output.
	l Logger
}

// NewPipeline initializes a new instance of Pipeline struct.
func NewPipeline(fetcher Fetcher, extractor Extractor, renderer Renderer) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		extractor: extractor,
		renderer:  renderer,
		l:         NewLogger().With("pipeline"),
	}
}

// SetLogger replaces the logger used by the pipeline.
func (pipeline *Pipeline) SetLogger(l Logger) {
	pipeline.l = l
}

// Run executes the stages one after another. Any error aborts the run.
func (pipeline *Pipeline) Run(ctx context.Context, username string) (*Result, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.ContainsAny(username, "/?#") {
		return nil, errors.Wrapf(ErrInvalidUsername, "%q", username)
	}
	onProgress := pipeline.OnProgress
	if onProgress == nil {
		onProgress = func(int, int, string) {}
	}
	result := &Result{Username: username, RunTimePerStage: map[string]float64{}}
	startRunTime := time.Now()
	measure := func(stage string, start time.Time) {
		result.RunTimePerStage[stage] += time.Since(start).Seconds() * 1000
	}

	onProgress(0, stages, MessageFetch)
	start := time.Now()
	html, err := pipeline.fetcher.Fetch(ctx, username)
	if err != nil {
		return nil, err
	}
	measure(MessageFetch, start)
	pipeline.l.Infof("fetched %d bytes for %s", len(html), username)

	onProgress(1, stages, MessageExtract)
	start = time.Now()
	records, err := pipeline.extractor.Extract(html)
	if err != nil {
		return nil, errors.Wrapf(err, "user %s", username)
	}
	measure(MessageExtract, start)

	onProgress(2, stages, MessageAggregate)
	start = time.Now()
	result.Table = table.New(records)
	if result.Table.Len() < len(records) {
		pipeline.l.Warnf("%d duplicate calendar days were overwritten",
			len(records)-result.Table.Len())
	}
	result.Summary = result.Table.Summarize()
	for day, bucket := range result.Summary.Buckets {
		if len(bucket) == 0 {
			pipeline.l.Warnf("no calendar days fall on %s", table.WeekdayNames[day])
		}
	}
	measure(MessageAggregate, start)

	onProgress(3, stages, MessageRender)
	start = time.Now()
	buffer := &bytes.Buffer{}
	if err = pipeline.renderer.Render(username, result.Summary, buffer); err != nil {
		return nil, errors.Wrap(err, "failed to render the figure")
	}
	result.Image = buffer.Bytes()
	measure(MessageRender, start)

	onProgress(stages, stages, MessageFinalize)
	result.RunTime = time.Since(startRunTime)
	return result, nil
}
