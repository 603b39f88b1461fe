package core

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/cyraxred/contribviolin/internal/table"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFetcher struct {
	HTML      string
	Err       error
	Usernames []string
}

func (f *testFetcher) Fetch(ctx context.Context, username string) (string, error) {
	f.Usernames = append(f.Usernames, username)
	return f.HTML, f.Err
}

type testExtractor struct {
	Records []table.Record
	Err     error
	Input   string
}

func (e *testExtractor) Extract(html string) ([]table.Record, error) {
	e.Input = html
	return e.Records, e.Err
}

type testRenderer struct {
	Err      error
	Username string
	Summary  *table.Summary
}

func (r *testRenderer) Render(username string, summary *table.Summary, w io.Writer) error {
	r.Username = username
	r.Summary = summary
	if r.Err != nil {
		return r.Err
	}
	_, err := w.Write([]byte("PNG"))
	return err
}

func week(start string, counts ...int) []table.Record {
	t0, _ := time.Parse(table.DateFormat, start)
	records := make([]table.Record, len(counts))
	for i, c := range counts {
		records[i] = table.Record{Date: t0.AddDate(0, 0, i), Count: c}
	}
	return records
}

func quietLogger() *DefaultLogger {
	l := NewLogger()
	l.SetOutput(io.Discard)
	return l
}

func fixturePipeline() (*Pipeline, *testFetcher, *testExtractor, *testRenderer) {
	fetcher := &testFetcher{HTML: "<html></html>"}
	extractor := &testExtractor{Records: week("2024-01-01", 1, 0, 3, 2, 5, 0, 4)}
	renderer := &testRenderer{}
	pipeline := NewPipeline(fetcher, extractor, renderer)
	pipeline.SetLogger(quietLogger())
	return pipeline, fetcher, extractor, renderer
}

func TestPipelineRun(t *testing.T) {
	pipeline, fetcher, extractor, renderer := fixturePipeline()
	result, err := pipeline.Run(context.Background(), "  octocat ")
	require.NoError(t, err)
	assert.Equal(t, []string{"octocat"}, fetcher.Usernames)
	assert.Equal(t, "<html></html>", extractor.Input)
	assert.Equal(t, "octocat", renderer.Username)
	assert.Equal(t, "octocat", result.Username)
	assert.Equal(t, []byte("PNG"), result.Image)
	assert.Equal(t, 7, result.Table.Len())
	assert.Same(t, result.Summary, renderer.Summary)
	assert.Equal(t, [7]float64{1, 0, 3, 2, 5, 0, 4}, result.Summary.Means)
	assert.Equal(t, 5, result.Summary.MaxCount)
	for _, stage := range []string{MessageFetch, MessageExtract, MessageAggregate, MessageRender} {
		_, exists := result.RunTimePerStage[stage]
		assert.True(t, exists, stage)
	}
	assert.True(t, result.RunTime >= 0)
}

func TestPipelineOnProgress(t *testing.T) {
	pipeline, _, _, _ := fixturePipeline()
	var steps []int
	var messages []string
	pipeline.OnProgress = func(step, total int, action string) {
		assert.Equal(t, 4, total)
		steps = append(steps, step)
		messages = append(messages, action)
	}
	_, err := pipeline.Run(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, steps)
	assert.Equal(t, []string{
		MessageFetch, MessageExtract, MessageAggregate, MessageRender, MessageFinalize}, messages)
}

func TestPipelineDuplicatesOverwrite(t *testing.T) {
	pipeline, _, extractor, _ := fixturePipeline()
	var buf bytes.Buffer
	l := NewLogger()
	l.SetOutput(&buf)
	pipeline.SetLogger(l)
	extractor.Records = append(week("2024-01-01", 2), week("2024-01-01", 5)...)
	result, err := pipeline.Run(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Table.Len())
	assert.Equal(t, []int{5}, result.Summary.Buckets[0])
	assert.Contains(t, buf.String(), "1 duplicate calendar days were overwritten")
	assert.Contains(t, buf.String(), "no calendar days fall on Tue")
}

func TestPipelineInvalidUsername(t *testing.T) {
	for _, username := range []string{"", "   ", "a/b", "who?", "x#y"} {
		pipeline, fetcher, _, _ := fixturePipeline()
		result, err := pipeline.Run(context.Background(), username)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, ErrInvalidUsername), username)
		assert.Empty(t, fetcher.Usernames)
	}
}

func TestPipelineUserNotFound(t *testing.T) {
	pipeline, fetcher, extractor, renderer := fixturePipeline()
	fetcher.Err = errors.Wrapf(ErrUserNotFound, "%s", "ghost")
	var steps []int
	pipeline.OnProgress = func(step, _ int, _ string) {
		steps = append(steps, step)
	}
	result, err := pipeline.Run(context.Background(), "ghost")
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrUserNotFound))
	assert.Empty(t, extractor.Input)
	assert.Empty(t, renderer.Username)
	assert.Equal(t, []int{0}, steps)
}

func TestPipelineExtractErrors(t *testing.T) {
	for _, sentinel := range []error{ErrStructuralParse, ErrNoContributions} {
		pipeline, _, extractor, renderer := fixturePipeline()
		extractor.Err = errors.Wrap(sentinel, "test")
		result, err := pipeline.Run(context.Background(), "octocat")
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, sentinel))
		assert.Contains(t, err.Error(), "user octocat")
		assert.Empty(t, renderer.Username)
	}
}

func TestPipelineRenderError(t *testing.T) {
	pipeline, _, _, renderer := fixturePipeline()
	renderer.Err = errors.New("no fonts")
	result, err := pipeline.Run(context.Background(), "octocat")
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to render the figure")
	assert.Contains(t, err.Error(), "no fonts")
}

func TestPipelineNetworkError(t *testing.T) {
	pipeline, fetcher, _, _ := fixturePipeline()
	fetcher.Err = errors.Wrap(ErrNetwork, "connection refused")
	_, err := pipeline.Run(context.Background(), "octocat")
	assert.True(t, errors.Is(err, ErrNetwork))
}
