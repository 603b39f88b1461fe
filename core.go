package contribviolin

import (
	"github.com/cyraxred/contribviolin/internal/calendar"
	"github.com/cyraxred/contribviolin/internal/core"
	"github.com/cyraxred/contribviolin/internal/fetch"
	"github.com/cyraxred/contribviolin/internal/render"
)

// Pipeline is the fetch → extract → aggregate → render chain.
type Pipeline = core.Pipeline

// Result holds everything a successful Pipeline.Run() produced.
type Result = core.Result

// Fetcher downloads the public profile page of a user.
type Fetcher = core.Fetcher

// Extractor turns the profile page into calendar records.
type Extractor = core.Extractor

// Renderer draws the day-of-week aggregate.
type Renderer = core.Renderer

// Logger is the output interface used by the pipeline components.
type Logger = core.Logger

const (
	// MessageFinalize is the status text reported after the figure is ready.
	MessageFinalize = core.MessageFinalize
	// DefaultBaseURL is where the public profile pages live.
	DefaultBaseURL = fetch.DefaultBaseURL
)

var (
	// ErrUserNotFound is returned when GitHub has no such user.
	ErrUserNotFound = core.ErrUserNotFound
	// ErrStructuralParse is returned when the page does not contain the calendar.
	ErrStructuralParse = core.ErrStructuralParse
	// ErrNoContributions is returned when every calendar day is zero.
	ErrNoContributions = core.ErrNoContributions
	// ErrNetwork is returned when the page cannot be downloaded.
	ErrNetwork = core.ErrNetwork
	// ErrInvalidUsername is returned for empty usernames and the ones which are not a path segment.
	ErrInvalidUsername = core.ErrInvalidUsername
)

// NewLogger returns the default logger which writes to stderr.
func NewLogger() *core.DefaultLogger {
	return core.NewLogger()
}

// NewPipeline initializes a new instance of Pipeline struct.
func NewPipeline(fetcher Fetcher, extractor Extractor, renderer Renderer) *Pipeline {
	return core.NewPipeline(fetcher, extractor, renderer)
}

// NewDefaultPipeline wires the HTTP fetcher, the goquery extractor and the gonum/plot renderer.
// Every component logs to `l` under its own name.
func NewDefaultPipeline(baseURL string, showPoints bool, l *core.DefaultLogger) *Pipeline {
	fetcher := fetch.NewHTTPFetcher(l.With("fetch"))
	fetcher.BaseURL = baseURL
	renderer := render.NewViolinRenderer(l.With("render"))
	renderer.ShowPoints = showPoints
	pipeline := core.NewPipeline(fetcher, calendar.NewExtractor(l.With("extract")), renderer)
	pipeline.SetLogger(l.With("pipeline"))
	return pipeline
}
