package contribviolin

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cyraxred/contribviolin/internal/test/fixtures"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureGitHub(t *testing.T) *httptest.Server {
	pages := map[string]string{
		"/octocat": fixtures.LegacyPage(fixtures.Week("2024-01-01", 1, 0, 3, 2, 5, 0, 4)),
		"/idle":    fixtures.TooltipPage(fixtures.Week("2024-01-01", 0, 0, 0, 0, 0, 0, 0)),
		"/acme":    fixtures.NoCalendarPage,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, exists := pages[r.URL.Path]
		if !exists {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(fixtures.NotFound))
			return
		}
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(server.Close)
	return server
}

func quietLogger() Logger {
	l := NewLogger()
	l.SetOutput(io.Discard)
	return l
}

func TestDefaultPipeline(t *testing.T) {
	server := fixtureGitHub(t)
	l := NewLogger()
	l.SetOutput(io.Discard)
	pipeline := NewDefaultPipeline(server.URL, true, l)
	result, err := pipeline.Run(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, [7]float64{1, 0, 3, 2, 5, 0, 4}, result.Summary.Means)
	assert.Equal(t, 15, result.Summary.Total)
	assert.Equal(t, "2024-01-01", result.Summary.Start.Format("2006-01-02"))
	assert.Equal(t, "2024-01-07", result.Summary.End.Format("2006-01-02"))
	img, err := png.Decode(bytes.NewReader(result.Image))
	require.NoError(t, err)
	assert.Equal(t, 1500, img.Bounds().Dx())
	assert.Equal(t, 900, img.Bounds().Dy())
}

func TestDefaultPipelineErrors(t *testing.T) {
	server := fixtureGitHub(t)
	l := NewLogger()
	l.SetOutput(io.Discard)
	pipeline := NewDefaultPipeline(server.URL, false, l)
	for username, sentinel := range map[string]error{
		"ghost": ErrUserNotFound,
		"idle":  ErrNoContributions,
		"acme":  ErrStructuralParse,
		"":      ErrInvalidUsername,
	} {
		result, err := pipeline.Run(context.Background(), username)
		assert.Nil(t, result, username)
		assert.True(t, errors.Is(err, sentinel), username)
	}
}

func TestNewPipelineSetLogger(t *testing.T) {
	pipeline := NewPipeline(nil, nil, nil)
	pipeline.SetLogger(quietLogger())
	_, err := pipeline.Run(context.Background(), "a/b")
	assert.True(t, errors.Is(err, ErrInvalidUsername))
}
