/*
Package contribviolin draws the distribution of the daily GitHub contributions
per day of week.

Pipeline is the main object which chains the steps together: it downloads the public
profile page, extracts the contribution calendar, aggregates the counts by weekday
and renders the violin plot. The following example was taken from cmd/contribviolin:

	pipeline := contribviolin.NewDefaultPipeline(contribviolin.DefaultBaseURL, true, logger)
	pipeline.OnProgress = func(step, total int, action string) {
		fmt.Fprintf(os.Stderr, "%d / %d %s\r", step, total, action)
	}
	result, err := pipeline.Run(context.Background(), "octocat")
	if err != nil {
		return err
	}
	// result.Image is the PNG, result.Summary holds the per-weekday buckets and means.

Nothing is written to disk by the pipeline: the command saves the image only after
the whole run succeeded.

The calendar is parsed with https://github.com/PuerkitoBio/goquery, the figure is drawn
with https://github.com/gonum/plot and the numerics (kernel density, Savitzky-Golay
smoothing, cubic spline) are based on https://github.com/gonum/gonum.
*/
package contribviolin
