package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode"

	"github.com/Masterminds/sprig"
	"github.com/cyraxred/contribviolin"
	"github.com/cyraxred/contribviolin/internal/table"
	"github.com/cyraxred/contribviolin/yaml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	progress "gopkg.in/cheggaaa/pb.v1"
)

// DefaultOutput is where the figure is saved, relative to the working directory.
const DefaultOutput = "contributions.png"

type runOptions struct {
	Quiet      bool
	Output     string
	BaseURL    string
	ShowPoints bool
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "contribviolin <username>",
	Short: "Plot the GitHub contributions per day of week.",
	Long: `contribviolin downloads the public profile page of a GitHub user, reads the contribution
calendar of the last year and draws a violin per day of week with the raw daily counts, the
means and a smoothed curve through them. The figure is saved to contributions.png in the
working directory only if the whole analysis succeeds, the summary is printed to stdout in YAML.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		opts := runOptions{
			Quiet:      getBool(flags, "quiet"),
			Output:     DefaultOutput,
			BaseURL:    getString(flags, "base-url"),
			ShowPoints: !getBool(flags, "no-points"),
		}
		return run(cmd.Context(), args[0], opts, cmd.OutOrStdout(), os.Stderr)
	},
}

func getBool(flags *pflag.FlagSet, name string) bool {
	value, err := flags.GetBool(name)
	if err != nil {
		panic(err)
	}
	return value
}

func getString(flags *pflag.FlagSet, name string) string {
	value, err := flags.GetString(name)
	if err != nil {
		panic(err)
	}
	return value
}

func run(ctx context.Context, username string, opts runOptions, stdout, stderr io.Writer) error {
	logger := contribviolin.NewLogger()
	logger.SetOutput(stderr)
	logger.SetQuiet(opts.Quiet)
	pipeline := contribviolin.NewDefaultPipeline(opts.BaseURL, opts.ShowPoints, logger)
	if !opts.Quiet {
		onProgress, stop := progressBar(stderr)
		defer stop()
		pipeline.OnProgress = onProgress
	}
	result, err := pipeline.Run(ctx, username)
	if err != nil {
		return err
	}
	if err = os.WriteFile(opts.Output, result.Image, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", opts.Output)
	}
	printResults(stdout, result, opts.Output)
	return nil
}

// progressBar draws the pipeline stages on a single line. The returned function stops
// the refresh if the pipeline failed before the last stage.
func progressBar(w io.Writer) (func(int, int, string), func()) {
	var bar *progress.ProgressBar
	onProgress := func(step, total int, action string) {
		if bar == nil {
			bar = progress.New(total)
			bar.Callback = func(msg string) {
				_, _ = io.WriteString(w, "\033[2K\r"+msg)
			}
			bar.NotPrint = true
			bar.ShowPercent = false
			bar.ShowSpeed = false
			bar.SetMaxWidth(80).Start()
		}
		if action == contribviolin.MessageFinalize {
			bar.Finish()
			_, _ = io.WriteString(w, "\033[2K\r")
		} else {
			bar.Set(step).Postfix(" [" + action + "] ")
		}
	}
	stop := func() {
		if bar != nil {
			bar.Finish()
		}
	}
	return onProgress, stop
}

func printResults(w io.Writer, result *contribviolin.Result, output string) {
	summary := result.Summary
	fmt.Fprintln(w, "contribviolin:")
	fmt.Fprintf(w, "  version: %d\n", contribviolin.BinaryVersion)
	fmt.Fprintln(w, "  hash:", contribviolin.BinaryGitHash)
	fmt.Fprintln(w, "  user:", yaml.SafeString(result.Username))
	fmt.Fprintln(w, "  begin:", summary.Start.Format(table.DateFormat))
	fmt.Fprintln(w, "  end:", summary.End.Format(table.DateFormat))
	fmt.Fprintln(w, "  days:", summary.Days)
	fmt.Fprintln(w, "  total:", summary.Total)
	fmt.Fprintln(w, "  max:", summary.MaxCount)
	fmt.Fprintln(w, "  image:", yaml.SafeString(output))
	fmt.Fprintln(w, "  run_time:", result.RunTime.Nanoseconds()/1e6)
	fmt.Fprintln(w, "weekdays:")
	for day, bucket := range summary.Buckets {
		peak := 0
		for _, count := range bucket {
			if count > peak {
				peak = count
			}
		}
		fmt.Fprintf(w, "  %s: {days: %d, mean: %s, max: %d}\n",
			table.WeekdayNames[day], len(bucket), yaml.Float(summary.Means[day], 2), peak)
	}
	buckets := make([][]int, len(summary.Buckets))
	for day := range summary.Buckets {
		buckets[day] = summary.Buckets[day]
	}
	yaml.PrintMatrix(w, buckets, 0, "counts")
}

// trimRightSpace removes the trailing whitespace characters.
func trimRightSpace(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// rpad adds padding to the right of a string.
func rpad(s string, padding int) string {
	return fmt.Sprintf(fmt.Sprintf("%%-%ds", padding), s)
}

// tmpl was adapted from cobra/cobra.go
func tmpl(w io.Writer, text string, data interface{}) error {
	var templateFuncs = template.FuncMap{
		"trim":                    strings.TrimSpace,
		"trimRightSpace":          trimRightSpace,
		"trimTrailingWhitespaces": trimRightSpace,
		"rpad":                    rpad,
		"gt":                      cobra.Gt,
		"eq":                      cobra.Eq,
	}
	for k, v := range sprig.TxtFuncMap() {
		templateFuncs[k] = v
	}
	t := template.New("top")
	t.Funcs(templateFuncs)
	template.Must(t.Parse(text))
	return t.Execute(w, data)
}

// formatUsage wraps the long flag descriptions to 120 columns.
func formatUsage(c *cobra.Command) error {
	helpTemplate := `Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{range $line := .LocalFlags.FlagUsages | trimTrailingWhitespaces | split "\n"}}
{{- $desc := splitList "   " $line | last}}
{{- $offset := sub ($desc | len) ($desc | trim | len)}}
{{- $indent := splitList "   " $line | initial | join "   " | len | add 3 | add $offset | int}}
{{- $wrap := sub 120 $indent | int}}
{{- splitList "   " $line | initial | join "   "}}   {{cat "!" $desc | wrap $wrap | indent $indent | substr $indent -1 | substr 2 -1}}
{{end}}{{end}}{{if .HasAvailableInheritedFlags}}
Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
	err := tmpl(c.OutOrStderr(), helpTemplate, c)
	if err != nil {
		c.Println(err)
	}
	return err
}

func init() {
	rootFlags := rootCmd.Flags()
	rootFlags.Bool("quiet", !term.IsTerminal(int(os.Stdin.Fd())),
		"Do not print status updates and informational messages to stderr.")
	rootFlags.Bool("no-points", false, "Do not draw the individual daily counts over the violins.")
	rootFlags.String("base-url", contribviolin.DefaultBaseURL, "Where the profile pages are downloaded from.")
	err := rootFlags.MarkHidden("base-url")
	if err != nil {
		panic(err)
	}
	rootCmd.SetUsageFunc(formatUsage)
	rootCmd.Version = fmt.Sprintf("%d", contribviolin.BinaryVersion)
	rootCmd.SetVersionTemplate(fmt.Sprintf("Version: {{.Version}}\nGit:     %s\n",
		contribviolin.BinaryGitHash))
}
