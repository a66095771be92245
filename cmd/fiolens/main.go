// fiolens parses fio's human-readable reports into flat key/value records
// and summarizes consolidated multi-run results into derived metrics
// (throughput, IOPS, Little's Law latency).
//
// Usage:
//
//	fio --name=job ... | fiolens parse
//	fiolens parse result_rand_read_4k.txt
//	fiolens summarize consolidated_run1.txt consolidated_run2.txt
//	fiolens < consolidated.txt        (format auto-detected)
//
// Output modes (auto-detected):
//
//	terminal  — styled output (default when TTY)
//	text      — plain fixed-precision lines (default when piped)
//	json      — structured JSON for automation
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/mstern/fiolens/internal/config"
	"github.com/mstern/fiolens/internal/detect"
	"github.com/mstern/fiolens/internal/version"
	"github.com/mstern/fiolens/pkg/consolidated"
	"github.com/mstern/fiolens/pkg/fioparse"
	"github.com/mstern/fiolens/pkg/render"
	"github.com/mstern/fiolens/pkg/summarize"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options are the effective settings after merging config, env and flags.
type options struct {
	format     string
	theme      string
	describe   bool
	writeFiles bool
	noColor    bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg := config.Load()

	var sub string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet("fiolens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	formatFlag := fs.String("format", cfg.Format, "Output format: auto, text, terminal, json")
	themeFlag := fs.String("theme", cfg.Theme, "Theme: default, orca, mono")
	describeFlag := fs.Bool("describe", cfg.Describe, "Annotate parsed keys with descriptions")
	writeFlag := fs.Bool("w", cfg.WriteFiles, "Write output files next to inputs instead of stdout")
	versionFlag := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "fiolens %s (%s, %s)\n", version.Version, version.CommitHash, version.BuildDate)
		return 0
	}

	opts := options{
		format:     *formatFlag,
		theme:      *themeFlag,
		describe:   *describeFlag,
		writeFiles: *writeFlag,
		noColor:    cfg.NoColor,
	}

	switch sub {
	case "parse":
		return runParse(fs.Args(), opts, stdin, stdout, stderr)
	case "summarize":
		return runSummarize(fs.Args(), opts, stdin, stdout, stderr)
	case "":
		return runAuto(fs.Args(), opts, stdin, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "fiolens: unknown subcommand %q (expected parse or summarize)\n", sub)
		return 2
	}
}

// runAuto sniffs the input format and dispatches: consolidated input is
// summarized, anything else goes through the parser.
func runAuto(files []string, opts options, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(files) > 0 {
		// With file arguments there is nothing to sniff per invocation;
		// peek at the first file.
		data, err := os.ReadFile(files[0])
		if err != nil {
			fmt.Fprintf(stderr, "fiolens: reading %s: %v\n", files[0], err)
			return 2
		}
		if detect.Sniff(data) == detect.Consolidated {
			return runSummarize(files, opts, stdin, stdout, stderr)
		}
		return runParse(files, opts, stdin, stdout, stderr)
	}

	input, err := io.ReadAll(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "fiolens: reading stdin: %v\n", err)
		return 2
	}
	if len(input) == 0 {
		fmt.Fprintf(stderr, "fiolens: no input on stdin\n")
		return 2
	}

	switch detect.Sniff(input) {
	case detect.Consolidated:
		return summarizeOne(input, "stdin", opts, stdout, stderr)
	case detect.RawReport:
		return parseOne(input, opts, stdout, stderr)
	case detect.ParsedRecord:
		return reprintRecord(input, opts, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "fiolens: unrecognized input (expected a fio report or consolidated file)\n")
		return 2
	}
}

// runParse parses raw reports into key=value records.
func runParse(files []string, opts options, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(files) == 0 {
		input, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "fiolens: reading stdin: %v\n", err)
			return 2
		}
		return parseOne(input, opts, stdout, stderr)
	}

	code := 0
	for i, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			// Fatal for this input only; keep going.
			fmt.Fprintf(stderr, "fiolens: reading %s: %v\n", file, err)
			code = 1
			continue
		}

		if opts.writeFiles {
			out := withSuffix(file, ".parsed.txt")
			if err := writeParsed(data, out, opts); err != nil {
				fmt.Fprintf(stderr, "fiolens: %v\n", err)
				code = 1
			}
			continue
		}

		if len(files) > 1 {
			fmt.Fprintf(stdout, "-- %s --\n", file)
		}
		if c := parseOne(data, opts, stdout, stderr); c != 0 {
			code = c
		}
		if len(files) > 1 && i < len(files)-1 {
			fmt.Fprintln(stdout)
		}
	}
	return code
}

func parseOne(input []byte, opts options, stdout, stderr io.Writer) int {
	rec, err := fioparse.ParseBytes(input)
	if err != nil {
		fmt.Fprintf(stderr, "fiolens: parsing report: %v\n", err)
		return 2
	}
	if opts.describe {
		_, err = rec.WriteAnnotated(stdout)
	} else {
		_, err = rec.WriteTo(stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "fiolens: writing output: %v\n", err)
		return 2
	}
	return 0
}

// reprintRecord re-emits an already-parsed record block, normalizing
// whitespace and optionally adding key descriptions.
func reprintRecord(input []byte, opts options, stdout, stderr io.Writer) int {
	rec, err := fioparse.ReadRecord(bytes.NewReader(input))
	if err != nil {
		fmt.Fprintf(stderr, "fiolens: reading record: %v\n", err)
		return 2
	}
	if opts.describe {
		_, err = rec.WriteAnnotated(stdout)
	} else {
		_, err = rec.WriteTo(stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "fiolens: writing output: %v\n", err)
		return 2
	}
	return 0
}

func writeParsed(input []byte, outPath string, opts options) error {
	rec, err := fioparse.ParseBytes(input)
	if err != nil {
		return fmt.Errorf("parsing report: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()
	if opts.describe {
		_, err = rec.WriteAnnotated(f)
	} else {
		_, err = rec.WriteTo(f)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}

// runSummarize turns consolidated files into summary blocks, one per input.
func runSummarize(files []string, opts options, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(files) == 0 {
		input, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "fiolens: reading stdin: %v\n", err)
			return 2
		}
		return summarizeOne(input, "stdin", opts, stdout, stderr)
	}

	code := 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(stderr, "fiolens: reading %s: %v\n", file, err)
			code = 1
			continue
		}

		if opts.writeFiles {
			out := withSuffix(file, "_summary.txt")
			if err := writeSummary(data, file, out); err != nil {
				fmt.Fprintf(stderr, "fiolens: %v\n", err)
				code = 1
				continue
			}
			fmt.Fprintf(stdout, "wrote summary: %s\n", out)
			continue
		}

		if c := summarizeOne(data, file, opts, stdout, stderr); c != 0 {
			code = c
		}
	}
	return code
}

func summarizeOne(input []byte, source string, opts options, stdout, stderr io.Writer) int {
	sections, err := consolidated.Parse(input)
	if err != nil {
		fmt.Fprintf(stderr, "fiolens: parsing %s: %v\n", source, err)
		return 1
	}
	s := summarize.Consolidated(source, sections)
	fmt.Fprint(stdout, selectRenderer(opts, stdout).Render(s))
	return 0
}

// writeSummary always uses the plain text renderer: summary files are the
// line-oriented interchange format, never styled.
func writeSummary(input []byte, source, outPath string) error {
	sections, err := consolidated.Parse(input)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", source, err)
	}
	s := summarize.Consolidated(source, sections)
	if err := os.WriteFile(outPath, []byte(render.NewText().Render(s)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}

func selectRenderer(opts options, w io.Writer) render.Renderer {
	switch resolveFormat(opts.format, w) {
	case "json":
		return render.NewJSON()
	case "terminal":
		theme := render.ThemeByName(opts.theme)
		if opts.noColor {
			theme = render.MonoTheme()
		}
		width := 80
		if f, ok := w.(*os.File); ok {
			if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
				width = tw
			}
		}
		return render.NewTerminal(theme, width)
	default:
		return render.NewText()
	}
}

func resolveFormat(format string, w io.Writer) string {
	if format != "auto" && format != "" {
		return format
	}
	// Auto-detect: TTY = terminal, piped = text
	if f, ok := w.(*os.File); ok {
		if term.IsTerminal(int(f.Fd())) {
			return "terminal"
		}
	}
	return "text"
}

// withSuffix replaces a file's extension with suffix, e.g.
// result.txt -> result.parsed.txt or result_summary.txt.
func withSuffix(path, suffix string) string {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	return stem + suffix
}
