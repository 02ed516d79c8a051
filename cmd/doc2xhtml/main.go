// Command doc2xhtml converts a document to XHTML, plain text or a markup
// event transcript on stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/dgallion1/doc2xhtml/internal/convert"
	"github.com/dgallion1/doc2xhtml/internal/markup"
	"github.com/dgallion1/doc2xhtml/internal/pipeline"
	"github.com/k0kubun/pp"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "doc2xhtml:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	defaults := convert.DefaultOptions()

	fs := flag.NewFlagSet("doc2xhtml", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "html", "output format: html, text or events")
	name := fs.String("name", "", "filename used for type detection when reading stdin")
	annotations := fs.Bool("annotations", defaults.ExtractAnnotationText, "emit page annotations")
	autospace := fs.Bool("autospace", defaults.EnableAutoSpace, "insert spaces between words")
	dedupe := fs.Bool("dedupe", defaults.SuppressDuplicateOverlappingText, "drop duplicate overlapping text")
	sortRuns := fs.Bool("sort", defaults.SortByPosition, "sort text by position")
	acroform := fs.Bool("acroform", defaults.ExtractAcroForm, "emit interactive form fields")
	depth := fs.Int("max-form-depth", defaults.MaxFormDepth, "form field nesting limit")
	pdftotext := fs.Bool("pdftotext", false, "fall back to pdftotext for unreadable PDFs")
	noColor := fs.Bool("no-color", false, "disable colors in event output")
	verbose := fs.Bool("v", false, "debug logging to stderr")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: doc2xhtml [flags] <file|->")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected one input file")
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	filename, data, err := readInput(fs.Arg(0), *name, stdin)
	if err != nil {
		return err
	}

	c := pipeline.Converter{
		Options: convert.Options{
			ExtractAnnotationText:            *annotations,
			EnableAutoSpace:                  *autospace,
			SuppressDuplicateOverlappingText: *dedupe,
			SortByPosition:                   *sortRuns,
			ExtractAcroForm:                  *acroform,
			MaxFormDepth:                     *depth,
			Logger:                           log,
		},
		PDFFallback: *pdftotext,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *format == "events" {
		doc, err := c.Parse(data, filename)
		if err != nil {
			return err
		}
		var rec markup.Recorder
		if err := convert.Convert(ctx, doc, &rec, c.Options); err != nil {
			return err
		}
		pp.ColoringEnabled = !*noColor
		_, err = pp.Fprintln(stdout, rec.Strings())
		return err
	}

	f, err := pipeline.ParseFormat(*format)
	if err != nil {
		return err
	}
	res, err := c.Convert(ctx, data, filename, f)
	if err != nil {
		return err
	}
	log.Debug("converted", "kind", res.Kind, "title", res.Title, "pages", res.Pages)
	_, err = stdout.Write(res.Body)
	return err
}

func readInput(path, name string, stdin io.Reader) (string, []byte, error) {
	if path == "-" {
		if name == "" {
			return "", nil, fmt.Errorf("-name is required when reading stdin")
		}
		data, err := io.ReadAll(stdin)
		return name, data, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	if name == "" {
		name = filepath.Base(path)
	}
	return name, data, nil
}
