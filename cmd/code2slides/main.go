// Command code2slides turns annotated Go source files into an HTML slide deck.
//
// Comments in the source mark what appears on the slides:
//
//	// heading TITLE        start a new slide
//	// code [bad] ... // !code
//	// em ... // !em        emphasize code; or end a code line with // em TEXT
//	// text ... // !text    markdown, also // text TEXT and /* text ... */
//	// note ... // !note    speaker notes
//	// output ... // !output
//	// question ... // answer ... // !question
//	// html RAW
//	// div.CLASS ... // !div.CLASS
package main

import (
	"errors"
	"flag"
	"fmt"
	"html"
	"io"
	"os"
)

func main() {
	outputFile := flag.String("o", "output.html", "output file name")
	title := flag.String("title", "Title", "presentation title")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: code2slides [-o output.html] [-title title] <file>...")
		os.Exit(1)
	}

	if err := run(*outputFile, *title, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(data []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(data)
	if err != nil {
		w.err = err
	}
	return n, err
}

func (w *errWriter) Err() error { return w.err }

func run(outputFile, title string, files []string) (err error) {
	outFile, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer func() { err = errors.Join(err, outFile.Close()) }()
	return writeDeck(outFile, title, files)
}

func writeDeck(w io.Writer, title string, files []string) error {
	ew := &errWriter{w: w}
	fmt.Fprintf(ew, top, html.EscapeString(title))

	page := 1
	for _, filename := range files {
		slides, err := scanFile(filename)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", filename, err)
		}
		for _, slide := range slides {
			writeSlideHTML(ew, slide, page)
			page++
		}
	}

	fmt.Fprintln(ew, bottom)
	return ew.Err()
}

const top = `<!DOCTYPE html>
<html>
  <head>
    <title>%s</title>
    <meta charset='utf-8'>
    <script>
      var notesEnabled =  false ;
    </script>
    <script src='/static/slides.js'></script>
  </head>

  <body style='display: none'>
    <section class='slides'>
`

const bottom = `
    <div id="help">
      Use the left and right arrow keys or click the left and right
      edges of the page to navigate between slides.<br>
      (Press 'H' or navigate to hide this message.)
    </div>
    <script type="application/javascript" src='static/play.js'></script>
  </body>
</html>`
