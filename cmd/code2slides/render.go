package main

import (
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"rsc.io/markdown"
)

func writeSlideHTML(w io.Writer, slide *Slide, pageNum int) {
	fmt.Fprintln(w, "<article>")
	fmt.Fprintf(w, "  <h1>%s</h1>\n", html.EscapeString(slide.heading))
	inAnswer := false
	for _, sec := range slide.sections {
		if sec.kind == sectionAnswer && !inAnswer {
			fmt.Fprintln(w, "  <details>")
			fmt.Fprintln(w, "    <summary>Answer</summary>")
			fmt.Fprintln(w, `    <div class="answer">`)
			inAnswer = true
		} else if sec.kind != sectionAnswer && sec.kind != sectionHTML && inAnswer {
			fmt.Fprintln(w, "    </div>")
			fmt.Fprintln(w, "  </details>")
			inAnswer = false
		}

		switch sec.kind {
		case sectionCode:
			fmt.Fprintf(w, "    <div class=\"code\"><pre>%s</pre></div>\n", renderCode(sec.content))
		case sectionCodeBad:
			fmt.Fprintf(w, "    <div class=\"code bad\"><pre>%s</pre></div>\n", renderCode(sec.content))
		case sectionOutput:
			fmt.Fprintf(w, "    <div class=\"output\"><pre>%s</pre></div>\n", html.EscapeString(sec.content))
		case sectionHTML:
			fmt.Fprintln(w, sec.content)
		case sectionNote:
			fmt.Fprintf(w, "    <aside class=\"note\">\n%s    </aside>\n", renderMarkdown(sec.content))
		case sectionText, sectionQuestion, sectionAnswer:
			fmt.Fprint(w, renderMarkdown(sec.content))
		}
	}
	if inAnswer {
		fmt.Fprintln(w, "    </div>")
		fmt.Fprintln(w, "  </details>")
	}

	fmt.Fprintf(w, "<span class='pagenumber'>%d</span>\n", pageNum)
	fmt.Fprintln(w, "</article>")
}

var (
	// Variants of one name on successive slides, like nc_1 and nc_2,
	// are all shown as nc.
	variantSuffix = regexp.MustCompile(`\b([A-Za-z][A-Za-z0-9]*)_[A-Za-z0-9]+\b`)
	typeDefn      = regexp.MustCompile(`^(\s*type\s+)([A-Za-z_]\w*)`)
	funcDefn      = regexp.MustCompile(`^(\s*func\s+(?:\([^)]*\)\s*)?)([A-Za-z_]\w*)`)
)

func renderCode(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		code, comment := splitComment(line)
		code = html.EscapeString(code)
		code = variantSuffix.ReplaceAllString(code, "$1")
		code = typeDefn.ReplaceAllString(code, "$1<defn>$2</defn>")
		code = funcDefn.ReplaceAllString(code, "$1<defn>$2</defn>")
		if comment != "" {
			code += "<comment>" + html.EscapeString(comment) + "</comment>"
		}
		lines[i] = code
	}
	out := strings.Join(lines, "\n")
	out = strings.ReplaceAll(out, emOpen, `<span class="em">`)
	return strings.ReplaceAll(out, emClose, "</span>")
}

// splitComment splits a line of Go at the start of its line comment,
// ignoring "//" inside string and rune literals.
func splitComment(line string) (code, comment string) {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' && quote != '`' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return line[:i], line[i:]
		}
	}
	return line, ""
}

func renderMarkdown(s string) string {
	p := markdown.Parser{Table: true}
	doc := p.Parse(s)
	return markdown.ToHTML(doc)
}
