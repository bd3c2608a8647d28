package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

type Slide struct {
	heading  string
	sections []section
}

type sectionKind int

const (
	sectionNote sectionKind = iota
	sectionText
	sectionCode
	sectionCodeBad
	sectionOutput
	sectionQuestion
	sectionAnswer
	sectionHTML
)

func (k sectionKind) String() string {
	switch k {
	case sectionNote:
		return "note"
	case sectionText:
		return "text"
	case sectionCode, sectionCodeBad:
		return "code"
	case sectionOutput:
		return "output"
	case sectionQuestion:
		return "question"
	case sectionAnswer:
		return "answer"
	case sectionHTML:
		return "html"
	}
	return "unknown"
}

type section struct {
	kind    sectionKind
	content string
}

// Markers for emphasized code. They survive HTML escaping.
const (
	emOpen  = "\x00em\x00"
	emClose = "\x00/em\x00"
)

// scanner turns the marker comments of one file into slides.
type scanner struct {
	filename string
	lineNum  int

	slides []*Slide
	cur    *Slide

	inSection bool
	kind      sectionKind
	prose     strings.Builder
	code      []string // lines of the current code section
	block     bool     // inside a /* ... */ section
	skipping  bool     // inside an ordinary block comment

	divs []string // open div classes
}

func scanFile(filename string) ([]*Slide, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	s := &scanner{
		filename: filename,
		cur:      &Slide{heading: filepath.Base(filename)},
	}
	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		s.lineNum++
		if err := s.line(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return s.finish()
}

func (s *scanner) errorf(format string, args ...any) error {
	return fmt.Errorf("%s:%d: %s", s.filename, s.lineNum, fmt.Sprintf(format, args...))
}

func (s *scanner) finish() ([]*Slide, error) {
	if s.inSection {
		return nil, s.errorf("unclosed %s section", s.kind)
	}
	if len(s.divs) > 0 {
		return nil, s.errorf("unclosed div.%s", s.divs[len(s.divs)-1])
	}
	if len(s.cur.sections) > 0 {
		s.slides = append(s.slides, s.cur)
	}
	return s.slides, nil
}

func (s *scanner) line(line string) error {
	switch {
	case s.skipping:
		if strings.Contains(line, "*/") {
			s.skipping = false
		}
		return nil
	case s.block:
		return s.blockLine(line)
	case s.inCode():
		return s.codeLine(line)
	}

	trimmed := strings.TrimSpace(line)
	word, rest, ok := splitFirstWord(trimmed)
	if !ok {
		// Go source. Blank lines separate paragraphs of prose.
		if s.inSection && trimmed == "" {
			s.blank()
		}
		return nil
	}
	if strings.HasPrefix(trimmed, "/*") {
		return s.openBlock(trimmed, word, rest)
	}

	switch word {
	case "heading":
		if s.inSection {
			return s.errorf("heading inside %s", s.kind)
		}
		if len(s.divs) > 0 {
			return s.errorf("heading inside div.%s", s.divs[len(s.divs)-1])
		}
		s.startSlide(rest)
	case "code":
		if s.inSection {
			return s.errorf("code inside %s", s.kind)
		}
		kind := sectionCode
		if rest == "bad" {
			kind = sectionCodeBad
		}
		s.start(kind)
	case "!code":
		return s.errorf("!code without matching code")
	case "note", "text", "output":
		kind := proseKinds[word]
		if s.inSection {
			return s.errorf("%s inside %s", word, s.kind)
		}
		if rest != "" {
			// Single-line form.
			s.add(kind, rest+"\n")
			return nil
		}
		s.start(kind)
	case "!note", "!text", "!output":
		want := proseKinds[word[1:]]
		if !s.inSection || s.kind != want {
			return s.errorf("%s without matching %s", word, want)
		}
		s.end()
	case "question":
		if s.inSection {
			return s.errorf("question inside %s", s.kind)
		}
		s.start(sectionQuestion)
	case "answer":
		if !s.inSection || s.kind != sectionQuestion {
			return s.errorf("answer without matching question")
		}
		s.end()
		s.start(sectionAnswer)
	case "!question":
		if !s.inSection || (s.kind != sectionQuestion && s.kind != sectionAnswer) {
			return s.errorf("!question without matching question")
		}
		if s.kind == sectionQuestion {
			return s.errorf("!question without answer")
		}
		s.end()
	case "html":
		if s.inSection {
			// Raw HTML in the middle of prose splits it in two.
			kind := s.kind
			s.end()
			s.add(sectionHTML, rest)
			s.start(kind)
			return nil
		}
		s.add(sectionHTML, rest)
	default:
		if class, ok := strings.CutPrefix(word, "div."); ok {
			if s.inSection {
				return s.errorf("div inside %s", s.kind)
			}
			s.divs = append(s.divs, class)
			s.add(sectionHTML, fmt.Sprintf(`<div class="%s">`, class))
			return nil
		}
		if class, ok := strings.CutPrefix(word, "!div."); ok {
			if len(s.divs) == 0 {
				return s.errorf("!div.%s without matching div", class)
			}
			if top := s.divs[len(s.divs)-1]; top != class {
				return s.errorf("mismatched div class: div.%s closed by !div.%s", top, class)
			}
			s.divs = s.divs[:len(s.divs)-1]
			s.add(sectionHTML, fmt.Sprintf("</div> <!-- %s -->", class))
			return nil
		}
		if s.inSection {
			s.proseLine(trimmed)
		}
	}
	return nil
}

var proseKinds = map[string]sectionKind{
	"note":   sectionNote,
	"text":   sectionText,
	"output": sectionOutput,
}

// startSlide begins a new slide, unless the current one is still empty.
func (s *scanner) startSlide(heading string) {
	if len(s.cur.sections) > 0 {
		s.slides = append(s.slides, s.cur)
		s.cur = &Slide{}
	}
	s.cur.heading = heading
}

func (s *scanner) inCode() bool {
	return s.inSection && (s.kind == sectionCode || s.kind == sectionCodeBad)
}

func (s *scanner) start(kind sectionKind) {
	s.inSection = true
	s.kind = kind
	s.prose.Reset()
	s.code = s.code[:0]
}

// end closes the current section and adds it to the slide, unless it is empty.
func (s *scanner) end() {
	s.inSection = false
	s.block = false
	var content string
	switch s.kind {
	case sectionCode, sectionCodeBad:
		content = codeContent(s.code)
	case sectionOutput:
		content = strings.Trim(s.prose.String(), "\n")
	default:
		content = strings.TrimRight(s.prose.String(), "\n")
		if content != "" {
			content += "\n"
		}
	}
	if content != "" {
		s.add(s.kind, content)
	}
}

func (s *scanner) add(kind sectionKind, content string) {
	s.cur.sections = append(s.cur.sections, section{kind: kind, content: content})
}

func (s *scanner) blank() {
	if s.kind == sectionOutput {
		s.prose.WriteByte('\n')
		return
	}
	if p := s.prose.String(); p != "" && !strings.HasSuffix(p, "\n\n") {
		s.prose.WriteByte('\n')
	}
}

// proseLine adds a comment line of a note, text, output, question or answer.
func (s *scanner) proseLine(line string) {
	text, ok := strings.CutPrefix(line, "// ")
	if !ok {
		text = strings.TrimPrefix(line, "//")
	}
	if strings.TrimSpace(text) == "" {
		s.blank()
		return
	}
	s.prose.WriteString(text)
	s.prose.WriteByte('\n')
}

func (s *scanner) openBlock(trimmed, word, rest string) error {
	kind, isProse := proseKinds[word]
	if !isProse {
		s.skipping = !strings.Contains(trimmed, "*/")
		return nil
	}
	if s.inSection {
		return s.errorf("%s inside %s", word, s.kind)
	}
	if strings.Contains(trimmed, "*/") {
		s.add(kind, strings.TrimSpace(strings.TrimSuffix(rest, "*/"))+"\n")
		return nil
	}
	s.start(kind)
	s.block = true
	if rest != "" {
		s.prose.WriteString(rest + "\n")
	}
	return nil
}

func (s *scanner) blockLine(line string) error {
	if before, _, found := strings.Cut(line, "*/"); found {
		if strings.TrimSpace(before) != "" {
			s.prose.WriteString(before + "\n")
		}
		s.end()
		return nil
	}
	if strings.TrimSpace(line) == "" {
		s.blank()
		return nil
	}
	s.prose.WriteString(line + "\n")
	return nil
}

// structural holds the markers that cannot appear inside code.
var structural = []string{"code", "note", "text", "output", "question", "answer", "heading"}

func (s *scanner) codeLine(line string) error {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "//") {
		word, rest, _ := splitFirstWord(trimmed)
		switch {
		case word == "!code" && rest == "":
			s.end()
			return nil
		case word == "em" && rest == "":
			s.code = append(s.code, emOpen)
			return nil
		case word == "!em" && rest == "":
			s.code = append(s.code, emClose)
			return nil
		case slices.Contains(structural, word) && (rest == "" || word == "heading"):
			return s.errorf("%s inside code", word)
		}
	}
	s.code = append(s.code, inlineEm(line))
	return nil
}

// inlineEm handles a trailing "// em TEXT" comment: the comment is removed
// and the first occurrence of TEXT in the line is emphasized.
func inlineEm(line string) string {
	i := strings.LastIndex(line, "// em ")
	if i < 0 {
		return line
	}
	mark := strings.TrimSpace(line[i+len("// em "):])
	code := strings.TrimRight(line[:i], " \t")
	j := strings.Index(code, mark)
	if mark == "" || j < 0 {
		return code
	}
	return code[:j] + emOpen + mark + emClose + code[j+len(mark):]
}

// codeContent joins the lines of a code section, removing the indentation
// they all share and surrounding blank lines.
func codeContent(lines []string) string {
	indent := commonIndent(lines)
	var b strings.Builder
	for _, l := range lines {
		if l == emOpen || l == emClose {
			b.WriteString(l)
			continue
		}
		b.WriteString(strings.TrimPrefix(l, indent))
		b.WriteByte('\n')
	}
	return strings.Trim(b.String(), "\n")
}

func commonIndent(lines []string) string {
	var indent string
	first := true
	for _, l := range lines {
		if l == emOpen || l == emClose || strings.TrimSpace(l) == "" {
			continue
		}
		lead := l[:len(l)-len(strings.TrimLeft(l, " \t"))]
		if first {
			indent, first = lead, false
			continue
		}
		for !strings.HasPrefix(lead, indent) {
			indent = indent[:len(indent)-1]
		}
	}
	return indent
}

// splitFirstWord splits a comment line into its first word and the rest.
// It reports false if line is not a comment.
func splitFirstWord(line string) (word, rest string, ok bool) {
	body, ok := strings.CutPrefix(line, "//")
	if !ok {
		body, ok = strings.CutPrefix(line, "/*")
	}
	if !ok {
		return "", "", false
	}
	word, rest, _ = strings.Cut(strings.TrimSpace(body), " ")
	return word, strings.TrimSpace(rest), true
}
