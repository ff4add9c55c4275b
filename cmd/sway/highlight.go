package main

import (
	"bytes"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/colorprofile"
)

// formatterFor maps a terminal color profile to a chroma formatter name.
// An empty name means the output should stay plain.
func formatterFor(p colorprofile.Profile) string {
	switch p {
	case colorprofile.TrueColor:
		return "terminal16m"
	case colorprofile.ANSI256:
		return "terminal256"
	case colorprofile.ANSI:
		return "terminal16"
	default:
		return ""
	}
}

// stdoutFormatter picks the formatter for whatever stdout is attached to.
func stdoutFormatter() string {
	return formatterFor(colorprofile.Detect(os.Stdout, os.Environ()))
}

// highlight colors source as language using the named chroma style. The
// source is returned unchanged when formatter is empty or anything fails.
func highlight(source, language, formatter, styleName string) string {
	if formatter == "" {
		return source
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	f := formatters.Get(formatter)
	if f == nil {
		return source
	}

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := f.Format(&buf, style, iterator); err != nil {
		return source
	}
	return strings.TrimRight(buf.String(), "\n") + "\n"
}
