package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/xiam/callexpr"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	caretColor = color.New(color.FgGreen, color.Bold)
	nameColor  = color.New(color.Bold)
)

// report writes err as "name:line:col: message" followed by the offending
// source line and a caret under the column.
func report(w io.Writer, name string, src []byte, err error) {
	pos, ok := callexpr.Position(err)
	if !ok {
		nameColor.Fprintf(w, "%s: ", name)
		errorColor.Fprint(w, "error: ")
		fmt.Fprintf(w, "%v\n", err)
		return
	}

	nameColor.Fprintf(w, "%s:%d:%d: ", name, pos.Line, pos.Column)
	errorColor.Fprint(w, "error: ")
	fmt.Fprintf(w, "%v\n", err)

	line, ok := sourceLine(src, pos.Line)
	if !ok {
		return
	}
	fmt.Fprintf(w, "    %s\n", line)
	caretColor.Fprintf(w, "    %s^\n", caretPadding(line, pos.Column))
}

// sourceLine returns the n-th (1-based) line of src.
func sourceLine(src []byte, n int) (string, bool) {
	lines := bytes.Split(src, []byte("\n"))
	if n < 1 || n > len(lines) {
		return "", false
	}
	return strings.TrimRight(string(lines[n-1]), "\r"), true
}

// caretPadding returns the blanks that go before a caret pointing at the
// given rune column of line. Tabs are kept so the caret lines up.
func caretPadding(line string, column int) string {
	var b strings.Builder
	i := 1
	for _, r := range line {
		if i >= column {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
		i++
	}
	return b.String()
}
