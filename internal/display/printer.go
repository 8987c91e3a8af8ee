// Package display renders envelopes and summaries as console text. All
// output goes through an injected writer; nothing here talks to the API.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fathomctl/fathomctl/internal/connection"
)

const ruleWidth = 60

// Printer formats results for the console. Decoration adds the emoji
// markers the interactive output uses; plain output keeps text prefixes.
type Printer struct {
	w         io.Writer
	decorated bool
}

type Option func(*Printer)

// WithDecoration toggles emoji markers (on for interactive terminals).
func WithDecoration(decorated bool) Option {
	return func(p *Printer) {
		p.decorated = decorated
	}
}

func NewPrinter(w io.Writer, opts ...Option) *Printer {
	p := &Printer{w: w}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Printer) Header(text string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(p.w, rule)
	fmt.Fprintln(p.w, text)
	fmt.Fprintln(p.w, rule)
}

func (p *Printer) Subheader(text string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, rule)
	fmt.Fprintln(p.w, text)
	fmt.Fprintln(p.w, rule)
}

func (p *Printer) Success(message string) {
	p.marked("✅", "ok:", message)
}

func (p *Printer) Error(message string) {
	p.marked("❌", "error:", message)
}

func (p *Printer) Info(message string) {
	p.marked("ℹ️ ", "info:", message)
}

func (p *Printer) marked(emoji, prefix, message string) {
	if p.decorated {
		fmt.Fprintf(p.w, "%s %s\n", emoji, message)
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", prefix, message)
}

// Result prints a labeled value with the given indentation.
func (p *Printer) Result(label string, value any, indent int) {
	fmt.Fprintf(p.w, "%s%s: %v\n", strings.Repeat(" ", indent), label, value)
}

// JSON prints v as indented JSON, falling back to plain formatting when it
// cannot be encoded.
func (p *Printer) JSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(p.w, "%v\n", v)
		return
	}
	fmt.Fprintln(p.w, string(data))
}

// ResponseSummary prints the outcome of one call: which path served it,
// whether it succeeded, and the error and status code when it did not.
func (p *Printer) ResponseSummary(label string, env connection.Envelope) {
	if env.Success {
		p.Success(fmt.Sprintf("%s successful via %s", label, env.Method))
		if env.StatusCode != 0 {
			p.Result("Status Code", env.StatusCode, 2)
		}
		return
	}

	p.Error(fmt.Sprintf("%s failed via %s", label, env.Method))
	p.Result("Error", env.Error, 2)
	if env.StatusCode != 0 {
		p.Result("Status Code", env.StatusCode, 2)
	}
}

// KeyInfo prints the redacted credential summary.
func (p *Printer) KeyInfo(info connection.KeyInfo) {
	p.Success(fmt.Sprintf("API key loaded (length: %d)", info.Length))
	p.Success(fmt.Sprintf("SDK client available: %t", info.SDKAvailable))
}

// Suggestions prints a numbered list of follow-up hints.
func (p *Printer) Suggestions(suggestions []string) {
	fmt.Fprintln(p.w)
	if p.decorated {
		fmt.Fprintln(p.w, "💡 Suggestions:")
	} else {
		fmt.Fprintln(p.w, "Suggestions:")
	}
	for i, suggestion := range suggestions {
		fmt.Fprintf(p.w, "%d. %s\n", i+1, suggestion)
	}
}

// Completion prints the closing banner.
func (p *Printer) Completion() {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, rule)
	if p.decorated {
		fmt.Fprintln(p.w, "✅ Run completed!")
	} else {
		fmt.Fprintln(p.w, "Run completed!")
	}
	fmt.Fprintln(p.w, rule)
}
