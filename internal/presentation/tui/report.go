package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/envchecker/pkg/schema"
	"github.com/muesli/termenv"
)

// Report renders validation outcomes to a terminal.
type Report struct {
	w   io.Writer
	out *termenv.Output
}

// NewReport creates a report writing to w. The color profile is detected from
// w unless overridden with termenv.WithProfile.
func NewReport(w io.Writer, opts ...termenv.OutputOption) *Report {
	return &Report{w: w, out: termenv.NewOutput(w, opts...)}
}

func (r *Report) color(s, hex string) termenv.Style {
	return r.out.String(s).Foreground(r.out.Color(hex))
}

func (r *Report) println(s termenv.Style) {
	fmt.Fprintln(r.w, s)
}

// Warnings lists load-time warnings; nothing is printed when there are none.
func (r *Report) Warnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	r.println(r.color("\n⚠️  Warnings:", "#eab308"))
	for _, w := range warnings {
		r.println(r.color("- "+w, "#eab308"))
	}
}

// Success prints the confirmation and, when verbose, every validated value
// in schema order with sensitive values masked.
func (r *Report) Success(cfg *schema.Config, res *schema.Result, verbose bool) {
	r.println(r.color("\n✅ All required environment variables are set.", "#22c55e"))
	if !verbose {
		return
	}

	fmt.Fprintln(r.w, "\nValidated Environment Variables:")
	for _, key := range res.Keys() {
		spec, _ := cfg.Lookup(key)
		if spec.Sensitive {
			r.println(r.color(fmt.Sprintf("%s: %s (sensitive)", key, schema.Redacted), "#06b6d4"))
			continue
		}
		r.println(r.color(fmt.Sprintf("%s: %v", key, res.Values[key]), "#06b6d4"))
	}
}

// Failure renders err according to its kind: missing config, aggregated
// validation errors, or anything unexpected.
func (r *Report) Failure(err error, configPath string) {
	var verr *schema.ValidationError
	switch {
	case errors.Is(err, schema.ErrConfigNotFound):
		r.println(r.color(fmt.Sprintf("❌ Could not find %s in the current directory", configPath), "#ef4444"))
	case errors.As(err, &verr):
		r.println(r.color("\n❌ Missing or invalid environment variables:", "#ef4444"))
		for _, msg := range verr.Errors() {
			r.println(r.color("- "+msg, "#ef4444"))
		}
	case errors.Is(err, schema.ErrInvalidConfig):
		r.println(r.color("❌ "+err.Error(), "#ef4444"))
	default:
		fmt.Fprintf(r.w, "%s %v\n", r.color("An unexpected error occurred:", "#ef4444"), err)
	}
}
