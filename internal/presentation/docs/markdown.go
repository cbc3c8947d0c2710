package docs

import (
	"fmt"
	"strings"

	"github.com/aretw0/envchecker/pkg/schema"
)

// GenerateMarkdown produces a markdown reference of the schema: one table row
// per variable in declaration order, followed by load-time warnings.
// Defaults of sensitive variables are masked.
func GenerateMarkdown(title string, cfg *schema.Config) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	if cfg == nil || len(cfg.Variables) == 0 {
		sb.WriteString("_No variables declared._\n")
		return sb.String()
	}

	sb.WriteString("| Variable | Type | Required | Default | Constraints | Description |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, v := range cfg.Variables {
		fmt.Fprintf(&sb, "| `%s` | %s | %s | %s | %s | %s |\n",
			v.Name,
			cell(string(v.Spec.Type)),
			required(v.Spec),
			defaultCell(v.Spec),
			cell(strings.Join(constraints(v.Spec), "<br>")),
			cell(v.Spec.Description),
		)
	}

	if len(cfg.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, w := range cfg.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
	}

	return sb.String()
}

func required(spec schema.FieldSpec) string {
	if _, ok := spec.DefaultString(); ok {
		return "no (default)"
	}
	if spec.IsRequired() {
		return "yes"
	}
	return "no"
}

func defaultCell(spec schema.FieldSpec) string {
	def, ok := spec.DefaultString()
	if !ok {
		return "-"
	}
	if spec.Sensitive {
		return "`*******`"
	}
	return "`" + escape(def) + "`"
}

// constraints describes each rule of a FieldSpec on its own line.
func constraints(spec schema.FieldSpec) []string {
	var out []string
	for _, r := range spec.Rules() {
		switch r.Kind {
		case schema.RulePattern:
			out = append(out, "pattern `"+escape(r.Pattern)+"`")
		case schema.RuleRange:
			out = append(out, "range "+bound(r.Min, "-∞")+" .. "+bound(r.Max, "∞"))
		case schema.RuleEnum:
			out = append(out, "one of "+strings.Join(r.Values, ", "))
		case schema.RuleLength:
			out = append(out, "length "+intBound(r.MinLength, "0")+" .. "+intBound(r.MaxLength, "∞"))
		case schema.RulePredicate:
			out = append(out, "validator `"+r.Name+"`")
		}
	}
	if spec.Sensitive {
		out = append(out, "sensitive")
	}
	return out
}

func bound(f *float64, unset string) string {
	if f == nil {
		return unset
	}
	return fmt.Sprintf("%v", *f)
}

func intBound(i *int, unset string) string {
	if i == nil {
		return unset
	}
	return fmt.Sprintf("%d", *i)
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return escape(s)
}

// escape keeps table cells intact.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
