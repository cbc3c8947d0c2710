package schema

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// RuleKind tags the variant held by a Rule.
type RuleKind int

const (
	// RulePattern matches the raw value against a regular expression, before coercion.
	RulePattern RuleKind = iota + 1
	// RuleRange bounds the coerced number.
	RuleRange
	// RuleEnum restricts the raw value to a fixed set.
	RuleEnum
	// RuleLength bounds the character count of the raw value.
	RuleLength
	// RulePredicate runs a named predicate from a Registry.
	RulePredicate
)

func (k RuleKind) String() string {
	switch k {
	case RulePattern:
		return "pattern"
	case RuleRange:
		return "range"
	case RuleEnum:
		return "enum"
	case RuleLength:
		return "length"
	case RulePredicate:
		return "predicate"
	default:
		return fmt.Sprintf("RuleKind(%d)", int(k))
	}
}

// Rule is one constraint of a FieldSpec. Only the fields of its Kind are set.
type Rule struct {
	Kind RuleKind

	Pattern string // RulePattern

	Min, Max *float64 // RuleRange

	Values []string // RuleEnum

	MinLength, MaxLength *int // RuleLength

	Name string // RulePredicate
}

// Rules returns the constraint chain of s in evaluation order.
// The pattern rule, when present, is always first.
func (s FieldSpec) Rules() []Rule {
	var rules []Rule
	if s.Pattern != "" {
		rules = append(rules, Rule{Kind: RulePattern, Pattern: s.Pattern})
	}
	if s.Type == TypeNumber && (s.Min != nil || s.Max != nil) {
		rules = append(rules, Rule{Kind: RuleRange, Min: s.Min, Max: s.Max})
	}
	if len(s.Allowed) > 0 {
		rules = append(rules, Rule{Kind: RuleEnum, Values: s.Allowed})
	}
	if s.MinLength != nil || s.MaxLength != nil {
		rules = append(rules, Rule{Kind: RuleLength, MinLength: s.MinLength, MaxLength: s.MaxLength})
	}
	for _, name := range s.Validate {
		rules = append(rules, Rule{Kind: RulePredicate, Name: name})
	}
	return rules
}

// check returns the failure reason, or "" when the rule holds.
// value is the coerced value; it is nil for RulePattern.
func (r Rule) check(raw string, value any, reg *Registry) string {
	switch r.Kind {
	case RulePattern:
		re, err := compilePattern(r.Pattern)
		if err != nil {
			return "invalid pattern: " + r.Pattern
		}
		if ok, err := re.MatchString(raw); err != nil || !ok {
			return "must match pattern: " + r.Pattern
		}
	case RuleRange:
		n, ok := value.(float64)
		if !ok {
			return ""
		}
		if r.Min != nil && n < *r.Min {
			return "must be greater than or equal to " + formatNumber(*r.Min)
		}
		if r.Max != nil && n > *r.Max {
			return "must be less than or equal to " + formatNumber(*r.Max)
		}
	case RuleEnum:
		for _, v := range r.Values {
			if v == raw {
				return ""
			}
		}
		return "must be one of: " + strings.Join(r.Values, ", ")
	case RuleLength:
		n := utf8.RuneCountInString(raw)
		if r.MinLength != nil && n < *r.MinLength {
			return fmt.Sprintf("must be at least %d characters long", *r.MinLength)
		}
		if r.MaxLength != nil && n > *r.MaxLength {
			return fmt.Sprintf("must be at most %d characters long", *r.MaxLength)
		}
	case RulePredicate:
		fn, ok := reg.Lookup(r.Name)
		if !ok {
			return "unknown validator: " + r.Name
		}
		if err := fn(raw); err != nil {
			return err.Error()
		}
	}
	return ""
}

// PatternTimeout bounds a single pattern match. A match that runs out of
// time is reported as a pattern mismatch.
const PatternTimeout = 100 * time.Millisecond

// compilePattern uses ECMAScript syntax so patterns written for JavaScript
// tooling (lookaheads, \/ escapes) keep their meaning.
func compilePattern(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = PatternTimeout
	return re, nil
}
