package schema

import (
	"slices"

	"github.com/aretw0/envchecker/pkg/env"
)

// Result holds the coerced values of a successful validation.
type Result struct {
	Success bool `json:"success"`
	// Values maps variable names to string, float64 or bool, depending on the declared type.
	Values   map[string]any `json:"validatedEnv"`
	Warnings []string       `json:"warnings,omitempty"`

	keys []string
}

// Keys returns the validated variable names in schema declaration order.
func (r *Result) Keys() []string {
	return r.keys
}

// String returns a string or url value.
func (r *Result) String(key string) (string, bool) {
	v, ok := r.Values[key].(string)
	return v, ok
}

// Number returns a number value.
func (r *Result) Number(key string) (float64, bool) {
	v, ok := r.Values[key].(float64)
	return v, ok
}

// Bool returns a boolean value.
func (r *Result) Bool(key string) (bool, bool) {
	v, ok := r.Values[key].(bool)
	return v, ok
}

type options struct {
	registry *Registry
}

// Option configures a Validate call.
type Option func(*options)

// WithRegistry resolves named predicates through reg instead of DefaultRegistry.
func WithRegistry(reg *Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// Validate checks every variable of cfg against src and returns the coerced values.
//
// A nil cfg fails with ErrInvalidConfig. Otherwise all variables are checked and
// every failure is returned in a single *ValidationError; no partial Result is
// returned alongside it. A nil src behaves like an empty environment.
func Validate(cfg *Config, src env.Source, opts ...Option) (*Result, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}

	result := &Result{
		Success:  true,
		Values:   make(map[string]any, len(cfg.Variables)),
		Warnings: slices.Clone(cfg.Warnings),
	}
	var errs []*FieldError

	for _, v := range cfg.Variables {
		raw := ""
		if src != nil {
			raw, _ = src.Lookup(v.Name)
		}

		if raw == "" {
			if def, ok := v.Spec.DefaultString(); ok {
				raw = def
			} else if !v.Spec.IsRequired() {
				continue
			} else {
				errs = append(errs, &FieldError{Key: v.Name, Reason: missingReason})
				continue
			}
		}

		value, reason := validateField(v.Spec, raw, o.registry)
		if reason != "" {
			errs = append(errs, &FieldError{Key: v.Name, Reason: reason})
			continue
		}

		result.Values[v.Name] = value
		result.keys = append(result.keys, v.Name)
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	return result, nil
}

// validateField runs pattern, type coercion and the remaining rules in order,
// stopping at the first failure.
func validateField(spec FieldSpec, raw string, reg *Registry) (any, string) {
	rules := spec.Rules()

	if len(rules) > 0 && rules[0].Kind == RulePattern {
		if reason := rules[0].check(raw, nil, reg); reason != "" {
			return nil, reason
		}
		rules = rules[1:]
	}

	typ, ok := LookupType(spec.Type)
	if !ok {
		return nil, "unsupported type: " + typeLabel(spec.Type)
	}
	value, err := typ.Coerce(raw)
	if err != nil {
		return nil, err.Error()
	}

	for _, rule := range rules {
		if reason := rule.check(raw, value, reg); reason != "" {
			return nil, reason
		}
	}

	return value, ""
}

func typeLabel(t TypeName) string {
	if t == "" {
		return "(none)"
	}
	return string(t)
}

// Redacted replaces the values of sensitive variables in rendered output.
const Redacted = "*******"

// Redact returns a copy of r with the values of sensitive variables in cfg
// replaced by Redacted. The receiver is left untouched.
func (r *Result) Redact(cfg *Config) *Result {
	if r == nil {
		return nil
	}
	cloned := *r
	cloned.Values = make(map[string]any, len(r.Values))
	for k, v := range r.Values {
		if spec, ok := cfg.Lookup(k); ok && spec.Sensitive {
			v = Redacted
		}
		cloned.Values[k] = v
	}
	return &cloned
}
