package schema

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// TypeName is the declared type of a variable as written in the schema.
// Unknown names are accepted at load time and reported during validation.
type TypeName string

const (
	TypeString  TypeName = "string"
	TypeNumber  TypeName = "number"
	TypeURL     TypeName = "url"
	TypeBoolean TypeName = "boolean"
)

// Type defines the contract for coercing a raw environment value.
type Type interface {
	// Name returns the schema name of the type (e.g., "number").
	Name() TypeName
	// Coerce converts the raw string into the typed value, or returns the failure reason.
	Coerce(raw string) (any, error)
}

// --- Built-in Type Implementations ---

// StringType accepts any value as-is.
type StringType struct{}

func (t *StringType) Name() TypeName { return TypeString }

func (t *StringType) Coerce(raw string) (any, error) {
	return raw, nil
}

// NumberType parses decimal, exponent and 0x/0o/0b prefixed numbers into float64.
type NumberType struct{}

func (t *NumberType) Name() TypeName { return TypeNumber }

func (t *NumberType) Coerce(raw string) (any, error) {
	n, ok := parseNumber(raw)
	if !ok {
		return nil, errors.New("must be a number")
	}
	return n, nil
}

func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		// Blank values read as zero.
		return 0, true
	}
	if lower := strings.ToLower(strings.TrimLeft(s, "+-")); strings.HasPrefix(lower, "0x") && strings.Contains(lower, "p") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		if math.IsNaN(f) || (err == nil && math.IsInf(f, 0) && strings.TrimLeft(s, "+-") != "Infinity") {
			return 0, false
		}
		return f, true
	}
	if len(s) > 2 && s[0] == '0' && strings.ContainsRune("xXoObB", rune(s[1])) {
		i, err := strconv.ParseInt(s, 0, 64)
		if err == nil && !strings.Contains(s, "_") {
			return float64(i), true
		}
	}
	return 0, false
}

// URLType checks that the value is an absolute URL. The value is kept as a string.
type URLType struct{}

func (t *URLType) Name() TypeName { return TypeURL }

func (t *URLType) Coerce(raw string) (any, error) {
	if !isAbsoluteURL(raw) {
		return nil, errors.New("must be a valid URL")
	}
	return raw, nil
}

// hostSchemes are hierarchical schemes that are meaningless without a host.
var hostSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ws":    true,
	"wss":   true,
	"ftp":   true,
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return false
	}
	if hostSchemes[strings.ToLower(u.Scheme)] {
		return u.Host != ""
	}
	return true
}

// BooleanType accepts "true" or "false" in any letter case.
type BooleanType struct{}

func (t *BooleanType) Name() TypeName { return TypeBoolean }

func (t *BooleanType) Coerce(raw string) (any, error) {
	switch strings.ToLower(raw) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return nil, errors.New("must be a boolean (true/false)")
	}
}

// --- Factory Functions ---

// String creates the string type.
func String() Type { return &StringType{} }

// Number creates the number type.
func Number() Type { return &NumberType{} }

// URL creates the url type.
func URL() Type { return &URLType{} }

// Boolean creates the boolean type.
func Boolean() Type { return &BooleanType{} }

var builtinTypes = map[TypeName]Type{
	TypeString:  String(),
	TypeNumber:  Number(),
	TypeURL:     URL(),
	TypeBoolean: Boolean(),
}

// LookupType returns the built-in type for name.
func LookupType(name TypeName) (Type, bool) {
	t, ok := builtinTypes[name]
	return t, ok
}

// FieldSpec is the declarative rule set for one environment variable.
type FieldSpec struct {
	Type TypeName `mapstructure:"type" json:"type" yaml:"type"`
	// Required defaults to true; only an explicit false makes a variable optional.
	Required *bool `mapstructure:"required" json:"required,omitempty" yaml:"required,omitempty"`
	// Default is converted to its string form and validated like an environment value.
	Default any    `mapstructure:"default" json:"default,omitempty" yaml:"default,omitempty"`
	Pattern string `mapstructure:"pattern" json:"pattern,omitempty" yaml:"pattern,omitempty"`
	// Min and Max only apply to number variables.
	Min *float64 `mapstructure:"min" json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `mapstructure:"max" json:"max,omitempty" yaml:"max,omitempty"`

	Allowed   []string `mapstructure:"allowed" json:"allowed,omitempty" yaml:"allowed,omitempty"`
	MinLength *int     `mapstructure:"minLength" json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `mapstructure:"maxLength" json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	// Validate names predicates registered in a Registry.
	Validate []string `mapstructure:"validate" json:"validate,omitempty" yaml:"validate,omitempty"`

	Sensitive   bool   `mapstructure:"sensitive" json:"sensitive,omitempty" yaml:"sensitive,omitempty"`
	Description string `mapstructure:"description" json:"description,omitempty" yaml:"description,omitempty"`
}

// IsRequired reports whether a missing value without default is an error.
func (s FieldSpec) IsRequired() bool {
	return s.Required == nil || *s.Required
}

// DefaultString returns the string form of the declared default.
func (s FieldSpec) DefaultString() (string, bool) {
	if s.Default == nil {
		return "", false
	}
	return stringify(s.Default), true
}

// Variable binds a name to its FieldSpec.
type Variable struct {
	Name string
	Spec FieldSpec
}

// Var is shorthand for building a Variable.
func Var(name string, spec FieldSpec) Variable {
	return Variable{Name: name, Spec: spec}
}

// Config is the schema: variables in declaration order plus load-time warnings.
type Config struct {
	Variables []Variable
	// Warnings lists schema fields that were accepted but are not evaluated.
	Warnings []string
}

// NewConfig creates a Config from variables, keeping their order.
func NewConfig(vars ...Variable) *Config {
	return &Config{Variables: vars}
}

// Lookup returns the FieldSpec for name.
func (c *Config) Lookup(name string) (FieldSpec, bool) {
	if c == nil {
		return FieldSpec{}, false
	}
	for _, v := range c.Variables {
		if v.Name == name {
			return v.Spec, true
		}
	}
	return FieldSpec{}, false
}

// Float returns a pointer to f, for Min and Max.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to i, for MinLength and MaxLength.
func Int(i int) *int { return &i }

// Bool returns a pointer to b, for Required.
func Bool(b bool) *bool { return &b }

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return formatNumber(x)
	case float32:
		return formatNumber(float64(x))
	default:
		return fmt.Sprint(x)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
