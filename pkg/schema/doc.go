// Package schema validates environment variables against a declarative schema.
//
// A Config lists variables in declaration order. Each variable carries a
// FieldSpec with its type (string, number, url, boolean), requiredness,
// default, pattern, numeric bounds and optional constraints (allowed values,
// length bounds, named predicates).
//
// Basic usage:
//
//	cfg, err := schema.Load("envchecker.config.yaml")
//	if err != nil {
//	    // Handle load errors (schema.ErrConfigNotFound, schema.ErrInvalidConfig)
//	}
//
//	res, err := schema.Validate(cfg, env.FromOS())
//	if err != nil {
//	    for _, msg := range schema.ValidationErrors(err) {
//	        fmt.Println(msg)
//	    }
//	}
//
//	port, _ := res.Number("PORT")
//
// Configs can also be built programmatically:
//
//	cfg := schema.NewConfig(
//	    schema.Var("PORT", schema.FieldSpec{Type: schema.TypeNumber, Min: schema.Float(1024)}),
//	    schema.Var("API_URL", schema.FieldSpec{Type: schema.TypeURL}),
//	)
//
// Validation never stops at the first failing variable: every variable is
// checked and all failures are returned together in a *ValidationError.
// Within a single variable, checks run in a fixed order (presence, pattern,
// type, bounds, allowed values, length, predicates) and the first failure
// wins.
//
// Custom predicates are referenced by name from the schema and resolved
// through a Registry:
//
//	reg := schema.NewRegistry()
//	reg.Register("even", func(v string) error { ... })
//	res, err := schema.Validate(cfg, src, schema.WithRegistry(reg))
package schema
