/*
Package envchecker validates a process environment against a declarative schema before an application starts.

A schema file (envchecker.config.yaml, YAML or JSON) lists every variable under REQUIRED_VARIABLES with its type
(string, number, url, boolean), whether it is required, a default, and optional constraints: pattern, min/max,
allowed values, length bounds and named validators. Validation checks every variable, coerces values to their
types and reports all failures at once.

# Usage

The one-call entry point loads the schema, layers the environment and validates it:

	package main

	import (
		"log"

		"github.com/aretw0/envchecker"
	)

	func main() {
		out, err := envchecker.Check("envchecker.config.yaml", envchecker.WithEnvFiles(".env"))
		if err != nil {
			log.Fatal(err)
		}
		port, _ := out.Result.Number("PORT")
		log.Printf("listening on %v", port)
	}

Callers that already hold a schema use package schema directly:

	cfg := schema.NewConfig(
		schema.Var("PORT", schema.FieldSpec{Type: schema.TypeNumber, Default: 3000}),
	)
	res, err := schema.Validate(cfg, env.FromOS())

Failures are a *schema.ValidationError listing one message per variable; a malformed schema is
schema.ErrInvalidConfig.
*/
package envchecker
