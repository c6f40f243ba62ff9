package main

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	paranoia "github.com/emavok/paranoia"
	"github.com/emavok/paranoia/loader"
)

// errInvalid signals exit code 1 after the report has been printed.
var errInvalid = errors.New("validation failed")

type report struct {
	Valid       bool                      `json:"valid"`
	Schema      string                    `json:"schema,omitempty"`
	Description string                    `json:"description,omitempty"`
	Errors      paranoia.ValidationErrors `json:"errors,omitempty"`
}

func newValidateCmd(c *cli) *cobra.Command {
	var schemaPath, dataPath string
	cmd := &cobra.Command{
		Use:   "validate -s SCHEMA -d DATA",
		Short: "Validate a data file against a schema file",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			c.logger.Info("loading schema", "path", schemaPath)
			schema, err := loader.LoadSchema(schemaPath, c.options()...)
			if err != nil {
				return err
			}
			c.logger.Debug("schema loaded", "name", schema.Name, "properties", len(schema.Properties))

			c.logger.Info("loading data", "path", dataPath)
			value, err := loader.LoadValue(dataPath)
			if err != nil {
				return err
			}

			errs, err := c.validate(schema, value)
			if err != nil {
				return err
			}
			c.logger.Debug("validation finished", "errors", len(errs))
			if err := c.print(schema, errs); err != nil {
				return err
			}
			if paranoia.HasValidationErrors(errs) {
				return errInvalid
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema file (.json, .yaml, .yml, .toml)")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "data file (.json, .yaml, .yml)")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

// validate turns a schema panic into an error.
func (c *cli) validate(schema *paranoia.Schema, value any) (errs paranoia.ValidationErrors, err error) {
	defer func() {
		if p := recover(); p != nil {
			se, ok := p.(*paranoia.SchemaError)
			if !ok {
				panic(p)
			}
			err = se
		}
	}()
	return paranoia.New(c.options()...).Validate(schema, value), nil
}

func (c *cli) print(schema *paranoia.Schema, errs paranoia.ValidationErrors) error {
	if c.jsonOutput() {
		out, err := json.MarshalIndent(report{
			Valid:       len(errs) == 0,
			Schema:      schema.Name,
			Description: schema.Description,
			Errors:      errs,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		_, err = fmt.Fprintf(c.stdout, "%s\n", out)
		return err
	}

	if schema.Name != "" {
		fmt.Fprintf(c.stdout, "Schema: %s\n", schema.Name)
	}
	if schema.Description != "" {
		fmt.Fprintf(c.stdout, "  %s\n", schema.Description)
	}
	if len(errs) == 0 {
		fmt.Fprintln(c.stdout, "Validation OK")
		return nil
	}
	fmt.Fprintf(c.stdout, "Validation failed with %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(c.stdout, "  %s at %s: %s\n", e.Name, e.Path(), e.Message)
	}
	return nil
}
