package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/emavok/paranoia/loader"
)

func newCheckCmd(c *cli) *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "check -s SCHEMA",
		Short: "Check a schema file without validating data",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			c.logger.Info("checking schema", "path", schemaPath)
			schema, err := loader.LoadSchema(schemaPath, c.options()...)
			if err != nil {
				return err
			}
			if c.jsonOutput() {
				out, err := json.Marshal(report{Valid: true, Schema: schema.Name, Description: schema.Description})
				if err != nil {
					return fmt.Errorf("encode report: %w", err)
				}
				_, err = fmt.Fprintf(c.stdout, "%s\n", out)
				return err
			}
			if schema.Name != "" {
				fmt.Fprintf(c.stdout, "Schema: %s\n", schema.Name)
			}
			fmt.Fprintln(c.stdout, "Schema OK")
			return nil
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema file (.json, .yaml, .yml, .toml)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}
