// Package cmd implements the command-line interface for nekosama.
package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/nekosama-cli/nekosama/config"
	"github.com/nekosama-cli/nekosama/history"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().BoolP("config", "c", false, "Generate the JSON Schema for configuration field descriptors")
}

// schemaCmd generates JSON schemas for structured command outputs.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for structured command outputs",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "saveddownload", "field":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("config")):
			schema = reflector.Reflect([]config.Field{})
		default:
			schema = reflector.Reflect(map[string]*history.SavedDownload{})
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
