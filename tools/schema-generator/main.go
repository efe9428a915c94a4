// Command schema-generator writes the JSON Schema for dreamsearch config files.
package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/grovetools/dreamsearch/config"
)

const defaultOutput = "dreamsearch.schema.json"

func main() {
	out := defaultOutput
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	data, err := generate()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}
	log.Printf("Wrote config schema to %s", out)
}

func generate() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&config.Config{})
	schema.Title = "dreamsearch configuration"
	schema.Description = "Defaults for the dreamsearch command, read from " + config.FileName + "."

	return json.MarshalIndent(schema, "", "  ")
}
