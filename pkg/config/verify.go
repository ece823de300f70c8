package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	r := &jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true}
	schema := r.Reflect(&Config{})
	if schema == nil {
		return nil, fmt.Errorf("reflect config schema")
	}
	schema.Title = "tubefeed configuration"
	return schema, nil
}

// GenerateSchemaJSON returns the indented JSON schema document
func GenerateSchemaJSON() ([]byte, error) {
	schema, err := GenerateSchema()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
