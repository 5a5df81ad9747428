package postman

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// collectionSchema is the subset of the Postman Collection v2.x schema the
// parser relies on. Anything outside it is ignored.
const collectionSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["info"],
  "properties": {
    "info": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string"},
        "_postman_id": {"type": "string"}
      }
    },
    "item": {"$ref": "#/$defs/items"}
  },
  "$defs": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "item": {"$ref": "#/$defs/items"}
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compileCollectionSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("collection.json", strings.NewReader(collectionSchema)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return compiler.Compile("collection.json")
}

// checkCollection validates a decoded collection against collectionSchema.
// A failure is informational; the collection is still parsed.
func checkCollection(doc any) error {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = compileCollectionSchema()
	})
	if schemaErr != nil {
		return fmt.Errorf("schema compilation error: %w", schemaErr)
	}

	err := compiledSchema.Validate(doc)
	if err == nil {
		return nil
	}
	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		return fmt.Errorf("%s", firstCause(validationErr))
	}
	return err
}

// firstCause descends to the innermost error so the warning names the
// offending location instead of the schema root.
func firstCause(err *jsonschema.ValidationError) string {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	loc := err.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return loc + ": " + err.Message
}
