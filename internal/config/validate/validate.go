package validate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidateAgainstSchema validates a JSON document against the given schema
// bytes. The optional ref selects a subschema within the schema document.
func ValidateAgainstSchema(name string, schema []byte, data []byte, ref string) error {
	compiler := jsonschema.NewCompiler()

	url := name + ".json"
	if err := compiler.AddResource(url, bytes.NewReader(schema)); err != nil {
		return fmt.Errorf("adding schema resource %s: %w", url, err)
	}
	if ref != "" {
		url = url + "#" + ref
	}

	compiled, err := compiler.Compile(url)
	if err != nil {
		return fmt.Errorf("compiling schema %s: %w", url, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("document does not match schema %s: %w", url, err)
	}
	return nil
}

// ValidateProfileJSON validates a provisioning profile document (as JSON)
// against the embedded profile schema.
func ValidateProfileJSON(data []byte) error {
	return ValidateAgainstSchema("provision-profile", []byte(profileSchema), data, "")
}
