package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

func validateOutputFormat(outputFormat string) error {
	switch strings.ToLower(outputFormat) {
	case "table":
	case "yaml":
	case "json":
	default:
		return errors.Errorf("unknown output format %q", outputFormat)
	}
	return nil
}

// printStructured prints obj as yaml or json. The table format is left to the
// caller.
func printStructured(outputFormat string, obj interface{}, op string) error {
	switch strings.ToLower(outputFormat) {
	case "yaml":
		yamlBytes, err := yaml.Marshal(obj)
		if err != nil {
			return errors.Wrapf(err, "error formatting output from %s operation", op)
		}
		fmt.Println(string(yamlBytes))
	case "json":
		prettyJSON, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return errors.Wrapf(err, "error formatting output from %s operation", op)
		}
		fmt.Println(string(prettyJSON))
	}
	return nil
}
