package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
	FormatList  OutputFormat = "list"
)

// formatJSON renders any response as indented JSON.
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// printJSON writes a response as JSON to stdout or exits on error.
func printJSON(resp interface{}) {
	out, err := formatJSON(resp)
	if err != nil {
		exitErr(err)
	}
	fmt.Println(out)
}

// exitErr prints an error and exits non-zero.
func exitErr(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
