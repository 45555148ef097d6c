package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// printResult writes v to w in the selected format
func printResult(w io.Writer, format string, v any) error {
	var (
		out []byte
		err error
	)
	switch format {
	case formatYAML:
		out, err = yaml.Marshal(v)
	default:
		out, err = json.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = w.Write(out)
	return err
}
