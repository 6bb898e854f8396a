package cmd

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

const jsonFlag = "json"

func jsonOutput(cmd *cobra.Command) bool {
	enabled, err := cmd.Flags().GetBool(jsonFlag)
	return err == nil && enabled
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeOutput prints v as JSON under --json and through render otherwise.
func writeOutput[T any](cmd *cobra.Command, v T, render func(T) (string, error)) error {
	if jsonOutput(cmd) {
		return writeJSON(cmd, v)
	}

	rendered, err := render(v)
	if err != nil {
		return fmt.Errorf("render output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeLine(cmd *cobra.Command, format string, args ...any) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
	return err
}

// parseAssignments turns repeated name=value flags into a field map.
func parseAssignments(raw []string) (map[string]string, error) {
	fields := make(map[string]string, len(raw))
	for _, item := range raw {
		name, value, ok := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q (want name=value)", item)
		}
		fields[name] = value
	}
	return fields, nil
}

func sortedKeys(fields map[string]string) []string {
	return slices.Sorted(maps.Keys(fields))
}
