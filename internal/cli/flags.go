package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func OptionalStringFlag(cmd *cobra.Command, name string) (string, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return "", nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return strings.TrimSpace(value), nil
}

func OptionalBoolFlag(cmd *cobra.Command, name string) (bool, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return false, nil
	}
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return value, nil
}

// StringFlagOr returns the flag value when it was set on the command line,
// otherwise fallback (usually the configured value).
func StringFlagOr(cmd *cobra.Command, name, fallback string) (string, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	return OptionalStringFlag(cmd, name)
}

func IntFlagOr(cmd *cobra.Command, name string, fallback int) (int, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	value, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return value, nil
}

// ParseEngine reads --engine. Only "rules" and "llm" are accepted.
func ParseEngine(cmd *cobra.Command) (string, error) {
	value, err := OptionalStringFlag(cmd, "engine")
	if err != nil {
		return "", err
	}
	switch strings.ToLower(value) {
	case "", engineRules:
		return engineRules, nil
	case engineLLM:
		return engineLLM, nil
	default:
		return "", fmt.Errorf("unsupported engine %q (supported: rules, llm)", value)
	}
}
