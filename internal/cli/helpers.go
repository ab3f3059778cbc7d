package cli

import "strings"

// joinArgs rebuilds free text that was split into positional args.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
