package main

import (
	"os"
	"strings"

	"kanban-cli/internal/cli"
)

// lookupCommand maps a pasted entity id to the command group that shows it.
func lookupCommand(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for prefix, group := range map[string]string{"col-": "columns", "task-": "tasks"} {
		if strings.HasPrefix(s, prefix) && len(s) > len(prefix) {
			return group, true
		}
	}
	return "", false
}

func rewriteDirectLookupArgs(argv []string) []string {
	// `kanban <task-id>` works like `kanban tasks show <task-id>`; same for columns.
	//
	// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before parsing.
	// Persistent flags may come first (`kanban --dir ... <id>`), so look for the first positional.
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":       true,
		"--format":    true,
		"--log-level": true,
	}
	boolFlags := map[string]bool{
		"--pretty":   true,
		"--no-color": true,
	}

	rewrite := func(i int) []string {
		group, ok := lookupCommand(argv[i])
		if !ok {
			return argv
		}
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, group, "show")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) {
				return rewrite(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		return rewrite(i)
	}

	return argv
}

func main() {
	os.Args = rewriteDirectLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
