package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bisegni/qprint/pkg/database"
	"github.com/bisegni/qprint/pkg/engine"
	"github.com/bisegni/qprint/pkg/export"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

// RunInteractive reads SELECT statements from a prompt and exports each
// result with opts. A line starting with "explain" prints the plan instead.
func RunInteractive(cmd *cobra.Command, executor *engine.Executor, input string, opts *export.Options) error {
	if input == "-" {
		// The prompt owns stdin
		return errors.New("interactive mode needs a file or inline JSON input")
	}
	printer, err := export.NewPrinter(opts, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Interactive mode enabled. Type 'exit' or 'quit' to leave.")
	if input != "" {
		fmt.Fprintf(out, "Reading from: %s\n", input)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          out,
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.EqualFold(trimmed, "exit"), strings.EqualFold(trimmed, "quit"):
			return nil
		}

		if err := runStatement(out, executor, printer, input, trimmed); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}
}

func runStatement(out io.Writer, executor *engine.Executor, printer *export.Printer, input, statement string) error {
	explain := false
	if fields := strings.Fields(statement); len(fields) > 1 && strings.EqualFold(fields[0], "explain") {
		explain = true
		statement = strings.TrimSpace(statement[len(fields[0]):])
	}

	var table database.Table
	if input != "" {
		table = database.NewJSONTable(input)
	}
	opts := printer.Options()
	prepared, err := executor.Prepare(statement, table, opts.Limit)
	if err != nil {
		return err
	}
	if explain {
		fmt.Fprintln(out, prepared.Explain())
		return nil
	}

	res, err := prepared.Open(opts.MainLabel)
	if err != nil {
		return err
	}
	defer res.Close()

	if _, err := printer.Write(out, res); err != nil {
		return err
	}
	// DSV bodies have no final line break
	if opts.Format == export.FormatDSV {
		fmt.Fprintln(out)
	}
	return nil
}
