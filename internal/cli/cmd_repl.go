package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"csim/internal/sim"
)

const replHelp = `Commands:
  run <template> [name=value]...   Run a simulation
  templates                        List available templates
  cache                            Show result cache stats
  invalidate <template>            Drop cached results for a template
  help                             Show this help
  exit / quit / q                  Exit`

func cmdRepl() *Command {
	return &Command{
		Flags: flag.NewFlagSet("repl", flag.ContinueOnError),
		Usage: "repl",
		Short: "Interactive simulation shell",
		Long: `Start an interactive shell holding a single result cache, so
repeated runs of the same request are served from memory and FIFO
eviction is observable across commands.`,
		Exec: func(app *App, o *IO, _ []string) error {
			line := liner.NewLiner()
			defer func() { _ = line.Close() }()

			line.SetCtrlCAborts(true)

			session := &replSession{
				app:    app,
				o:      o,
				runner: sim.NewRunner(app.Config),
			}

			o.Println("csim repl -", "type 'help' for commands")

			for {
				select {
				case <-app.Sig:
					return nil
				default:
				}

				input, err := line.Prompt("csim> ")
				if err != nil {
					if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
						return nil
					}

					return err
				}

				if strings.TrimSpace(input) == "" {
					continue
				}

				line.AppendHistory(input)

				if quit := session.eval(input); quit {
					return nil
				}
			}
		},
	}
}

// replSession evaluates shell lines against one long-lived Runner.
// Split from the liner loop so tests can drive it directly.
type replSession struct {
	app    *App
	o      *IO
	runner *sim.Runner
}

// eval handles one input line. Returns true when the session should
// end. Simulation failures are printed, never fatal.
func (s *replSession) eval(input string) bool {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false
	}

	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "exit", "quit", "q":
		return true
	case "help":
		s.o.Println(replHelp)
	case "templates":
		for _, tpl := range sim.Templates() {
			s.o.Printf("  %-10s %s\n", tpl.Name, tpl.Short)
		}
	case "cache":
		hits, misses := s.runner.Stats()
		s.o.Printf("entries=%d hits=%d misses=%d\n", s.runner.CacheLen(), hits, misses)
	case "invalidate":
		if len(args) != 1 {
			s.o.Println("usage: invalidate <template>")

			break
		}

		s.o.Printf("dropped %d cached result(s)\n", s.runner.InvalidateTemplate(args[0]))
	case "run":
		s.evalRun(args)
	default:
		s.o.Println("unknown command:", cmd, "- type 'help'")
	}

	return false
}

func (s *replSession) evalRun(args []string) {
	if len(args) == 0 {
		s.o.Println("usage: run <template> [name=value]...")

		return
	}

	params := map[string]string{}

	for _, kv := range args[1:] {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			s.o.Println("bad param (want name=value):", kv)

			return
		}

		params[name] = value
	}

	res, cached, err := s.runner.Run(sim.Request{Template: args[0], Params: params}, s.app.Now())
	if err != nil {
		s.o.Println("error:", err)

		return
	}

	printResult(s.o, res, cached)
}
