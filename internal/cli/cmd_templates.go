package cli

import (
	flag "github.com/spf13/pflag"

	"csim/internal/sim"
)

func cmdTemplates() *Command {
	return &Command{
		Flags: flag.NewFlagSet("templates", flag.ContinueOnError),
		Usage: "templates",
		Short: "List available templates",
		Exec: func(_ *App, o *IO, _ []string) error {
			for _, tpl := range sim.Templates() {
				o.Printf("  %-10s %s\n", tpl.Name, tpl.Short)
			}

			return nil
		},
	}
}
