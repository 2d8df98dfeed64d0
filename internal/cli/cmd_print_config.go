package cli

import (
	flag "github.com/spf13/pflag"

	"csim/internal/sim"
)

func cmdPrintConfig() *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show the effective configuration",
		Exec: func(app *App, o *IO, _ []string) error {
			out, err := sim.FormatConfig(app.Config)
			if err != nil {
				return err
			}

			o.Println(out)

			if app.Sources.Global != "" {
				o.Println("// global:", app.Sources.Global)
			}

			if app.Sources.Project != "" {
				o.Println("// project:", app.Sources.Project)
			}

			return nil
		},
	}
}
