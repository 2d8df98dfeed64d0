package cli

import (
	"errors"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"csim/internal/sim"
)

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	o := NewIO(out, errOut)

	if len(args) < 2 {
		printUsage(o)

		return 0
	}

	global := flag.NewFlagSet("csim", flag.ContinueOnError)
	global.SetInterspersed(false) // stop at the command word
	global.SetOutput(io.Discard)

	workDir := global.StringP("workdir", "C", "", "Run as if started in this directory")
	configPath := global.String("config", "", "Explicit config file (JSONC)")
	outDir := global.String("out-dir", "", "Override out_dir from config")
	noCache := global.Bool("no-cache", false, "Disable the result cache for this invocation")

	if err := global.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(o)

			return 0
		}

		o.Errorf("%v", err)
		printUsage(o)

		return 1
	}

	rest := global.Args()
	if len(rest) == 0 {
		printUsage(o)

		return 0
	}

	name := rest[0]
	if name == "help" {
		printUsage(o)

		return 0
	}

	wd := *workDir
	if wd == "" {
		var err error

		wd, err = os.Getwd()
		if err != nil {
			o.Errorf("cannot get working directory: %v", err)

			return 1
		}
	}

	overrides := sim.Overrides{OutDir: *outDir, NoCache: *noCache}

	cfg, sources, err := sim.LoadConfig(wd, *configPath, overrides, env)
	if err != nil {
		o.Errorf("%v", err)

		return 1
	}

	app := &App{
		Config:  cfg,
		Sources: sources,
		WorkDir: wd,
		Stdin:   in,
		Sig:     sigCh,
		Now:     func() int64 { return time.Now().UnixMilli() },
	}

	cmd, ok := commands()[name]
	if !ok {
		o.Errorf("unknown command: %s", name)
		printUsage(o)

		return 1
	}

	if code := cmd.Run(app, o, rest[1:]); code != 0 {
		return code
	}

	return o.Finish()
}

// commands builds the command registry. Built per call so each Run
// gets fresh FlagSets.
func commands() map[string]*Command {
	cmds := map[string]*Command{}

	for _, c := range []*Command{
		cmdRun(),
		cmdTemplates(),
		cmdValidate(),
		cmdRepl(),
		cmdPrintConfig(),
	} {
		cmds[c.Name()] = c
	}

	return cmds
}

func printUsage(o *IO) {
	o.Println("Usage: csim [global flags] <command> [args]")
	o.Println()
	o.Println("Deterministic simulator for contract templates.")
	o.Println()
	o.Println("Commands:")

	for _, c := range []*Command{
		cmdRun(),
		cmdTemplates(),
		cmdValidate(),
		cmdRepl(),
		cmdPrintConfig(),
	} {
		o.Println(c.HelpLine())
	}

	o.Println()
	o.Println("Global flags:")
	o.Println("  -C, --workdir <dir>        Run as if started in <dir>")
	o.Println("      --config <file>        Explicit config file (JSONC)")
	o.Println("      --out-dir <dir>        Override out_dir from config")
	o.Println("      --no-cache             Disable the result cache")
}
