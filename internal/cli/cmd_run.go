package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"

	"csim/internal/sim"
	"csim/internal/validate"
)

func cmdRun() *Command {
	flags := flag.NewFlagSet("run", flag.ContinueOnError)
	template := flags.StringP("template", "t", "", "Template to simulate (required)")
	params := flags.StringArrayP("param", "p", nil, "Set a param as name=value (repeatable)")
	paramsFile := flags.String("params-file", "", "Read params from a JSONC file")
	outFile := flags.StringP("out", "o", "", "Write the result JSON to this file (relative to out_dir)")

	cmd := &Command{
		Flags: flags,
		Usage: "run -t <template> [flags]",
		Short: "Run one simulation",
		Long: `Run one simulation and print its transcript and final state.

Params come from --params-file (a flat JSONC object of strings) with
individual -p name=value flags layered on top. Identical requests are
served from the result cache; --no-cache bypasses it.`,
		Exec: func(app *App, o *IO, args []string) error {
			if *template == "" {
				return errTemplateRequired
			}

			if len(args) > 0 {
				return fmt.Errorf("%w: %s", errUnexpectedArg, args[0])
			}

			reqParams, err := collectParams(app.WorkDir, *paramsFile, *params)
			if err != nil {
				return err
			}

			runner := sim.NewRunner(app.Config)

			res, cached, err := runner.Run(sim.Request{Template: *template, Params: reqParams}, app.Now())
			if err != nil {
				return err
			}

			printResult(o, res, cached)

			if res.Truncated {
				o.Warn("transcript truncated to fit max_output_bytes",
					"raise max_output_bytes in config to keep the full trace")
			}

			if *outFile != "" {
				path := *outFile
				if !filepath.IsAbs(path) {
					path = filepath.Join(resolveOutDir(app), path)
				}

				err := sim.WithRunLock(resolveOutDir(app), func() error {
					return sim.WriteResult(path, res)
				})
				if err != nil {
					return err
				}

				o.Println()
				o.Println("result written to", path)
			}

			return nil
		},
	}

	return cmd
}

// collectParams merges file params with -p flags, flags winning.
func collectParams(workDir, paramsFile string, flagParams []string) (map[string]string, error) {
	params := map[string]string{}

	if paramsFile != "" {
		path := paramsFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}

		data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errParamsFileRead, paramsFile)
		}

		if res := validate.ParamsJSON(data); !res.Valid {
			return nil, fmt.Errorf("%w %s: %s", errParamsFileInvalid, paramsFile, res.Errors[0].Message)
		}

		params, err = validate.Params(data)
		if err != nil {
			return nil, err
		}
	}

	for _, kv := range flagParams {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", errBadParamFlag, kv)
		}

		params[name] = value
	}

	return params, nil
}

func printResult(o *IO, res sim.Result, cached bool) {
	header := fmt.Sprintf("%s: %d steps, gas %d", res.Template, res.Steps, res.GasUsed)
	if cached {
		header += " (cached)"
	}

	o.Println(header)
	o.Println()
	o.Printf("%s", res.Transcript)
	o.Println()
	o.Println("final state:")

	keys := make([]string, 0, len(res.State))
	for k := range res.State {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		o.Printf("  %s = %s\n", k, res.State[k])
	}
}

func resolveOutDir(app *App) string {
	dir := app.Config.OutDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(app.WorkDir, dir)
	}

	return dir
}
