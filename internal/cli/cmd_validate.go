package cli

import (
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"csim/internal/validate"
)

func cmdValidate() *Command {
	flags := flag.NewFlagSet("validate", flag.ContinueOnError)
	jsonFile := flags.String("json", "", "Validate a params JSONC file instead of an address")

	return &Command{
		Flags: flags,
		Usage: "validate <address> | --json <file>",
		Short: "Check an address or params file",
		Long: `Check a strkey address (G... account or C... contract) or a params
JSONC file. Findings are reported as warnings; an invalid input exits 1
without being treated as a tool failure.`,
		Exec: func(app *App, o *IO, args []string) error {
			var (
				res     validate.Result
				subject string
			)

			switch {
			case *jsonFile != "":
				path := *jsonFile
				if !filepath.IsAbs(path) {
					path = filepath.Join(app.WorkDir, path)
				}

				data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
				if err != nil {
					return fmt.Errorf("%w: %s", errJSONFileRead, *jsonFile)
				}

				res = validate.ParamsJSON(data)
				subject = *jsonFile
			case len(args) == 1:
				res = validate.Address(args[0])
				subject = args[0]
			default:
				return errValidateArgs
			}

			if res.Valid {
				o.Println(subject, "is valid")

				return nil
			}

			for _, e := range res.Errors {
				issue := e.Code
				if e.Field != "" {
					issue += " (" + e.Field + ")"
				}

				o.Warn(issue, e.Message)
			}

			return nil
		},
	}
}
