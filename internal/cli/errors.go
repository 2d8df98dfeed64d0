package cli

import "errors"

var (
	errTemplateRequired  = errors.New("missing required flag: --template")
	errUnexpectedArg     = errors.New("unexpected argument")
	errBadParamFlag      = errors.New("param flags must be name=value")
	errParamsFileRead    = errors.New("cannot read params file")
	errParamsFileInvalid = errors.New("invalid params file")
	errValidateArgs      = errors.New("provide an address argument or --json <file>")
	errJSONFileRead      = errors.New("cannot read JSON file")
)
