package config

import (
	"github.com/bisegni/qprint/pkg/export"
)

// Options resolves export options from the configured defaults and a set
// of overrides. Overrides win key by key; a "format" key in either map
// wins over Format.
func (e *ExportConfig) Options(overrides map[string]string) (*export.Options, error) {
	params := make(map[string]string, len(e.Params)+len(overrides))
	for k, v := range e.Params {
		params[k] = v
	}
	for k, v := range overrides {
		params[k] = v
	}

	name := e.Format
	if f, ok := params[export.ParamFormat]; ok && f != "" {
		name = f
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return export.ParseParams(format, params)
}
