package export

// ParamSpec describes one parameter a format accepts.
type ParamSpec struct {
	Name        string
	Type        string
	Default     string
	Description string
}

var commonParams = []ParamSpec{
	{Name: ParamHeaders, Type: "string", Default: HeadersShow, Description: "Show or hide the header line (show, hide)"},
	{Name: ParamLimit, Type: "int", Description: "Maximum number of results; links default to 100"},
	{Name: ParamMainLabel, Type: "string", Description: "Label of the first column"},
	{Name: ParamSearchLabel, Type: "string", Description: "Text of the link to the full result"},
}

// Parameters lists the parameters declared for format.
func Parameters(format Format) []ParamSpec {
	var specific []ParamSpec
	switch format {
	case FormatCSV:
		specific = []ParamSpec{
			{Name: ParamSep, Type: "string", Default: DefaultCSVSeparator, Description: "Field separator, a single character (_ stands for a space)"},
		}
	case FormatDSV:
		specific = []ParamSpec{
			{Name: ParamSeparator, Type: "string", Default: DefaultDSVSeparator, Description: "Field separator, any string except a backslash (alias: sep); whitespace is trimmed, so a tab falls back to the default"},
			{Name: ParamFilename, Type: "string", Default: DefaultDSVFileName, Description: "Name of the produced file (spaces become underscores)"},
		}
	default:
		return nil
	}
	return append(specific, commonParams...)
}
