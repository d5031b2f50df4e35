// Package render produces the HTML fragments the input handlers insert next
// to form controls. All dynamic text goes through html/template.
package render

import (
	"bytes"
	"html/template"

	"github.com/MrEthical07/goUX/strength"
)

var fragments = template.Must(template.New("fragments").Parse(`
{{- define "strength" -}}
<small class="password-strength {{.Class}} d-block mt-1"><i class="bi bi-shield-fill"></i> Password strength: {{.Label}}</small>
{{- end -}}
{{- define "invalid" -}}
<div class="invalid-feedback">{{.}}</div>
{{- end -}}
{{- define "loading" -}}
<span class="spinner-border spinner-border-sm me-2"></span>{{.}}
{{- end -}}
`))

// LoadingLabel is the text shown in a busy button.
const LoadingLabel = "Loading..."

type strengthView struct {
	Class string
	Label string
}

// StrengthIndicator renders the strength line shown under the password input.
func StrengthIndicator(res strength.Result) template.HTML {
	return execute("strength", strengthView{Class: res.Tier.Class(), Label: res.Label})
}

// InvalidFeedback renders the message placed after an invalid input.
func InvalidFeedback(message string) template.HTML {
	return execute("invalid", message)
}

// LoadingButton renders the body of a submit button while its form is in
// flight.
func LoadingButton() template.HTML {
	return execute("loading", LoadingLabel)
}

func execute(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		// Templates are static and data is plain strings; failure is a bug.
		panic("render: " + err.Error())
	}
	return template.HTML(buf.String())
}
