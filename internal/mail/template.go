package mail

import (
	"html/template"
	"strings"

	"github.com/onedaone/reco-ai-demo/pkg/models"
)

var bodyTemplate = template.Must(template.New("result").Parse(`<div style="font-family: Arial, Helvetica, sans-serif; color:#111;">
  <h2>Reco AI — Analysis</h2>
  <h3>Summary</h3>
  <p>{{with .Summary}}{{.}}{{else}}-{{end}}</p>
  <h3>Missing information</h3>
  <ul>{{range .MissingInfo}}<li>{{.}}</li>{{end}}</ul>
  <h3>Issues</h3>
  <ul>{{range .Issues}}<li>{{.}}</li>{{end}}</ul>
  <h3>Suggested improvements</h3>
  <p>{{.Improvements}}</p>
  <h3>Estimate</h3>
  <table style="border-collapse:collapse;border:1px solid #ddd">
    {{range .Items}}<tr><td style="padding:6px;border:1px solid #ddd">{{.Desc}}</td><td style="padding:6px;border:1px solid #ddd">{{.Qty}}</td><td style="padding:6px;border:1px solid #ddd">{{.Unit}}</td><td style="padding:6px;border:1px solid #ddd">{{.UnitPrice}}</td><td style="padding:6px;border:1px solid #ddd">{{.Subtotal}}</td></tr>
    {{end}}
  </table>
  <p><strong>Total: {{.EstimatedTotal}}</strong></p>
</div>
`))

func renderBody(res *models.AnalysisResult) (string, error) {
	var b strings.Builder
	if err := bodyTemplate.Execute(&b, res); err != nil {
		return "", err
	}
	return b.String(), nil
}
