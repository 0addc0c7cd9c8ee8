package browse

import (
	"html/template"
	"strings"

	"github.com/FlorianMayr1208/present-picker/internal/selection"
)

// The print view is plain HTML the browser's print dialog turns into
// a PDF. Line items are grouped by category in selection order.
var printTmpl = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<title>{{.Destination}} – Auswahl</title>
<style>
  body { font-family: sans-serif; margin: 2rem; }
  h1 { border-bottom: 2px solid #366092; padding-bottom: .3rem; }
  h2 { color: #366092; margin-top: 1.5rem; }
  table { width: 100%; border-collapse: collapse; }
  td, th { text-align: left; padding: .3rem .6rem; border-bottom: 1px solid #ddd; }
  td.points { text-align: right; white-space: nowrap; }
  .gift { color: #777; font-style: italic; }
  .total { font-weight: bold; font-size: 1.1rem; margin-top: 1rem; }
  .over { color: #b00; }
  @media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>{{.Destination}}</h1>
{{range .Groups}}
<h2>{{.Title}}</h2>
<table>
{{range .Items}}
  <tr>
    <td>{{.Title}}{{if .FromParents}} <span class="gift">(Geschenk der Eltern)</span>{{end}}</td>
    <td>{{.Description}}</td>
    <td class="points">{{.Points}} P</td>
  </tr>
{{end}}
</table>
{{end}}
<p class="total{{if not .WithinBudget}} over{{end}}">
  Gesamt: {{.TotalPoints}} Punkte{{if .PointsBudget}} von {{.PointsBudget}}{{end}}
</p>
</body>
</html>
`))

type printGroup struct {
	Title string
	Items []selection.LineItem
}

type printData struct {
	Destination  string
	Groups       []printGroup
	TotalPoints  int
	PointsBudget int
	WithinBudget bool
}

func renderPrintHTML(summary *SelectionSummary) (string, error) {
	data := printData{
		Destination:  summary.Destination,
		TotalPoints:  summary.TotalPoints,
		PointsBudget: summary.PointsBudget,
		WithinBudget: summary.WithinBudget,
	}

	// group consecutive-by-category while keeping selection order
	index := map[int]int{}
	for _, item := range summary.LineItems {
		i, ok := index[item.ActivityID]
		if !ok {
			i = len(data.Groups)
			index[item.ActivityID] = i
			data.Groups = append(data.Groups, printGroup{Title: item.ActivityTitle})
		}
		data.Groups[i].Items = append(data.Groups[i].Items, item)
	}

	var b strings.Builder
	if err := printTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
