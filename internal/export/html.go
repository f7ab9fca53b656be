package export

import (
	"bytes"
	"html/template"
	"io"
	"time"

	"github.com/tripledger/tripledger/internal/calendar"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	mhtml "github.com/tdewolff/minify/v2/html"
)

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; }
th, td { padding: 0.25rem 0.75rem; border-bottom: 1px solid #ddd; text-align: left; }
tr.away td { background: #eef6ff; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Start}} to {{.End}}, {{.AwayDays}} days away from home</p>
<table>
<tr><th>Date</th><th>Place</th><th>Distance (mi)</th></tr>
{{range .Days}}<tr{{if .Away}} class="away"{{end}}><td>{{.Date}}</td><td>{{.City}}</td><td>{{printf "%.1f" .Distance}}</td></tr>
{{end}}</table>
</body>
</html>`

type reportData struct {
	Title    string
	Start    string
	End      string
	AwayDays int
	Days     []reportDay
}

type reportDay struct {
	Date     string
	City     string
	Distance float64
	Away     bool
}

// WriteHTML renders the calendar as a minified single-page HTML report.
func WriteHTML(w io.Writer, c *calendar.Calendar, title, home string) error {
	data := reportData{
		Title: title,
		Start: c.Start().Format(time.DateOnly),
		End:   c.End().Format(time.DateOnly),
	}

	for _, e := range entries(c) {
		away := e.Assigned() && e.City != home
		if away {
			data.AwayDays++
		}
		data.Days = append(data.Days, reportDay{
			Date:     e.Date.Format(time.DateOnly),
			City:     e.City,
			Distance: e.Distance,
			Away:     away,
		})
	}

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}

	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", mhtml.Minify)

	return m.Minify("text/html", w, &buf)
}
