package preview

import (
	"html/template"
	"io"
	"strings"
)

var page = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.View.Name}}</title>
<style>
body{font-family:Helvetica,Arial,sans-serif;margin:0;background:#f3f4f6;color:#1f2937}
header{background:#1e3a8a;color:#fff;padding:16px 24px}
header h1{margin:0;font-size:20px}
header p{margin:4px 0 0;font-size:13px;opacity:.85}
main{padding:24px}
.cards{display:flex;gap:12px;margin-bottom:16px;flex-wrap:wrap}
.card{background:#fff;border-left:4px solid #3b82f6;padding:10px 14px;min-width:150px}
.card small{display:block;color:#6b7280;text-transform:uppercase;font-size:11px}
.card strong{font-size:18px}
iframe{width:100%;height:80vh;border:1px solid #e5e7eb;background:#fff}
table{border-collapse:collapse;background:#fff;width:100%}
th{background:#1e3a8a;color:#fff;text-align:left;padding:6px 10px}
td{border-bottom:1px solid #e5e7eb;padding:6px 10px}
.share{margin-top:16px;background:#fff;padding:12px 16px}
.warn{color:#92400e}
</style>
</head>
<body>
{{with .View}}
<header>
<h1>{{.HotelName}} &middot; {{.Name}}</h1>
<p>{{.DateRange}} &middot; {{.Date}} &middot; Prepared by {{.GeneratedBy}} &middot; {{.Filename}}</p>
</header>
<main>
{{if not .Persisted}}<p class="warn">This report was not saved and will not survive a restart.</p>{{end}}
{{if .Highlights}}<div class="cards">{{range .Highlights}}<div class="card"><small>{{.Label}}</small><strong>{{.Value}}</strong><div>{{.Caption}}</div></div>{{end}}</div>{{end}}
{{if eq .Viewer "document"}}<iframe title="{{.Name}}" src="{{$.DocumentURL}}"></iframe>
{{else if eq .Viewer "table"}}<table><thead><tr>{{range .Table.Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>{{range .Table.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody></table>
{{else}}<p>{{.Message}}</p>{{end}}
<div class="share">
<a href="{{.DownloadURL}}">Download {{.Filename}}</a> &middot;
<a href="{{.MailtoLink}}">Share by e-mail</a> &middot;
Share link: <code>{{.ShareLink}}</code>
</div>
</main>
{{end}}
</body>
</html>
`))

// RenderHTML writes the view as a standalone page.
func RenderHTML(w io.Writer, v View) error {
	data := struct {
		View        View
		DocumentURL template.URL
	}{View: v}
	// Only base64 data URIs produced by the report encoders are trusted here.
	if strings.HasPrefix(v.DocumentURI, "data:application/pdf;base64,") {
		data.DocumentURL = template.URL(v.DocumentURI)
	}
	return page.Execute(w, data)
}
