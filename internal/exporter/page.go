package exporter

import (
	"encoding/json"
	"html/template"
	"strings"

	"github.com/nlohse/stash/internal/model"
)

// pageTemplate renders a self-contained page: a readable list plus the
// full collection embedded as JSON so the file round-trips.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Bookmarks</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
li { margin: 0.5rem 0; }
.tags { color: #666; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>Bookmarks ({{len .Bookmarks}})</h1>
<ul>
{{- range .Bookmarks}}
<li><a href="{{.URL}}">{{.Title}}</a> <span class="tags">{{range .Tags}}#{{.}} {{end}}</span></li>
{{- end}}
</ul>
<script type="application/json" id="bookmarks-data">
{{.JSON}}
</script>
</body>
</html>
`))

// ExportPage exports the store as a standalone HTML page with the
// bookmark JSON embedded in a data script element.
func ExportPage(store *model.Store) (string, error) {
	data, err := json.Marshal(store.Bookmarks)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	err = pageTemplate.Execute(&b, struct {
		Bookmarks []model.Bookmark
		JSON      template.JS
	}{
		Bookmarks: store.Bookmarks,
		JSON:      template.JS(data),
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
