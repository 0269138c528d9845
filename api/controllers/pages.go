package controllers

import (
	"html/template"
	"net/http"

	"github.com/s50889/ordesite2-sub001/pkg/config"
)

var shellTemplate = template.Must(template.New("shell").Parse(`<!doctype html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>Ordesite</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
<div id="root" data-api-base="{{.BaseURL}}"></div>
<script type="module" src="/static/app.js"></script>
</body>
</html>
`))

// StaticAssets serves the client bundle under /static. Registered ahead of
// the shell catch-all so a missing asset is a 404, never the shell HTML.
func StaticAssets(dir string) http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.Dir(dir)))
}

// PortalShell serves the single-page application bootstrap. The route guard
// middleware in front of it has already settled redirects, so every request
// reaching here renders the same shell and the client router takes over.
func PortalShell(cfg config.AppConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := shellTemplate.Execute(w, map[string]string{"BaseURL": cfg.BaseURL}); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}
