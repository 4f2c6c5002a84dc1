package html

import (
	"fmt"
	"html"
)

func RenderLayout(title, body string) string {
	return fmt.Sprintf("<!doctype html><html><head><meta charset=\"utf-8\"><title>%s</title><link rel=\"stylesheet\" href=\"/assets/app.css\"></head><body>%s</body></html>", title, body)
}

// RenderFlash renders status/error banners from redirect query params.
func RenderFlash(status, errorMessage string) string {
	out := ""
	if status != "" {
		out += `<div class="flash flash-ok">` + html.EscapeString(status) + `</div>`
	}
	if errorMessage != "" {
		out += `<div class="flash flash-error">Error: ` + html.EscapeString(errorMessage) + `</div>`
	}
	return out
}
