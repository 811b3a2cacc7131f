package photo

import (
	_ "embed"
	"html/template"
)

//go:embed static/index.html
var indexHTML string

//go:embed static/app.css
var appCSS []byte

//go:embed static/app.js
var appJS []byte

// pageTemplate escapes per context, so the caption lands in the speech
// script as a quoted JS string
var pageTemplate = template.Must(template.New("index.html").Parse(indexHTML))

// usageSteps is the sidebar hint shown on every page
var usageSteps = []string{
	"Press Take Photo to capture a picture.",
	"Wait for the analysis result to appear.",
	"Press Clear photo before taking another one.",
}

// page is the data the page template renders
type page struct {
	Title        string
	Instructions string
	Steps        []string
	View         View
}

func newPage(view View) page {
	return page{
		Title:        "AI Photo Analyzer",
		Instructions: "Take a photo and the AI will describe what it sees.",
		Steps:        usageSteps,
		View:         view,
	}
}
