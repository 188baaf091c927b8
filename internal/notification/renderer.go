package notification

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*
var templateFS embed.FS

const thankYouTemplate = "thank_you"

// ThankYouData feeds the thank-you email. Position is omitted when zero.
type ThankYouData struct {
	Name     string
	Position int64
}

type thankYouView struct {
	Greeting string
	Position int64
}

// Renderer turns template data into RenderedContent.
type Renderer interface {
	RenderThankYou(data ThankYouData) (RenderedContent, error)
}

type templateRenderer struct {
	html    *htmltemplate.Template
	text    *texttemplate.Template
	subject *texttemplate.Template
	caser   cases.Caser
}

// NewTemplateRenderer parses the embedded templates once.
func NewTemplateRenderer() (Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "templates/"+thankYouTemplate+".html")
	if err != nil {
		return nil, fmt.Errorf("parse html template: %w", err)
	}

	text, err := texttemplate.ParseFS(templateFS, "templates/"+thankYouTemplate+".txt")
	if err != nil {
		return nil, fmt.Errorf("parse text template: %w", err)
	}

	subject, err := texttemplate.ParseFS(templateFS, "templates/"+thankYouTemplate+"_subject.txt")
	if err != nil {
		return nil, fmt.Errorf("parse subject template: %w", err)
	}

	return &templateRenderer{
		html:    html,
		text:    text,
		subject: subject,
		caser:   cases.Title(language.English),
	}, nil
}

func (r *templateRenderer) RenderThankYou(data ThankYouData) (RenderedContent, error) {
	view := thankYouView{Greeting: "there", Position: data.Position}
	if name := strings.TrimSpace(data.Name); name != "" {
		view.Greeting = r.caser.String(name)
	}

	var subject, html, text bytes.Buffer

	if err := r.subject.Execute(&subject, view); err != nil {
		return RenderedContent{}, fmt.Errorf("render subject: %w", err)
	}
	if err := r.html.Execute(&html, view); err != nil {
		return RenderedContent{}, fmt.Errorf("render html: %w", err)
	}
	if err := r.text.Execute(&text, view); err != nil {
		return RenderedContent{}, fmt.Errorf("render text: %w", err)
	}

	return RenderedContent{
		Subject: strings.TrimSpace(subject.String()),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
