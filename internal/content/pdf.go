package content

import "strings"

// pdf references a document either by URL (Text) or by the staged upload
// reference (File). The upload wins when both are present.
type pdf struct {
	Text        string `json:"text" validate:"required_without=File"`
	File        string `json:"file" validate:"required_without=Text"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Expiration  string `json:"expiration"`
}

func newPDF(r *Request) Content {
	return pdf{
		Text:        r.Text,
		File:        r.File,
		Title:       r.Title,
		Description: r.Description,
		Expiration:  r.Expiration,
	}
}

func (pdf) Kind() Kind { return KindPDF }

func (p pdf) Payload() string {
	var b strings.Builder
	if p.Title != "" {
		b.WriteString("Título: " + p.Title + "\n")
	}
	if p.File != "" {
		b.WriteString("Archivo PDF: " + p.File)
	} else {
		b.WriteString("PDF URL: " + p.Text)
	}
	if p.Description != "" {
		b.WriteString("\nDescripción: " + p.Description)
	}
	if p.Expiration != "" {
		b.WriteString("\nFecha de Expiración: " + p.Expiration)
	}
	return b.String()
}
