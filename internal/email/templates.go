package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names
const (
	TemplateWelcome             = "welcome"
	TemplatePurchaseConfirmed   = "purchase_confirmed"
	TemplateApplicationReceived = "application_received"
	TemplateApplicationStatus   = "application_status"
)

var subjects = map[string]string{
	TemplateWelcome:             "Bem-vindo ao Trampo",
	TemplatePurchaseConfirmed:   "Pagamento confirmado",
	TemplateApplicationReceived: "Nova candidatura para sua vaga",
	TemplateApplicationStatus:   "Atualização da sua candidatura",
}

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Render builds a message from a named template
func Render(name, to string, data interface{}) (Message, error) {
	subject, ok := subjects[name]
	if !ok {
		return Message{}, fmt.Errorf("unknown email template %q", name)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return Message{}, fmt.Errorf("render %s: %w", name, err)
	}
	return Message{To: to, Subject: subject, HTML: buf.String()}, nil
}
