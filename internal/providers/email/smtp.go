package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/smallbiznis/faktur/internal/invoice/domain"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPProvider struct {
	cfg  Config
	tmpl *template.Template
}

func NewSMTP(cfg Config) *SMTPProvider {
	return &SMTPProvider{
		cfg:  cfg,
		tmpl: template.Must(template.New("invoice").Parse(invoiceTemplate)),
	}
}

func (p *SMTPProvider) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	auth := smtp.PlainAuth("", p.cfg.Username, p.cfg.Password, p.cfg.Host)
	addr := fmt.Sprintf("%s:%d", p.cfg.Host, p.cfg.Port)

	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\n%s\r\n%s", to[0], subject, mime, htmlBody))

	return smtp.SendMail(addr, auth, p.cfg.From, to, msg)
}

func (p *SMTPProvider) SendInvoice(ctx context.Context, to []string, doc domain.DocumentSnapshot) error {
	var body bytes.Buffer
	if err := p.tmpl.Execute(&body, doc); err != nil {
		return fmt.Errorf("render invoice email: %w", err)
	}

	subject := fmt.Sprintf("%s %s from %s", doc.Type, doc.InvoiceNumber, doc.Company.Name)
	return p.Send(ctx, to, subject, body.String())
}

const invoiceTemplate = `<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>{{.Type}} {{.InvoiceNumber}}</h2>
  <p>Hi {{.Name}},</p>
  <p>{{.Company.Name}} has issued a {{.Type}} for <strong>{{.Currency}} {{.Total}}</strong>, due {{.DueDate}}.</p>
  <table cellpadding="6" cellspacing="0" border="0">
    <tr><td>Subtotal</td><td align="right">{{.Currency}} {{.Subtotal}}</td></tr>
    <tr><td>Tax ({{.TaxRatePercent}}%)</td><td align="right">{{.Currency}} {{.Tax}}</td></tr>
    <tr><td><strong>Total</strong></td><td align="right"><strong>{{.Currency}} {{.Total}}</strong></td></tr>
    <tr><td>Received</td><td align="right">{{.Currency}} {{.TotalReceived}}</td></tr>
    <tr><td><strong>Balance due</strong></td><td align="right"><strong>{{.Currency}} {{.BalanceDue}}</strong></td></tr>
  </table>
  {{if .Notes}}<p>{{.Notes}}</p>{{end}}
  <p>{{.Company.Name}}<br/>{{.Company.Address}}<br/>{{.Company.Email}}</p>
</body>
</html>`
