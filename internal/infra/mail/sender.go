package mail

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendExport mails the reconciled CSV to the board.
func (s *EmailSender) SendExport(to, source, filename string, csvData []byte) error {
	data := ExportEmailData{
		Source:   source,
		RowCount: countLines(csvData),
	}

	tmplPath := filepath.Join("templates", "export.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("failed to read email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Export contacts (%s)", source))
	m.SetBody("text/html", body.String())
	m.Attach(filename,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(csvData)
			return err
		}),
	)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP email: %w", err)
	}

	return nil
}

// countLines: data rows only, the header does not count.
func countLines(csvData []byte) int {
	n := bytes.Count(csvData, []byte("\n"))
	if n > 0 {
		n--
	}
	return n
}
