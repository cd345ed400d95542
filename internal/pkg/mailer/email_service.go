package mailer

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendReport(toEmail, subject string, pdf []byte, fileName string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

// SendReport delivers a finished analysis as a PDF attachment.
func (s *emailService) SendReport(toEmail, subject string, pdf []byte, fileName string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)

	body := `
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Sua análise de mercado está pronta</h2>
			<p>O relatório completo está em anexo em formato PDF.</p>
			<p>Você também pode consultar os resultados diretamente na plataforma.</p>
		</div>
	`
	m.SetBody("text/html", body)

	m.Attach(fileName, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send report email: %w", err)
	}

	return nil
}
