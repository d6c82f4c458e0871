package email

import (
	"fmt"
	"net/smtp"
)

// Service sends transactional mail over plain SMTP. Pointed at a relay in
// production and at mailpit in development.
type Service struct {
	host string
	port string
	from string
}

func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
	}
}

// SendPickupConfirmation mails the pickup code and order summary after
// checkout.
func (s *Service) SendPickupConfirmation(to, referenceCode string, total int64, items []OrderItem) error {
	subject := fmt.Sprintf("Order confirmed, pickup code %s", referenceCode)
	body := BuildPickupConfirmationBody(referenceCode, total, items)
	return s.send(to, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}
