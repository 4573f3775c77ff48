package email

// Message is one outbound mail.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Provider sends transactional mail.
type Provider interface {
	Send(msg *Message) error
	SendVerification(to, token string) error
	Close() error
}
