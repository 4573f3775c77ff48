package email

import "sync"

// MockProvider records mail instead of sending it. Used in tests and when
// SMTP is not configured.
type MockProvider struct {
	mu   sync.Mutex
	Sent []Message
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Send(msg *Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sent = append(p.Sent, *msg)
	return nil
}

func (p *MockProvider) SendVerification(to, token string) error {
	return p.Send(&Message{
		To:      []string{to},
		Subject: "Confirm your email address",
		HTML:    token,
	})
}

func (p *MockProvider) Close() error {
	return nil
}

// SentTo returns the messages addressed to the recipient.
func (p *MockProvider) SentTo(recipient string) []Message {
	p.mu.Lock()
	defer p.mu.Unlock()

	var matched []Message
	for _, msg := range p.Sent {
		for _, to := range msg.To {
			if to == recipient {
				matched = append(matched, msg)
				break
			}
		}
	}
	return matched
}
