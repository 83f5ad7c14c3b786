package email

import "sync"

// MockProvider используется для тестов и локальной разработки без SMTP.
// Письма не отправляются, а сохраняются в Sent.
type MockProvider struct {
	renderer TemplateRenderer

	mu   sync.Mutex
	Sent []Email
}

func NewMockProvider() *MockProvider {
	return &MockProvider{renderer: NewTemplateManager()}
}

func (m *MockProvider) Send(email *Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, *email)
	return nil
}

func (m *MockProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	html, err := m.renderer.Render(templateName, data)
	if err != nil {
		return err
	}
	return m.Send(&Email{To: to, Subject: subject, HTMLBody: html})
}

// Messages возвращает копию отправленных писем
func (m *MockProvider) Messages() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Email, len(m.Sent))
	copy(out, m.Sent)
	return out
}

func (m *MockProvider) Validate() error { return nil }
func (m *MockProvider) Close() error    { return nil }
