package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_RendersBuiltins(t *testing.T) {
	tm := NewTemplateManager()

	html, err := tm.Render(TemplateCreatorRejected, TemplateData{
		"Name": "Jane", "Username": "jane", "Reason": "Missing portfolio",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "@jane")
	assert.Contains(t, html, "Missing portfolio")

	_, err = tm.Render("unknown", nil)
	assert.Error(t, err)
}

func TestMockProvider_RecordsTemplates(t *testing.T) {
	m := NewMockProvider()

	err := m.SendTemplate([]string{"a@b.co"}, "Approved", TemplateCreatorApproved, TemplateData{"Name": "A", "Username": "a"})
	require.NoError(t, err)

	msgs := m.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"a@b.co"}, msgs[0].To)
	assert.Contains(t, msgs[0].HTMLBody, "approved")
}

func TestSMTPProvider_Validate(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Port: 587}, NewTemplateManager())
	assert.Error(t, p.Validate())

	p = NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "no-reply@example.com"}, NewTemplateManager())
	assert.NoError(t, p.Validate())
}

func TestSMTPConfig_WithDefaults(t *testing.T) {
	cfg := SMTPConfig{Host: "smtp.example.com", FromEmail: "no-reply@example.com"}.WithDefaults()
	assert.Equal(t, 587, cfg.Port)
	assert.Equal(t, "CreatorHub", cfg.FromName)
	assert.False(t, cfg.UseTLS)

	cfg = SMTPConfig{Host: "smtp.example.com", Port: 465, FromName: "Support", UseTLS: true}.WithDefaults()
	assert.Equal(t, 465, cfg.Port)
	assert.Equal(t, "Support", cfg.FromName)
	assert.True(t, cfg.UseTLS)

	p := NewSMTPProvider(SMTPConfig{Host: "smtp.example.com", FromEmail: "no-reply@example.com"}.WithDefaults(), NewTemplateManager())
	assert.NoError(t, p.Validate())
}
