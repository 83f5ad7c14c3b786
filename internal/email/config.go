package email

// SMTPConfig - параметры SMTP-сервера для SMTPProvider
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
}

// DefaultConfig - STARTTLS на 587 порту, отправитель CreatorHub
func DefaultConfig() *SMTPConfig {
	return &SMTPConfig{
		Port:     587,
		FromName: "CreatorHub",
		UseTLS:   true,
	}
}

// WithDefaults дополняет незаданные порт и имя отправителя из DefaultConfig
func (c SMTPConfig) WithDefaults() *SMTPConfig {
	def := DefaultConfig()
	if c.Port <= 0 {
		c.Port = def.Port
	}
	if c.FromName == "" {
		c.FromName = def.FromName
	}
	return &c
}
