package email

// SendWelcomeEmail greets a user provisioned for the first time.
func (c *Client) SendWelcomeEmail(to, firstName string) error {
	data := map[string]string{
		"UserFirstName": firstName,
	}

	return c.SendEmail(
		to,
		"Welcome to Spendly!",
		TemplateWelcome,
		data,
	)
}
