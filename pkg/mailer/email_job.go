package mailer

// EmailJob is one rendered-on-demand email. Template names a template set
// in package templates; Data is its input.
type EmailJob struct {
	To       string         `json:"to"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data,omitempty"`
}
