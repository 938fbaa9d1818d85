package templates

import (
	"strings"
	"time"

	"github.com/oksasatya/go-ddd-content-platform/config"
)

type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		if t.IsZero() {
			return
		}
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithPreview(s string) Option { return func(d *EmailData) { d.Preview = strings.TrimSpace(s) } }

// WithPost sets the post the email is about. PostURL is built from the
// configured base when one is set.
func WithPost(id, title string) Option {
	return func(d *EmailData) {
		d.PostID = id
		d.PostTitle = title
	}
}

// NewBaseEmailData fills the shared fields from cfg, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ, name, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		RecipientEmail: recipient,
		Type:           typ,

		CompanyName: cfg.CompanyName,
		AppName:     cfg.AppName,

		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
		UnsubscribeURL: cfg.UnsubscribeURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	if d.PostID != "" && cfg.PostURLBase != "" {
		d.PostURL = strings.TrimRight(cfg.PostURLBase, "/") + "/" + d.PostID
	}
	return d
}

func NewWelcomeData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, Welcome, name, email, opts...))
}

func NewCommentData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, NewComment, name, email, opts...))
}
