package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-content-platform/config"
	"github.com/oksasatya/go-ddd-content-platform/internal/application"
	"github.com/oksasatya/go-ddd-content-platform/pkg/helpers"
	"github.com/oksasatya/go-ddd-content-platform/pkg/mailer"
	"github.com/oksasatya/go-ddd-content-platform/pkg/mailer/templates"
)

// ErrMalformedEvent marks a message that can never be handled; it should be
// dropped rather than redelivered.
var ErrMalformedEvent = errors.New("malformed event")

// Notifier turns domain events into emails.
type Notifier struct {
	Mailer mailer.Sender
	Config *config.Config
	Logger *logrus.Logger
	// SendEnabled false renders jobs and logs them without sending.
	SendEnabled bool
}

func NewNotifier(m mailer.Sender, cfg *config.Config, logger *logrus.Logger) *Notifier {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &Notifier{Mailer: m, Config: cfg, Logger: logger, SendEnabled: cfg.MailSendEnabled && m != nil}
}

// Handle decodes one event body and sends the matching email. Events with
// no email attached are acknowledged silently.
func (n *Notifier) Handle(ctx context.Context, body []byte) error {
	var e application.Event
	if err := json.Unmarshal(body, &e); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	job, ok, err := n.JobFor(e)
	if err != nil || !ok {
		return err
	}
	subject, text, html, err := templates.Render(job.Template, job.Data)
	if err != nil {
		return fmt.Errorf("%w: render %s: %v", ErrMalformedEvent, job.Template, err)
	}
	log := n.Logger.WithFields(logrus.Fields{
		"event":    e.Name,
		"template": job.Template,
		"to":       helpers.MaskEmail(job.To),
	})
	if !n.SendEnabled {
		log.Info("mail sending disabled; skipped")
		return nil
	}
	if err := n.Mailer.Send(ctx, job.To, subject, text, html); err != nil {
		return err
	}
	log.Info("notification sent")
	return nil
}

// JobFor maps an event to an email job. ok is false for events that do not
// notify anyone.
func (n *Notifier) JobFor(e application.Event) (mailer.EmailJob, bool, error) {
	p := e.Payload
	switch e.Name {
	case application.EventMemberRegistered:
		if p["email"] == "" {
			return mailer.EmailJob{}, false, fmt.Errorf("%w: %s without email", ErrMalformedEvent, e.Name)
		}
		d := templates.NewWelcomeData(n.Config, p["name"], p["email"], templates.WithTime(e.OccurredAt))
		return mailer.EmailJob{To: p["email"], Template: templates.Welcome, Data: d}, true, nil
	case application.EventCommentCreated:
		if p["author_email"] == "" {
			return mailer.EmailJob{}, false, fmt.Errorf("%w: %s without author_email", ErrMalformedEvent, e.Name)
		}
		d := templates.NewCommentData(n.Config, p["author_name"], p["author_email"],
			templates.WithPost(p["post_id"], p["post_title"]),
			templates.WithPreview(p["preview"]),
			templates.WithTime(e.OccurredAt),
		)
		return mailer.EmailJob{To: p["author_email"], Template: templates.NewComment, Data: d}, true, nil
	default:
		return mailer.EmailJob{}, false, nil
	}
}
