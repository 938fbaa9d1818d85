package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/oksasatya/go-ddd-content-platform/config"
	"github.com/oksasatya/go-ddd-content-platform/internal/application"
	"github.com/oksasatya/go-ddd-content-platform/pkg/mailer/templates"
)

type sentMail struct {
	to, subject, text, html string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	f.sent = append(f.sent, sentMail{to, subject, text, html})
	return f.err
}

func testConfig() *config.Config {
	return &config.Config{AppName: "Content", CompanyName: "Acme", PostURLBase: "https://acme.test/posts/", MailSendEnabled: true}
}

func eventBody(t *testing.T, e application.Event) []byte {
	t.Helper()
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestNotifierSendsWelcome(t *testing.T) {
	s := &fakeSender{}
	n := NewNotifier(s, testConfig(), nil)
	body := eventBody(t, application.Event{
		Name:       application.EventMemberRegistered,
		OccurredAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		Payload:    map[string]string{"member_id": "m1", "email": "jane@example.com", "name": "Jane"},
	})
	if err := n.Handle(context.Background(), body); err != nil {
		t.Fatal(err)
	}
	if len(s.sent) != 1 {
		t.Fatalf("sent %d mails", len(s.sent))
	}
	m := s.sent[0]
	if m.to != "jane@example.com" || m.subject != "Welcome to Content, Jane" {
		t.Fatalf("mail = %+v", m)
	}
}

func TestNotifierNewCommentJob(t *testing.T) {
	n := NewNotifier(&fakeSender{}, testConfig(), nil)
	job, ok, err := n.JobFor(application.Event{
		Name: application.EventCommentCreated,
		Payload: map[string]string{
			"post_id":      "p1",
			"post_title":   "Hello",
			"author_email": "author@example.com",
			"author_name":  "Ann",
			"preview":      "  Nice post  ",
		},
	})
	if err != nil || !ok {
		t.Fatalf("ok = %v, err = %v", ok, err)
	}
	if job.To != "author@example.com" || job.Template != templates.NewComment {
		t.Fatalf("job = %+v", job)
	}
	if job.Data["PostURL"] != "https://acme.test/posts/p1" || job.Data["Preview"] != "Nice post" {
		t.Fatalf("data = %+v", job.Data)
	}
}

func TestNotifierIgnoresOtherEvents(t *testing.T) {
	s := &fakeSender{}
	n := NewNotifier(s, testConfig(), nil)
	body := eventBody(t, application.Event{Name: application.EventPostPublished, Payload: map[string]string{"post_id": "p1"}})
	if err := n.Handle(context.Background(), body); err != nil {
		t.Fatal(err)
	}
	if len(s.sent) != 0 {
		t.Fatal("post.published should not send mail")
	}
}

func TestNotifierMalformedEvents(t *testing.T) {
	n := NewNotifier(&fakeSender{}, testConfig(), nil)
	ctx := context.Background()

	if err := n.Handle(ctx, []byte("{not json")); !errors.Is(err, ErrMalformedEvent) {
		t.Fatalf("err = %v", err)
	}
	body := eventBody(t, application.Event{Name: application.EventMemberRegistered, Payload: map[string]string{"name": "x"}})
	if err := n.Handle(ctx, body); !errors.Is(err, ErrMalformedEvent) {
		t.Fatalf("err = %v", err)
	}
}

func TestNotifierSendFailureIsRetryable(t *testing.T) {
	s := &fakeSender{err: errors.New("mailgun 503")}
	n := NewNotifier(s, testConfig(), nil)
	body := eventBody(t, application.Event{Name: application.EventMemberRegistered, Payload: map[string]string{"email": "a@b.io"}})
	err := n.Handle(context.Background(), body)
	if err == nil || errors.Is(err, ErrMalformedEvent) {
		t.Fatalf("err = %v, want a plain send error", err)
	}
}

func TestNotifierSendingDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MailSendEnabled = false
	s := &fakeSender{}
	n := NewNotifier(s, cfg, nil)
	body := eventBody(t, application.Event{Name: application.EventMemberRegistered, Payload: map[string]string{"email": "a@b.io"}})
	if err := n.Handle(context.Background(), body); err != nil {
		t.Fatal(err)
	}
	if len(s.sent) != 0 {
		t.Fatal("mail sent while disabled")
	}
}

type recordingJSON struct {
	msgType  string
	body     any
	deadline bool
}

func (r *recordingJSON) PublishJSON(ctx context.Context, msgType string, body any) error {
	_, r.deadline = ctx.Deadline()
	r.msgType, r.body = msgType, body
	return nil
}

func TestEventPublisher(t *testing.T) {
	rec := &recordingJSON{}
	e := application.Event{Name: application.EventPostPublished, Payload: map[string]string{"post_id": "p1"}}
	if err := NewEventPublisher(rec).Publish(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	if rec.msgType != "post.published" || !rec.deadline {
		t.Fatalf("type = %q, deadline = %v", rec.msgType, rec.deadline)
	}
	got, ok := rec.body.(application.Event)
	if !ok || got.Payload["post_id"] != "p1" {
		t.Fatalf("body = %#v", rec.body)
	}
}
