package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/pkg/helpers"
)

func orNop(l *logrus.Logger) *logrus.Logger {
	if l == nil {
		return helpers.NopLogger()
	}
	return l
}

func orNewLocks(k *helpers.KeyLock) *helpers.KeyLock {
	if k == nil {
		return helpers.NewKeyLock()
	}
	return k
}

func memberKey(id entity.MemberID) string   { return "member:" + id.String() }
func emailKey(e entity.Email) string        { return "email:" + e.String() }
func postKey(id entity.PostID) string       { return "post:" + id.String() }
func commentKey(id entity.CommentID) string { return "comment:" + id.String() }

func publishEvent(ctx context.Context, pub EventPublisher, log *logrus.Logger, name string, payload map[string]string) {
	if pub == nil {
		return
	}
	e := Event{Name: name, OccurredAt: time.Now().UTC(), Payload: payload}
	if err := pub.Publish(ctx, e); err != nil {
		log.WithError(err).WithField("event", name).Warn("publish event failed")
	}
}
