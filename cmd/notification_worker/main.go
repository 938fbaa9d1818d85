package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-content-platform/config"
	"github.com/oksasatya/go-ddd-content-platform/internal/infrastructure/messaging"
	"github.com/oksasatya/go-ddd-content-platform/pkg/helpers"
	"github.com/oksasatya/go-ddd-content-platform/pkg/mailer"
)

// notification_worker consumes domain events and sends the matching emails.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-notifier", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventsQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}

	var sender mailer.Sender
	if cfg.MailSendEnabled {
		mg, err := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
		if err != nil {
			logger.Fatal(err)
		}
		sender = mg
	} else {
		logger.Warn("MAIL_SEND_ENABLED=false; events are consumed and logged, no email is sent")
	}
	notifier := messaging.NewNotifier(sender, cfg, logger)

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue, 16)
	if err != nil {
		logger.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handle := func(ctx context.Context, d amqp.Delivery) (bool, error) {
		c, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		err := notifier.Handle(c, d.Body)
		// malformed events are dropped; delivery failures are retried
		return !errors.Is(err, messaging.ErrMalformedEvent), err
	}
	onErr := func(d amqp.Delivery, err error) {
		logger.WithError(err).WithFields(logrus.Fields{
			"event":       d.Type,
			"redelivered": d.Redelivered,
		}).Warn("event handling failed")
	}

	logger.Infof("notification worker listening on queue=%s", cfg.RabbitMQEventsQueue)
	if err := consumer.Run(ctx, "notification-worker", handle, onErr); err != nil {
		logger.Fatalf("consumer stopped: %v", err)
	}
	logger.Info("notification worker stopped")
}
