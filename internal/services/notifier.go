package services

import (
	"context"
	"sync"
	"time"

	"github.com/sportall/app-recruit/internal/logging"
	"github.com/sportall/app-recruit/internal/observability"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Notifier dispatches user-facing notifications. Delivery is best-effort:
// failures are logged and never surfaced to the caller, and never roll
// back the state transition that triggered them.
type Notifier interface {
	Notify(userID primitive.ObjectID, subject, message string)
}

type notification struct {
	userID  primitive.ObjectID
	subject string
	message string
}

// AsyncNotifier delivers notifications by email from a background worker
type AsyncNotifier struct {
	users  UserStore
	email  EmailSender
	logger *logging.SafeLogger
	queue  chan notification
	wg     sync.WaitGroup
	once   sync.Once
}

// NewAsyncNotifier creates and starts an AsyncNotifier
func NewAsyncNotifier(users UserStore, email EmailSender, logger *logging.SafeLogger) *AsyncNotifier {
	n := &AsyncNotifier{
		users:  users,
		email:  email,
		logger: logger.With(zap.String("component", "notifier")),
		queue:  make(chan notification, 256),
	}
	n.wg.Add(1)
	go n.run()
	return n
}

// Notify enqueues a notification without blocking the request path
func (n *AsyncNotifier) Notify(userID primitive.ObjectID, subject, message string) {
	select {
	case n.queue <- notification{userID: userID, subject: subject, message: message}:
	default:
		n.logger.Warn("notification queue full, dropping",
			zap.String("user_id", userID.Hex()),
			zap.String("subject", subject))
	}
}

func (n *AsyncNotifier) run() {
	defer n.wg.Done()
	for msg := range n.queue {
		n.deliver(msg)
	}
}

func (n *AsyncNotifier) deliver(msg notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	user, err := n.users.GetByID(ctx, msg.userID)
	if err != nil {
		n.logger.Warn("notification recipient lookup failed",
			zap.String("user_id", msg.userID.Hex()),
			zap.Error(err))
		return
	}

	html := "<p>" + msg.message + "</p>"
	if err := n.email.Send(ctx, user.Email, msg.subject, html); err != nil {
		n.logger.Warn("notification delivery failed",
			zap.String("user_id", msg.userID.Hex()),
			zap.String("subject", msg.subject),
			zap.Error(err))
		observability.CodeSends.WithLabelValues("notification", "error").Inc()
		return
	}
	observability.CodeSends.WithLabelValues("notification", "success").Inc()
}

// Close drains and stops the worker
func (n *AsyncNotifier) Close() {
	n.once.Do(func() {
		close(n.queue)
		n.wg.Wait()
	})
}
