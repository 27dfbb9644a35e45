// api/util/notification_service.go

package util

import (
	"context"
	"time"

	"go.uber.org/zap"

	logger "github.com/orbitpm/api/logging"
	"github.com/orbitpm/api/model"
)

type NotificationService struct {
	// You might want to add dependencies here, such as a message queue client
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyLockout signals that a throttle key crossed the failed-attempt
// threshold and the lockout window opened.
func (n *NotificationService) NotifyLockout(ctx context.Context, email, ip string, availableIn time.Duration) error {
	logger.Warn("NOTIFICATION: Login lockout triggered",
		zap.String("email", email),
		zap.String("ip", ip),
		zap.Duration("availableIn", availableIn))

	// Here you would implement the actual notification logic
	// This could involve sending messages to a queue, calling an external API, etc.

	return nil
}

func (n *NotificationService) NotifyLogin(ctx context.Context, p model.Principal, ip string) error {
	logger.Info("NOTIFICATION: Principal logged in",
		zap.String("principalID", p.ID),
		zap.String("ip", ip))
	return nil
}

func (n *NotificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	// Mock email sending
	logger.Info("Sending email",
		zap.String("recipient", recipient),
		zap.String("subject", subject))

	// Here you would implement the actual email sending logic
	// This could involve calling an email service API, using an SMTP client, etc.

	return nil
}

func (n *NotificationService) NotifyAdmins(ctx context.Context, message string) error {
	// Logic to notify all system administrators
	logger.Info("Notifying admins", zap.String("message", message))
	return nil
}
