package worker

import (
	"github.com/turnkey-platform/turnkey-service/internal/service"
)

// StartNotificationWorker registers the notification trigger handlers on
// the event dispatcher.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
