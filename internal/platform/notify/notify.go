package notify

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"lockedin/internal/platform/logger"
)

func init() {
	beeep.AppName = "lockedin"
}

// Desktop raises native notifications. Delivery is fire-and-forget: the
// platform call runs in the background and failures are only logged.
type Desktop struct {
	enabled bool
	log     *zap.Logger
	send    func(title, message string, icon any) error
}

func NewDesktop(enabled bool, log *zap.Logger) *Desktop {
	return &Desktop{enabled: enabled, log: logger.OrNop(log), send: beeep.Notify}
}

// Ready reports whether notifications may be shown at all. It stands in for
// the permission prompt a browser would display.
func (d *Desktop) Ready(_ context.Context) error {
	if !d.enabled {
		return fmt.Errorf("notifications disabled")
	}
	return nil
}

func (d *Desktop) Notify(_ context.Context, title, body string) error {
	if !d.enabled {
		return nil
	}
	go func() {
		if err := d.send(title, body, ""); err != nil {
			d.log.Info("desktop_notification_failed", zap.String("title", title), zap.Error(err))
		}
	}()
	return nil
}
