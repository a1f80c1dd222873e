// Package audit leaves a local trail of operator actions: who logged in,
// what was created, changed or deleted. This is separate from the
// platform's own activity log, which the dashboard merely displays.
package audit

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"automan.solutions/console/internal/obs"
	"automan.solutions/console/internal/session"
)

// LogEvent writes an audit entry enriched with the acting administrator.
func LogEvent(ctx context.Context, event string, fields map[string]any) error {
	event = strings.TrimSpace(event)
	if event == "" {
		return errors.New("event name is required")
	}

	zf := []zap.Field{
		zap.String("type", "audit"),
		zap.String("event", event),
	}
	if s, ok := session.FromContext(ctx); ok {
		zf = append(zf, zap.String("admin", s.Identity.FullName))
	}
	if len(fields) > 0 {
		zf = append(zf, zap.Any("fields", fields))
	}

	obs.Logger().Info("audit", zf...)
	return nil
}
