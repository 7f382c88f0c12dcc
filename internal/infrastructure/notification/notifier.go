package notification

import (
	"context"

	"go.uber.org/zap"
)

// Notifier delivers rendered notifications to whatever channel the deployment
// wires in. Delivery is best-effort; callers treat failures as non-fatal.
type Notifier interface {
	Notify(ctx context.Context, id TemplateID, fields Fields) error
}

// LogNotifier writes notifications to the structured log. It is the default
// sink when no external channel is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier backed by the given logger
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify renders the template and logs the result
func (n *LogNotifier) Notify(_ context.Context, id TemplateID, fields Fields) error {
	message, err := Render(id, fields)
	if err != nil {
		return err
	}
	n.logger.Info("notification",
		zap.String("template", string(id)),
		zap.String("message", message),
	)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
