// Package notify sends desktop notifications over the session D-Bus.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	// DBusInterface is the freedesktop notification interface.
	DBusInterface = "org.freedesktop.Notifications"
	// DBusPath is the notification object path.
	DBusPath = "/org/freedesktop/Notifications"
	// DBusBusName is the notification service name.
	DBusBusName = "org.freedesktop.Notifications"

	notifyMethod = DBusInterface + ".Notify"
	appName      = "clrsync"
)

// Urgency hint values.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// Notification holds the Notify call parameters.
type Notification struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // -1 = server default
}

// Args returns the Notify arguments in wire order.
func (n *Notification) Args() []any {
	actions := n.Actions
	if actions == nil {
		actions = []string{}
	}
	hints := n.Hints
	if hints == nil {
		hints = map[string]dbus.Variant{}
	}
	return []any{n.AppName, n.ReplacesID, n.AppIcon, n.Summary, n.Body, actions, hints, n.ExpireTimeout}
}

// ApplyResult builds the notification for an apply run. applied lists the
// templates written; err is the run's error, if any.
func ApplyResult(palette string, applied []string, err error) *Notification {
	n := &Notification{
		AppName:       appName,
		ExpireTimeout: 5000,
		Hints: map[string]dbus.Variant{
			"desktop-entry": dbus.MakeVariant(appName),
			"transient":     dbus.MakeVariant(true),
		},
	}

	if err != nil {
		n.Summary = "Failed to apply theme " + palette
		n.Body = err.Error()
		n.AppIcon = "dialog-error"
		n.Hints["urgency"] = dbus.MakeVariant(UrgencyCritical)
		return n
	}

	n.Summary = "Applied theme " + palette
	if len(applied) > 0 {
		n.Body = fmt.Sprintf("Updated %d template(s): %s", len(applied), strings.Join(applied, ", "))
	}
	n.AppIcon = "preferences-desktop-theme"
	n.Hints["urgency"] = dbus.MakeVariant(UrgencyLow)
	return n
}

// Sender delivers notifications.
type Sender interface {
	Send(ctx context.Context, n *Notification) (uint32, error)
}

// SessionSender sends notifications on the user's session bus.
type SessionSender struct {
	logger *slog.Logger
}

// NewSessionSender creates a sender for the session bus.
func NewSessionSender(logger *slog.Logger) *SessionSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionSender{logger: logger}
}

// Send connects to the session bus, calls Notify and returns the
// notification ID.
func (s *SessionSender) Send(ctx context.Context, n *Notification) (uint32, error) {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(DBusBusName, dbus.ObjectPath(DBusPath))
	call := obj.CallWithContext(ctx, notifyMethod, 0, n.Args()...)
	if call.Err != nil {
		return 0, fmt.Errorf("notify: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify reply: %w", err)
	}

	s.logger.Debug("sent notification", "id", id, "summary", n.Summary)
	return id, nil
}
