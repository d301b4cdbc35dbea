package cache

// NotifyKind selects the visual style of a user-facing notification.
type NotifyKind string

const (
	NotifySuccess     NotifyKind = "success"
	NotifyDestructive NotifyKind = "destructive"
)

// Notifier is the user-facing notification hook. The UI layer supplies the
// real implementation; tests record calls.
type Notifier interface {
	Notify(kind NotifyKind, title, message string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(NotifyKind, string, string) {}
