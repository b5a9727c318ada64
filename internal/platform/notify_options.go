package platform

import "time"

// AppName is reported to the notification center when Options.AppName is
// empty.
const AppName = "Cutout"

// DefaultTimeout is how long a notification stays on screen when
// Options.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	AppName  string
	Timeout  time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return AppName
	}
	return o.AppName
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}
