package swiperefresh

import "runtime"

// Platform represents the current operating system/platform
type Platform string

const (
	PlatformMacOS   Platform = "darwin"
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformLinux   Platform = "linux"
	PlatformWindows Platform = "windows"
	PlatformWeb     Platform = "js"
	PlatformUnknown Platform = "unknown"
)

// CurrentPlatform returns the platform the process is running on
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "darwin", "ios":
		return detectDarwinPlatform()
	case "android":
		return PlatformAndroid
	case "linux":
		return PlatformLinux
	case "windows":
		return PlatformWindows
	case "js":
		return PlatformWeb
	default:
		return PlatformUnknown
	}
}

// IsMobile returns true if running on iOS or Android
func IsMobile() bool {
	p := CurrentPlatform()
	return p == PlatformIOS || p == PlatformAndroid
}

// IsTouchFirst returns true where drags usually come from a finger rather
// than a mouse or trackpad.
func IsTouchFirst() bool {
	return IsMobile() || CurrentPlatform() == PlatformWeb
}

// DefaultTouchSlopDP is the slop in density independent pixels for the
// current platform.
func DefaultTouchSlopDP() float64 {
	if IsTouchFirst() {
		return 8
	}
	return 2
}
