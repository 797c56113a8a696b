//go:build !darwin && !ios

package swiperefresh

// detectDarwinPlatform is never reached off darwin
func detectDarwinPlatform() Platform {
	return PlatformUnknown
}
