//go:build ios

package swiperefresh

// detectDarwinPlatform returns iOS on gomobile builds
func detectDarwinPlatform() Platform {
	return PlatformIOS
}
