//go:build !windows

package output

// enableANSI reports whether ANSI colors can be used on the terminal behind fd.
// Unix terminals support them without setup.
func enableANSI(fd uintptr) bool {
	return true
}
