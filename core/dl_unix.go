//go:build !windows

package core

import (
	"runtime"

	"github.com/ebitengine/purego"
)

func openLibrary(name string) (uintptr, error) {
	return purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

func lookupSymbol(h uintptr, name string) (uintptr, error) {
	return purego.Dlsym(h, name)
}

func closeLibrary(h uintptr) error {
	return purego.Dlclose(h)
}

func defaultLibraryNames() []string {
	if runtime.GOOS == "darwin" {
		return []string{"sunvox.dylib", "libsunvox.dylib", "./sunvox.dylib"}
	}
	return []string{"sunvox.so", "libsunvox.so", "./sunvox.so"}
}

func libcNames(uintptr) []string {
	return []string{libcName()}
}

func libcName() string {
	switch runtime.GOOS {
	case "darwin":
		return "/usr/lib/libSystem.B.dylib"
	case "freebsd":
		return "libc.so.7"
	default:
		return "libc.so.6"
	}
}
