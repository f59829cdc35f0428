//go:build windows

package core

import (
	"debug/pe"

	"golang.org/x/sys/windows"
)

func openLibrary(name string) (uintptr, error) {
	h, err := windows.LoadLibrary(name)
	if err != nil {
		return 0, err
	}
	return uintptr(h), nil
}

func lookupSymbol(h uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(h), name)
}

func closeLibrary(h uintptr) error {
	return windows.FreeLibrary(windows.Handle(h))
}

func defaultLibraryNames() []string {
	return []string{"sunvox.dll", "libsunvox.dll"}
}

// libcNames returns the C runtimes the loaded library imports, then msvcrt.dll.
// Blocks from sv_save_to_memory must go back to the heap of the CRT that
// allocated them.
func libcNames(lib uintptr) []string {
	buf := make([]uint16, 32768)
	n, err := windows.GetModuleFileName(windows.Handle(lib), &buf[0], uint32(len(buf)))
	if err != nil || n == 0 {
		return []string{"msvcrt.dll"}
	}
	f, err := pe.Open(windows.UTF16ToString(buf[:n]))
	if err != nil {
		return []string{"msvcrt.dll"}
	}
	defer f.Close()
	imports, err := f.ImportedLibraries()
	if err != nil {
		return []string{"msvcrt.dll"}
	}
	return crtLibraries(imports)
}
