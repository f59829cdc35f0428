// Package core provides the low-level SunVox bindings.
//
// Every exported function is a 1:1 pass-through to the sv_* function of the same
// name in the SunVox shared library: arguments are converted to C types, the call
// is forwarded and the result is returned unchanged. Error codes are not
// interpreted here; see the sunvox package for the higher-level API.
//
// The library is opened at run time, like sv_load_dll() in the C header, so
// programs build without cgo and without the library present.
//
// # Basic Usage
//
//	if err := core.Load(""); err != nil {
//	    log.Fatal(err)
//	}
//	defer core.Unload()
//
//	core.Init("", 44100, 2, 0)
//	core.OpenSlot(0)
//	core.LoadProject(0, "song.sunvox")
//	core.Play(0)
//
// # Thread Safety
//
// Load and Unload must not race with other calls. The engine itself expects
// LockSlot/UnlockSlot around project edits made while audio is running.
package core

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
)

var (
	// ErrLibraryNotFound is returned by Load when no candidate library could be opened.
	ErrLibraryNotFound = errors.New("core: sunvox library not found")
	// ErrMissingSymbol is returned by Load when a required entry point is absent.
	ErrMissingSymbol = errors.New("core: sunvox library is missing a required symbol")
)

var (
	mu   sync.Mutex
	lib  uintptr
	libc uintptr
	path string
)

func init() {
	resetStubs()
}

// Load opens the SunVox shared library and binds every entry point.
// An empty name searches the platform default library names.
// Calling Load again while a library is loaded does nothing.
func Load(name string) error {
	mu.Lock()
	defer mu.Unlock()

	if lib != 0 {
		return nil
	}

	candidates := []string{name}
	if name == "" {
		candidates = defaultLibraryNames()
	}

	var errs []error
	for _, candidate := range candidates {
		h, err := openLibrary(candidate)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := bind(h); err != nil {
			resetStubs()
			_ = closeLibrary(h)
			return err
		}
		lib = h
		path = candidate
		bindFree(h)
		return nil
	}
	return fmt.Errorf("%w: %w", ErrLibraryNotFound, errors.Join(errs...))
}

// Unload closes the library. All entry points fall back to stubs.
func Unload() error {
	mu.Lock()
	defer mu.Unlock()

	if lib == 0 {
		return nil
	}
	resetStubs()
	err := closeLibrary(lib)
	lib = 0
	path = ""
	if libc != 0 {
		_ = closeLibrary(libc)
		libc = 0
	}
	return err
}

// Loaded reports whether a library is currently bound.
func Loaded() bool {
	mu.Lock()
	defer mu.Unlock()
	return lib != 0
}

// LibraryPath returns the name the current library was opened with.
func LibraryPath() string {
	mu.Lock()
	defer mu.Unlock()
	return path
}

func bind(h uintptr) error {
	for _, s := range symbols {
		sym, err := lookupSymbol(h, s.name)
		if err != nil || sym == 0 {
			if s.optional {
				continue
			}
			return fmt.Errorf("%w: %s", ErrMissingSymbol, s.name)
		}
		purego.RegisterFunc(s.fn, sym)
	}
	return nil
}

// bindFree resolves the C runtime free() the library allocates with, needed
// to release sv_save_to_memory blocks. Without it those blocks leak but
// nothing else is affected.
func bindFree(lib uintptr) {
	for _, name := range libcNames(lib) {
		h, err := openLibrary(name)
		if err != nil {
			continue
		}
		sym, err := lookupSymbol(h, "free")
		if err != nil || sym == 0 {
			_ = closeLibrary(h)
			continue
		}
		purego.RegisterFunc(&cFree, sym)
		libc = h
		return
	}
}

// resetStubs binds every entry point to a function that returns -1 for signed
// integer results and zero values otherwise, so calls made before Load fail
// the same way the engine reports errors.
func resetStubs() {
	for _, s := range symbols {
		setStub(s.fn)
	}
	setStub(&cFree)
}

func setStub(fptr any) {
	v := reflect.ValueOf(fptr).Elem()
	t := v.Type()
	v.Set(reflect.MakeFunc(t, func([]reflect.Value) []reflect.Value {
		out := make([]reflect.Value, t.NumOut())
		for i := range out {
			r := reflect.New(t.Out(i)).Elem()
			switch r.Kind() {
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				r.SetInt(-1)
			}
			out[i] = r
		}
		return out
	}))
}

// keepAlive prevents the GC from collecting an object while native code is using it.
func keepAlive(obj interface{}) {
	runtime.KeepAlive(obj)
}
