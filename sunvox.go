// Package sunvox provides Go bindings for the SunVox modular synthesizer engine.
//
// The engine itself is a closed-source shared library (sunvox.so, sunvox.dylib
// or sunvox.dll). It is loaded at runtime, so programs build without it and
// only fail when an Engine is created on a machine that does not have it.
//
// # Basic Usage
//
//	import sunvox "github.com/aspect-build/sunvox-go"
//
//	engine, err := sunvox.New(sunvox.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	slot, err := engine.OpenSlot(0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer slot.Close()
//
//	if err := slot.Load("song.sunvox"); err != nil {
//	    log.Fatal(err)
//	}
//	slot.PlayFromBeginning()
//
// # Thread Safety
//
// The engine serializes calls per slot internally, but a Slot's project
// must be locked (Slot.Lock or Slot.WithLock) while modules or patterns are
// created or removed from a goroutine other than the audio thread.
//
// Package core exposes the same engine calls one to one without the
// object layer. Package sunvoxtest provides an in-memory Backend for tests.
package sunvox

import (
	"fmt"
	"runtime"
)

// BindingVersion is the version of this Go package.
const BindingVersion = "0.1.1"

// VersionInfo is an engine version as reported by Init.
type VersionInfo struct {
	Major int
	Minor int
	Patch int
}

// decodeVersion unpacks the 0x00MMmmpp value returned by sv_init.
func decodeVersion(v int) VersionInfo {
	return VersionInfo{
		Major: (v >> 16) & 0xFF,
		Minor: (v >> 8) & 0xFF,
		Patch: v & 0xFF,
	}
}

// String returns the version as a formatted string.
func (v VersionInfo) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// keepAlive prevents the GC from collecting an object while native code is using it.
func keepAlive(obj interface{}) {
	runtime.KeepAlive(obj)
}
