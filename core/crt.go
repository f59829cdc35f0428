package core

import "strings"

// crtLibraries picks the C runtime DLLs out of a PE import list, in import
// order, and appends msvcrt.dll as the last resort. The UCRT heap functions
// are imported through api-ms-win-crt-heap-*, which forwards to ucrtbase.dll.
func crtLibraries(imports []string) []string {
	var crts []string
	seen := map[string]bool{}
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			crts = append(crts, name)
		}
	}
	for _, imp := range imports {
		name := strings.ToLower(imp)
		switch {
		case strings.HasPrefix(name, "api-ms-win-crt-heap-"), name == "ucrtbase.dll", name == "ucrtbased.dll":
			add(name)
		case strings.HasPrefix(name, "msvcr") && strings.HasSuffix(name, ".dll"):
			add(name)
		}
	}
	add("msvcrt.dll")
	return crts
}
