// Package rootdir resolves the directory a program serves from.
package rootdir

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// OfCaller returns the directory containing the source file of its caller.
//
// When that directory no longer exists on this machine (a binary built with
// -trimpath, or copied elsewhere), the directory of the running executable is
// returned instead. The result is always absolute and free of symlinks.
func OfCaller() (string, error) {
	if _, file, _, ok := runtime.Caller(1); ok && filepath.IsAbs(file) {
		dir := filepath.Dir(file)
		if isDir(dir) {
			return resolve(dir)
		}
	}
	return OfExecutable()
}

// OfExecutable returns the directory containing the running executable.
func OfExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	return resolve(filepath.Dir(exe))
}

func resolve(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", abs, err)
	}
	return resolved, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
