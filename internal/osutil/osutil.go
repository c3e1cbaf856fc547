// Package osutil holds process-level constants shared by the commands
package osutil

const Windows = "windows"

type exitCode int

const (
	ExitOK    exitCode = 0
	ExitError exitCode = 1
)

const (
	DirPermission  = 0o755
	FilePermission = 0o600
)

// DefaultEditor is used by edit-config when neither VISUAL nor EDITOR is
// set.
func DefaultEditor(goos string) string {
	if goos == Windows {
		return "notepad"
	}

	return "vi"
}
