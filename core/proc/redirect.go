package proc

import (
	"os"
)

// DefaultOutputFileMode is the creation mode for redirect targets.
//
// 0777 is intentionally permissive: it reproduces the interpreter's
// documented historical default. Override it via Orchestrator.OutputFileMode
// (config key output_file_mode) for a stricter posture.
const DefaultOutputFileMode os.FileMode = 0o777

// openInput opens a file standing in for a child's stdin.
func openInput(path string) (*os.File, error) {
	return os.Open(path)
}

// openOutput opens a file standing in for a child's stdout, creating it if
// absent and either truncating or appending per the append flag.
func openOutput(path string, appendMode bool, mode os.FileMode) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	return os.OpenFile(path, flags, mode)
}
