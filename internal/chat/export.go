package chat

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteTranscript dumps a transcript snapshot to path, creating parent
// directories as needed. The snapshot is the transcript's plain-text
// contents; the file is overwritten on every export.
func WriteTranscript(path, contents string) error {
	if path == "" {
		return fmt.Errorf("write transcript: no path configured")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(contents+"\n"), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
