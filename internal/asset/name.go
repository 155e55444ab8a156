package asset

import (
	"path/filepath"
	"strings"
)

// FileName turns a note name into a file name safe on every filesystem,
// e.g. "C#4" becomes "Cs4.wav".
func FileName(note, ext string) string {
	return strings.ReplaceAll(note, "#", "s") + ext
}

// Path is where the wave asset for note lives under dir.
func Path(dir, note string) string {
	return filepath.Join(dir, FileName(note, ".wav"))
}
