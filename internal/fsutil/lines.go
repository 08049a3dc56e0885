package fsutil

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Encoding names accepted by ReadLines.
const (
	EncodingAuto        = "auto"
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin1"
	EncodingWindows1252 = "windows-1252"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ValidEncoding reports whether name is accepted by ReadLines.
func ValidEncoding(name string) bool {
	switch strings.ToLower(name) {
	case "", EncodingAuto, EncodingUTF8, EncodingLatin1, EncodingWindows1252:
		return true
	}
	return false
}

// ReadLines reads a text file and returns its lines without terminators.
// In auto mode (or with an empty encoding) input that is not valid UTF-8 is
// decoded as Windows-1252, the code page most legacy logging software wrote.
// Text is NFC normalised.
func ReadLines(fsys FileSystem, name, enc string) ([]string, error) {
	raw, err := fsys.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	text, err := DecodeText(raw, enc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return SplitLines(text), nil
}

// DecodeText converts raw file bytes to a normalised UTF-8 string.
func DecodeText(raw []byte, enc string) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	var decoder encoding.Encoding
	switch strings.ToLower(enc) {
	case "", EncodingAuto:
		if !utf8.Valid(raw) {
			decoder = charmap.Windows1252
		}
	case EncodingUTF8:
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("input is not valid UTF-8")
		}
	case EncodingLatin1:
		decoder = charmap.ISO8859_1
	case EncodingWindows1252:
		decoder = charmap.Windows1252
	default:
		return "", fmt.Errorf("unsupported encoding %q", enc)
	}

	if decoder != nil {
		decoded, err := decoder.NewDecoder().Bytes(raw)
		if err != nil {
			return "", err
		}
		raw = decoded
	}
	return norm.NFC.String(string(raw)), nil
}

// SplitLines splits on '\n', strips a trailing '\r' from each line and
// drops the empty line after a final newline.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// WriteLines writes lines joined by '\n' with a trailing newline. The parent
// directory is created when missing.
func WriteLines(fsys FileSystem, name string, lines []string) error {
	if dir := parentDir(name); dir != "" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", name, err)
		}
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	if err := fsys.WriteFile(name, []byte(b.String()), os.FileMode(0o644)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func parentDir(name string) string {
	i := strings.LastIndexAny(name, `/\`)
	if i <= 0 {
		return ""
	}
	return name[:i]
}
