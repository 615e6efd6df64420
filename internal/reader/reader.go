package reader

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// decoders is the ordered list of fallback decoders tried after strict
// UTF-8. Windows-1252 and Latin-1 accept any byte sequence, so the list
// always terminates with a successful decode; the lossy UTF-8 replacement
// path below is kept as a final safety net.
var decoders = []struct {
	name string
	enc  encoding.Encoding
}{
	{"utf-8-sig", unicode.UTF8BOM},
	{"utf-16", unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{"windows-1252", charmap.Windows1252},
	{"iso-8859-1", charmap.ISO8859_1},
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts raw file bytes to text. It tries strict UTF-8 first, then
// each fallback decoder in order, and as a last resort decodes UTF-8 with
// lossy replacement. It never returns an error for malformed text.
func Decode(data []byte) string {
	if utf8.Valid(data) && !bytes.HasPrefix(data, bomUTF8) {
		return string(data)
	}

	for _, d := range decoders {
		// Only attempt a BOM-aware decoder when the matching BOM is present,
		// otherwise the permissive single-byte charmaps win.
		switch d.name {
		case "utf-8-sig":
			if !bytes.HasPrefix(data, bomUTF8) {
				continue
			}
		case "utf-16":
			if !bytes.HasPrefix(data, bomUTF16LE) && !bytes.HasPrefix(data, bomUTF16BE) {
				continue
			}
		}

		decoded, err := d.enc.NewDecoder().Bytes(data)
		if err == nil && utf8.Valid(decoded) {
			return string(decoded)
		}
	}

	// Lossy replacement: invalid sequences become U+FFFD.
	return string(bytes.ToValidUTF8(data, []byte("�")))
}

// ReadFile reads the file at path and decodes it to text. The only error
// conditions are filesystem-level; decoding itself cannot fail.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(data), nil
}
