package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

const sniffLen = 4096

// NewUTF8Reader wraps r so its content reads as UTF-8. Spreadsheet exports
// arrive in whatever encoding the operator's machine produced, commonly
// Windows-1252 for Portuguese-language files.
//
// Resolution order: BOM, valid-UTF-8 passthrough, chardet heuristics,
// Windows-1252 fallback.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("sniffing input: %w", err)
	}

	if bytes.HasPrefix(head, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	if bytes.HasPrefix(head, bomUTF16LE) {
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if bytes.HasPrefix(head, bomUTF16BE) {
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if dec := decoderFor(result.Charset); dec != nil {
			return transform.NewReader(br, dec), nil
		}

		if result.Charset == "UTF-8" {
			return br, nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}

func decoderFor(charset string) transform.Transformer {
	switch charset {
	case "ISO-8859-1", "windows-1252":
		return charmap.Windows1252.NewDecoder()
	case "ISO-8859-15":
		return charmap.ISO8859_15.NewDecoder()
	case "ISO-8859-9":
		return charmap.ISO8859_9.NewDecoder()
	}

	return nil
}
