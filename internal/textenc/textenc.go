// Package textenc decodes task lists and logs that are not UTF-8.
//
// Exported task lists and statistics files frequently come from tools that
// write GBK or GB18030. The "auto" encoding keeps valid UTF-8 untouched and
// falls back to GB18030 otherwise.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names accepted by Lookup.
const (
	UTF8    = "utf-8"
	Auto    = "auto"
	GBK     = "gbk"
	GB18030 = "gb18030"
	EUCKR   = "euc-kr"
	Big5    = "big5"
)

// ErrUnknownEncoding is returned for encoding names Lookup does not know.
var ErrUnknownEncoding = errors.New("unknown text encoding")

// Names lists the supported encoding names.
func Names() []string {
	return []string{UTF8, Auto, GBK, GB18030, EUCKR, Big5}
}

// Lookup returns the encoding for name. "auto" is not a fixed encoding and
// is handled by Decode and NewReader.
func Lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", UTF8, "utf8":
		return unicode.UTF8, nil
	case GBK:
		return simplifiedchinese.GBK, nil
	case GB18030:
		return simplifiedchinese.GB18030, nil
	case EUCKR, "cp949":
		return korean.EUCKR, nil
	case Big5:
		return traditionalchinese.Big5, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// Validate reports whether name is a supported encoding.
func Validate(name string) error {
	if strings.EqualFold(strings.TrimSpace(name), Auto) {
		return nil
	}
	_, err := Lookup(name)
	return err
}

// Decode converts raw bytes in the named encoding to UTF-8.
func Decode(raw []byte, name string) ([]byte, error) {
	if strings.EqualFold(strings.TrimSpace(name), Auto) {
		if utf8.Valid(raw) {
			return raw, nil
		}
		name = GB18030
	}

	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8 {
		return raw, nil
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return decoded, nil
}

// NewReader wraps r so that reads yield UTF-8. The "auto" encoding needs the
// whole input to decide and buffers it.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	if strings.EqualFold(strings.TrimSpace(name), Auto) {
		raw, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		decoded, err := Decode(raw, Auto)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(decoded), nil
	}

	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8 {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
