// internal/properties/properties.go
//
// Java-style .properties codec.
//
// Context
// -------
// The bundled `application.properties` resource and the external
// `localconf` file both use the classic properties format:
//
//   • `key=value`, `key:value`, or `key value` per logical line,
//   • `#` and `!` comment lines,
//   • `\` at end of line joins the next physical line,
//   • `\uXXXX` escapes.
//
// Parsing is delegated to magiconair/properties with `${…}` expansion
// switched off, so values reach the resolver verbatim.  `Parser` adapts
// the codec to koanf so the file provider can load it the same way the
// YAML parser is loaded.
//
// Notes
// -----
//   • ISO-8859-1 is what java.util.Properties reads by default; UTF-8 is
//     the default here.
package properties

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/magiconair/properties"
)

// Encoding selects how raw bytes are turned into text.
type Encoding = properties.Encoding

// Encodings.
const (
	UTF8Encoding     Encoding = properties.UTF8
	ISO88591Encoding Encoding = properties.ISO_8859_1
)

// Encoding names accepted by ParseEncoding.
const (
	UTF8     = "utf-8"
	ISO88591 = "iso-8859-1"
)

// ParseEncoding maps an encoding name to the codec constant.  The empty
// string selects UTF-8.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", UTF8, "utf8":
		return UTF8Encoding, nil
	case ISO88591, "latin-1", "latin1":
		return ISO88591Encoding, nil
	default:
		return 0, fmt.Errorf("properties: unsupported encoding %q", name)
	}
}

// Decode parses buf into a flat key/value map.
func Decode(buf []byte, enc Encoding) (map[string]string, error) {
	l := &properties.Loader{Encoding: enc, DisableExpansion: true}
	p, err := l.LoadBytes(buf)
	if err != nil {
		return nil, err
	}
	return p.Map(), nil
}

// Encode writes m as properties text with keys in sorted order.
func Encode(m map[string]string) []byte {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := properties.NewProperties()
	p.DisableExpansion = true
	for _, k := range keys {
		_, _, _ = p.Set(k, m[k]) // cannot fail with expansion disabled
	}

	var buf bytes.Buffer
	_, _ = p.Write(&buf, properties.UTF8)
	return buf.Bytes()
}

/*──────────────────────────── koanf parser ────────────────────────────────*/

// KoanfParser implements koanf.Parser for the properties format.
type KoanfParser struct {
	enc Encoding
}

// Parser returns a koanf parser that decodes with enc.
func Parser(enc Encoding) *KoanfParser {
	return &KoanfParser{enc: enc}
}

// Unmarshal decodes properties bytes into a flat koanf map.
func (p *KoanfParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	m, err := Decode(b, p.enc)
	if err != nil {
		return nil, err
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out, nil
}

// Marshal encodes a flat koanf map.  Non-string values use their %v form.
func (p *KoanfParser) Marshal(o map[string]interface{}) ([]byte, error) {
	m := make(map[string]string, len(o))
	for k, v := range o {
		if s, ok := v.(string); ok {
			m[k] = s
			continue
		}
		m[k] = fmt.Sprint(v)
	}
	return Encode(m), nil
}
