// internal/config/source.go
//
// Property sources.
//
// Context
// -------
// Every layer the resolver merges is a `Source`: something that yields
// one flat `string → string` snapshot when asked.  Loading goes through
// koanf the same way the YAML loader always has:
//
//   • environment        – koanf env provider, no prefix,
//   • bundled resource   – fsProvider over an fs.FS (embed.FS in prod),
//   • external file      – koanf file provider.
//
// Documents ending in `.yaml` or `.yml` use the koanf YAML parser and are
// flattened with “.”; every other name is a properties document.
//
// Notes
// -----
//   • Flat documents are loaded with `flatDelim` so keys such as
//     `server` and `server.port` can coexist.  koanf would otherwise
//     unflatten them into a tree where one shadows the other.
//   • Oxford commas, two spaces after periods.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"github.com/spf13/cast"

	"github.com/AdeptTravel/confresolver/internal/properties"
)

// flatDelim never occurs in a real key.
const flatDelim = "\x1f"

// Source yields one flat snapshot of key/value pairs.
type Source interface {
	Load() (map[string]string, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (map[string]string, error)

// Load implements Source.
func (f SourceFunc) Load() (map[string]string, error) { return f() }

// MapSource is a fixed Source.  Load returns a copy.
type MapSource map[string]string

// Load implements Source.
func (m MapSource) Load() (map[string]string, error) {
	return copyMap(m), nil
}

/*──────────────────────────── environment ─────────────────────────────────*/

// EnvSource snapshots the process environment.
func EnvSource() Source {
	return SourceFunc(func() (map[string]string, error) {
		return loadFlat(env.Provider("", flatDelim, nil), nil, flatDelim)
	})
}

/*──────────────────────────── documents ───────────────────────────────────*/

// FileSource loads the document at path from the host filesystem.
func FileSource(path string, enc properties.Encoding) Source {
	return SourceFunc(func() (map[string]string, error) {
		return loadDocument(file.Provider(path), path, enc)
	})
}

// ResourceSource loads name from fsys.
func ResourceSource(fsys fs.FS, name string, enc properties.Encoding) Source {
	return SourceFunc(func() (map[string]string, error) {
		if fsys == nil {
			return nil, errors.New("no bundled resources configured")
		}
		return loadDocument(fsProvider{fsys: fsys, name: name}, name, enc)
	})
}

func loadDocument(p koanf.Provider, name string, enc properties.Encoding) (map[string]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return loadFlat(p, yaml.Parser(), ".")
	default:
		return loadFlat(p, properties.Parser(enc), flatDelim)
	}
}

// loadFlat loads one provider into a fresh koanf instance and returns the
// flattened tree with every value rendered as a string.
func loadFlat(p koanf.Provider, pa koanf.Parser, delim string) (map[string]string, error) {
	k := koanf.New(delim)
	if err := k.Load(p, pa); err != nil {
		return nil, err
	}
	all := k.All()
	out := make(map[string]string, len(all))
	for key, val := range all {
		out[key] = stringify(val)
	}
	return out, nil
}

func stringify(val interface{}) string {
	if s, err := cast.ToStringE(val); err == nil {
		return s
	}
	if vs, ok := val.([]interface{}); ok {
		return strings.Join(cast.ToStringSlice(vs), ",")
	}
	return fmt.Sprint(val)
}

// fsProvider implements koanf.Provider over an fs.FS.
type fsProvider struct {
	fsys fs.FS
	name string
}

func (f fsProvider) ReadBytes() ([]byte, error) {
	return fs.ReadFile(f.fsys, f.name)
}

func (f fsProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("fs provider does not support this method")
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
