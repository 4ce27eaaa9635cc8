// internal/config/model.go
//
// Types, reserved keys, and resolver options.
//
// Context
// -------
// The resolver merges four flat sources into one `string → string` map.
// The names below are the only keys the resolver itself interprets:
//
//   • `localconf`                                    – external file path,
//   • `config.includeSystemEnvironmentAndProperties` – override policy.
//
// Every other key is opaque and only merged.
//
// Notes
// -----
//   • `Options` is validated in `New`; defaults are applied first, so an
//     empty `Options{}` is valid and reads the real environment.
//   • Oxford commas, two spaces after periods.

package config

import (
	"io/fs"

	"go.uber.org/zap"
)

//
// Reserved keys and defaults
//

const (
	// LocalConfKey names the external properties file.
	LocalConfKey = "localconf"

	// IncludeKey switches environment and runtime-property keys that are
	// absent from defaults and file into the merged map.
	IncludeKey = "config.includeSystemEnvironmentAndProperties"

	// DefaultResource is the bundled defaults file inside Options.Resources.
	DefaultResource = "application.properties"

	// UnknownHost replaces the hostname when the lookup fails.
	UnknownHost = "unknown host"
)

//
// Origin
//

// Origin identifies the source that supplied a merged value.
type Origin string

const (
	OriginDefault     Origin = "default"
	OriginFile        Origin = "file"
	OriginEnvironment Origin = "environment"
	OriginProperties  Origin = "properties"
)

//
// Options
//

// Options wires the resolver to its sources.  Zero fields fall back to the
// process: EnvSource for Environment, an empty Properties store, and
// os.Hostname.
type Options struct {
	// Resources holds the bundled defaults, usually an embed.FS.
	Resources fs.FS

	// Resource is the path of the defaults file inside Resources.
	Resource string `validate:"required"`

	// Environment is the environment-variable source.
	Environment Source

	// Properties is the runtime-property source.  It is read fresh on
	// every resolution.
	Properties Source

	// Encoding applies to properties documents: "utf-8" or "iso-8859-1".
	Encoding string `validate:"encoding"`

	// Hostname is used for diagnostics only.
	Hostname func() (string, error)

	// Logger receives diagnostics.  Nil means zap.S() at log time.
	Logger *zap.SugaredLogger
}

// resolved is one completed resolution pass.  It is never mutated after
// it has been installed.
type resolved struct {
	values  map[string]string
	origins map[string]Origin
	include bool
}
