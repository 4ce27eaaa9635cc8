// internal/config/loader.go
//
// Configuration resolver and reloader.
//
/*
Context
--------
`New()` builds one immutable merged map from four layers (highest
precedence last):

 1. Bundled defaults: `application.properties` from Options.Resources.
 2. External file: path from the `localconf` key, runtime properties
    first, then environment.  Unset means no file; that is not an error.
 3. Environment variables.
 4. Runtime properties.

Whether layers 3 and 4 may ADD keys, or only replace keys from 1 and 2,
is decided by `config.includeSystemEnvironmentAndProperties` (see
merge.go).  The merged map is cached in an `atomic.Pointer` for
lock-free reads.  `Reload()` resolves again and swaps the pointer.

Instrumentation
---------------
  • DEBUG spans: hostname, per-source key lists, policy, file path.
  • ERROR spans: hostname lookup, every source that degraded to empty.
  • INFO  span:  final “config resolved” with key count and policy.
  • Prometheus: resolve count and duration, merged key gauge, source
    error counter (internal/metrics).

Notes
-----
  • Resolution never fails.  A broken source is logged and treated as
    empty, so the worst outcome is a key resolving to absent.
  • Readers never see a partially merged map; the map is built first
    and installed once.
  • Oxford commas, two spaces after periods.
*/
package config

import (
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/AdeptTravel/confresolver/internal/metrics"
	"github.com/AdeptTravel/confresolver/internal/properties"
)

// Resolver serves the merged configuration.  Use New to construct one.
type Resolver struct {
	opts Options
	enc  properties.Encoding

	mu      sync.Mutex // serialises resolve + install
	current atomic.Pointer[resolved]
}

/*─────────────────────────────── resolver ─────────────────────────────────*/

// New applies defaults to opts, validates them, and performs the first
// resolution before returning.
func New(opts Options) (*Resolver, error) {
	if opts.Resource == "" {
		opts.Resource = DefaultResource
	}
	if opts.Encoding == "" {
		opts.Encoding = properties.UTF8
	}
	if opts.Environment == nil {
		opts.Environment = EnvSource()
	}
	if opts.Properties == nil {
		opts.Properties = NewProperties(nil)
	}
	if opts.Hostname == nil {
		opts.Hostname = os.Hostname
	}
	if err := validateOptions(&opts); err != nil {
		return nil, err
	}
	enc, err := properties.ParseEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	r := &Resolver{opts: opts, enc: enc}
	r.Reload()
	return r, nil
}

// Reload resolves every source again and installs the result.  Concurrent
// readers observe either the previous or the new map in full.
func (r *Resolver) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current.Load() != nil {
		r.log().Infow("config reload requested")
	}
	r.current.Store(r.resolve())
}

func (r *Resolver) resolve() *resolved {
	start := time.Now()
	log := r.log()

	host, err := r.opts.Hostname()
	if err != nil {
		log.Errorw("hostname lookup failed", "err", err)
		host = UnknownHost
	}
	log.Debugw("config resolution started", "host", host)

	var l layers
	l.env = r.load("environment", "", r.opts.Environment)
	l.props = r.load("properties", "", r.opts.Properties)
	l.defaults = r.load("resource", r.opts.Resource,
		ResourceSource(r.opts.Resources, r.opts.Resource, r.enc))

	path, from := localConfPath(l)
	if path == "" {
		log.Debugw("local config path not set, skipping file")
		l.file = map[string]string{}
	} else {
		log.Debugw("local config path resolved", "path", path, "from", from)
		l.file = r.load("file", path, FileSource(path, r.enc))
	}

	include := includePolicy(l)
	log.Debugw("override policy resolved", "key", IncludeKey, "include", include)

	res := merge(l, include)

	metrics.ResolveTotal.Inc()
	metrics.MergedKeys.Set(float64(len(res.values)))
	metrics.ResolveDuration.Observe(time.Since(start).Seconds())

	log.Debugw("merged config", "keys", sortedKeys(res.values))
	log.Infow("config resolved",
		"keys", len(res.values),
		"include", include,
		"file", path,
	)
	return res
}

// load snapshots src.  Failures are logged and yield an empty map.
func (r *Resolver) load(name, path string, src Source) map[string]string {
	m, err := src.Load()
	if err != nil {
		r.log().Errorw("config source unavailable", "source", name, "path", path, "err", err)
		metrics.SourceErrorsTotal.WithLabelValues(name).Inc()
		return map[string]string{}
	}
	if m == nil {
		m = map[string]string{}
	}
	r.log().Debugw("config source loaded", "source", name, "path", path, "keys", sortedKeys(m))
	return m
}

// localConfPath prefers runtime properties over the environment.
func localConfPath(l layers) (path string, from Origin) {
	if p, ok := l.props[LocalConfKey]; ok {
		return p, OriginProperties
	}
	if p, ok := l.env[LocalConfKey]; ok {
		return p, OriginEnvironment
	}
	return "", ""
}

func (r *Resolver) log() *zap.SugaredLogger {
	if r.opts.Logger != nil {
		return r.opts.Logger
	}
	return zap.S()
}

/*──────────────────────────── read API ────────────────────────────────────*/

// Get returns the value for key, or "" when the key is absent.
func (r *Resolver) Get(key string) string {
	val, _ := r.Lookup(key)
	return val
}

// Lookup returns the value for key and whether it is present.
func (r *Resolver) Lookup(key string) (string, bool) {
	val, ok := r.current.Load().values[key]
	return val, ok
}

// IsTrue reports whether key holds "true", case-insensitively.  Absent
// keys and any other value are false.
func (r *Resolver) IsTrue(key string) bool {
	return isTrue(r.Get(key))
}

// Snapshot returns a copy of the merged configuration.
func (r *Resolver) Snapshot() map[string]string {
	return copyMap(r.current.Load().values)
}

// Origin reports which source supplied the merged value for key.
func (r *Resolver) Origin(key string) (Origin, bool) {
	o, ok := r.current.Load().origins[key]
	return o, ok
}

// Keys returns the merged keys in sorted order.
func (r *Resolver) Keys() []string {
	return sortedKeys(r.current.Load().values)
}

// IncludesAll reports the override policy of the installed map.
func (r *Resolver) IncludesAll() bool {
	return r.current.Load().include
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
