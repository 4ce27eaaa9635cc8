// internal/config/merge.go
//
// Precedence rules.
//
// Context
// -------
// Two rules decide the merged map:
//
//  1. Policy lookup.  `IncludeKey` is read from the FIRST source that
//     defines it, in the order runtime properties, environment, file,
//     defaults.  This is a lookup, not a merge.
//
//  2. Merge.  Defaults, then file on top.  With the policy on,
//     environment and then runtime properties are overlaid whole.  With
//     it off, they may only replace keys that defaults or file already
//     define; keys they alone carry are dropped.
//
// Notes
// -----
//   • Runtime properties beat environment under both policies.

package config

import "strings"

// layers holds the four source snapshots of one resolution pass.
type layers struct {
	defaults map[string]string
	file     map[string]string
	env      map[string]string
	props    map[string]string
}

// includePolicy returns the override policy.
func includePolicy(l layers) bool {
	for _, m := range []map[string]string{l.props, l.env, l.file, l.defaults} {
		if val, ok := m[IncludeKey]; ok {
			return isTrue(val)
		}
	}
	return false
}

// merge builds a new resolved map from l.
func merge(l layers, include bool) *resolved {
	res := &resolved{
		values:  make(map[string]string, len(l.defaults)+len(l.file)),
		origins: make(map[string]Origin, len(l.defaults)+len(l.file)),
		include: include,
	}
	res.overlay(l.defaults, OriginDefault)
	res.overlay(l.file, OriginFile)

	if include {
		res.overlay(l.env, OriginEnvironment)
		res.overlay(l.props, OriginProperties)
		return res
	}

	for key := range res.values {
		if val, ok := l.env[key]; ok {
			res.values[key] = val
			res.origins[key] = OriginEnvironment
		}
		if val, ok := l.props[key]; ok {
			res.values[key] = val
			res.origins[key] = OriginProperties
		}
	}
	return res
}

func (r *resolved) overlay(m map[string]string, o Origin) {
	for key, val := range m {
		r.values[key] = val
		r.origins[key] = o
	}
}

// isTrue is the one boolean rule: "true" in any case, nothing else.
func isTrue(s string) bool {
	return strings.EqualFold(s, "true")
}
