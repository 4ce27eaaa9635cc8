// internal/config/merge_test.go
//
// Unit and property tests for the precedence rules.
//
// Run: go test ./internal/config -run 'Merge|Policy' -v

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestIncludePolicy_FirstMatchWins(t *testing.T) {
	testCases := []struct {
		name     string
		l        layers
		expected bool
	}{
		{
			name:     "absent everywhere",
			l:        layers{},
			expected: false,
		},
		{
			name:     "defaults only",
			l:        layers{defaults: map[string]string{IncludeKey: "true"}},
			expected: true,
		},
		{
			name: "file shadows defaults",
			l: layers{
				defaults: map[string]string{IncludeKey: "true"},
				file:     map[string]string{IncludeKey: "false"},
			},
			expected: false,
		},
		{
			name: "environment shadows file",
			l: layers{
				file: map[string]string{IncludeKey: "false"},
				env:  map[string]string{IncludeKey: "TRUE"},
			},
			expected: true,
		},
		{
			name: "properties shadow environment",
			l: layers{
				env:   map[string]string{IncludeKey: "true"},
				props: map[string]string{IncludeKey: "no"},
			},
			expected: false,
		},
		{
			name: "empty value still counts as defined",
			l: layers{
				props:    map[string]string{IncludeKey: ""},
				defaults: map[string]string{IncludeKey: "true"},
			},
			expected: false,
		},
		{
			name:     "mixed case true",
			l:        layers{env: map[string]string{IncludeKey: "tRuE"}},
			expected: true,
		},
		{
			name:     "yes is not true",
			l:        layers{env: map[string]string{IncludeKey: "yes"}},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, includePolicy(tc.l))
		})
	}
}

func exampleLayers() layers {
	return layers{
		defaults: map[string]string{"a": "1", "b": "2"},
		file:     map[string]string{"b": "3", "c": "4"},
		env:      map[string]string{"c": "5", "d": "6"},
		props:    map[string]string{"d": "7"},
	}
}

func TestMerge_Examples(t *testing.T) {
	testCases := []struct {
		name     string
		include  bool
		expected map[string]string
		origins  map[string]Origin
	}{
		{
			name:     "include all",
			include:  true,
			expected: map[string]string{"a": "1", "b": "3", "c": "5", "d": "7"},
			origins: map[string]Origin{
				"a": OriginDefault,
				"b": OriginFile,
				"c": OriginEnvironment,
				"d": OriginProperties,
			},
		},
		{
			name:     "existing keys only",
			include:  false,
			expected: map[string]string{"a": "1", "b": "3", "c": "5"},
			origins: map[string]Origin{
				"a": OriginDefault,
				"b": OriginFile,
				"c": OriginEnvironment,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := merge(exampleLayers(), tc.include)
			require.Equal(t, tc.expected, res.values)
			require.Equal(t, tc.origins, res.origins)
			require.Equal(t, tc.include, res.include)
		})
	}
}

func TestMerge_PropertiesBeatEnvironment(t *testing.T) {
	l := layers{
		defaults: map[string]string{"k": "default"},
		env:      map[string]string{"k": "env", "only": "env"},
		props:    map[string]string{"k": "prop", "only": "prop"},
	}
	for _, include := range []bool{true, false} {
		res := merge(l, include)
		require.Equal(t, "prop", res.values["k"], "include=%v", include)
		require.Equal(t, OriginProperties, res.origins["k"])
	}
	require.Equal(t, "prop", merge(l, true).values["only"])
	require.NotContains(t, merge(l, false).values, "only")
}

func TestMerge_DoesNotTouchInputs(t *testing.T) {
	l := exampleLayers()
	_ = merge(l, true)
	require.Equal(t, exampleLayers(), l)
}

/*──────────────────────────── properties ──────────────────────────────────*/

var (
	genKey   = rapid.SampledFrom([]string{"a", "b", "c", "d", "e", "f", "g.h"})
	genValue = rapid.StringMatching(`[a-z0-9]{0,3}`)
	genLayer = rapid.MapOf(genKey, genValue)
)

// expectedValue is the per-key statement of the precedence rules.
func expectedValue(l layers, include bool, key string) (string, bool) {
	_, inDefaults := l.defaults[key]
	_, inFile := l.file[key]
	if !include && !inDefaults && !inFile {
		return "", false
	}
	for _, m := range []map[string]string{l.props, l.env, l.file, l.defaults} {
		if val, ok := m[key]; ok {
			return val, true
		}
	}
	return "", false
}

func TestMerge_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := layers{
			defaults: genLayer.Draw(t, "defaults"),
			file:     genLayer.Draw(t, "file"),
			env:      genLayer.Draw(t, "env"),
			props:    genLayer.Draw(t, "props"),
		}
		include := rapid.Bool().Draw(t, "include")

		res := merge(l, include)

		universe := map[string]struct{}{}
		for _, m := range []map[string]string{l.defaults, l.file, l.env, l.props} {
			for k := range m {
				universe[k] = struct{}{}
			}
		}
		for key := range universe {
			want, wantOK := expectedValue(l, include, key)
			got, gotOK := res.values[key]
			if wantOK != gotOK || want != got {
				t.Fatalf("key %q: got (%q, %v), want (%q, %v)", key, got, gotOK, want, wantOK)
			}
			if _, ok := res.origins[key]; ok != gotOK {
				t.Fatalf("key %q: origin presence %v, value presence %v", key, ok, gotOK)
			}
		}
		if len(res.values) > len(universe) {
			t.Fatalf("merged map has keys outside the sources")
		}
	})
}

func TestIncludePolicy_Properties(t *testing.T) {
	genFlag := rapid.SampledFrom([]string{"true", "TRUE", "True", "false", "yes", "1", ""})

	rapid.Check(t, func(t *rapid.T) {
		var srcs [4]map[string]string
		for i, name := range []string{"props", "env", "file", "defaults"} {
			srcs[i] = map[string]string{}
			if rapid.Bool().Draw(t, name+"Set") {
				srcs[i][IncludeKey] = genFlag.Draw(t, name+"Value")
			}
		}
		l := layers{props: srcs[0], env: srcs[1], file: srcs[2], defaults: srcs[3]}

		want := false
		for _, m := range srcs {
			if val, ok := m[IncludeKey]; ok {
				want = val == "true" || val == "TRUE" || val == "True"
				break
			}
		}
		if got := includePolicy(l); got != want {
			t.Fatalf("includePolicy = %v, want %v", got, want)
		}
	})
}
