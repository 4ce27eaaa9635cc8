package metrics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestWriteText(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_dump_total",
		Help: "Counter used by the dump test.",
	})
	reg.MustRegister(c)
	c.Add(3)

	var buf bytes.Buffer
	if err := WriteText(&buf, reg); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if !strings.Contains(buf.String(), "test_dump_total 3") {
		t.Fatalf("unexpected dump:\n%s", buf.String())
	}
}

func TestDefaultRegistryHasCollectors(t *testing.T) {
	SourceErrorsTotal.WithLabelValues("resource").Add(0)

	var buf bytes.Buffer
	if err := WriteText(&buf, prometheus.DefaultGatherer); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	for _, name := range []string{
		"config_resolve_total",
		"config_merged_keys",
		"config_source_errors_total",
		"config_resolve_duration_seconds",
	} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("%s missing from default registry dump", name)
		}
	}
}
