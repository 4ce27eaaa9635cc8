package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/AdeptTravel/confresolver/internal/config"
	"github.com/AdeptTravel/confresolver/internal/logger"
	"github.com/AdeptTravel/confresolver/internal/metrics"
	"github.com/AdeptTravel/confresolver/internal/properties"
)

type app struct {
	env config.Source // nil means the process environment

	defines  []string
	encoding string
	logDir   string
	logLevel string
	metrics  bool
	format   string
	origin   bool

	log      *zap.SugaredLogger
	resolver *config.Resolver
}

func newRootCommand(env config.Source) *cobra.Command {
	a := &app{env: env}

	rootCmd := &cobra.Command{
		Use:   "confdump",
		Short: "Print the resolved layered configuration",
		Long: `confdump merges the bundled application.properties, the optional file
named by localconf, environment variables, and -D runtime properties, then
prints the result.

Environment variables and -D properties only replace keys that the bundled
defaults or the local file define, unless
config.includeSystemEnvironmentAndProperties is true.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		RunE:               a.runDump,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringArrayVarP(&a.defines, "define", "D", nil, "runtime property key=value (repeatable)")
	pf.StringVar(&a.encoding, "encoding", properties.UTF8, "properties encoding: utf-8 or iso-8859-1")
	pf.StringVar(&a.logDir, "log-dir", "", "write JSON logs to this directory")
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	pf.BoolVar(&a.metrics, "metrics", false, "print resolver metrics after the command")

	addDumpFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&a.format, "format", "properties", "output format: properties or yaml")
		c.Flags().BoolVar(&a.origin, "origin", false, "annotate every key with its source")
	}
	addDumpFlags(rootCmd)

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print every resolved key",
		Args:  cobra.NoArgs,
		RunE:  a.runDump,
	}
	addDumpFlags(dumpCmd)

	rootCmd.AddCommand(
		dumpCmd,
		&cobra.Command{
			Use:   "get KEY",
			Short: "Print one value; fails when the key is not set",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runGet,
		},
		&cobra.Command{
			Use:   "is KEY",
			Short: "Print whether a key holds true",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runIs,
		},
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level, err := logger.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}
	a.log, err = logger.New(a.logDir, runningInTTY(), level)
	if err != nil {
		return fmt.Errorf("start logger: %w", err)
	}

	defs, err := config.ParseDefines(a.defines)
	if err != nil {
		return err
	}

	a.resolver, err = config.New(config.Options{
		Resources:   resources,
		Environment: a.env,
		Properties:  config.NewProperties(defs),
		Encoding:    a.encoding,
		Logger:      a.log,
	})
	if err != nil {
		return fmt.Errorf("configure resolver: %w", err)
	}
	return nil
}

func (a *app) teardown(cmd *cobra.Command, _ []string) error {
	if a.metrics {
		if err := metrics.WriteText(cmd.OutOrStdout(), prometheus.DefaultGatherer); err != nil {
			return err
		}
	}
	_ = a.log.Sync()
	return nil
}

func (a *app) runDump(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	switch a.format {
	case "properties":
		return a.writeProperties(out)
	case "yaml":
		return a.writeYAML(out)
	default:
		return fmt.Errorf("unknown format %q", a.format)
	}
}

func (a *app) writeProperties(w io.Writer) error {
	if !a.origin {
		_, err := w.Write(properties.Encode(a.resolver.Snapshot()))
		return err
	}
	for _, key := range a.resolver.Keys() {
		o, _ := a.resolver.Origin(key)
		if _, err := fmt.Fprintf(w, "# %s\n", o); err != nil {
			return err
		}
		if _, err := w.Write(properties.Encode(map[string]string{key: a.resolver.Get(key)})); err != nil {
			return err
		}
	}
	return nil
}

type annotated struct {
	Value  string        `yaml:"value"`
	Origin config.Origin `yaml:"origin"`
}

func (a *app) writeYAML(w io.Writer) error {
	var doc any = a.resolver.Snapshot()
	if a.origin {
		m := make(map[string]annotated)
		for _, key := range a.resolver.Keys() {
			o, _ := a.resolver.Origin(key)
			m[key] = annotated{Value: a.resolver.Get(key), Origin: o}
		}
		doc = m
	}

	enc := yaml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func (a *app) runGet(cmd *cobra.Command, args []string) error {
	val, ok := a.resolver.Lookup(args[0])
	if !ok {
		return fmt.Errorf("%s: not set", args[0])
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), val)
	return err
}

func (a *app) runIs(cmd *cobra.Command, args []string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(a.resolver.IsTrue(args[0])))
	return err
}
