// Command slots inspects attribute types and coerces values through the
// schemas declared in a schema file.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dball/slots/internal/attrs"
	"github.com/dball/slots/internal/config"
	"github.com/dball/slots/internal/logging"
	"github.com/dball/slots/internal/record"
	"github.com/dball/slots/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type options struct {
	logLevel string
	jsonLog  bool
	schema   string
	model    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "hint:", hint)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "slots",
		Short:         "Inspect slot types and coerce values through record schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&opts.jsonLog, "json-log", false, "write logs as JSON")
	root.AddCommand(newTypesCmd(opts), newCoerceCmd(opts))
	return root
}

func newTypesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the registered attribute types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logging.Config{Level: opts.logLevel, JSON: opts.jsonLog})
			if err != nil {
				return err
			}
			registry := attrs.NewRegistry(attrs.WithLogger(logger))
			for _, key := range registry.Keys() {
				typ, _ := registry.Resolve(key)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", key, typ.Kind)
			}
			return nil
		},
	}
}

func newCoerceCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coerce --schema FILE --model NAME [slot=value ...]",
		Short: "Set raw values on a new record and print what is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCoerce(cmd.OutOrStdout(), opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.schema, "schema", "", "schema file (yaml, toml or json)")
	cmd.Flags().StringVar(&opts.model, "model", "", "model name within the schema file")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

// report is the printed outcome of a coerce run.
type report struct {
	Model   string         `yaml:"model"`
	Values  map[string]any `yaml:"values"`
	Changed []string       `yaml:"changed"`
}

func runCoerce(out io.Writer, opts *options, args []string) (err error) {
	cfg, err := config.Load(opts.schema)
	if err != nil {
		return
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	cfg.Log.JSON = cfg.Log.JSON || opts.jsonLog
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return
	}
	defer func() { _ = logger.Sync() }()

	registry := attrs.NewRegistry(attrs.WithLogger(logger))
	schemas, err := cfg.Schemas(registry)
	if err != nil {
		return
	}
	schema, ok := schemas[opts.model]
	if !ok {
		err = errors.WithHintf(types.NewError("slots.unknownModel", "model", opts.model),
			"the schema file declares: %s", strings.Join(modelNames(cfg), ", "))
		return
	}
	rec := record.New(schema, record.WithLogger(logger))
	for _, arg := range args {
		name, raw, found := strings.Cut(arg, "=")
		if !found {
			err = types.NewError("slots.invalidAssignment", "arg", arg)
			return
		}
		if _, err = rec.Set(name, raw); err != nil {
			return
		}
	}
	logger.Debug("coerced record", zap.String("model", opts.model), zap.Int("assignments", len(args)))
	rep := report{Model: schema.Name(), Values: printable(rec), Changed: []string{}}
	for _, change := range rec.Changed() {
		rep.Changed = append(rep.Changed, change.Name)
	}
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err = encoder.Encode(rep); err != nil {
		return
	}
	err = encoder.Close()
	return
}

// printable renders values YAML can't carry natively, NaN and opaque values,
// as strings.
func printable(rec *record.Record) map[string]any {
	values := rec.Native()
	for name, v := range rec.Values() {
		switch {
		case types.IsNaN(v):
			values[name] = "NaN"
		case types.IsUndefined(v):
			values[name] = "undefined"
		case v.Kind() == types.KindOpaque:
			values[name] = fmt.Sprint(v)
		}
	}
	return values
}

func modelNames(cfg *config.Config) []string {
	names := make([]string, len(cfg.Models))
	for i, model := range cfg.Models {
		names[i] = model.Name
	}
	return names
}
