package cli

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/schemaforge/schemaforge/compiler/gen"
	"github.com/schemaforge/schemaforge/compiler/load"
	"github.com/schemaforge/schemaforge/dialect"
	"github.com/schemaforge/schemaforge/logger"
	"github.com/schemaforge/schemaforge/schema"
)

// generateFlags holds the flag values shared by generate and watch.
type generateFlags struct {
	config   string
	out      string
	dialect  string
	pkg      string
	features string
	header   string
	only     []string
	failFast bool
	workers  int
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "generator configuration file (YAML or JSON)")
	cmd.Flags().StringVarP(&f.out, "out", "o", ".", "output directory root")
	cmd.Flags().StringVar(&f.dialect, "dialect", "", "target dialect (postgres, mysql or oracle)")
	cmd.Flags().StringVar(&f.pkg, "package", "", "base Java package of the generated code")
	cmd.Flags().StringVar(&f.features, "features", "", "comma-separated default features ("+strings.Join(featureNames(), ",")+")")
	cmd.Flags().StringVar(&f.header, "header", "", "comment line emitted at the top of every generated file")
	cmd.Flags().StringSliceVar(&f.only, "template", nil, "restrict generation to the named templates")
	cmd.Flags().BoolVar(&f.failFast, "fail-fast", false, "stop at the first failure")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "render parallelism (0 means GOMAXPROCS)")
}

// featureNames lists the feature table's names for flag usage text.
func featureNames() []string {
	names := make([]string, len(gen.AllFeatures))
	for i, ft := range gen.AllFeatures {
		names[i] = ft.Name
	}
	return names
}

// resolve folds the command-line flags into the loaded configuration
// and builds the generator. Flags win over the config file.
func (f *generateFlags) resolve() (*gen.Generator, *dialect.Dialect, error) {
	cfg := load.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = load.ConfigFile(f.config); err != nil {
			return nil, nil, err
		}
	}
	if f.dialect != "" {
		cfg.Dialect = f.dialect
	}
	if f.pkg != "" {
		cfg.Package = f.pkg
	}
	if f.features != "" {
		fs, err := schema.ParseFeatures(f.features)
		if err != nil {
			return nil, nil, err
		}
		cfg.Features = fs
	}
	if f.failFast {
		cfg.FailFast = true
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}

	d, err := cfg.ResolveDialect()
	if err != nil {
		return nil, nil, err
	}
	opts := []gen.Option{gen.FromConfig(cfg), gen.WithHeader(f.header)}
	if len(f.only) > 0 {
		opts = append(opts, gen.WithTemplates(f.only...))
	}
	g, err := gen.NewGenerator(opts...)
	if err != nil {
		return nil, nil, err
	}
	return g, d, nil
}

func newGenerateCmd(log logger.Logger) *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate SCHEMA_FILE",
		Short: "Render CRUD scaffolding for a schema document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, d, err := f.resolve()
			if err != nil {
				return err
			}
			res, err := load.LoadFile(args[0], d)
			if err != nil {
				return err
			}
			report, err := g.Generate(cmd.Context(), res.Tables)
			if err != nil {
				return err
			}
			if err := report.Err(); err != nil {
				return err
			}
			n, err := report.WriteFiles(f.out, nil)
			if err != nil {
				return err
			}

			printReport(log, res, report)
			log.Printf("wrote %d file(s) under %s (run %s)", n, f.out, report.RunID)
			if failed := len(res.Failures) + len(report.Failures); failed > 0 {
				return fmt.Errorf("%d table/template failure(s), see output above", failed)
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

// printReport prints the rendered artifacts as a table, then any
// per-table and per-template failures.
func printReport(log logger.Logger, res *load.Result, report *gen.Report) {
	var buf strings.Builder
	table := tablewriter.NewTable(&buf)
	table.Header([]string{"File", "Template", "Table"})

	rows := make([][]string, 0, len(report.Artifacts))
	for _, a := range report.Artifacts {
		source := a.Table
		if source == "" {
			source = "-"
		}
		rows = append(rows, []string{a.Path, a.Template, source})
	}
	table.Bulk(rows)
	table.Render()
	log.Println(buf.String())

	for _, fl := range res.Failures {
		log.Printf("skipped table %s: %v", fl.Table, fl.Err)
	}
	for _, fl := range report.Failures {
		log.Printf("failed table %s template %s: %v", fl.Table, fl.Template, fl.Err)
	}
}
