// File: cmd/parsort/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// parsort reads whitespace-separated integers, sorts them in parallel and
// writes them back one per line.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/momentics/parsort/adapters"
	"github.com/momentics/parsort/control"
	"github.com/momentics/parsort/facade"
)

type flags struct {
	configPath string
	workers    int
	grain      int
	pivot      string
	container  string
	pin        bool
	stats      bool
	verbose    bool
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "parsort [file]",
		Short: "Sort integers with a parallel help-while-wait quicksort",
		Long: `parsort reads whitespace-separated integers from file (or stdin when
no file is given), sorts them with a pool of workers sharing one work stack,
and prints them one per line.

Flags override values loaded from --config.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(f.verbose, stderr)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			cfg, err := loadConfig(cmd, &f)
			if err != nil {
				return err
			}

			in := stdin
			if len(args) == 1 {
				file, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer file.Close()
				in = file
			}
			return run(in, stdout, stderr, cfg, f.stats, logger)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "yaml configuration file")
	fl.IntVarP(&f.workers, "workers", "w", control.AutoWorkers, "worker count (-1 = parallelism minus one)")
	fl.IntVarP(&f.grain, "grain", "g", 0, "smallest range split in parallel")
	fl.StringVarP(&f.pivot, "pivot", "p", "", "pivot selector: last, median3, random, ninther")
	fl.StringVar(&f.container, "container", "", "work container: lockfree, mutex, fifo")
	fl.BoolVar(&f.pin, "pin", false, "pin workers to CPUs")
	fl.BoolVar(&f.stats, "stats", false, "print scheduler statistics to stderr")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd
}

// newLogger builds the production encoder over sink so output follows
// whatever stderr the command was given.
func newLogger(verbose bool, sink io.Writer) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if sink == nil {
		return config.Build()
	}
	enc := zapcore.NewJSONEncoder(config.EncoderConfig)
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(sink), config.Level)), nil
}

func loadConfig(cmd *cobra.Command, f *flags) (*control.Config, error) {
	cfg := control.DefaultConfig()
	if f.configPath != "" {
		loaded, err := control.LoadConfig(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	fl := cmd.Flags()
	if fl.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fl.Changed("grain") {
		cfg.Grain = f.grain
	}
	if fl.Changed("pivot") {
		cfg.Pivot = f.pivot
	}
	if fl.Changed("container") {
		cfg.Container = f.container
	}
	if fl.Changed("pin") {
		cfg.PinWorkers = f.pin
	}
	return cfg, cfg.Validate()
}

func run(in io.Reader, out, errOut io.Writer, cfg *control.Config, printStats bool, logger *zap.Logger) error {
	values, err := readInts(in)
	if err != nil {
		return err
	}

	sorter, err := facade.New(cfg, facade.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := sorter.Sort(adapters.OrderedSlice[int64](values)); err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	for _, v := range values {
		w.WriteString(strconv.FormatInt(v, 10))
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if printStats {
		enc := yaml.NewEncoder(errOut)
		defer enc.Close()
		return enc.Encode(sorter.Stats())
	}
	return nil
}

func readInts(in io.Reader) ([]int64, error) {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	var values []int64
	for sc.Scan() {
		v, err := strconv.ParseInt(sc.Text(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("input value %d: %w", len(values)+1, err)
		}
		values = append(values, v)
	}
	return values, sc.Err()
}
