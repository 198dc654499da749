// huffarc compresses files and folders with a static Huffman code, and
// restores them.
//
// A file compresses to a single-file artifact (<name>.hmc) holding the
// file's name, its code table, and the packed bits.  A folder compresses to
// a folder artifact (<folder>.hmf) whose members share one code table.
// Decompression restores the original names from the artifact's header.
//
// Settings come from flags, optionally on top of a YAML file named by
// --config or $HUFFARC_CONFIG.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/chronos-tachyon/huffarc/archiver"
	"github.com/chronos-tachyon/huffarc/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

// usageError is a command-line mistake.  It exits with status 2.
type usageError struct {
	err error
}

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }
func (usageError) ExitCode() int   { return 2 }

type command struct {
	name    string
	summary string
	folder  bool
	run     func(a *archiver.Archiver, path, outDir string, stdout io.Writer) error
}

var commands = []command{
	{
		name:    "compress-file",
		summary: "compress one file into <name>.hmc",
		run: func(a *archiver.Archiver, path, outDir string, stdout io.Writer) error {
			out, err := a.CompressFile(path, outDir)
			if err == nil {
				fmt.Fprintln(stdout, out)
			}
			return err
		},
	},
	{
		name:    "compress-folder",
		summary: "compress the files of a folder into <folder>.hmf",
		folder:  true,
		run: func(a *archiver.Archiver, path, outDir string, stdout io.Writer) error {
			out, err := a.CompressFolder(path, outDir)
			if err == nil {
				fmt.Fprintln(stdout, out)
			}
			return err
		},
	},
	{
		name:    "decompress-file",
		summary: "restore the file stored in a .hmc artifact",
		run: func(a *archiver.Archiver, path, outDir string, stdout io.Writer) error {
			out, err := a.DecompressFile(path, outDir)
			if err == nil {
				fmt.Fprintln(stdout, out)
			}
			return err
		},
	},
	{
		name:    "decompress-folder",
		summary: "restore the folder stored in a .hmf artifact",
		run: func(a *archiver.Archiver, path, outDir string, stdout io.Writer) error {
			out, err := a.DecompressFolder(path, outDir)
			if err == nil {
				fmt.Fprintln(stdout, out)
			}
			return err
		},
	},
	{
		name:    "inspect",
		summary: "describe an artifact's code table and contents",
		run: func(a *archiver.Archiver, path, _ string, stdout io.Writer) error {
			r, err := a.Inspect(path)
			if err != nil {
				return err
			}
			_, err = r.WriteTo(stdout)
			return err
		},
	},
	{
		name:    "compare",
		summary: "compare a file's artifact size with zstd and lz4",
		run: func(a *archiver.Archiver, path, _ string, stdout io.Writer) error {
			c, err := a.Compare(path)
			if err != nil {
				return err
			}
			_, err = c.WriteTo(stdout)
			return err
		},
	},
}

func findCommand(name string) *command {
	for i := range commands {
		if commands[i].name == name {
			return &commands[i]
		}
	}
	return nil
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return usagef("missing command")
	}
	switch args[0] {
	case "-h", "--help", "help":
		printUsage(stdout)
		return nil
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		printUsage(stderr)
		return usagef("unknown command %q", args[0])
	}

	var (
		outputDir  string
		logLevel   string
		configPath string
		exclude    []string
	)
	flagSet := pflag.NewFlagSet("huffarc "+cmd.name, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&outputDir, "output", "o", "", "directory to write output into (default: config output_dir, else the current directory)")
	flagSet.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, or error (default: config log_level, else info)")
	flagSet.StringVar(&configPath, "config", "", "YAML config file (default: $"+config.EnvVar+")")
	if cmd.folder {
		flagSet.StringArrayVar(&exclude, "exclude", nil, "skip folder members matching this glob (repeatable)")
	}
	flagSet.Usage = func() { printCommandHelp(stderr, cmd, flagSet) }

	if err := flagSet.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return usageError{err: err}
	}

	positional := flagSet.Args()
	if len(positional) != 1 {
		printCommandHelp(stderr, cmd, flagSet)
		return usagef("%s takes exactly one path, got %d", cmd.name, len(positional))
	}

	cfg, err := config.Load(config.Path(configPath))
	if err != nil {
		return err
	}
	if flagSet.Changed("output") {
		cfg.OutputDir = outputDir
	}
	if flagSet.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flagSet.Changed("exclude") {
		cfg.Exclude = exclude
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err: err}
	}
	level, err := cfg.Level()
	if err != nil {
		return usageError{err: err}
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	a := archiver.New(logger)
	if cmd.folder {
		a.Exclude = cfg.Exclude
	}
	return cmd.run(a, positional[0], cfg.OutputDir, stdout)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `huffarc compresses files and folders with a static Huffman code.

Usage:
  huffarc <command> [flags] <path>

Commands:
`)
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-18s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintf(w, `
Run "huffarc <command> --help" for the flags of a command.
`)
}

func printCommandHelp(w io.Writer, cmd *command, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `huffarc %s: %s

Usage:
  huffarc %s [flags] <path>

Flags:
`, cmd.name, cmd.summary, cmd.name)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
