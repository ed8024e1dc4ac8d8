// Package cmd implements the CLI application to run a MiniBank ledger.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/minibank"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Environment variables providing defaults for the global flags. They can be
// set in a .env file in the working directory.
const (
	EnvDataDir  = "MINIBANK_DATA_DIR"
	EnvCurrency = "MINIBANK_CURRENCY"
	EnvVerbose  = "MINIBANK_VERBOSE"
)

// Commands is the list of all mb subcommands.
var Commands = []subcommands.Command{
	&createCmd{},
	&depositCmd{},
	&withdrawCmd{},
	&transferCmd{},
	&balanceCmd{},
	&historyCmd{},
	&shellCmd{},
	&queryCmd{},
	&fmtCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", "", "directory holding the ledger tables (default $"+EnvDataDir+" or the current directory)")
var currency = flag.String("currency", "", "currency of the ledger (default $"+EnvCurrency+" or "+minibank.DefaultCurrency+")")
var Verbose = flag.Bool("v", false, "log debug messages on stderr")

// Streams commands talk to the user with.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// LoadEnv reads the .env file of the working directory, if any. Variables
// already set in the environment are kept.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(stderr, "Warning: cannot read .env file: %v\n", err)
	}
}

// DataDir returns the ledger directory selected by flags or environment.
func DataDir() string {
	if *dataDir != "" {
		return *dataDir
	}
	if d := os.Getenv(EnvDataDir); d != "" {
		return d
	}
	return "."
}

// Currency returns the ledger currency selected by flags or environment.
func Currency() string {
	if *currency != "" {
		return *currency
	}
	if c := os.Getenv(EnvCurrency); c != "" {
		return c
	}
	return minibank.DefaultCurrency
}

func verbose() bool {
	return *Verbose || os.Getenv(EnvVerbose) == "true"
}

// newLogger returns the logger used by the store: warnings only, unless verbose.
func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose() {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// OpenStore is the central function to open the ledger tables.
func OpenStore() *minibank.Store {
	return minibank.NewStore(DataDir(),
		minibank.WithCurrency(Currency()),
		minibank.WithLogger(newLogger()),
	)
}

// DecodeLedger loads the ledger of the data directory.
//
// A ledger that could not be fully read is still returned with the error.
// Commands that save must not do so in that case, or the unread records
// would be lost.
func DecodeLedger() (*minibank.Store, *minibank.Ledger, error) {
	s := OpenStore()
	l, err := s.Load()
	return s, l, err
}

// printMarkdown renders md for a terminal, or prints it as is when stdout is
// not one.
func printMarkdown(md string) {
	if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if out, err := glamour.Render(md, "auto"); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}
