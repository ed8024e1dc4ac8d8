package minibank

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Default file names of the two tables inside a data directory.
const (
	AccountsFile     = "accounts.csv"
	TransactionsFile = "transactions.csv"
)

// Store loads and saves a Ledger as two flat-file tables.
//
// The Store never owns the ledger: Load builds a fresh one and Save only
// reads it.
type Store struct {
	accountsPath     string
	transactionsPath string
	currency         string
	logger           *zap.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used to report what happens to the tables.
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// WithCurrency sets the currency of loaded ledgers.
func WithCurrency(currency string) StoreOption {
	return func(s *Store) { s.currency = currency }
}

// NewStore returns a store keeping its tables in dir.
func NewStore(dir string, opts ...StoreOption) *Store {
	s := &Store{
		accountsPath:     filepath.Join(dir, AccountsFile),
		transactionsPath: filepath.Join(dir, TransactionsFile),
		currency:         DefaultCurrency,
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads both tables into a fresh ledger.
//
// The returned ledger is always usable. A missing table is created with only
// its header. Errors reading a table are returned joined, wrapping
// ErrPersistenceRead, along with whatever was loaded before them.
func (s *Store) Load() (*Ledger, error) {
	l := NewLedgerIn(s.currency)
	errA := s.load(s.accountsPath, AccountsHeader, func(r io.Reader) (Report, error) { return DecodeAccounts(r, l) })
	errT := s.load(s.transactionsPath, TransactionsHeader, func(r io.Reader) (Report, error) { return DecodeTransactions(r, l) })
	return l, errors.Join(errA, errT)
}

func (s *Store) load(path, header string, decode func(io.Reader) (Report, error)) error {
	logger := s.logger.With(zap.String("file", path))

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("table does not exist, creating an empty one")
		if err := writeFile(path, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, header)
			return err
		}); err != nil {
			logger.Warn("cannot create empty table", zap.Error(err))
		}
		return nil
	}
	if err != nil {
		logger.Warn("cannot open table", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersistenceRead, err)
	}
	defer f.Close()

	report, err := decode(f)
	for _, line := range report.Skipped {
		logger.Debug("skipped malformed record", zap.Int("line", line))
	}
	if err != nil {
		logger.Warn("table partially loaded", zap.Int("records", report.Loaded), zap.Error(err))
		return fmt.Errorf("could not decode %q: %w", path, err)
	}
	logger.Info("table loaded", zap.Int("records", report.Loaded), zap.Int("skipped", len(report.Skipped)))
	return nil
}

// Save rewrites both tables in full from l.
//
// Both tables are attempted even if the first one fails. Errors wrap
// ErrPersistenceWrite; l is never modified.
func (s *Store) Save(l *Ledger) error {
	var errs []error
	for _, t := range []struct {
		path   string
		encode func(io.Writer, *Ledger) error
	}{
		{s.accountsPath, EncodeAccounts},
		{s.transactionsPath, EncodeTransactions},
	} {
		if err := writeFile(t.path, func(w io.Writer) error { return t.encode(w, l) }); err != nil {
			s.logger.Error("cannot save table", zap.String("file", t.path), zap.Error(err))
			errs = append(errs, fmt.Errorf("%w: %w", ErrPersistenceWrite, err))
			continue
		}
		s.logger.Debug("table saved", zap.String("file", t.path))
	}
	return errors.Join(errs...)
}

// writeFile truncates path and fills it with write.
func writeFile(path string, write func(io.Writer) error) error {
	// Ensure the directory for the table exists.
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for %q: %w", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error opening %q for writing: %w", path, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("error writing %q: %w", path, err)
	}
	return file.Close()
}

// Paths returns the accounts and transactions table paths.
func (s *Store) Paths() (accounts, transactions string) {
	return s.accountsPath, s.transactionsPath
}
