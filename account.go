package minibank

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// AccountID is the account number shown to customers.
type AccountID int64

// FirstAccountID is the number given to the first account of an empty ledger.
const FirstAccountID AccountID = 1001001000

// ParseAccountID parses an account number as typed by a user.
func ParseAccountID(s string) (AccountID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid account number %q: %w", s, err)
	}
	return AccountID(n), nil
}

func (id AccountID) String() string { return strconv.FormatInt(int64(id), 10) }

// Account is a snapshot of a customer account.
//
// The PIN is kept unexported: it only ever leaves the package through the
// accounts table.
type Account struct {
	ID      AccountID
	Name    string
	Balance Money
	pin     string
}

// Equal reports whether both snapshots hold the same values, PIN included.
func (a Account) Equal(b Account) bool {
	return a.ID == b.ID && a.Name == b.Name && a.pin == b.pin && a.Balance.Equal(b.Balance)
}

// accountForm holds the user input for a new account.
type accountForm struct {
	Name string `validate:"required"`
	Pin  string `validate:"len=4,number"`
}

var validate = validator.New()

// Validate checks the form and normalizes the name.
func (f *accountForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	if err := validate.Struct(f); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			switch errs[0].Field() {
			case "Name":
				return fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
			case "Pin":
				return fmt.Errorf("%w: PIN must be exactly 4 digits", ErrInvalidInput)
			}
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
