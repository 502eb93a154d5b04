package domain

import "errors"

var (
	// ErrUnknownOrder is returned when a command targets an order id that is
	// not present in the book.
	ErrUnknownOrder = errors.New("unknown order id")

	// ErrUnknownCurrency is returned when a currency code has no entry in the
	// rate table.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrConfigNotFound is returned when the configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")
)

// ConfigError represents a configuration error
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
