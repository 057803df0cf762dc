package errors

import "fmt"

// Common error types.
var (
	// Classification errors.
	ErrNoStrategyFound  = fmt.Errorf("no onboarding strategy accepts this source")
	ErrAmbiguousSource  = fmt.Errorf("multiple onboarding strategies accept this source")
	ErrUnknownStrategy  = fmt.Errorf("unknown onboarding strategy")
	ErrStrategyRejected = fmt.Errorf("strategy rejects source")

	// Resolution errors.
	ErrPathNotFound  = fmt.Errorf("path does not exist")
	ErrNotAFile      = fmt.Errorf("path is not a file")
	ErrNotADirectory = fmt.Errorf("path is not a directory")
	ErrInvalidPath   = fmt.Errorf("invalid path")

	// Transfer errors.
	ErrDownloadFailed = fmt.Errorf("download failed")

	// Integrity errors.
	ErrChecksumMismatch = fmt.Errorf("checksum mismatch")

	// Extraction errors.
	ErrExtractionFailed = fmt.Errorf("could not extract archive")

	// Zenodo lookup errors.
	ErrDOIParse        = fmt.Errorf("cannot parse Zenodo DOI")
	ErrRecordLookup    = fmt.Errorf("failed to look up Zenodo record")
	ErrFileNotInRecord = fmt.Errorf("file not found in Zenodo record")

	// Strategy capability errors.
	ErrBundleNotSupported = fmt.Errorf("strategy does not support bundle retrieval")

	// Hook errors.
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
	ErrHookLoad      = fmt.Errorf("failed to load hook")

	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigKeyNotFound = fmt.Errorf("unknown configuration key")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
