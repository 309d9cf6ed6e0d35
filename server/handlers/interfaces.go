// Package handlers provides HTTP handlers for the timetrack sync service.
//
// Each handler is in its own file and implements http.Handler.
// Handlers use interfaces to access server dependencies, avoiding
// circular imports. A handler's failure is always contained and
// reported to that caller only; the listener keeps serving.
package handlers

// LedgerSource provides read access to the raw ledger file.
type LedgerSource interface {
	// Raw returns the ledger file bytes verbatim; the second return is
	// false when the file does not exist.
	Raw() (string, bool, error)
}

// LedgerSink accepts whole-file ledger replacements.
type LedgerSink interface {
	// Overwrite replaces the entire ledger file content.
	Overwrite(data string) error
}

// SecretVerifier checks the shared sync secret.
type SecretVerifier interface {
	Verify(secret string) bool
}
