package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"os"

	"github.com/julianstephens/mindfulpath/internal/integrations/auth"
	"github.com/julianstephens/mindfulpath/internal/integrations/httpapi"
	"github.com/julianstephens/mindfulpath/internal/logger"
	"github.com/julianstephens/mindfulpath/internal/models"
	"github.com/julianstephens/mindfulpath/internal/storage"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Explain returns a follow-up hint for errors the user can fix, or "".
func Explain(err error) string {
	var statusErr *httpapi.StatusError
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, storage.ErrNotInitialized):
		return "Run 'mindfulpath init' to create the session store."
	case stderrors.Is(err, storage.ErrEmbeddedCredentials):
		return "Remove the password from the connection string and use PGPASSWORD or .pgpass instead."
	case stderrors.Is(err, auth.ErrNotSignedIn):
		return "Run 'mindfulpath auth login' first."
	case stderrors.Is(err, models.ErrInvalidRecord):
		return "Check the values you entered and try again."
	case stderrors.As(err, &statusErr) && (statusErr.Code == http.StatusUnauthorized || statusErr.Code == http.StatusForbidden):
		return fmt.Sprintf("Check the %s credentials in your config, environment or keyring.", statusErr.Service)
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		if hint := Explain(err); hint != "" {
			fmt.Fprintf(os.Stderr, "%s\n", hint)
		}
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
