package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ppiankov/dirspectre/internal/report"
)

const tokenEnvVar = "DIRSPECTRE_API_TOKEN"

func printStatus(format string, args ...interface{}) {
	slog.Info(fmt.Sprintf(format, args...))
}

// enhanceError enhances an error with additional context and helpful suggestions
func enhanceError(operation string, err error) error {
	if err == nil {
		return nil
	}

	errMsg := err.Error()

	// Provide helpful suggestions for common errors
	if strings.Contains(errMsg, "status 401") || strings.Contains(errMsg, "status 403") {
		return fmt.Errorf("%s failed: API rejected the credentials.\n"+
			"Solutions:\n"+
			"  - Check the service-account token in your token file\n"+
			"  - Set %s or use --token-file\n"+
			"  - Verify the account has snapshot browse permissions\n"+
			"Original error: %w", operation, tokenEnvVar, err)
	}

	if strings.Contains(errMsg, "status 429") || strings.Contains(errMsg, "Throttled") {
		return fmt.Errorf("%s failed: API rate limit exceeded.\n"+
			"Solutions:\n"+
			"  - Reduce concurrency with --concurrency flag\n"+
			"  - Wait a few seconds and try again\n"+
			"Original error: %w", operation, err)
	}

	if strings.Contains(errMsg, "connection refused") || strings.Contains(errMsg, "no such host") {
		return fmt.Errorf("%s failed: Graph API endpoint unreachable.\n"+
			"Solutions:\n"+
			"  - Check the --api-url value\n"+
			"  - Verify network access to the platform\n"+
			"Original error: %w", operation, err)
	}

	// Default error with context
	return fmt.Errorf("%s failed: %w", operation, err)
}

func selectReporter(format string, writer io.Writer) (report.Reporter, error) {
	switch format {
	case "json":
		return report.NewJSONReporter(writer), nil
	case "text":
		return report.NewTextReporter(writer), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: text, json)", format)
	}
}

// loadToken reads the API token from the given file, falling back to the
// environment. Whitespace is trimmed so trailing newlines in token files do
// not break the auth header.
func loadToken(tokenFile string) (string, error) {
	if tokenFile != "" {
		raw, err := os.ReadFile(tokenFile)
		if err != nil {
			return "", fmt.Errorf("read token file: %w", err)
		}
		token := strings.TrimSpace(string(raw))
		if token == "" {
			return "", fmt.Errorf("token file %s is empty", tokenFile)
		}
		return token, nil
	}

	if token := strings.TrimSpace(os.Getenv(tokenEnvVar)); token != "" {
		return token, nil
	}

	return "", fmt.Errorf("no API token: use --token-file or set %s", tokenEnvVar)
}
