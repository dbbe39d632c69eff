// Package fetch materializes remote repositories into temporary checkouts.
package fetch

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"
)

const (
	checkoutDirectoryPattern = "catrepo-*"
	httpsScheme              = "https"
	redactedToken            = "***"

	errorCreateCheckoutFormat = "create checkout directory: %w"
	errorCloneFormat          = "clone %s: %w"
	errorCloneOutputFormat    = "clone %s: %w: %s"
)

// Clone performs a shallow checkout of repositoryURL into a fresh temporary
// directory and returns the directory path together with a cleanup function
// that removes it. The cleanup function is non-nil exactly when the error is
// nil, and the caller must invoke it on every exit path. A non-empty
// accessToken is injected into HTTPS URLs for private repositories; it never
// appears in returned errors.
func Clone(repositoryURL, accessToken string) (string, func(), error) {
	temporaryDirectory, createError := os.MkdirTemp("", checkoutDirectoryPattern)
	if createError != nil {
		return "", nil, fmt.Errorf(errorCreateCheckoutFormat, createError)
	}
	cleanup := func() {
		_ = os.RemoveAll(temporaryDirectory)
	}

	cloneURL := repositoryURL
	if accessToken != "" {
		cloneURL = injectAccessToken(repositoryURL, accessToken)
	}

	var standardErrorBuffer bytes.Buffer
	// #nosec G204
	cloneCommand := exec.Command("git", "clone", "--depth", "1", cloneURL, temporaryDirectory)
	cloneCommand.Stderr = &standardErrorBuffer
	if runError := cloneCommand.Run(); runError != nil {
		cleanup()
		standardErrorOutput := strings.TrimSpace(standardErrorBuffer.String())
		if accessToken != "" {
			standardErrorOutput = strings.ReplaceAll(standardErrorOutput, accessToken, redactedToken)
		}
		if standardErrorOutput != "" {
			return "", nil, fmt.Errorf(errorCloneOutputFormat, repositoryURL, runError, standardErrorOutput)
		}
		return "", nil, fmt.Errorf(errorCloneFormat, repositoryURL, runError)
	}
	return temporaryDirectory, cleanup, nil
}

// injectAccessToken embeds accessToken as the user component of an HTTPS URL.
// Non-HTTPS or unparseable URLs are returned unchanged.
func injectAccessToken(repositoryURL, accessToken string) string {
	parsedURL, parseError := url.Parse(repositoryURL)
	if parseError != nil || parsedURL.Scheme != httpsScheme {
		return repositoryURL
	}
	parsedURL.User = url.User(accessToken)
	return parsedURL.String()
}
