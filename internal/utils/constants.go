package utils

// File and directory names recognized across the project.
const (
	// GitDirectoryName is the name of the Git repository metadata directory.
	GitDirectoryName = ".git"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// GlobalConfigDirectoryName is the per-user configuration directory under the home directory.
	GlobalConfigDirectoryName = ".catrepo"
	// ConfigFileName is the name of the application configuration file.
	ConfigFileName = "catrepo.yaml"
)

// LoggerInitializationFailedMessageFormat reports a failure to build the application logger.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %v\n"
