// Command catrepo flattens a repository into a single annotated dump.
package main

import (
	"fmt"
	"os"

	"catrepo/internal/cli"
	"catrepo/internal/utils"
)

func main() {
	loggerInstance, loggerError := utils.NewApplicationLogger()
	if loggerError != nil {
		fmt.Fprintf(os.Stderr, utils.LoggerInitializationFailedMessageFormat, loggerError)
		os.Exit(1)
	}
	defer func() {
		_ = loggerInstance.Sync()
	}()

	if executionError := cli.Execute(loggerInstance, utils.GetApplicationVersion()); executionError != nil {
		loggerInstance.Error(executionError.Error())
		os.Exit(1)
	}
}
