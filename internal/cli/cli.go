// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"catrepo/internal/collect"
	"catrepo/internal/config"
	"catrepo/internal/fetch"
	"catrepo/internal/output"
	"catrepo/internal/services/clipboard"
	"catrepo/internal/tokenizer"
	"catrepo/internal/tree"
	"catrepo/internal/types"
)

const (
	rootUse              = "catrepo [path]"
	rootShortDescription = "flatten a repository into one text dump"
	rootLongDescription  = `catrepo flattens a local directory or a remote repository into a single
filtered, annotated text dump suitable for feeding to text-processing
pipelines under size and token budgets. A directory tree with size and token
annotations precedes the file contents.`
	rootUsageExample = `  # Dump the current project
  catrepo .

  # Only Go sources, skip vendored code, cap file size at 256 KiB
  catrepo --include '**/*.go' --exclude vendor --max-size 262144 .

  # Dump a remote repository as HTML
  catrepo --remote-url https://github.com/example/project --format html --outfile dump.html`

	remoteURLFlagName     = "remote-url"
	privateTokenFlagName  = "private-token"
	includeFlagName       = "include"
	excludeFlagName       = "exclude"
	maxSizeFlagName       = "max-size"
	maxTokensFlagName     = "max-tokens"
	formatFlagName        = "format"
	binaryStrictFlagName  = "binary-strict"
	gitignoreFlagName     = "gitignore"
	treeFlagName          = "tree"
	treeDepthFlagName     = "tree-depth"
	treeTokensFlagName    = "tree-tokens"
	treeSizeFlagName      = "tree-size"
	treeSortFlagName      = "tree-sort"
	treeDirsFirstFlagName = "tree-dirs-first"
	stdoutFlagName        = "stdout"
	outfileFlagName       = "outfile"
	copyFlagName          = "copy"
	modelFlagName         = "model"
	configFlagName        = "config"

	remoteURLFlagDescription     = "git repository URL to download"
	privateTokenFlagDescription  = "access token for private repositories (defaults to $GITHUB_TOKEN)"
	includeFlagDescription       = "glob(s) to include; a bare directory name recurses"
	excludeFlagDescription       = "glob(s) to exclude; '.git' is excluded by default"
	maxSizeFlagDescription       = "skip files larger than this many bytes"
	maxTokensFlagDescription     = "hard token cap; truncate largest files first"
	formatFlagDescription        = "output format (text, json, html)"
	binaryStrictFlagDescription  = "use strict binary detection"
	gitignoreFlagDescription     = "respect .gitignore patterns"
	treeFlagDescription          = "show tree view at top of output"
	treeDepthFlagDescription     = "maximum depth for tree view (0 for unlimited)"
	treeTokensFlagDescription    = "show token counts in tree view"
	treeSizeFlagDescription      = "show file sizes in tree view"
	treeSortFlagDescription      = "sort order for tree view (name, size, tokens)"
	treeDirsFirstFlagDescription = "list directories before files in tree"
	stdoutFlagDescription        = "print dump to standard output"
	outfileFlagDescription       = "write dump to file"
	copyFlagDescription          = "copy dump to the system clipboard"
	modelFlagDescription         = "tokenizer model to use for token counting"
	configFlagDescription        = "configuration file path"

	defaultTokenizerModelName = "gpt-4o"
	privateTokenEnvironment   = "GITHUB_TOKEN"

	invalidFormatMessage      = "invalid format value '%s'"
	invalidSortMessage        = "invalid tree sort value '%s'"
	pathWithRemoteURLMessage  = "--remote-url cannot be used with a path argument"
	pathOrRemoteURLMessage    = "a path argument or --remote-url is required"
	errorWriteOutfileFormat   = "write dump to %s: %w"
	errorCopyClipboardFormat  = "copy dump to clipboard: %w"
	errorLoadConfigFormat     = "load configuration: %w"
	errorCollectFilesFormat   = "collect files under %s: %w"
	versionTemplate           = "catrepo version %s"
	tokenizerSelectedMessage  = "tokenizer selected"
	checkoutCompletedMessage  = "remote checkout completed"
	filesCollectedMessage     = "files collected"
)

// dumpOptions stores every flag value of the root command.
type dumpOptions struct {
	remoteURL       string
	privateToken    string
	includePatterns []string
	excludePatterns []string
	maxFileSize     int64
	maxTokens       int
	outputFormat    string
	binaryStrict    bool
	useGitignore    bool
	showTree        bool
	treeDepth       int
	treeTokens      bool
	treeSize        bool
	treeSort        string
	treeDirsFirst   bool
	writeStdout     bool
	outputFilePath  string
	copyToClipboard bool
	tokenizerModel  string
	configFilePath  string
}

// Execute runs the catrepo application.
func Execute(loggerInstance *zap.Logger, version string) error {
	rootCommand := createRootCommand(loggerInstance, version)
	return rootCommand.Execute()
}

func createRootCommand(loggerInstance *zap.Logger, version string) *cobra.Command {
	var options dumpOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runDump(command, arguments, &options, loggerInstance)
		},
	}
	rootCommand.SetVersionTemplate(fmt.Sprintf(versionTemplate, version) + "\n")

	flagSet := rootCommand.Flags()
	flagSet.StringVar(&options.remoteURL, remoteURLFlagName, "", remoteURLFlagDescription)
	flagSet.StringVar(&options.privateToken, privateTokenFlagName, "", privateTokenFlagDescription)
	flagSet.StringArrayVar(&options.includePatterns, includeFlagName, nil, includeFlagDescription)
	flagSet.StringArrayVar(&options.excludePatterns, excludeFlagName, nil, excludeFlagDescription)
	flagSet.Int64Var(&options.maxFileSize, maxSizeFlagName, types.DefaultMaxFileSize, maxSizeFlagDescription)
	flagSet.IntVar(&options.maxTokens, maxTokensFlagName, 0, maxTokensFlagDescription)
	flagSet.StringVar(&options.outputFormat, formatFlagName, types.FormatText, formatFlagDescription)
	flagSet.BoolVar(&options.binaryStrict, binaryStrictFlagName, true, binaryStrictFlagDescription)
	flagSet.BoolVar(&options.useGitignore, gitignoreFlagName, true, gitignoreFlagDescription)
	flagSet.BoolVar(&options.showTree, treeFlagName, true, treeFlagDescription)
	flagSet.IntVar(&options.treeDepth, treeDepthFlagName, 0, treeDepthFlagDescription)
	flagSet.BoolVar(&options.treeTokens, treeTokensFlagName, true, treeTokensFlagDescription)
	flagSet.BoolVar(&options.treeSize, treeSizeFlagName, false, treeSizeFlagDescription)
	flagSet.StringVar(&options.treeSort, treeSortFlagName, types.SortByName, treeSortFlagDescription)
	flagSet.BoolVar(&options.treeDirsFirst, treeDirsFirstFlagName, true, treeDirsFirstFlagDescription)
	flagSet.BoolVar(&options.writeStdout, stdoutFlagName, true, stdoutFlagDescription)
	flagSet.StringVar(&options.outputFilePath, outfileFlagName, "", outfileFlagDescription)
	flagSet.BoolVar(&options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	flagSet.StringVar(&options.tokenizerModel, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
	flagSet.StringVar(&options.configFilePath, configFlagName, "", configFlagDescription)

	return rootCommand
}

func runDump(command *cobra.Command, arguments []string, options *dumpOptions, loggerInstance *zap.Logger) error {
	if loggerInstance == nil {
		loggerInstance = zap.NewNop()
	}

	if options.remoteURL != "" && len(arguments) > 0 {
		return errors.New(pathWithRemoteURLMessage)
	}
	if options.remoteURL == "" && len(arguments) == 0 {
		return errors.New(pathOrRemoteURLMessage)
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configFilePath,
	})
	if configurationError != nil {
		return fmt.Errorf(errorLoadConfigFormat, configurationError)
	}
	applyConfigurationDefaults(command.Flags(), options, applicationConfiguration.Dump)

	if !isSupportedFormat(options.outputFormat) {
		return fmt.Errorf(invalidFormatMessage, options.outputFormat)
	}
	if !isSupportedSortOrder(options.treeSort) {
		return fmt.Errorf(invalidSortMessage, options.treeSort)
	}

	accessToken := options.privateToken
	if accessToken == "" {
		accessToken = os.Getenv(privateTokenEnvironment)
	}

	counter, selectedModel := tokenizer.NewCounter(options.tokenizerModel)
	loggerInstance.Debug(tokenizerSelectedMessage, zap.String("model", selectedModel))

	rootPath := ""
	if options.remoteURL != "" {
		checkoutPath, cleanup, cloneError := fetch.Clone(options.remoteURL, accessToken)
		if cloneError != nil {
			return cloneError
		}
		defer cleanup()
		loggerInstance.Debug(checkoutCompletedMessage, zap.String("url", options.remoteURL))
		rootPath = checkoutPath
	} else {
		rootPath = arguments[0]
	}

	records, collectError := collect.Collect(rootPath, collect.Options{
		IncludePatterns: options.includePatterns,
		ExcludePatterns: options.excludePatterns,
		MaxFileSize:     options.maxFileSize,
		BinaryStrict:    options.binaryStrict,
		UseGitignore:    options.useGitignore,
	}, loggerInstance)
	if collectError != nil {
		return fmt.Errorf(errorCollectFilesFormat, rootPath, collectError)
	}
	loggerInstance.Debug(filesCollectedMessage, zap.Int("count", len(records)))

	dump, renderError := output.RenderDump(records, rootPath, output.Options{
		Format:    options.outputFormat,
		MaxTokens: options.maxTokens,
		ShowTree:  options.showTree,
		Tree: tree.ViewOptions{
			MaxDepth:   options.treeDepth,
			ShowTokens: options.treeTokens,
			ShowSize:   options.treeSize,
			SortBy:     options.treeSort,
			DirsFirst:  options.treeDirsFirst,
		},
		Counter: counter,
		Logger:  loggerInstance,
	})
	if renderError != nil {
		return renderError
	}

	if options.outputFilePath != "" {
		if writeError := os.WriteFile(options.outputFilePath, []byte(dump), 0o644); writeError != nil {
			return fmt.Errorf(errorWriteOutfileFormat, options.outputFilePath, writeError)
		}
	}
	if options.copyToClipboard {
		if copyError := clipboard.NewService().Copy(dump); copyError != nil {
			return fmt.Errorf(errorCopyClipboardFormat, copyError)
		}
	}
	if options.writeStdout {
		fmt.Fprintln(command.OutOrStdout(), dump)
	}
	return nil
}

// applyConfigurationDefaults overrides flag defaults with configured values
// for every flag the user left untouched.
func applyConfigurationDefaults(flagSet *pflag.FlagSet, options *dumpOptions, configuration config.DumpConfiguration) {
	if !flagSet.Changed(formatFlagName) && configuration.Format != "" {
		options.outputFormat = configuration.Format
	}
	if !flagSet.Changed(maxSizeFlagName) && configuration.MaxFileSize != nil {
		options.maxFileSize = *configuration.MaxFileSize
	}
	if !flagSet.Changed(maxTokensFlagName) && configuration.MaxTokens != nil {
		options.maxTokens = *configuration.MaxTokens
	}
	if !flagSet.Changed(binaryStrictFlagName) && configuration.BinaryStrict != nil {
		options.binaryStrict = *configuration.BinaryStrict
	}
	if !flagSet.Changed(gitignoreFlagName) && configuration.UseGitignore != nil {
		options.useGitignore = *configuration.UseGitignore
	}
	if !flagSet.Changed(includeFlagName) && len(configuration.Include) > 0 {
		options.includePatterns = append([]string{}, configuration.Include...)
	}
	if !flagSet.Changed(excludeFlagName) && len(configuration.Exclude) > 0 {
		options.excludePatterns = append([]string{}, configuration.Exclude...)
	}
	if !flagSet.Changed(modelFlagName) && configuration.Tokens.Model != "" {
		options.tokenizerModel = configuration.Tokens.Model
	}
	if !flagSet.Changed(treeFlagName) && configuration.Tree.Enabled != nil {
		options.showTree = *configuration.Tree.Enabled
	}
	if !flagSet.Changed(treeDepthFlagName) && configuration.Tree.MaxDepth != nil {
		options.treeDepth = *configuration.Tree.MaxDepth
	}
	if !flagSet.Changed(treeTokensFlagName) && configuration.Tree.ShowTokens != nil {
		options.treeTokens = *configuration.Tree.ShowTokens
	}
	if !flagSet.Changed(treeSizeFlagName) && configuration.Tree.ShowSize != nil {
		options.treeSize = *configuration.Tree.ShowSize
	}
	if !flagSet.Changed(treeSortFlagName) && configuration.Tree.SortBy != "" {
		options.treeSort = configuration.Tree.SortBy
	}
	if !flagSet.Changed(treeDirsFirstFlagName) && configuration.Tree.DirsFirst != nil {
		options.treeDirsFirst = *configuration.Tree.DirsFirst
	}
}

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatText, types.FormatJSON, types.FormatHTML:
		return true
	default:
		return false
	}
}

// isSupportedSortOrder reports whether the provided tree sort order is recognized.
func isSupportedSortOrder(sortOrder string) bool {
	switch sortOrder {
	case types.SortByName, types.SortBySize, types.SortByTokens:
		return true
	default:
		return false
	}
}
