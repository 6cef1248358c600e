package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dsmgraph/dsm-analyzer/internal/config"
	"github.com/dsmgraph/dsm-analyzer/internal/dsm"
	"github.com/dsmgraph/dsm-analyzer/internal/orchestrator"
	"github.com/dsmgraph/dsm-analyzer/internal/progress"
)

var (
	flagConfigFile           string
	flagOutputFile           string
	flagFormat               string
	flagPretty               bool
	flagCloneDepth           int
	flagLargeRepoThreshold   int
	flagMaxRepoSizeMiB       int64
	flagIncludeTests         bool
	flagIncludeTypeOnlyImps  bool
	flagVerbose              bool
	flagDebug                bool
)

func init() {
	buildCmd := &cobra.Command{
		Use:   "build <repository-url>",
		Short: "Fetch a repository and build its dependency matrix",
		Args:  cobra.ExactArgs(1),
		RunE:  runBuild,
	}

	buildCmd.Flags().StringVar(&flagConfigFile, "config", "", "Path to a repo config file (YAML/JSON), or an inline JSON object")
	buildCmd.Flags().IntVar(&flagCloneDepth, "clone-depth", 0, "Git clone depth (0 = use config default)")
	buildCmd.Flags().IntVar(&flagLargeRepoThreshold, "large-repo-threshold", 0, "File-count threshold for the large-repo fast path (0 = use config default)")
	buildCmd.Flags().Int64Var(&flagMaxRepoSizeMiB, "max-repo-size-mib", 0, "Maximum admitted repository size in MiB (0 = use config default)")
	buildCmd.Flags().BoolVar(&flagIncludeTests, "include-tests", true, "Include test files in resolution (test files are always analyzed; false has no effect)")
	buildCmd.Flags().BoolVar(&flagIncludeTypeOnlyImps, "include-type-only-imports", true, "Include type-only import clauses (TypeScript/C#)")
	buildCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Verbose logging")
	buildCmd.Flags().BoolVar(&flagDebug, "debug", false, "Debug logging")
	setupOutputFlags(buildCmd, &flagFormat, &flagOutputFile)
	buildCmd.Flags().BoolVar(&flagPretty, "pretty", true, "Pretty-print JSON output (JSON output is always indented; this flag does not change it)")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	url := args[0]

	opts := config.LoadFromEnvironment()
	if fo, err := config.LoadFile(flagConfigFile); err != nil {
		return err
	} else {
		fo.Merge(opts)
	}

	applyFlagOverrides(opts, cmd)
	if err := opts.Validate(); err != nil {
		return err
	}

	logger := opts.ConfigureLogger()
	o := orchestrator.New(opts, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ch := progress.NewChannel(64)
	var aux *dsm.AuxMetadata
	done := make(chan struct{})
	go func() {
		defer close(done)
		aux = o.Run(ctx, url, ch)
	}()

	var handler progress.Handler
	if opts.Verbose || opts.Debug {
		handler = progress.NewTreeHandler(cmd.ErrOrStderr())
	} else {
		handler = progress.NewSimpleHandler(cmd.ErrOrStderr())
	}

	var payload *dsm.DSMPayload
	var runErr error
	for frame := range ch.Frames() {
		handler.Handle(progress.AsEvent(frame))
		switch frame.Kind {
		case progress.FrameError:
			runErr = fmt.Errorf("%s", frame.Message)
		case progress.FrameComplete:
			payload = frame.Payload
		}
	}
	<-done

	if runErr != nil {
		return runErr
	}
	if payload == nil {
		return fmt.Errorf("analysis produced no result")
	}

	out := buildOutput{payload: payload, aux: aux}
	outputFile := opts.OutputFile
	if flagOutputFile != "" {
		outputFile = flagOutputFile
	}
	OutputToFile(out, flagFormat, outputFile)
	return nil
}

func applyFlagOverrides(opts *config.Options, cmd *cobra.Command) {
	if cmd.Flags().Changed("clone-depth") {
		opts.CloneDepth = flagCloneDepth
	}
	if cmd.Flags().Changed("large-repo-threshold") {
		opts.LargeRepoThreshold = flagLargeRepoThreshold
	}
	if cmd.Flags().Changed("max-repo-size-mib") {
		opts.MaxRepoSizeMiB = flagMaxRepoSizeMiB
	}
	if cmd.Flags().Changed("include-tests") {
		opts.IncludeTests = flagIncludeTests
	}
	if cmd.Flags().Changed("include-type-only-imports") {
		opts.IncludeTypeOnlyImports = flagIncludeTypeOnlyImps
	}
	if cmd.Flags().Changed("verbose") {
		opts.Verbose = flagVerbose
	}
	if cmd.Flags().Changed("debug") {
		opts.Debug = flagDebug
	}
	if cmd.Flags().Changed("pretty") {
		opts.PrettyPrint = flagPretty
	}
}

// buildOutput adapts a completed run's DSM payload to the Outputter
// interface shared by every dsmctl command.
type buildOutput struct {
	payload *dsm.DSMPayload
	aux     *dsm.AuxMetadata
}

func (o buildOutput) ToJSON() interface{} {
	return struct {
		dsm.ExternalPayload
		Licenses  []string    `json:"licenses,omitempty"`
		Cycles    [][]string  `json:"cycles,omitempty"`
		CodeStats interface{} `json:"code_stats,omitempty"`
		Metadata  interface{} `json:"metadata,omitempty"`
	}{
		ExternalPayload: o.payload.ToExternal(),
		Licenses:        auxLicenses(o.aux),
		Cycles:          auxCycles(o.aux),
		CodeStats:       auxCodeStats(o.aux),
		Metadata:        auxRunMetadata(o.aux),
	}
}

func (o buildOutput) ToText(w io.Writer) {
	ext := o.payload.ToExternal()
	for _, item := range ext.DisplayItems {
		indent := ""
		for i := 0; i < item.Indent; i++ {
			indent += "  "
		}
		fmt.Fprintf(w, "%s%s %s\n", indent, item.ID, item.DisplayName)
	}
}

func auxLicenses(aux *dsm.AuxMetadata) []string {
	if aux == nil {
		return nil
	}
	return aux.Licenses
}

func auxCycles(aux *dsm.AuxMetadata) [][]string {
	if aux == nil {
		return nil
	}
	return aux.Cycles
}

func auxCodeStats(aux *dsm.AuxMetadata) interface{} {
	if aux == nil {
		return nil
	}
	return aux.CodeStats
}

func auxRunMetadata(aux *dsm.AuxMetadata) interface{} {
	if aux == nil {
		return nil
	}
	return aux.Run
}
