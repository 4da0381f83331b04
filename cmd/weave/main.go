package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/toyz/weave/internal/cli"
	"github.com/toyz/weave/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("weave", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configFlag  = fs.String("config", cli.DefaultConfigFile, "Configuration file; a missing default file is ignored")
		modelsFlag  = fs.String("models", "", "Comma-separated model documents, directories or ./dir/... patterns")
		outFlag     = fs.String("out", "", "Root directory generated packages are written below")
		formatFlag  = fs.Bool("format", false, "Run generated files through goimports")
		moduleFlag  = fs.String("module", "", "Module path of the output root (defaults to the nearest go.mod)")
		verboseFlag = fs.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = fs.Bool("quiet", false, "Only show errors")
		cleanFlag   = fs.Bool("clean", false, "Delete every generated file below the output root")
		serveFlag   = fs.Bool("serve", false, "Serve the rendered files over HTTP instead of writing them")
		serverFlag  = fs.String("server", "", "Preview server: echo, gin or fiber")
		addrFlag    = fs.String("addr", "", "Preview listen address (host:port)")
	)

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: weave [options] [model-documents...]\n\n")
		fmt.Fprintf(stderr, "weave generates an interface, a Base decorator and a Proxy forwarder\n")
		fmt.Fprintf(stderr, "for every model described in YAML model documents.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  weave models.yaml                     # Generate into the current directory\n")
		fmt.Fprintf(stderr, "  weave -out internal ./models/...      # Every document below ./models\n")
		fmt.Fprintf(stderr, "  weave -serve -server gin models.yaml  # Preview at http://localhost:8080\n")
		fmt.Fprintf(stderr, "  weave -clean -out internal            # Delete generated files\n")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	reporter := cli.NewDiagnosticReporter(*verboseFlag)
	reporter.SetOutput(stderr)

	config, err := cli.LoadConfig(*configFlag, set["config"])
	if err != nil {
		reporter.ReportError(err)
		return 1
	}

	// Flags override the configuration file
	if set["models"] {
		config.Models = splitList(*modelsFlag)
	}
	if fs.NArg() > 0 {
		config.Models = fs.Args()
	}
	if set["out"] {
		config.Output = *outFlag
	}
	if set["format"] {
		config.Format = *formatFlag
	}
	if set["module"] {
		config.Module = *moduleFlag
	}
	if set["server"] {
		config.Preview.Server = *serverFlag
	}
	if set["addr"] {
		config.Preview.Addr = *addrFlag
	}
	config.Verbose = *verboseFlag
	config.Quiet = *quietFlag
	config.Clean = *cleanFlag
	config.Serve = *serveFlag

	diagnostics := utils.NewDiagnosticSystem(config.DiagnosticLevel())
	if stdout != io.Writer(os.Stdout) || stderr != io.Writer(os.Stderr) {
		diagnostics.SetOutput(stdout, stderr)
	}

	generator := cli.NewGenerator(diagnostics, reporter)
	if err := generator.Run(ctx, config); err != nil {
		reporter.ReportError(err)
		return 1
	}
	return 0
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
