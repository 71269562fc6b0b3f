package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/funvibe/funcase/internal/config"
	"github.com/funvibe/funcase/internal/diagnostics"
	"github.com/funvibe/funcase/internal/driver"
	"github.com/funvibe/funcase/internal/evaluator"
	"github.com/funvibe/funcase/internal/prettyprinter"
	"github.com/funvibe/funcase/internal/variant"
)

const usage = `Usage: funcase <command> <file%s> [file2...]

Commands:
  check    parse and transform, report diagnostics only
  build    transform and print the rewritten source
  run      transform and execute

Configuration is read from %s in the working directory.
`

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, usage, config.SourceFileExt, config.ConfigFileName)
		os.Exit(2)
	}
	command := os.Args[1]
	files := os.Args[2:]

	cfg, err := config.Load(config.ConfigFileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	reporter := diagnostics.NewReporter(os.Stderr, colorMode(cfg))

	switch command {
	case "check":
		os.Exit(transformAll(files, cfg, reporter, nil))
	case "build":
		os.Exit(transformAll(files, cfg, reporter, func(res *driver.Result, _ *variant.Registry) int {
			fmt.Println(prettyprinter.Print(res.Program))
			return 0
		}))
	case "run":
		os.Exit(transformAll(files, cfg, reporter, runUnit))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		fmt.Fprintf(os.Stderr, usage, config.SourceFileExt, config.ConfigFileName)
		os.Exit(2)
	}
}

// transformAll transforms each file against one shared registry, so data
// types declared in earlier files are visible to later ones. The after hook
// runs per unit once transformation succeeded.
func transformAll(files []string, cfg *config.Config, reporter *diagnostics.Reporter, after func(*driver.Result, *variant.Registry) int) int {
	reg := variant.NewRegistry()
	exit := 0
	for _, path := range files {
		if !strings.HasSuffix(path, config.SourceFileExt) {
			fmt.Fprintf(os.Stderr, "Skipping %s: not a %s file\n", path, config.SourceFileExt)
			continue
		}
		res, err := driver.TransformFile(path, reg, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return 1
		}
		reporter.Report(res.Diagnostics)
		if res.Fatal {
			exit = 1
			continue
		}
		if after != nil {
			if code := after(res, reg); code != 0 {
				exit = code
			}
		}
	}
	return exit
}

func runUnit(res *driver.Result, reg *variant.Registry) int {
	env := evaluator.NewGlobalEnv(reg)
	result := evaluator.Eval(res.Program, env)
	if errObj, ok := result.(*evaluator.Error); ok {
		fmt.Fprintln(os.Stderr, errObj.Inspect())
		return 1
	}
	return 0
}

func colorMode(cfg *config.Config) diagnostics.ColorMode {
	switch cfg.Color {
	case "always":
		return diagnostics.ColorAlways
	case "never":
		return diagnostics.ColorNever
	default:
		return diagnostics.ColorAuto
	}
}
