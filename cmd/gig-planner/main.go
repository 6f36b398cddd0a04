package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/gig-planner/internal/config"
	"github.com/iwvelando/gig-planner/internal/logging"
	"github.com/iwvelando/gig-planner/internal/planner"
	"github.com/iwvelando/gig-planner/pkg/constants"
	"github.com/iwvelando/gig-planner/pkg/failure"
	"github.com/iwvelando/gig-planner/pkg/output"
	"github.com/iwvelando/gig-planner/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	hours := flag.Float64("hours", 0, "available hours override")
	minSkill := flag.Float64("min-skill", 0, "minimum skill match override (0-100)")
	useSample := flag.Bool("sample", false, "plan the built-in demonstration projects instead of reading a config file")
	envFile := flag.String("env-file", ".env", "optional file of GIG_PLANNER_* environment overrides")
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load environment file\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var conf *config.Configuration
	if *useSample {
		conf = config.SampleConfiguration()
	} else {
		var err error
		conf, err = config.LoadConfiguration(*configLocation)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": %q}\n", *configLocation, err.Error())
			os.Exit(1)
		}
	}

	if set["hours"] {
		conf.AvailableHours = *hours
	}
	if set["min-skill"] {
		conf.MinSkillMatch = *minSkill
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Validate configuration and display any warnings
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	runner := planner.NewRunner(logger, conf.Solver.ToPlannerOptions())
	selection, err := runner.Run(context.Background(), conf.Request())
	if err != nil {
		logger.Fatal("failed to select projects",
			zap.String("op", "main"),
			zap.String("kind", string(failure.KindOf(err))),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		err = output.PrettyFormat(os.Stdout, conf.Projects, selection)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, selection)
	case constants.OutputFormatJSON:
		err = output.JSONFormat(os.Stdout, selection)
	}
	if err != nil {
		logger.Fatal("failed to write results",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
