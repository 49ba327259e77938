// Copyright 2025 The Bicig Toli Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the bicig-toli glossary lookup server and CLI.

bicig-toli looks up headwords of a Mongolian glossary given in Cyrillic and
in traditional script. Queries may be typed in Cyrillic or in Latin
transliteration; the traditional headwords are romanized on the fly so that
a Latin query finds them, and near misses within a few edits still match.

# Usage

Start the msgpack IPC server on stdin/stdout:

	bicigtoli

Run the interactive CLI with debug logs:

	bicigtoli -c -d

Use another dataset and return at most 10 hits:

	bicigtoli -c --data /srv/glossary/data.json --limit 10

Convert the JSON dataset into a msgpack snapshot, which loads faster:

	bicigtoli --data data/data.json --convert data/data.msgpack

# Configuration

Settings live in config.toml under the user config directory and are
created with defaults on first run:

	[search]
	max_distance = 3
	limit = 20
	normalize = true
	workers = 1
	cache_size = 256

	[server]
	debounce_ms = 500
	max_query_len = 64

	[cli]
	limit = 20
	show_strict = true

	[dict]
	path = "data/data.json"

Flags given on the command line override the file.

# Command Line Flags

	    --data string        dataset file or directory (default from config)
	-d, --debug              debug logging
	-c, --cli                run the interactive CLI instead of the server
	    --limit int          maximum number of results
	    --max-distance int   largest edit distance counted as a hit
	    --strict             match Latin queries against the strict romanization
	    --convert string     write the dataset as a msgpack snapshot and exit
	    --config string      config file path
	    --reset-config       rewrite the default config file and exit
	    --version            show version
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	"github.com/toqtoga/bicig-toli/internal/cli"
	"github.com/toqtoga/bicig-toli/internal/logger"
	"github.com/toqtoga/bicig-toli/internal/utils"
	"github.com/toqtoga/bicig-toli/pkg/config"
	"github.com/toqtoga/bicig-toli/pkg/dictionary"
	"github.com/toqtoga/bicig-toli/pkg/search"
	"github.com/toqtoga/bicig-toli/pkg/server"
)

const (
	Version = "0.3.0"
	AppName = "bicig-toli"
	gh      = "https://github.com/toqtoga/bicig-toli"
)

// sigHandler exits normally on interrupt.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only wires the packages together; it holds no lookup logic.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dataPath := flag.String("data", "", "Dataset file or directory (default from config)")
	debugMode := flag.BoolP("debug", "d", false, "Toggle debug mode")
	cliMode := flag.BoolP("cli", "c", false, "Run the interactive CLI instead of the IPC server")
	limit := flag.Int("limit", defaults.Search.Limit, "Maximum number of results")
	maxDistance := flag.Int("max-distance", defaults.Search.MaxDistance, "Largest edit distance still counted as a hit")
	strict := flag.Bool("strict", false, "Match Latin queries against the strict romanization")
	convertTo := flag.String("convert", "", "Write the dataset as a msgpack snapshot to this path and exit")
	configPath := flag.String("config", "", "Config file path")
	resetConfig := flag.Bool("reset-config", false, "Rewrite the default config file with built-in defaults and exit")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	if *resetConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Rewrote %s\n", config.GetActiveConfigPath(""))
		return
	}

	cfg, usedConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: %s", config.GetActiveConfigPath(usedConfig))

	if flag.CommandLine.Changed("limit") {
		cfg.Search.Limit = *limit
		cfg.CLI.Limit = *limit
	}
	if flag.CommandLine.Changed("max-distance") {
		cfg.Search.MaxDistance = *maxDistance
	}
	if *strict {
		cfg.Search.Normalize = false
	}
	if *dataPath != "" {
		cfg.Dict.Path = *dataPath
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	if *debugMode {
		log.Debug("Runtime info", "info", pathResolver.GetRuntimeInfo())
	}

	datasetPath, err := pathResolver.ResolveDataFile(cfg.Dict.Path)
	if err != nil {
		log.Fatalf("Failed to resolve dataset: %v", err)
	}
	log.Debugf("Using dataset at: %s", datasetPath)

	if *convertTo != "" {
		n, err := dictionary.Convert(datasetPath, *convertTo)
		if err != nil {
			log.Fatalf("Conversion failed: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d entries to %s\n", n, *convertTo)
		return
	}

	dict, err := dictionary.Load(datasetPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	glossary := dictionary.NewGlossary(dict)

	engine, err := search.NewEngine(dict, cfg.SearchOptions(), cfg.Search.CacheSize)
	if err != nil {
		log.Fatalf("Failed to init search engine: %v", err)
	}

	if *cliMode {
		log.Debug("Input info:",
			"limit", cfg.CLI.Limit,
			"maxDistance", cfg.Search.MaxDistance,
			"normalize", cfg.Search.Normalize,
			"showStrict", cfg.CLI.ShowStrict)

		inputHandler := cli.NewInputHandler(engine, glossary, cfg.CLI.Limit, cfg.Server.MaxQueryLen, cfg.CLI.ShowStrict)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(engine, glossary, server.Options{
		Debounce:    cfg.DebounceWindow(),
		MaxQueryLen: cfg.Server.MaxQueryLen,
	})

	showStartupInfo(dict.GetStats())

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ Bicig Toli ] Mongolian glossary lookup in both scripts")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo prints basic info about the loaded dataset to stderr.
func showStartupInfo(stats dictionary.Stats) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("dataset: ( %s ) %d entries, %s", stats.Source, stats.Entries, stats.Format)
	log.Info("status: ready")
}
