package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/krellek/perltidyd/internal/config"
	"github.com/krellek/perltidyd/internal/lsp"
	"github.com/krellek/perltidyd/internal/server"
	"github.com/spf13/pflag"
)

const (
	name    = "perltidyd"
	version = "0.2.0"
)

func main() {
	configPath := pflag.String("config", "", "path to a YAML configuration file")
	logLevel := pflag.String("log-level", "", "log level: debug, info, warn, error")
	logFile := pflag.String("log-file", "", "log destination, stderr when empty")
	showVersion := pflag.BoolP("version", "V", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", name, version)
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}

	initLogging(cfg.Log)
	slog.Info("Logging initialized", "level", cfg.Log.Level)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	scanner.Split(lsp.Split)

	srv := server.NewServer(name, version, server.NewState(), cfg.Settings(), os.Stdout)

	for scanner.Scan() {
		msg := scanner.Bytes()
		method, contents, err := lsp.DecodeMessage(msg)
		if err != nil {
			slog.Error("ERROR decoding message", "err", err)
			continue
		}
		srv.HandleMessage(method, contents)
	}
	srv.Stop()
}

func initLogging(logCfg config.Log) {
	var level slog.Level
	switch logCfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// stdout belongs to the protocol, logs go to a file or stderr.
	out := os.Stderr
	if logCfg.File != "" {
		logfile, err := os.OpenFile(logCfg.File, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
		if err == nil {
			out = logfile
		} else {
			fmt.Fprintf(os.Stderr, "%s: cannot open log file: %v\n", name, err)
		}
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
