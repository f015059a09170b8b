package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"timeline/app/config"
	"timeline/app/i18n"
	applog "timeline/app/log"
	"timeline/cli"
)

const CliVersion = "1.0.0"

// exit is swapped out by tests
var exit = os.Exit

func main() {
	RealMain()
}

func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("timeline version %s\n", CliVersion)
	case "serve":
		serve()
	case "check":
		check(os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: timeline <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the feed web server (configured by TIMELINE_* variables or .env).
  check [--locale <tag>] [file]  Validate a YAML feed file (default: the built-in feed) and print its posts.
`
	fmt.Println(helpText)
}

// serve runs the web server until SIGINT or SIGTERM.
func serve() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		exit(1)
		return
	}
	applog.Init(cfg.LogLevel, cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Serve(ctx, cfg); err != nil {
		applog.Log.WithError(err).Error("Server failed")
		exit(1)
	}
}

// check validates a feed file without starting the server.
func check(args []string) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	locale := fs.String("locale", i18n.PortugueseBR, "label locale (pt_BR or en)")
	if err := fs.Parse(args); err != nil {
		exit(1)
		return
	}

	if err := cli.Check(os.Stdout, fs.Arg(0), *locale, time.Now()); err != nil {
		fmt.Printf("Error: %v\n", err)
		exit(1)
	}
}
