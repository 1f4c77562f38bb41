// Package main provides the webpilot browser-automation CLI. An
// orchestrator starts webpilot, and drives the browser through
// line-oriented commands on stdin; after every URL-changing action
// webpilot emits the instruction context that applies to the new page.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/webpilothq/webpilot/pkg/browser"
	appconfig "github.com/webpilothq/webpilot/pkg/config"
	"github.com/webpilothq/webpilot/pkg/instructions"
	"github.com/webpilothq/webpilot/pkg/logging"
)

const version = "0.1.0"

// Config holds the resolved command-line configuration.
type Config struct {
	URL             string
	InstructionsDir string
	MultiTenant     bool
	Headless        bool
	HeadlessSet     bool
	ConfigPath      string
	ShowVersion     bool
}

func main() {
	cfg := parseFlags()
	if cfg.ShowVersion {
		fmt.Printf("webpilot v%s\n", version)
		return
	}
	if err := run(cfg); err != nil {
		log.Fatalf("webpilot: %v", err)
	}
}

func parseFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.URL, "url", "", "URL to open after the session starts")
	flag.StringVar(&cfg.InstructionsDir, "instructions", "", "instruction store directory (overrides config)")
	flag.BoolVar(&cfg.MultiTenant, "multi-tenant", false, "treat top-level store directories as domain-bound instruction sets")
	flag.BoolVar(&cfg.Headless, "headless", true, "run the browser without a window")
	flag.StringVar(&cfg.ConfigPath, "config", "", "settings file (default ~/.webpilot/config.json)")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "print version and exit")
	flag.Parse()
	// A bool flag's default is indistinguishable from its value, so record
	// whether -headless was actually passed before letting it override the
	// config file.
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "headless" {
			cfg.HeadlessSet = true
		}
	})
	return cfg
}

// applyOverrides layers explicitly-passed flags over the loaded settings.
// Values absent from the command line keep their config-file values.
func applyOverrides(settings appconfig.Settings, cfg Config) appconfig.Settings {
	if cfg.InstructionsDir != "" {
		settings.InstructionsDir = cfg.InstructionsDir
	}
	if cfg.MultiTenant {
		settings.MultiTenant = true
	}
	if cfg.HeadlessSet {
		settings.Headless = cfg.Headless
	}
	return settings
}

func run(cfg Config) error {
	settingsPath := cfg.ConfigPath
	if settingsPath == "" {
		path, err := appconfig.DefaultPath()
		if err != nil {
			return err
		}
		settingsPath = path
	}
	settings, err := appconfig.Load(settingsPath)
	if err != nil {
		return err
	}
	settings = applyOverrides(settings, cfg)

	logger, logErr := logging.New("webpilot")
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: file logging degraded: %v\n", logErr)
	}
	defer logger.Close()

	store := instructions.NewDirStore(settings.InstructionsDir, logger)
	resolver := instructions.NewResolver(store, instructions.Options{
		MultiTenant: settings.MultiTenant,
		Logger:      logger,
	})

	manager := browser.NewManager(resolver, logger)
	manager.SetPageContext(settings.PageContext)
	if err := manager.Initialize(); err != nil {
		return err
	}
	defer manager.Shutdown()

	// Close the browser on SIGINT/SIGTERM instead of leaving it orphaned.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		manager.Shutdown()
		os.Exit(1)
	}()

	session, err := manager.Start(browser.SessionOptions{Headless: settings.Headless})
	if err != nil {
		return err
	}

	if cfg.URL != "" {
		if err := session.Navigate(cfg.URL, browser.NavigateOptions{}); err != nil {
			return err
		}
		reportPage(manager, session)
	}

	return commandLoop(manager, session, logger, settings, settingsPath)
}

// commandLoop reads one orchestrator command per line until quit or EOF.
func commandLoop(manager *browser.Manager, session *browser.Session, logger *logging.Logger, settings appconfig.Settings, settingsPath string) error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		logger.Debugf("command: %s", line)

		switch cmd {
		case "quit", "exit":
			return nil

		case "navigate":
			if rest == "" {
				fmt.Println("error: navigate requires a URL")
				continue
			}
			if err := session.Navigate(rest, browser.NavigateOptions{}); err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			reportPage(manager, session)

		case "click":
			if rest == "" {
				fmt.Println("error: click requires a selector")
				continue
			}
			if err := session.Click(rest); err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			reportPage(manager, session)

		case "fill":
			selector, value, ok := strings.Cut(rest, " ")
			if !ok {
				fmt.Println("error: fill requires a selector and a value")
				continue
			}
			if err := session.Fill(selector, value); err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Println("ok")

		case "extract":
			text, err := session.ExtractContent(browser.ExtractOptions{IncludeTitle: true})
			if err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Println(text)

		case "screenshot":
			if rest == "" {
				rest = "page.png"
			}
			if err := session.Screenshot(rest, true); err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Printf("screenshot written to %s\n", rest)

		case "context":
			// Re-emit the current page's instruction context on demand.
			if context, ok := manager.PageContext(session.CurrentURL); ok {
				fmt.Println(context)
			} else {
				fmt.Println("no page context")
			}

		case "clear-cache":
			manager.ClearContextCache()
			fmt.Println("instruction caches cleared")

		case "save-config":
			// Persist the effective settings (config file + flag
			// overrides) so the next run starts from them.
			if err := settings.Save(settingsPath); err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Printf("settings saved to %s\n", settingsPath)

		default:
			fmt.Printf("error: unknown command %q\n", cmd)
		}
	}
	return scanner.Err()
}

// reportPage prints the outcome of a URL-changing action: the landed URL,
// the title, and any instruction context for the new page.
func reportPage(manager *browser.Manager, session *browser.Session) {
	fmt.Printf("url: %s\ntitle: %s\n", session.CurrentURL, session.Title())
	if context, ok := manager.PageContext(session.CurrentURL); ok {
		fmt.Println(context)
	}
}
