package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/thechupa55/CP/internal/config"
	"github.com/thechupa55/CP/internal/server"
	"github.com/thechupa55/CP/internal/util"
)

var (
	port    = flag.Int("port", 0, "server port (config.toml wins when it sets one explicitly)")
	devMode = flag.Bool("dev", false, "development mode")
	dataDir = flag.String("dataDir", "", "data directory (overrides config.toml)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  MEAL Counter - monitoring report tool")
	fmt.Println("==========================================")

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// Command-line flags fill the gaps the config file left open.
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Printf("failed to create data directory: %v", err)
	} else {
		fmt.Printf("data directory: %s\n", dir)
	}

	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("listening on port %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("opening browser: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("could not open a browser, visit %s manually\n", url)
		}
	} else {
		fmt.Printf("development mode: visit %s\n", url)
	}

	fmt.Println("\npress Ctrl+C to stop...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nshutting down...")
}
