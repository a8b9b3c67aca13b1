// Package main implements the gones NES emulator executable.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gones/internal/app"
	"gones/internal/version"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "Path to NES ROM file (required)")
		configFile = flag.String("config", "", "Path to configuration file")
		nogui      = flag.Bool("nogui", false, "Run without a window (headless mode)")
		showVer    = flag.Bool("version", false, "Show version information")
	)
	flag.Usage = printUsage
	flag.Parse()

	if *showVer {
		version.PrintBuildInfo()
		os.Exit(0)
	}
	if *romFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	setupGracefulShutdown()

	configPath := *configFile
	if configPath == "" {
		configPath = app.DefaultConfigPath()
	}

	application, err := app.NewApplication(configPath, *romFile)
	if err != nil {
		log.Fatalf("gones: %v", err)
	}
	defer func() {
		if err := application.Cleanup(); err != nil {
			log.Printf("gones: cleanup: %v", err)
		}
	}()

	if err := application.Initialize(*nogui); err != nil {
		log.Fatalf("gones: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("gones: %v", err)
	}

	fmt.Printf("gones: rendered %d frames (%.1f fps average)\n", application.FrameCount(), application.AverageFPS())
}

func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\ngones: interrupt received, shutting down")
		os.Exit(0)
	}()
}

func printUsage() {
	fmt.Println("gones - a NES emulator core")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  gones -rom <file> [options]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("CONTROLS (player 1, default mapping):")
	fmt.Println("  Arrow keys / WASD  D-pad")
	fmt.Println("  J                  A button")
	fmt.Println("  K                  B button")
	fmt.Println("  Enter              Start")
	fmt.Println("  Space              Select")
}
