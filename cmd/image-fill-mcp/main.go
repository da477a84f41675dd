package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-fill-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-fill-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "apply":
			setupLogging()
			if err := runApply(os.Args[2:], os.Stdout); err != nil {
				log.Printf("apply failed: %v", err)
				os.Exit(1)
			}
			return
		}
	}

	// stdout is for the MCP protocol
	setupLogging()
	if os.Getenv("IMAGE_FILL_LOG_LEVEL") == "debug" {
		log.Printf("Image Fill MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if Version != "dev" {
		server.Version = Version
	}
	srv := server.New()
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func setupLogging() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}

func printHelp() {
	fmt.Println("image-fill-mcp - MCP server for region-based image fills")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  image-fill-mcp [options]")
	fmt.Println("  image-fill-mcp apply -in <image> -out <image> -job <job.toml|yaml|json> [-seed N] [-tolerance N]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  IMAGE_FILL_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println()
	fmt.Println("Without a command the server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
