package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/curranmax/ImageFeatures/internal/imaging"
	"github.com/curranmax/ImageFeatures/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-features %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-features - MCP server for image feature extraction")
			fmt.Println()
			fmt.Println("Usage: image-features [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_FEATURES_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println("  IMAGE_FEATURES_MAX_SIDE=N         Downscale images so neither side exceeds N pixels")
			fmt.Println("  IMAGE_FEATURES_HTTP_ADDR=:8080    Serve JSON-RPC over HTTP instead of stdio")
			fmt.Println()
			fmt.Println("Variables may also be set in a .env file in the working directory.")
			fmt.Println()
			fmt.Println("By default this server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// A missing .env file is not an error; the process environment wins.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to load .env: %v", err)
	}

	debug := os.Getenv("IMAGE_FEATURES_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("Image Features Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	var opts imaging.Options
	if v := os.Getenv("IMAGE_FEATURES_MAX_SIDE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Fatalf("Invalid IMAGE_FEATURES_MAX_SIDE %q: must be a non-negative integer", v)
		}
		opts.MaxSide = n
	}
	if debug && opts.MaxSide > 0 {
		log.Printf("Downscaling images to at most %d pixels per side", opts.MaxSide)
	}

	srv := server.New(opts)
	if addr := os.Getenv("IMAGE_FEATURES_HTTP_ADDR"); addr != "" {
		if err := srv.ServeHTTP(addr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
