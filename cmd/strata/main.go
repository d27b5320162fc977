package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/strataforge/strata"
	"github.com/strataforge/strata/internal/cliutil"
	"github.com/strataforge/strata/pipeline"
	"github.com/strataforge/strata/recipe"
)

// validCommands lists all valid command names for typo suggestions
var validCommands = []string{
	"apply", "version", "help",
}

// levenshteinDistance calculates the minimum edit distance between two strings
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Create matrix
	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range len(b) + 1 {
		matrix[0][j] = j
	}

	// Fill matrix
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

// suggestCommand returns the closest matching command if the edit distance is <= 2
func suggestCommand(input string) string {
	var bestMatch string
	bestDistance := 3 // Only suggest if distance <= 2

	for _, cmd := range validCommands {
		dist := levenshteinDistance(input, cmd)
		if dist < bestDistance {
			bestDistance = dist
			bestMatch = cmd
		}
	}

	return bestMatch
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("strata v%s\n", strata.Version())
		fmt.Printf("commit: %s\n", strata.Commit())
		fmt.Printf("built: %s\n", strata.BuildTime())
		fmt.Printf("go: %s\n", strata.GoVersion())
	case "help", "-h", "--help":
		printUsage()
	case "apply":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := handleApply(ctx, os.Args[2:]); err != nil {
			cliutil.Writef(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}
}

// handleApply parses the recipe, runs the composition pipeline, and
// writes the final filesystem to the output directory.
func handleApply(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	recipePath := fs.String("recipe", pipeline.DefaultRecipeFile, "recipe file, relative to the working directory")
	workDir := fs.String("workdir", ".", "working directory to merge local files from")
	outDir := fs.String("out", "", "output directory (defaults to the working directory)")
	cacheDir := fs.String("cache-dir", defaultCacheDir(), "repository cache directory")
	jobs := fs.Int("jobs", pipeline.DefaultJobs, "parallel source fetches per dependency level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := os.ReadFile(filepath.Join(*workDir, *recipePath))
	if err != nil {
		return err
	}
	rec, err := recipe.Parse(data)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(ctx, rec, pipeline.Options{
		WorkDir:    *workDir,
		CacheDir:   *cacheDir,
		RecipeFile: *recipePath,
		Jobs:       *jobs,
	})
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		cliutil.Writef(os.Stderr, "Warning: %s\n", w)
	}

	target := *outDir
	if target == "" {
		target = *workDir
	}
	if err := result.VFS.WriteTo(target); err != nil {
		return err
	}

	stats := result.VFS.Stats()
	fmt.Printf("Applied %d files (%d bytes) to %s\n", stats.FileCount, stats.TotalSize, target)
	return nil
}

// defaultCacheDir places the clone cache under the user cache directory,
// falling back to a dot directory in HOME.
func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "strata", "repos")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".strata-cache"
	}
	return filepath.Join(home, ".strata", "repos")
}

func printUsage() {
	fmt.Println(`strata - configuration inheritance for repositories

Usage:
  strata <command> [options]

Commands:
  apply       Fetch inherited sources and materialize the recipe's result
  version     Show version information
  help        Show this help message

Examples:
  strata apply
  strata apply -recipe .strata.yaml -out ./build
  strata apply -workdir ./service -cache-dir /tmp/strata-cache

Run 'strata apply --help' for more information on apply's options.`)
}
