// Command ui-finder locates interactive UI elements in game screenshots.
//
// It is a thin JSON wrapper around the matching and detection packages:
// screenshot capture and click decisions belong to the automation layer
// driving this binary. Results go to stdout as a single JSON object; logs go
// to stderr.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"ui-finder/internal/detection"
	"ui-finder/internal/matching"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Logs to stderr; stdout carries only the JSON result.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "match":
		runMatch(os.Args[2:])
	case "detect":
		runDetect(os.Args[2:])
	case "--version", "-v", "version":
		fmt.Printf("ui-finder %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
	case "--help", "-h", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("ui-finder - locate UI elements in game screenshots")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ui-finder match -screenshot <data|path> -template <data|path> [options]")
	fmt.Println("  ui-finder detect -image <data|path> [options]")
	fmt.Println()
	fmt.Println("Image inputs accept base64 payloads (with or without a data: prefix),")
	fmt.Println("raw encoded bytes, or file paths.")
	fmt.Println()
	fmt.Println("Match options:")
	fmt.Println("  -threshold float   confidence floor, 0-1 (default 0.7)")
	fmt.Println("  -method string     ccoeff_normed | ccorr_normed | sqdiff_normed")
	fmt.Println("  -multiscale        try multiple template scales (default true)")
	fmt.Println()
	fmt.Println("Detect options:")
	fmt.Println("  -min-area int      minimum element area in pixels (default 400)")
	fmt.Println("  -max-area int      maximum element area, 0 = half the image")
}

type matchResult struct {
	Success bool             `json:"success"`
	Matches []matching.Match `json:"matches"`
	Count   int              `json:"count"`
}

func runMatch(args []string) {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	screenshot := fs.String("screenshot", "", "screenshot payload or path")
	template := fs.String("template", "", "template payload or path")
	threshold := fs.Float64("threshold", matching.DefaultThreshold, "confidence threshold")
	methodName := fs.String("method", "ccoeff_normed", "matching method")
	multiScale := fs.Bool("multiscale", true, "match at multiple scales")
	fs.Parse(args)

	if *screenshot == "" || *template == "" {
		fmt.Fprintln(os.Stderr, "match requires -screenshot and -template")
		os.Exit(1)
	}

	method, err := matching.ParseMethod(*methodName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	matcher := matching.New(*threshold, method)
	matches := matcher.FindMatchesData(*screenshot, *template, *multiScale)
	if matches == nil {
		matches = []matching.Match{}
	}

	writeJSON(matchResult{Success: true, Matches: matches, Count: len(matches)})
}

type detectResult struct {
	Success  bool                `json:"success"`
	Elements []detection.Element `json:"elements"`
	Count    int                 `json:"count"`
}

func runDetect(args []string) {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	input := fs.String("image", "", "screenshot payload or path")
	minArea := fs.Int("min-area", detection.DefaultMinArea, "minimum element area")
	maxArea := fs.Int("max-area", 0, "maximum element area (0 = half the image)")
	fs.Parse(args)

	if *input == "" {
		fmt.Fprintln(os.Stderr, "detect requires -image")
		os.Exit(1)
	}

	elements := detection.DetectUIElementsData(*input, detection.Options{
		MinArea: *minArea,
		MaxArea: *maxArea,
	})
	if elements == nil {
		elements = []detection.Element{}
	}

	writeJSON(detectResult{Success: true, Elements: elements, Count: len(elements)})
}

func writeJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(v); err != nil {
		log.Fatalf("failed to encode result: %v", err)
	}
}
