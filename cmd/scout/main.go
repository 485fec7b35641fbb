// Command scout checks a skincare ingredient list for known conflicts.
//
//	scout "Retinol, Glycolic Acid"
//	echo "Vitamin C; Niacinamide" | scout -json
//
// With -api (or SCOUT_API_URL) the list is sent to a running server; when the
// server cannot be reached the built-in rules answer instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"skinscout/internal/analysis"
	"skinscout/internal/config"
	"skinscout/internal/remote"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("scout", flag.ContinueOnError)
	fs.SetOutput(stderr)
	apiURL := fs.String("api", os.Getenv("SCOUT_API_URL"), "analysis server base URL (empty for local only)")
	timeout := fs.Duration("timeout", 5*time.Second, "server request timeout")
	catalogPath := fs.String("catalog", "", "YAML catalog file for local rules")
	asJSON := fs.Bool("json", false, "print the verdict as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	raw, err := readInput(fs.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "scout: %v\n", err)
		return 1
	}

	ingredients := analysis.Tokenize(raw)
	if len(ingredients) == 0 {
		fmt.Fprintln(stderr, "scout: please enter at least one ingredient")
		return 2
	}

	engine := analysis.Default()
	if *catalogPath != "" {
		engine, err = config.LoadEngine(*catalogPath)
		if err != nil {
			fmt.Fprintf(stderr, "scout: %v\n", err)
			return 1
		}
	}

	var classifier analysis.Classifier = analysis.Local{Engine: engine}
	if *apiURL != "" {
		client, err := remote.New(*apiURL, remote.WithTimeout(*timeout), remote.WithCacheSize(0))
		if err != nil {
			fmt.Fprintf(stderr, "scout: %v\n", err)
			return 2
		}
		classifier = &analysis.Fallback{
			Primary:   client,
			Secondary: classifier,
			OnFallback: func(err error) {
				fmt.Fprintf(stderr, "scout: server not available, using local rules: %v\n", err)
			},
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+time.Second)
	defer cancel()

	verdict, err := classifier.Classify(ctx, ingredients)
	if err != nil {
		fmt.Fprintf(stderr, "scout: %v\n", err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(verdict); err != nil {
			fmt.Fprintf(stderr, "scout: %v\n", err)
			return 1
		}
		return 0
	}

	printVerdict(stdout, ingredients, verdict)
	return 0
}

func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, "\n"), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func printVerdict(w io.Writer, ingredients []string, v analysis.Verdict) {
	title := "It's Safe To Use!"
	if v.Status == analysis.StatusDanger {
		title = "Danger"
	}
	fmt.Fprintf(w, "%s\n", title)
	fmt.Fprintf(w, "Risk Score: %d/100\n", v.RiskScore)
	fmt.Fprintf(w, "Ingredients: %s\n\n", strings.Join(ingredients, ", "))
	fmt.Fprintln(w, v.Summary)
}
