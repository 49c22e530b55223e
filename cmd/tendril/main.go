// Command tendril is a smoke-test harness for the tendril package:
// validate pattern source, inspect its lowered form, run it against a
// JSON subject, and apply a single-binding rewrite.
//
// Usage:
//
//	tendril parse   <pattern-file>                         Validate a pattern
//	tendril inspect  <pattern-file>                        Show the pattern's lowered form
//	tendril match    <pattern-file> --subject <file.json>  Find matches in a JSON subject
//	tendril replace  <pattern-file> --subject <file.json> --name <binding> --value <json>
//	tendril version                                        Show version
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tendril-lang/tendril"
	"github.com/tendril-lang/tendril/pkg/value"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "parse":
		cmdParse(os.Args[2:])
	case "inspect":
		cmdInspect(os.Args[2:])
	case "match":
		cmdMatch(os.Args[2:])
	case "replace":
		cmdReplace(os.Args[2:])
	case "version":
		fmt.Printf("tendril v%s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tendril — pattern matching and rewriting for JSON-shaped trees

Usage:
  tendril parse    <pattern-file>                          Validate a pattern
  tendril inspect  <pattern-file>                          Show the pattern's lowered form
  tendril match    <pattern-file> --subject <file.json>    Find matches in a JSON subject
  tendril replace  <pattern-file> --subject <file.json> --name <binding> --value <json>
  tendril version                                          Show version
  tendril help                                             Show this message`)
}

func readFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return string(data)
}

func compile(path string) *tendril.Pattern {
	p, err := tendril.Compile(readFile(path), tendril.WithLogger(zap.NewNop()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %s\n  %v\n", path, err)
		os.Exit(1)
	}
	return p
}

func loadSubject(path string) value.Value {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	v, err := value.ParseJSON(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid JSON in %s: %v\n", path, err)
		os.Exit(1)
	}
	return v
}

func cmdParse(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: parse requires a pattern file path")
		os.Exit(1)
	}
	for _, path := range args {
		compile(path)
		fmt.Printf("✓ %s\n", path)
	}
}

func cmdInspect(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: inspect requires a pattern file path")
		os.Exit(1)
	}
	p := compile(args[0])
	fmt.Println(p.Source())
}

// flagArg finds the value following a named flag in args, e.g.
// flagArg(args, "--subject").
func flagArg(args []string, name string) (string, bool) {
	for i, a := range args {
		if a == name && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

func cmdMatch(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: match requires <pattern-file> --subject <file.json>")
		os.Exit(1)
	}
	subjectPath, ok := flagArg(args, "--subject")
	if !ok {
		fmt.Fprintln(os.Stderr, "error: --subject flag required")
		os.Exit(1)
	}

	p := compile(args[0])
	subject := loadSubject(subjectPath)

	count := 0
	for _, sol := range p.Solutions(subject).ToArray() {
		count++
		fmt.Printf("[%d] match\n", count)
		for name, v := range sol.AllValues() {
			enc, _ := value.EncodeJSON(v, "")
			fmt.Printf("    $%s = %s\n", name, enc)
		}
	}

	if count == 0 {
		fmt.Println("No matches found.")
	} else {
		fmt.Printf("\nTotal: %d match(es)\n", count)
	}
}

func cmdReplace(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: replace requires <pattern-file> --subject <file.json> --name <binding> --value <json>")
		os.Exit(1)
	}
	subjectPath, ok := flagArg(args, "--subject")
	if !ok {
		fmt.Fprintln(os.Stderr, "error: --subject flag required")
		os.Exit(1)
	}
	name, ok := flagArg(args, "--name")
	if !ok {
		fmt.Fprintln(os.Stderr, "error: --name flag required")
		os.Exit(1)
	}
	rawValue, ok := flagArg(args, "--value")
	if !ok {
		fmt.Fprintln(os.Stderr, "error: --value flag required")
		os.Exit(1)
	}

	p := compile(args[0])
	subject := loadSubject(subjectPath)
	replacement, err := value.ParseJSON([]byte(rawValue))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid --value JSON: %v\n", err)
		os.Exit(1)
	}

	out, ok := p.Replace(subject, name, replacement)
	if !ok {
		fmt.Println("No match found; subject unchanged.")
		return
	}
	enc, err := value.EncodeJSON(out, "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(enc))
}
