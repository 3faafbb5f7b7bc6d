// Command jsonmap is a small utility around the conversion engine: reformat
// JSON, check syntax with byte offsets, and convert YAML documents to JSON.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	jsonmap "github.com/kyantra/jsonmap"
	"github.com/kyantra/jsonmap/yamlconv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "fmt":
		fmtCmd(os.Args[2:])
	case "check":
		checkCmd(os.Args[2:])
	case "from-yaml":
		fromYAMLCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `jsonmap CLI

Usage:
  jsonmap fmt [-indent STR] [-nulls] [FILE]
  jsonmap check [FILE]
  jsonmap from-yaml [-indent STR] [FILE]

FILE defaults to stdin.`)
}

func readInput(args []string) ([]byte, error) {
	if len(args) > 0 && args[0] != "-" {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

func fmtCmd(args []string) {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	indent := fs.String("indent", "  ", "indentation unit; empty for compact output")
	nulls := fs.Bool("nulls", false, "keep null members")
	_ = fs.Parse(args)

	data, err := readInput(fs.Args())
	if err != nil {
		fatal(err)
	}
	v, err := jsonmap.Parse(data)
	if err != nil {
		fatal(err)
	}
	emit(v, *indent, *nulls)
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	_ = fs.Parse(args)

	data, err := readInput(fs.Args())
	if err != nil {
		fatal(err)
	}
	if _, err := jsonmap.Parse(data); err != nil {
		fatal(err)
	}
	fmt.Println("ok")
}

func fromYAMLCmd(args []string) {
	fs := flag.NewFlagSet("from-yaml", flag.ExitOnError)
	indent := fs.String("indent", "  ", "indentation unit; empty for compact output")
	_ = fs.Parse(args)

	data, err := readInput(fs.Args())
	if err != nil {
		fatal(err)
	}
	docs, err := yamlconv.ParseAll(data)
	if err != nil {
		fatal(err)
	}
	for _, v := range docs {
		emit(v, *indent, true)
	}
}

func emit(v jsonmap.Value, indent string, nulls bool) {
	b := jsonmap.NewContext().SerializeNulls(nulls)
	if indent != "" {
		b.Indent(indent)
	}
	text, err := jsonmap.Encode(b.Build(), v)
	if err != nil {
		fatal(err)
	}
	fmt.Println(text)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "jsonmap:", err)
	os.Exit(1)
}
