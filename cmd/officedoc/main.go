// officedoc converts a Word, Excel, or PowerPoint package to Markdown,
// plain text, or JSON on the command line.
//
// Run:
//
//	go run ./cmd/officedoc --format markdown input.docx
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/vortex/officedoc/pkg/officedoc"
	"github.com/vortex/officedoc/pkg/officedoc/model"
	"github.com/vortex/officedoc/pkg/officedoc/render"
)

func main() {
	format := flag.String("format", "markdown", "output format: markdown, text, or json")
	headingLevel := flag.Int("max-heading-level", 4, "maximum heading level to emit")
	cleanupPreset := flag.String("cleanup", "default", "cleanup preset: none, minimal, default, aggressive")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: officedoc [flags] <input-file>")
	}
	path := flag.Arg(0)

	doc, err := officedoc.ParseFile(path)
	if err != nil {
		log.Fatalf("parsing %s: %v", path, err)
	}

	opts := render.DefaultOptions()
	opts.MaxHeadingLevel = *headingLevel
	if preset, ok := parsePreset(*cleanupPreset); ok {
		opts.Cleanup = render.NewCleanupOptions(preset)
	}

	out, err := renderDoc(doc, *format, opts)
	if err != nil {
		log.Fatalf("rendering %s: %v", path, err)
	}

	fmt.Fprint(os.Stdout, out)
}

func parsePreset(name string) (render.CleanupPreset, bool) {
	switch name {
	case "minimal":
		return render.CleanupMinimal, true
	case "default":
		return render.CleanupDefault, true
	case "aggressive":
		return render.CleanupAggressive, true
	default:
		return 0, false
	}
}

func renderDoc(doc *model.Document, format string, opts *render.Options) (string, error) {
	switch format {
	case "markdown":
		return officedoc.ToMarkdown(doc, opts)
	case "text":
		return officedoc.ToText(doc, opts)
	case "json":
		return officedoc.ToJSON(doc, render.JSONPretty)
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
}
