package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"blockc/block"
	"blockc/config"
	"blockc/gen"
	"blockc/php"

	"gopkg.in/fsnotify.v1"
)

func main() {
	configPath := flag.String("config", "", "Config file (YAML)")
	outPath := flag.String("o", "", "Output file (default stdout)")
	indent := flag.String("indent", "", "Indentation of nested statements and helper bodies (overrides config)")
	noOpenTag := flag.Bool("no-open-tag", false, "Omit the <?php open tag")

	// Trace flags
	traceEnabled := flag.Bool("trace", false, "Enable emission tracing")
	traceFilter := flag.String("trace-filter", "", "Trace filter pattern (glob, e.g., 'lists_*' or 'text_*')")

	watch := flag.Bool("watch", false, "Recompile whenever the program file changes")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: blockc [flags] program.yaml\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	src := flag.Arg(0)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *indent != "" {
		cfg.Indent = *indent
	}
	if *noOpenTag {
		cfg.OpenTag = false
	}
	if *traceEnabled {
		cfg.Trace.Enabled = true
	}
	if *traceFilter != "" {
		cfg.SetFilters(*traceFilter)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}
	if cfg.Trace.Enabled {
		log.Printf("Tracing enabled (filters: %v)", cfg.Trace.Filters)
	}

	g := php.New(cfg.Options(os.Stderr))

	if err := build(g, cfg, src, *outPath); err != nil {
		if !*watch {
			log.Fatal(err)
		}
		log.Println("error:", err)
	}
	if *watch {
		if err := watchProgram(g, cfg, src, *outPath); err != nil {
			log.Fatal(err)
		}
	}
}

// compile translates one program file.
func compile(g *gen.Generator, cfg config.Config, src string) (string, error) {
	prog, err := block.Load(src)
	if err != nil {
		return "", err
	}
	out, err := g.Compile(prog)
	if err != nil {
		return "", fmt.Errorf("%s: %w", src, err)
	}
	if cfg.OpenTag {
		out = php.OpenTag + "\n" + out
	}
	return out, nil
}

// build compiles src and writes the result to dst, or stdout when dst is
// empty. Nothing is written when compilation fails.
func build(g *gen.Generator, cfg config.Config, src, dst string) error {
	out, err := compile(g, cfg, src)
	if err != nil {
		return err
	}
	if dst == "" {
		_, err = os.Stdout.WriteString(out)
		return err
	}
	return os.WriteFile(dst, []byte(out), 0o644)
}

// watchProgram rebuilds on every change to src. It watches the directory,
// since editors often replace a file instead of writing it in place.
func watchProgram(g *gen.Generator, cfg config.Config, src, dst string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	abs, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	log.Printf("Watching %s", src)

	for {
		select {
		case event := <-watcher.Events:
			if !relevant(event, abs) {
				continue
			}
			log.Println("modified " + src)
			if err := build(g, cfg, src, dst); err != nil {
				log.Println("error:", err)
			}

		case err := <-watcher.Errors:
			log.Println("error:", err)
		}
	}
}

// relevant reports whether event changed the file at abs.
func relevant(event fsnotify.Event, abs string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != abs {
		return false
	}
	return event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create
}
