package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/wippyai/luadump"
	"github.com/wippyai/luadump/chunk"
	"github.com/wippyai/luadump/disasm"
)

type config struct {
	opt         chunk.Options
	color       string
	interactive bool
	verbose     bool
	dump        bool
	check       bool
}

func main() {
	var cfg config
	flag.BoolVar(&cfg.interactive, "i", false, "Interactive mode with TUI")
	flag.StringVar(&cfg.color, "color", "auto", "Colorize output: auto, always or never")
	flag.BoolVar(&cfg.verbose, "v", false, "Log decoder progress to stderr")
	flag.BoolVar(&cfg.dump, "dump", false, "Dump the decoded tree instead of the listing")
	flag.BoolVar(&cfg.check, "check", false, "Reject chunks whose debug arrays disagree with their code")
	flag.IntVar(&cfg.opt.MaxDepth, "max-depth", chunk.DefaultMaxDepth, "Maximum function nesting depth")
	flag.IntVar(&cfg.opt.MaxCount, "max-count", chunk.DefaultMaxCount, "Maximum entries in any counted block")
	flag.IntVar(&cfg.opt.MaxStringLen, "max-string", chunk.DefaultMaxStringLen, "Maximum string length in bytes")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: luadump [-color auto|always|never] [-check] [-dump] [-v] <file.luac>...")
		fmt.Fprintln(os.Stderr, "       luadump -i <file.luac>  (interactive mode)")
		os.Exit(1)
	}

	if err := run(cfg, files, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config, files []string, out io.Writer) error {
	if cfg.verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer func() { _ = log.Sync() }()
		chunk.SetLogger(log.Named("chunk"))
		disasm.SetLogger(log.Named("disasm"))
	}

	if cfg.interactive {
		if len(files) != 1 {
			return fmt.Errorf("interactive mode takes exactly one file, got %d", len(files))
		}
		return runInteractive(files[0], cfg.opt)
	}

	color, err := colorEnabled(cfg.color)
	if err != nil {
		return err
	}

	for _, path := range files {
		c, err := chunk.DecodeFile(path, cfg.opt)
		if err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		if cfg.check {
			if err := c.Main.Validate(); err != nil {
				return fmt.Errorf("check %s: %w", path, err)
			}
		}
		if cfg.dump {
			dumpChunk(out, c)
			continue
		}
		lines := disasm.Render(&c.Main)
		if color {
			for i := range lines {
				lines[i] = styleLine(lines[i])
			}
		}
		if err := luadump.WriteListing(out, lines); err != nil {
			return err
		}
	}
	return nil
}

func dumpChunk(w io.Writer, c *chunk.Chunk) {
	cs := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	cs.Fdump(w, c)
}
