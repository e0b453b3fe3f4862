// Package resourcecompiler compiles the resource documents of a directory
// into a bundle file.
package resourcecompiler

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/spore-warriors-resources/internal/compiler"
	entrypoint "github.com/louisbranch/spore-warriors-resources/internal/platform/cmd"
	"github.com/louisbranch/spore-warriors-resources/internal/resource"
	"github.com/louisbranch/spore-warriors-resources/internal/services/compiler/storage"
	compilersqlite "github.com/louisbranch/spore-warriors-resources/internal/services/compiler/storage/sqlite"
)

const (
	defaultDir  = "resources"
	buildSource = "cli"
)

// Config holds configuration for the resource compiler.
type Config struct {
	Dir      string `env:"SPORE_WARRIORS_RESOURCES_DIR"`
	Out      string `env:"SPORE_WARRIORS_RESOURCES_OUT"`
	Manifest string `env:"SPORE_WARRIORS_RESOURCES_MANIFEST"`
	DBPath   string `env:"SPORE_WARRIORS_COMPILER_DB_PATH"`
	Addr     string `env:"SPORE_WARRIORS_COMPILER_ADDR"`
	Remote   bool
	DryRun   bool
	Verify   bool
	History  int
}

// ParseConfig parses environment and CLI flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigWithFlags(&cfg, fs, args, registerFlags); err != nil {
		return Config{}, err
	}

	if cfg.History < 0 {
		return Config{}, errors.New("history must not be negative")
	}
	if cfg.History > 0 && strings.TrimSpace(cfg.DBPath) == "" {
		return Config{}, errors.New("history requires db-path")
	}
	return cfg, nil
}

func registerFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory containing the resource documents (default: resources)")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "bundle output path (default: "+compiler.DefaultOutput+")")
	fs.StringVar(&cfg.Manifest, "manifest", cfg.Manifest, "optional YAML manifest naming the documents and output")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "build database path; empty disables build recording")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "compile without writing the bundle or recording the build")
	fs.BoolVar(&cfg.Verify, "verify", false, "decode the bundle back and check it against the documents")
	fs.IntVar(&cfg.History, "history", 0, "print the most recent recorded builds")
	fs.BoolVar(&cfg.Remote, "remote", false, "compile through the compiler service instead of in-process")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "compiler service address used with -remote (default: compiler:8095)")
}

// Run compiles the documents described by cfg and writes a summary to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	layout, dest, err := resolveLayout(cfg)
	if err != nil {
		return err
	}

	compile := compileLocal
	if cfg.Remote {
		compile = compileRemote
	}
	result, err := compile(ctx, cfg, layout)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	if cfg.DryRun {
		printSummary(p, out, result, "")
	} else {
		if err := compiler.WriteBundle(dest, result.Bytes); err != nil {
			return err
		}
		printSummary(p, out, result, dest)
	}

	if strings.TrimSpace(cfg.DBPath) == "" || (cfg.DryRun && cfg.History == 0) {
		return nil
	}
	store, err := openBuildStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if !cfg.DryRun {
		build := storage.Build{
			Digest:    result.Digest,
			Bundle:    result.Bytes,
			Counts:    result.Counts,
			Source:    buildSource,
			CreatedAt: time.Now().UTC(),
		}
		if err := store.PutBuild(ctx, build); err != nil {
			return fmt.Errorf("record build: %w", err)
		}
		p.Fprintf(out, "recorded build in %s\n", cfg.DBPath)
	}

	if cfg.History == 0 {
		return nil
	}
	builds, err := store.ListBuilds(ctx, cfg.History)
	if err != nil {
		return fmt.Errorf("list builds: %w", err)
	}
	printHistory(p, out, builds)
	return nil
}

func compileLocal(ctx context.Context, cfg Config, layout compiler.Layout) (compiler.Result, error) {
	b, err := compiler.NewLoader(layout).LoadAll(ctx)
	if err != nil {
		return compiler.Result{}, err
	}
	result, err := compiler.CompilePools(ctx, b)
	if err != nil {
		return compiler.Result{}, err
	}
	if cfg.Verify {
		if err := compiler.Verify(result.Bytes, b); err != nil {
			return compiler.Result{}, err
		}
	}
	return result, nil
}

// resolveLayout merges flags with the optional manifest. Flags win.
func resolveLayout(cfg Config) (compiler.Layout, string, error) {
	layout := compiler.Layout{Dir: defaultDir}
	dest := compiler.DefaultOutput

	if path := strings.TrimSpace(cfg.Manifest); path != "" {
		manifest, err := compiler.LoadManifest(path)
		if err != nil {
			return compiler.Layout{}, "", err
		}
		layout = manifest.Layout()
		if output := manifest.Output(); output != "" {
			dest = output
		}
	}
	if dir := strings.TrimSpace(cfg.Dir); dir != "" {
		layout.Dir = dir
	}
	if output := strings.TrimSpace(cfg.Out); output != "" {
		dest = output
	}
	return layout, dest, nil
}

func printSummary(p *message.Printer, out io.Writer, result compiler.Result, dest string) {
	for _, kind := range resource.Kinds() {
		p.Fprintf(out, "%-8s %d\n", kind.String(), result.Counts[kind])
	}
	if dest == "" {
		p.Fprintf(out, "compiled %d records into %d bytes (dry run)\n", result.Records(), len(result.Bytes))
	} else {
		p.Fprintf(out, "compiled %d records into %d bytes at %s\n", result.Records(), len(result.Bytes), dest)
	}
	p.Fprintf(out, "sha256 %s\n", result.Digest)
}

func printHistory(p *message.Printer, out io.Writer, builds []storage.BuildSummary) {
	if len(builds) == 0 {
		p.Fprintf(out, "no recorded builds\n")
		return
	}
	for _, build := range builds {
		p.Fprintf(out, "%s %s %d bytes %s\n",
			build.CreatedAt.Format(time.RFC3339), build.Digest, build.Size, build.Source)
	}
}

func openBuildStore(path string) (*compilersqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := compilersqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open build store: %w", err)
	}
	return store, nil
}
