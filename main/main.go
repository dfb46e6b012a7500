// Command hinglish converts an English text file to Hinglish word by word.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/vyevs/vtools"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vyevs/hinglish"
)

const (
	defaultInput  = "story_31_10.txt"
	defaultOutput = "story_31_10_hinglish.txt"

	// outputSuffix marks files written by the batch command.
	outputSuffix = "_hinglish.txt"
)

type cli struct {
	LogLevel string `name:"log-level" enum:"debug,info,warn,error" default:"warn" help:"Diagnostic log level (${enum}), logs go to stderr."`
	NoColor  bool   `name:"no-color" help:"Disable coloured console output."`

	Convert convertCmd `cmd:"" default:"withargs" help:"Convert a single file (default command)."`
	Batch   batchCmd   `cmd:"" help:"Convert every .txt file under a directory."`
	Words   wordsCmd   `cmd:"" help:"List the dictionary."`
}

// dictFlags are shared by every command that needs a dictionary.
type dictFlags struct {
	Extra       string `name:"extra" type:"existingfile" help:"YAML word table layered over the built-in one."`
	Punctuation string `name:"punctuation" enum:"trailing,segmented" default:"trailing" help:"How punctuation around a word is kept (${enum})."`
}

func (f dictFlags) converter(log *zap.Logger) (*hinglish.Converter, error) {
	dict, err := hinglish.DefaultDictionary()
	if err != nil {
		return nil, err
	}
	if f.Extra != "" {
		extra, err := hinglish.ReadDictionaryFromFile(f.Extra)
		if err != nil {
			return nil, fmt.Errorf("failed to read extra dictionary %s: %w", f.Extra, err)
		}
		log.Info("merging extra dictionary", zap.String("path", f.Extra), zap.Int("words", extra.Len()))
		dict = dict.Merge(extra)
	}

	punct, err := hinglish.ParsePunctuation(f.Punctuation)
	if err != nil {
		return nil, err
	}
	return hinglish.NewConverter(dict, hinglish.WithPunctuation(punct), hinglish.WithLogger(log)), nil
}

type runContext struct {
	ctx context.Context
	log *zap.Logger
	out *console
}

type convertCmd struct {
	Dict dictFlags `embed:""`

	Input  string `name:"input" short:"i" default:"${defaultInput}" help:"File to convert."`
	Output string `name:"output" short:"o" default:"${defaultOutput}" help:"File to write, replaced if it exists."`
}

func (c *convertCmd) Run(rc *runContext) error {
	info, err := os.Stat(c.Input)
	if errors.Is(err, fs.ErrNotExist) {
		return &missingInputError{path: c.Input}
	}
	if err != nil {
		return fmt.Errorf("failed to stat input: %w", err)
	}

	conv, err := c.Dict.converter(rc.log)
	if err != nil {
		return err
	}

	size := info.Size()
	rc.out.printf("File size: %s bytes (%.1f KB)\n\n", humanize.Comma(size), float64(size)/1024)
	rc.out.printf("Starting Hinglish conversion of %s...\n", c.Input)
	rc.out.printf("Output will be saved to %s\n\n", c.Output)

	res, err := conv.ConvertFile(rc.ctx, c.Input, c.Output, rc.out)
	if errors.Is(err, hinglish.ErrInputNotFound) {
		return &missingInputError{path: c.Input, err: err}
	}
	if err != nil {
		return err
	}

	rc.out.println("")
	rc.out.success(fmt.Sprintf("Conversion complete! Processed %d lines", res.Lines))
	rc.out.success("Output saved to: " + c.Output)
	return nil
}

type batchCmd struct {
	Dict dictFlags `embed:""`

	Dir string `arg:"" type:"existingdir" help:"Directory to walk."`
}

func (c *batchCmd) Run(rc *runContext) error {
	conv, err := c.Dict.converter(rc.log)
	if err != nil {
		return err
	}

	var files int
	err = filepath.WalkDir(c.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isBatchInput(path) {
			return nil
		}

		out := strings.TrimSuffix(path, ".txt") + outputSuffix
		start := time.Now()
		res, err := conv.ConvertFile(rc.ctx, path, out, nil)
		if err != nil {
			return fmt.Errorf("failed to convert %s: %w", path, err)
		}
		files++

		rc.out.printf("converted %5d lines for %-50q (%s)\n", res.Lines, path, time.Since(start).Round(time.Millisecond))
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk error: %w", err)
	}

	rc.out.success(fmt.Sprintf("Converted %d files", files))
	return nil
}

// isBatchInput reports whether the batch command should convert path.
func isBatchInput(path string) bool {
	return strings.HasSuffix(path, ".txt") && !strings.HasSuffix(path, outputSuffix)
}

type wordsCmd struct {
	Extra string `name:"extra" type:"existingfile" help:"YAML word table layered over the built-in one."`
}

func (c *wordsCmd) Run(rc *runContext) error {
	conv, err := dictFlags{Extra: c.Extra, Punctuation: "trailing"}.converter(rc.log)
	if err != nil {
		return err
	}
	dict := conv.Dictionary()
	for _, w := range dict.Words() {
		repl, _ := dict.Lookup(w)
		rc.out.printf("%-16s %s\n", w, repl)
	}
	rc.out.printf("The dictionary contains %d words\n", dict.Len())
	return nil
}

// missingInputError is reported before anything is read or written.
type missingInputError struct {
	path string
	err  error
}

func (e *missingInputError) Error() string {
	return fmt.Sprintf("'%s' not found!", e.path)
}

func (e *missingInputError) Unwrap() error {
	if e.err != nil {
		return e.err
	}
	return hinglish.ErrInputNotFound
}

func main() {
	os.Exit(run())
}

func run() int {
	defer vtools.TimeIt(time.Now(), "Everything")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := &console{w: os.Stdout, color: true}
	err := myMain(ctx, os.Args[1:], out, zapcore.Lock(os.Stderr))
	if err != nil {
		out.failure(fmt.Sprintf("Error: %v", err))
		return 1
	}
	return 0
}

// myMain parses args and runs the chosen command. It turns off out's colour
// when --no-color is given.
func myMain(ctx context.Context, args []string, out *console, logOut zapcore.WriteSyncer) error {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("hinglish"),
		kong.Description("Convert English text to Hinglish word by word.\n\n"+
			"Run without arguments to convert "+defaultInput+" into "+defaultOutput+
			" in the working directory. Every flag is optional."),
		kong.Writers(out.w, out.w),
		kong.UsageOnError(),
		kong.Vars{
			"defaultInput":  defaultInput,
			"defaultOutput": defaultOutput,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to build parser: %w", err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	log, err := newLogger(c.LogLevel, logOut)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	if c.NoColor {
		out.color = false
	}
	rc := &runContext{
		ctx: ctx,
		log: log,
		out: out,
	}
	return kctx.Run(rc)
}
