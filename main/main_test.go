package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/vyevs/hinglish"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := myMain(context.Background(), args, &console{w: &out, color: true}, zapcore.AddSync(io.Discard))
	return out.String(), err
}

// runMain calls run with args as the command line and returns the exit code
// and everything written to stdout.
func runMain(t *testing.T, args ...string) (int, string) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "stdout")
	require.NoError(t, err)
	defer f.Close()

	oldArgs, oldStdout := os.Args, os.Stdout
	defer func() {
		os.Args, os.Stdout = oldArgs, oldStdout
	}()
	os.Args = append([]string{"hinglish"}, args...)
	os.Stdout = f

	code := run()
	return code, readFile(t, f.Name())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(bs)
}

func storyLines(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "On day %d I will go home now.\n", i)
	}
	return b.String()
}

func TestConvertDefaultPaths(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, defaultInput, storyLines(250))

	out, err := runCLI(t, "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "File size: 7,")
	assert.Contains(t, out, "Starting Hinglish conversion of story_31_10.txt...")
	assert.Contains(t, out, "Total lines: 250\n")
	assert.Contains(t, out, "Progress: 100/250 (40.0%)\n")
	assert.Contains(t, out, "Progress: 200/250 (80.0%)\n")
	assert.NotContains(t, out, "Progress: 250/250")
	assert.Contains(t, out, "✓ Conversion complete! Processed 250 lines\n")
	assert.Contains(t, out, "✓ Output saved to: story_31_10_hinglish.txt\n")

	got := readFile(t, defaultOutput)
	assert.True(t, strings.HasPrefix(got, "par din 1 main hoga jao home ab.\n"), got[:40])
}

func TestConvertMissingInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "missing.txt")
	outPath := filepath.Join(dir, "out.txt")

	out, err := runCLI(t, "convert", "--input", in, "--output", outPath)
	require.ErrorIs(t, err, hinglish.ErrInputNotFound)
	assert.Contains(t, err.Error(), fmt.Sprintf("'%s' not found!", in))
	assert.Empty(t, out)
	assert.NoFileExists(t, outPath)
}

func TestRunExitCode(t *testing.T) {
	t.Chdir(t.TempDir())

	code, out := runMain(t, "--no-color")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Error: 'story_31_10.txt' not found!\n")
	assert.NotContains(t, out, "File size")
	assert.NoFileExists(t, defaultOutput)

	writeFile(t, defaultInput, "go now\n")
	code, out = runMain(t, "--no-color")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "✓ Conversion complete! Processed 1 lines\n")
	assert.Equal(t, "jao ab\n", readFile(t, defaultOutput))
}

func TestRunErrorHonoursNoColor(t *testing.T) {
	t.Chdir(t.TempDir())

	_, plain := runMain(t, "--no-color")
	_, colored := runMain(t)

	var want bytes.Buffer
	(&console{w: &want, color: true}).failure("Error: 'story_31_10.txt' not found!")
	assert.Contains(t, colored, want.String())
	assert.NotContains(t, plain, want.String())
	assert.Contains(t, plain, "Error: 'story_31_10.txt' not found!\n")
}

func TestConvertExtraDictionary(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	outPath := filepath.Join(dir, "out.txt")
	extra := filepath.Join(dir, "extra.yaml")
	writeFile(t, in, "I will go home now.\n")
	writeFile(t, extra, "home: ghar\ngo: chalo\n")

	_, err := runCLI(t, "--input", in, "--output", outPath, "--extra", extra)
	require.NoError(t, err)
	assert.Equal(t, "main hoga chalo ghar ab.\n", readFile(t, outPath))
}

func TestConvertSegmentedPunctuation(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	outPath := filepath.Join(dir, "out.txt")
	writeFile(t, in, `"Well," I said (go now).`+"\n")

	_, err := runCLI(t, "--input", in, "--output", outPath, "--punctuation", "segmented")
	require.NoError(t, err)
	assert.Equal(t, `"acha," main kaha (jao ab).`+"\n", readFile(t, outPath))
}

func TestConvertRejectsUnknownPunctuation(t *testing.T) {
	_, err := runCLI(t, "--punctuation", "leading")
	assert.Error(t, err)
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "go now\n")
	writeFile(t, filepath.Join(dir, "nested", "b.txt"), "well,\n\nyes\n")
	writeFile(t, filepath.Join(dir, "notes.md"), "go\n")

	out, err := runCLI(t, "--no-color", "batch", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Converted 2 files\n")

	assert.Equal(t, "jao ab\n", readFile(t, filepath.Join(dir, "a_hinglish.txt")))
	assert.Equal(t, "acha,\n\nhaan\n", readFile(t, filepath.Join(dir, "nested", "b_hinglish.txt")))
	assert.NoFileExists(t, filepath.Join(dir, "notes_hinglish.txt"))

	// A second run leaves earlier outputs alone.
	out, err = runCLI(t, "--no-color", "batch", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Converted 2 files\n")
	assert.NoFileExists(t, filepath.Join(dir, "a_hinglish_hinglish.txt"))
}

func TestIsBatchInput(t *testing.T) {
	assert.True(t, isBatchInput("story.txt"))
	assert.False(t, isBatchInput("story_hinglish.txt"))
	assert.False(t, isBatchInput("story.md"))
}

func TestWords(t *testing.T) {
	out, err := runCLI(t, "words")
	require.NoError(t, err)

	assert.Contains(t, out, "\n"+fmt.Sprintf("%-16s %s\n", "go", "jao"))
	assert.Contains(t, out, "The dictionary contains 587 words\n")
	assert.True(t, strings.HasPrefix(out, "able "), "words are sorted")
	assert.Less(t, strings.Index(out, "\nwhen "), strings.Index(out, "\nyourself "))
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("debug", zapcore.AddSync(io.Discard))
	assert.NoError(t, err)

	_, err = newLogger("loud", zapcore.AddSync(io.Discard))
	assert.Error(t, err)
}

func TestConsoleColor(t *testing.T) {
	var plain, colored bytes.Buffer
	(&console{w: &plain}).success("done")
	(&console{w: &colored, color: true}).success("done")

	assert.Equal(t, "✓ done\n", plain.String())
	assert.Contains(t, colored.String(), "✓ done")
	assert.NotEqual(t, plain.String(), colored.String())

	plain.Reset()
	colored.Reset()
	(&console{w: &plain}).failure("oops")
	(&console{w: &colored, color: true}).failure("oops")

	assert.Equal(t, "oops\n", plain.String())
	assert.Contains(t, colored.String(), "oops")
	assert.NotEqual(t, plain.String(), colored.String())
}
