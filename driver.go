package hinglish

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"
)

// ErrInputNotFound is returned by ConvertFile when the input path does not exist.
var ErrInputNotFound = errors.New("input file not found")

// progressInterval is how many lines pass between progress reports.
const progressInterval = 100

// Progress is reported while a file is being converted.
type Progress struct {
	Line  int // 1-based number of the line just written.
	Total int // Line count from the pre-scan.
}

// Percent returns Line as a percentage of Total.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Line) / float64(p.Total) * 100
}

func (p Progress) String() string {
	return fmt.Sprintf("Progress: %d/%d (%.1f%%)", p.Line, p.Total, p.Percent())
}

// Reporter receives notifications from a conversion run.
type Reporter interface {
	// Start is called once the input has been counted, before any output is written.
	Start(total int)
	// Progress is called every 100 lines.
	Progress(p Progress)
}

// Result summarizes a conversion run.
type Result struct {
	Lines    int   // Lines read, blank ones included.
	Tokens   int   // Tokens seen on non-blank lines.
	Replaced int   // Tokens replaced from the dictionary.
	Bytes    int64 // Size of the input, only set by ConvertFile.
}

// maxLineSize bounds a single line. Lines are buffered whole before they
// are converted.
const maxLineSize = 64 << 20

// scanLines is a bufio.SplitFunc that ends a line at "\n", "\r\n" or a lone
// "\r". The line ending is dropped and a final unterminated line is kept.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// A '\r' at the end of the buffer may be the first half of "\r\n".
		if i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		if i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	sc.Split(scanLines)
	return sc
}

// CountLines returns the number of lines in r. A final line without a
// trailing line ending is counted.
func CountLines(r io.Reader) (int, error) {
	sc := newLineScanner(r)
	var n int
	for sc.Scan() {
		n++
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("failed to count lines: %w", err)
	}
	return n, nil
}

// Transduce reads r line by line and writes the converted lines to w. Lines
// end at "\n", "\r\n" or a lone "\r"; every output line ends in "\n". Blank
// lines, including lines holding only whitespace, are written as a bare
// newline. total is only used for progress reports; rep may be nil.
func (c *Converter) Transduce(ctx context.Context, r io.Reader, w io.Writer, total int, rep Reporter) (Result, error) {
	var res Result

	sc := newLineScanner(r)
	bw := bufio.NewWriter(w)
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if !sc.Scan() {
			break
		}
		res.Lines++

		line := strings.TrimSpace(sc.Text())
		if line == "" {
			if err := bw.WriteByte('\n'); err != nil {
				return res, fmt.Errorf("failed to write line %d: %w", res.Lines, err)
			}
			continue
		}

		out, tokens, replaced := c.convertLine(line)
		res.Tokens += tokens
		res.Replaced += replaced

		if _, err := bw.WriteString(out); err != nil {
			return res, fmt.Errorf("failed to write line %d: %w", res.Lines, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return res, fmt.Errorf("failed to write line %d: %w", res.Lines, err)
		}

		// Blank lines are never reported, even on a multiple of the interval.
		if res.Lines%progressInterval == 0 {
			p := Progress{Line: res.Lines, Total: total}
			c.log.Debug("conversion progress",
				zap.Int("line", p.Line),
				zap.Int("total", p.Total),
				zap.Float64("percent", p.Percent()))
			if rep != nil {
				rep.Progress(p)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("failed to read line %d: %w", res.Lines+1, err)
	}

	if err := bw.Flush(); err != nil {
		return res, fmt.Errorf("failed to flush output: %w", err)
	}
	return res, nil
}

// ConvertFile converts the file at in and writes the result to out, replacing
// any existing file. If in does not exist an error wrapping ErrInputNotFound
// is returned and out is left untouched.
func (c *Converter) ConvertFile(ctx context.Context, in, out string, rep Reporter) (res Result, err error) {
	info, err := os.Stat(in)
	if errors.Is(err, fs.ErrNotExist) {
		return res, fmt.Errorf("%w: %s", ErrInputNotFound, in)
	}
	if err != nil {
		return res, fmt.Errorf("failed to stat input: %w", err)
	}

	inF, err := os.Open(in)
	if err != nil {
		return res, fmt.Errorf("failed to open input: %w", err)
	}
	defer inF.Close()

	total, err := CountLines(inF)
	if err != nil {
		return res, err
	}
	if _, err := inF.Seek(0, io.SeekStart); err != nil {
		return res, fmt.Errorf("failed to rewind input: %w", err)
	}

	c.log.Info("starting conversion",
		zap.String("input", in),
		zap.String("output", out),
		zap.Int64("bytes", info.Size()),
		zap.Int("lines", total),
		zap.Stringer("punctuation", c.punct))
	if rep != nil {
		rep.Start(total)
	}

	outF, err := os.Create(out)
	if err != nil {
		return res, fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := outF.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()

	res, err = c.Transduce(ctx, inF, outF, total, rep)
	res.Bytes = info.Size()
	if err != nil {
		return res, err
	}

	c.log.Info("conversion complete",
		zap.String("output", out),
		zap.Int("lines", res.Lines),
		zap.Int("tokens", res.Tokens),
		zap.Int("replaced", res.Replaced))
	return res, nil
}
