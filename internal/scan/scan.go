// Package scan runs a compiled pattern over files line by line, several
// files at a time, and prints the selected lines in argument order.
package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/tidwall/sjson"
	"golang.org/x/sync/errgroup"

	"github.com/coregx/thegrep"
	"github.com/coregx/thegrep/internal/input"
)

// Options control line selection and output.
type Options struct {
	// Parallel is the number of files scanned concurrently. Values below
	// one mean one.
	Parallel int

	Invert       bool // select lines that do not match
	Count        bool // print only the number of selected lines per file
	LineNumber   bool // prefix lines with their 1-based number
	JSON         bool // print one JSON object per selected line
	WithFilename bool // prefix output with the file name
}

// Stats summarises a scan.
type Stats struct {
	Files   int // inputs read to the end
	Lines   int // lines examined
	Matched int // lines selected
}

func (s *Stats) add(o Stats) {
	s.Files += o.Files
	s.Lines += o.Lines
	s.Matched += o.Matched
}

// Scanner applies one compiled pattern to many inputs. The Regex is shared
// by all workers.
type Scanner struct {
	Regex   *thegrep.Regex
	Options Options
	Log     zerolog.Logger
}

// New returns a scanner that does not log.
func New(re *thegrep.Regex, opts Options) *Scanner {
	return &Scanner{Regex: re, Options: opts, Log: zerolog.Nop()}
}

type result struct {
	buf   bytes.Buffer
	stats Stats
	err   error
}

// ScanFiles scans paths ("-" is standard input) and writes their output
// to out in the order given.
//
// A file that cannot be read does not stop the others; its error is
// logged and included in the returned error. Cancelling ctx stops every
// worker.
func (s *Scanner) ScanFiles(ctx context.Context, paths []string, out io.Writer) (Stats, error) {
	results := make([]result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.Options.Parallel, 1))
	for i, path := range paths {
		g.Go(func() error {
			res := &results[i]
			res.stats, res.err = s.scanFile(ctx, path, &res.buf)
			if res.err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.Log.Warn().Err(res.err).Str("file", path).Msg("scan failed")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	var total Stats
	var errs []error
	for i := range results {
		res := &results[i]
		total.add(res.stats)
		if res.err != nil {
			errs = append(errs, res.err)
		}
		if _, err := res.buf.WriteTo(out); err != nil {
			return total, fmt.Errorf("write output: %w", err)
		}
	}
	s.Log.Debug().
		Int("files", total.Files).
		Int("lines", total.Lines).
		Int("matched", total.Matched).
		Msg("scan complete")
	return total, errors.Join(errs...)
}

func (s *Scanner) scanFile(ctx context.Context, path string, out *bytes.Buffer) (Stats, error) {
	rc, err := input.Open(path)
	if err != nil {
		return Stats{}, err
	}
	defer rc.Close()

	name := path
	if path == input.Stdin {
		name = "(standard input)"
	}
	return s.Scan(ctx, name, rc, out)
}

// Scan reads r line by line and writes the selected lines to out. name
// labels the output when WithFilename or JSON is set.
func (s *Scanner) Scan(ctx context.Context, name string, r io.Reader, out io.Writer) (Stats, error) {
	var stats Stats
	var buf []byte
	err := input.Lines(ctx, r, func(lineNo int, line string) error {
		stats.Lines++
		if s.Regex.MatchString(line) == s.Options.Invert {
			return nil
		}
		stats.Matched++
		if s.Options.Count {
			return nil
		}

		buf = buf[:0]
		var err error
		if s.Options.JSON {
			buf, err = s.appendJSON(buf, name, lineNo, line)
			if err != nil {
				return err
			}
		} else {
			buf = s.appendPlain(buf, name, lineNo, line)
		}
		_, err = out.Write(buf)
		return err
	})
	if err != nil {
		return stats, fmt.Errorf("%s: %w", name, err)
	}
	stats.Files = 1

	if s.Options.Count {
		buf = buf[:0]
		if s.Options.WithFilename {
			buf = append(buf, name...)
			buf = append(buf, ':')
		}
		buf = strconv.AppendInt(buf, int64(stats.Matched), 10)
		buf = append(buf, '\n')
		if _, err := out.Write(buf); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (s *Scanner) appendPlain(buf []byte, name string, lineNo int, line string) []byte {
	if s.Options.WithFilename {
		buf = append(buf, name...)
		buf = append(buf, ':')
	}
	if s.Options.LineNumber {
		buf = strconv.AppendInt(buf, int64(lineNo), 10)
		buf = append(buf, ':')
	}
	buf = append(buf, line...)
	return append(buf, '\n')
}

func (s *Scanner) appendJSON(buf []byte, name string, lineNo int, line string) ([]byte, error) {
	obj, err := sjson.SetBytes([]byte(`{}`), "file", name)
	if err != nil {
		return buf, err
	}
	if obj, err = sjson.SetBytes(obj, "line", lineNo); err != nil {
		return buf, err
	}
	if obj, err = sjson.SetBytes(obj, "text", line); err != nil {
		return buf, err
	}
	buf = append(buf, obj...)
	return append(buf, '\n'), nil
}
