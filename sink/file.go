package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/label/internal/logging"
)

// FileSuffix is appended to the sanitized target name by File.
const FileSuffix = "_epl_output.bin"

// File writes the stream to <Dir>/<sanitized target>_epl_output.bin,
// replacing any previous file. An empty Dir means os.TempDir().
type File struct {
	Dir string
}

// Path returns the file File would write for target.
func (s File) Path(target string) string {
	dir := s.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, Sanitize(target)+FileSuffix)
}

// Send implements Sink.
func (s File) Send(ctx context.Context, target string, data []byte) error {
	path := s.Path(target)
	if err := ctx.Err(); err != nil {
		return &SendError{Kind: IOFailure, Target: path, Err: err}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644) // #nosec G302 G304 -- output for inspection
	if err != nil {
		return classify(path, err)
	}
	n, werr := f.Write(data)
	cerr := f.Close()
	if err := checkWrite(path, n, len(data), werr); err != nil {
		return err
	}
	if cerr != nil {
		return classify(path, cerr)
	}
	logging.L().Info("sink: wrote file", "path", path, "bytes", n)
	return nil
}

// Sanitize maps a printer name to a file name: every rune other than an
// ASCII letter, digit, '-' or '_' becomes '_'.
func Sanitize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "printer"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}
