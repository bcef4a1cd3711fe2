package epl

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned by Decode for a stream it cannot split.
var ErrMalformed = errors.New("epl: malformed stream")

// Command is one decoded directive.
type Command struct {
	// Name is the directive mnemonic, such as "GW" or "B".
	Name string
	// Args are the comma-separated parameters with quotes removed.
	Args []string
	// Data is the raw payload of a GW block.
	Data []byte
}

// String renders the command as it would appear in a listing. GW payloads
// are summarized.
func (c Command) String() string {
	s := c.Name + strings.Join(c.Args, ",")
	if c.Name == "GW" {
		s += fmt.Sprintf(" <%d bytes>", len(c.Data))
	}
	return s
}

// Mnemonics in match order; longer names first.
var mnemonics = []string{"GW", "LO", "N", "q", "Q", "D", "S", "B", "P"}

// Decode splits an EPL2 stream into commands. GW payloads are consumed by
// their declared length, so payload bytes that look like EOL are never
// taken as terminators.
func Decode(data []byte) ([]Command, error) {
	var cmds []Command
	for pos := 0; pos < len(data); {
		rest := data[pos:]
		if bytes.HasPrefix(rest, []byte("GW")) {
			cmd, n, err := decodeImage(rest)
			if err != nil {
				return cmds, fmt.Errorf("%w at offset %d: %w", ErrMalformed, pos, err)
			}
			cmds = append(cmds, cmd)
			pos += n
			continue
		}
		end := bytes.Index(rest, []byte(EOL))
		if end < 0 {
			return cmds, fmt.Errorf("%w at offset %d: missing line terminator", ErrMalformed, pos)
		}
		line := string(rest[:end])
		pos += end + len(EOL)
		if line == "" {
			continue
		}
		cmd, err := decodeLine(line)
		if err != nil {
			return cmds, fmt.Errorf("%w at offset %d: %w", ErrMalformed, pos, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func decodeLine(line string) (Command, error) {
	for _, m := range mnemonics {
		if !strings.HasPrefix(line, m) {
			continue
		}
		cmd := Command{Name: m}
		if args := line[len(m):]; args != "" {
			for _, a := range strings.Split(args, ",") {
				cmd.Args = append(cmd.Args, strings.Trim(a, `"`))
			}
		}
		return cmd, nil
	}
	return Command{}, fmt.Errorf("unknown directive %q", line)
}

// decodeImage reads "GWx,y,bpr,h," and the payload that follows, returning
// the number of bytes consumed including the trailing EOL.
func decodeImage(b []byte) (Command, int, error) {
	pos := len("GW")
	args := make([]string, 0, 4)
	for len(args) < 4 {
		i := bytes.IndexByte(b[pos:], ',')
		if i < 0 {
			return Command{}, 0, errors.New("truncated GW header")
		}
		args = append(args, string(b[pos:pos+i]))
		pos += i + 1
	}
	var v [4]int
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 0 {
			return Command{}, 0, fmt.Errorf("GW parameter %d: %q", i+1, a)
		}
		v[i] = n
	}
	size := v[2] * v[3]
	if len(b)-pos < size+len(EOL) {
		return Command{}, 0, fmt.Errorf("GW payload: want %d bytes, have %d", size, len(b)-pos)
	}
	data := b[pos : pos+size]
	pos += size
	if string(b[pos:pos+len(EOL)]) != EOL {
		return Command{}, 0, errors.New("GW payload not followed by line terminator")
	}
	return Command{
		Name: "GW",
		Args: args,
		Data: append([]byte(nil), data...),
	}, pos + len(EOL), nil
}
