package sink

import (
	"context"
	"net"
	"time"

	"github.com/gogpu/label/internal/logging"
)

// DefaultPort is the raw printing port.
const DefaultPort = "9100"

// Network sends the stream over a raw TCP connection. The target is
// host[:port]; the port defaults to 9100.
type Network struct {
	// Timeout bounds the dial and the write. Zero means 10 seconds.
	Timeout time.Duration
}

// Send implements Sink.
func (s Network) Send(ctx context.Context, target string, data []byte) error {
	addr := target
	if _, _, err := net.SplitHostPort(target); err != nil {
		addr = net.JoinHostPort(target, DefaultPort)
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return classify(addr, err)
	}
	if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		_ = conn.Close()
		return classify(addr, err)
	}
	n, werr := conn.Write(data)
	cerr := conn.Close()
	if err := checkWrite(addr, n, len(data), werr); err != nil {
		return err
	}
	if cerr != nil {
		return classify(addr, cerr)
	}
	logging.L().Info("sink: sent over network", "addr", addr, "bytes", n)
	return nil
}
