package sink

import (
	"context"
	"os"

	"github.com/gogpu/label/internal/logging"
)

// Device writes to a character device or spool file, such as /dev/usb/lp0.
// The target is the device path; it must already exist.
type Device struct{}

// Send implements Sink.
func (Device) Send(ctx context.Context, target string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return &SendError{Kind: IOFailure, Target: target, Err: err}
	}
	// #nosec G304 -- device path is provided by the operator
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return classify(target, err)
	}
	n, werr := f.Write(data)
	cerr := f.Close()
	if err := checkWrite(target, n, len(data), werr); err != nil {
		return err
	}
	if cerr != nil {
		return classify(target, cerr)
	}
	logging.L().Info("sink: sent to device", "target", target, "bytes", n)
	return nil
}
