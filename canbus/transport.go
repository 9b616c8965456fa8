package canbus

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/pkg/errors"
	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"
	"pfeifer.dev/motorplan/planner"
)

type FrameWriter interface {
	WriteFrame(ctx context.Context, frame can.Frame) error
	Close() error
}

type SocketCANWriter struct {
	conn net.Conn
	tx   *socketcan.Transmitter
}

func NewSocketCANWriter(ctx context.Context, iface string) (*SocketCANWriter, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", iface)
	}
	return &SocketCANWriter{
		conn: conn,
		tx:   socketcan.NewTransmitter(conn),
	}, nil
}

func (w *SocketCANWriter) WriteFrame(ctx context.Context, frame can.Frame) error {
	return w.tx.TransmitFrame(ctx, frame)
}

func (w *SocketCANWriter) Close() error {
	if w.conn != nil {
		return w.conn.Close()
	}
	return nil
}

// Stream sends one setpoint frame per sample, spaced by the sample interval.
// It stops early when ctx is done.
func Stream(ctx context.Context, w FrameWriter, id uint32, samples []planner.Sample) error {
	start := time.Now()
	for i, s := range samples {
		f, err := EncodeSetpoint(id, SetpointFromSample(s))
		if err != nil {
			return errors.Wrapf(err, "sample %d", i)
		}

		wait := time.Until(start.Add(time.Duration(s.T * float64(time.Second))))
		if wait > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		if err := w.WriteFrame(ctx, f); err != nil {
			return errors.Wrapf(err, "could not send sample %d", i)
		}
		slog.Debug("sent setpoint", "t", s.T, "accel", s.Accel, "speed", s.Speed, "displacement", s.Displacement)
	}
	return nil
}
