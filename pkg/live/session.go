package live

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/statekit-dev/statekit/pkg/states"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
)

// session is one WebSocket connection and the state container it owns.
type session struct {
	conn   *websocket.Conn
	states *states.States
	logger *slog.Logger
	srv    *Server

	// writeMu serializes writes to the connection.
	writeMu sync.Mutex
}

// readLoop continuously reads frames from the connection, applies them to
// the session's container, and streams patches back. Blocks until the
// connection closes or errors.
func (s *session) readLoop(ctx context.Context) {
	defer s.conn.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(readTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		s.handleFrame(ctx, msg)
	}
}

// handleFrame decodes and dispatches one client frame.
// Failures are reported as error patches; the connection stays open.
func (s *session) handleFrame(ctx context.Context, msg []byte) {
	frame, err := DecodeFrame(msg)
	if err != nil {
		s.logger.Error("frame decode error", "error", err)
		s.srv.metrics.frameErrors.WithLabelValues("unknown", "decode").Inc()
		s.sendPatch(Patch{Op: "error", Error: "invalid frame"})
		return
	}

	_, span := s.srv.tracer.Start(ctx, "live."+frame.Op,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("live.op", frame.Op),
			attribute.String("live.field", frame.Field),
		),
	)
	defer span.End()

	start := time.Now()
	err = s.dispatch(frame)
	s.srv.metrics.frameDuration.WithLabelValues(frame.Op).Observe(time.Since(start).Seconds())

	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	s.srv.metrics.framesTotal.WithLabelValues(frame.Op, status).Inc()
}

// dispatch applies one decoded frame to the container.
func (s *session) dispatch(frame *Frame) error {
	switch frame.Op {
	case OpSet:
		return s.handleSet(frame)
	case OpGet:
		return s.handleGet(frame)
	case OpSnapshot:
		return s.handleSnapshot()
	default:
		s.srv.metrics.frameErrors.WithLabelValues(frame.Op, "bad_op").Inc()
		return s.sendError(frame, "unknown op %q", frame.Op)
	}
}

func (s *session) handleSet(frame *Frame) error {
	// The container faults on undeclared fields; the bridge is the
	// boundary where client input gets checked instead.
	if !s.states.Has(frame.Field) {
		s.srv.metrics.frameErrors.WithLabelValues(frame.Op, "unknown_field").Inc()
		return s.sendError(frame, "unknown field %q", frame.Field)
	}

	var value any
	if err := json.Unmarshal(frame.Value, &value); err != nil {
		s.srv.metrics.frameErrors.WithLabelValues(frame.Op, "bad_value").Inc()
		return s.sendError(frame, "invalid value for field %q", frame.Field)
	}

	s.states.Set(frame.Field, value)
	s.logger.Debug("field set", "field", frame.Field)

	return s.sendPatch(Patch{Op: "patch", Field: frame.Field, Value: value})
}

func (s *session) handleGet(frame *Frame) error {
	if !s.states.Has(frame.Field) {
		s.srv.metrics.frameErrors.WithLabelValues(frame.Op, "unknown_field").Inc()
		return s.sendError(frame, "unknown field %q", frame.Field)
	}

	return s.sendPatch(Patch{Op: "patch", Field: frame.Field, Value: s.states.Get(frame.Field)})
}

func (s *session) handleSnapshot() error {
	fields := make(map[string]any)
	for _, name := range s.states.Fields() {
		fields[name] = s.states.Get(name)
	}
	return s.sendPatch(Patch{Op: "snapshot", Fields: fields})
}

// sendError reports a recoverable protocol failure to the client.
// Always returns a non-nil error carrying the same message.
func (s *session) sendError(frame *Frame, format string, args ...any) error {
	msg := fmt.Errorf(format, args...)
	if err := s.sendPatch(Patch{Op: "error", Field: frame.Field, Error: msg.Error()}); err != nil {
		return err
	}
	return msg
}

// sendPatch writes one patch to the connection.
func (s *session) sendPatch(p Patch) error {
	data, err := EncodePatch(p)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}
