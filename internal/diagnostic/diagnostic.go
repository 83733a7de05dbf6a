// Package diagnostic provides an optional structured tracer for the
// scanner and parser, modeled on vippsas-sqlcode's logrus-based logging.
// It is never consulted on the default (untraced) path, preserving the
// synchronous, allocation-free hot loop the spec requires.
package diagnostic

import (
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

// Tracer logs one structured entry per scan/parse step when enabled.
type Tracer struct {
	log     *logrus.Logger
	traceID string
}

// NewTracer builds a Tracer with a fresh trace id, writing at Debug
// level. Callers that don't want tracing simply keep a nil *Tracer: every
// method on a nil Tracer is a no-op.
func NewTracer() *Tracer {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)
	id, err := uuid.NewV4()
	traceID := ""
	if err == nil {
		traceID = id.String()
	}
	return &Tracer{log: log, traceID: traceID}
}

func (t *Tracer) fields() logrus.Fields {
	return logrus.Fields{"trace_id": t.traceID}
}

// Token logs a single emitted token.
func (t *Tracer) Token(kind fmt.Stringer, text string, line, col int) {
	if t == nil {
		return
	}
	t.log.WithFields(t.fields()).WithFields(logrus.Fields{
		"kind": kind.String(),
		"text": text,
		"line": line,
		"col":  col,
	}).Debug("token")
}

// Node logs a single constructed AST node kind.
func (t *Tracer) Node(kind string, line, col int) {
	if t == nil {
		return
	}
	t.log.WithFields(t.fields()).WithFields(logrus.Fields{
		"node": kind,
		"line": line,
		"col":  col,
	}).Debug("node")
}

// Error logs a lex/parse error before it is returned to the caller.
func (t *Tracer) Error(msg string, line, col int) {
	if t == nil {
		return
	}
	t.log.WithFields(t.fields()).WithFields(logrus.Fields{
		"line": line,
		"col":  col,
	}).Error(msg)
}
