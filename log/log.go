// Package log implements the leveled, structured logger used throughout the
// simulator, in the style of klaytn's log package: callers pass a message
// plus alternating key/value pairs, e.g.
//
//	log.Info("block accepted", "node", n.id, "height", b.Height)
package log

import (
	"os"
	"sync"
	"time"

	"github.com/go-stack/stack"
)

// Lvl is a log severity level, ordered from most to least severe.
type Lvl int

const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

func (l Lvl) String() string {
	switch l {
	case LvlCrit:
		return "CRIT"
	case LvlError:
		return "ERROR"
	case LvlWarn:
		return "WARN"
	case LvlInfo:
		return "INFO"
	case LvlDebug:
		return "DEBUG"
	case LvlTrace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// Record is a single log event handed to a Handler.
type Record struct {
	Time    time.Time
	Lvl     Lvl
	Msg     string
	Ctx     []interface{}
	Call    stack.Call
	KeyVals map[string]interface{}
}

// Handler writes a Record somewhere (a terminal, a file, ...).
type Handler interface {
	Log(r *Record) error
}

// Logger emits every Record to its Handler; level filtering, if any, is
// done by the Handler (see LvlFilterHandler).
type Logger interface {
	New(ctx ...interface{}) Logger
	SetHandler(h Handler)

	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})
}

type logger struct {
	ctx []interface{}
	mu  sync.Mutex
	h   Handler
}

var root = &logger{h: StreamHandler(os.Stderr, TerminalFormat(true))}

// Root returns the root logger. Module loggers created with New() start
// with the root handler current at the time of their creation; a later
// change to the root handler (e.g. SetLevel) does not reach them.
func Root() Logger { return root }

// New creates a module-scoped logger carrying ctx as permanent key/value
// pairs attached to every record it emits.
func New(ctx ...interface{}) Logger {
	return &logger{ctx: normalize(ctx), h: root.h}
}

func (l *logger) New(ctx ...interface{}) Logger {
	l.mu.Lock()
	h := l.h
	l.mu.Unlock()
	child := append(append([]interface{}{}, l.ctx...), normalize(ctx)...)
	return &logger{ctx: child, h: h}
}

func (l *logger) SetHandler(h Handler) {
	l.mu.Lock()
	l.h = h
	l.mu.Unlock()
}

func (l *logger) write(lvl Lvl, msg string, ctx []interface{}) {
	l.mu.Lock()
	h := l.h
	l.mu.Unlock()
	if h == nil {
		return
	}
	all := append(append([]interface{}{}, l.ctx...), ctx...)
	r := &Record{
		Time: time.Now(),
		Lvl:  lvl,
		Msg:  msg,
		Ctx:  normalize(all),
		Call: stack.Caller(2),
	}
	_ = h.Log(r)
	if lvl == LvlCrit {
		os.Exit(1)
	}
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(LvlTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(LvlDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(LvlInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(LvlWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(LvlError, msg, ctx) }
func (l *logger) Crit(msg string, ctx ...interface{})  { l.write(LvlCrit, msg, ctx) }

// Package-level convenience wrappers delegate to the root logger, matching
// the call sites the teacher uses (log.Info(...), log.Error(...), ...).
func Trace(msg string, ctx ...interface{}) { root.write(LvlTrace, msg, ctx) }
func Debug(msg string, ctx ...interface{}) { root.write(LvlDebug, msg, ctx) }
func Info(msg string, ctx ...interface{})  { root.write(LvlInfo, msg, ctx) }
func Warn(msg string, ctx ...interface{})  { root.write(LvlWarn, msg, ctx) }
func Error(msg string, ctx ...interface{}) { root.write(LvlError, msg, ctx) }
func Crit(msg string, ctx ...interface{})  { root.write(LvlCrit, msg, ctx) }

// SetLevel adjusts the root handler's minimum emitted level.
func SetLevel(lvl Lvl) {
	root.SetHandler(LvlFilterHandler(lvl, StreamHandler(os.Stderr, TerminalFormat(true))))
}

func normalize(ctx []interface{}) []interface{} {
	if len(ctx)%2 != 0 {
		ctx = append(ctx, "MISSING")
	}
	return ctx
}
