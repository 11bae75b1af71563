package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
)

// Format renders a Record to bytes.
type Format interface {
	Format(r *Record) []byte
}

type formatFunc func(*Record) []byte

func (f formatFunc) Format(r *Record) []byte { return f(r) }

var lvlColor = map[Lvl]*color.Color{
	LvlCrit:  color.New(color.FgMagenta, color.Bold),
	LvlError: color.New(color.FgRed),
	LvlWarn:  color.New(color.FgYellow),
	LvlInfo:  color.New(color.FgGreen),
	LvlDebug: color.New(color.FgCyan),
	LvlTrace: color.New(color.FgWhite),
}

// TerminalFormat renders records as a single line with a colorized level
// tag when useColor is true (and the destination is a real terminal).
func TerminalFormat(useColor bool) Format {
	return formatFunc(func(r *Record) []byte {
		var buf bytes.Buffer
		ts := r.Time.Format("15:04:05.000")
		lvl := r.Lvl.String()
		if useColor {
			if c, ok := lvlColor[r.Lvl]; ok {
				lvl = c.Sprintf("%-5s", lvl)
			}
		} else {
			lvl = fmt.Sprintf("%-5s", lvl)
		}
		fmt.Fprintf(&buf, "%s [%s] %s", ts, lvl, r.Msg)
		for i := 0; i+1 < len(r.Ctx); i += 2 {
			fmt.Fprintf(&buf, " %v=%v", r.Ctx[i], formatValue(r.Ctx[i+1]))
		}
		buf.WriteByte('\n')
		return buf.Bytes()
	})
}

// LogfmtFormat renders records as logfmt (key=value) lines, sorted by key,
// suitable for file output or piping into other tools.
func LogfmtFormat() Format {
	return formatFunc(func(r *Record) []byte {
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "t=%s lvl=%s msg=%q", r.Time.Format(`2006-01-02T15:04:05.000`), r.Lvl.String(), r.Msg)
		keys := make([]string, 0, len(r.Ctx)/2)
		kv := map[string]interface{}{}
		for i := 0; i+1 < len(r.Ctx); i += 2 {
			k := fmt.Sprintf("%v", r.Ctx[i])
			keys = append(keys, k)
			kv[k] = r.Ctx[i+1]
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&buf, " %s=%v", k, formatValue(kv[k]))
		}
		buf.WriteByte('\n')
		return buf.Bytes()
	})
}

func formatValue(v interface{}) interface{} {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return v
}

// StreamHandler writes formatted records to w, serialized with a mutex so
// concurrent loggers (none in the simulator's single-threaded event loop,
// but tests may log from multiple goroutines) never interleave a line.
func StreamHandler(w io.Writer, fmtr Format) Handler {
	if cw, ok := w.(*os.File); ok {
		w = colorable.NewColorable(cw)
	}
	return &streamHandler{w: w, fmtr: fmtr}
}

type streamHandler struct {
	mu   sync.Mutex
	w    io.Writer
	fmtr Format
}

func (h *streamHandler) Log(r *Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(h.fmtr.Format(r))
	return err
}

// LvlFilterHandler drops records below the given level before delegating.
func LvlFilterHandler(maxLvl Lvl, h Handler) Handler {
	return &lvlFilterHandler{maxLvl: maxLvl, h: h}
}

type lvlFilterHandler struct {
	maxLvl Lvl
	h      Handler
}

func (h *lvlFilterHandler) Log(r *Record) error {
	if r.Lvl > h.maxLvl {
		return nil
	}
	return h.h.Log(r)
}

// MultiHandler fans a record out to every handler in hs.
func MultiHandler(hs ...Handler) Handler {
	return &multiHandler{hs: hs}
}

type multiHandler struct{ hs []Handler }

func (h *multiHandler) Log(r *Record) error {
	for _, sub := range h.hs {
		if err := sub.Log(r); err != nil {
			return err
		}
	}
	return nil
}
