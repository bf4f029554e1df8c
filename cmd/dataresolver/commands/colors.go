package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
)

// palette holds the color functions of text output. A disabled palette
// formats without escape codes.
type palette struct {
	header  func(string, ...any) string
	path    func(string, ...any) string
	typ     func(string, ...any) string
	str     func(string, ...any) string
	num     func(string, ...any) string
	boolean func(string, ...any) string
	null    func(string, ...any) string
	ok      func(string, ...any) string
	bad     func(string, ...any) string
}

func newPalette(enabled bool) *palette {
	mk := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintfFunc()
	}
	return &palette{
		header:  mk(color.Bold, color.Underline),
		path:    mk(color.FgBlue),
		typ:     mk(color.FgHiBlack),
		str:     mk(color.FgGreen),
		num:     mk(color.FgCyan),
		boolean: mk(color.FgYellow),
		null:    mk(color.FgMagenta),
		ok:      mk(color.FgGreen, color.Bold),
		bad:     mk(color.FgRed, color.Bold),
	}
}

// value renders one exported value on a single line. Lists and objects are
// written as compact JSON.
func (p *palette) value(v any) string {
	switch v := v.(type) {
	case nil:
		return p.null("null")
	case string:
		return p.str("%s", v)
	case bool:
		return p.boolean("%t", v)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return p.num("%v", v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
