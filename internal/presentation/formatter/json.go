package formatter

import (
	"io"

	"github.com/bytedance/sonic"
)

type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

func (f *JSONFormatter) FormatTimers(rows []TimerRow) error {
	return f.encode(rows)
}

func (f *JSONFormatter) FormatRecords(rows []RecordRow) error {
	return f.encode(rows)
}

func (f *JSONFormatter) encode(v any) error {
	encoder := sonic.ConfigStd.NewEncoder(f.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
