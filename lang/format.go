package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the trace as plain text to the writer: one rendered
// step per line, with the step index prefixed, followed by the result.
func (t *Trace) Format(_ context.Context, w io.Writer) error {
	width := len(fmt.Sprint(len(t.Steps) - 1))

	for i, step := range t.Steps {
		if _, err := fmt.Fprintf(w, "%*d  %s\n", width, i, step); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, t.Result)

	return err
}

// FormatJSON writes the trace as JSON to the writer.
func (t *Trace) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(t, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(t)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the trace as YAML to the writer.
func (t *Trace) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, t, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}
