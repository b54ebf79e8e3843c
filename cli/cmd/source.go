package cmd

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"
)

// readExpr resolves the expression text for a command. Arguments given on
// the command line are joined with spaces; otherwise the expression is read
// from the source file, or stdin when source is "-".
func readExpr(args []string, source string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	var file *os.File
	if source == stdinSource {
		file = os.Stdin
	} else {
		var err error

		file, err = os.Open(source)
		if err != nil {
			return "", ErrReadSource.
				With(slog.String("file", source)).
				Wrap(err)
		}
		defer file.Close()
	}

	data, err := io.ReadAll(bufio.NewReader(file))
	if err != nil {
		return "", ErrReadSource.
			With(slog.String("file", file.Name())).
			Wrap(err)
	}

	return strings.TrimSpace(string(data)), nil
}
