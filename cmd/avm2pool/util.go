package main

import (
	"encoding/json"
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/deepnoodle-ai/avm2/pkg/errors"
	"github.com/deepnoodle-ai/wonton/color"
	fcolor "github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/jmespath-community/go-jmespath"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

var (
	red    = fcolor.New(fcolor.FgRed).SprintFunc()
	yellow = fcolor.New(fcolor.FgYellow).SprintFunc()
)

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = errorMessage(msg)
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(strings.TrimRight(s, "\n")))
	os.Exit(1)
}

// errorMessage prefers the multi-line description of errors that have one.
func errorMessage(err error) string {
	var friendly errors.FriendlyError
	if goerrors.As(err, &friendly) {
		return friendly.FriendlyErrorMessage()
	}
	return err.Error()
}

func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, yellow(fmt.Sprintf(format, args...)))
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags(v *viper.Viper) {
	if v.GetBool("no-color") || !isTerminal(os.Stdout) {
		fcolor.NoColor = true
		color.Enabled = false
	}
}

func newLogger(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q", level)
	}
	out := zerolog.ConsoleWriter{
		Out:     w,
		NoColor: !isTerminal(os.Stderr),
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

func getOutputJSON(v *viper.Viper, result any) ([]byte, error) {
	if v.GetBool("no-color") || fcolor.NoColor {
		return json.MarshalIndent(result, "", "  ")
	}
	return prettyjson.Marshal(result)
}

// applyQuery filters result with the JMESPath expression in the "query"
// setting. The result is converted to plain JSON values first so that
// expressions use the JSON field names.
func applyQuery(v *viper.Viper, result any) (any, error) {
	query := v.GetString("query")
	if query == "" {
		return result, nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	filtered, err := jmespath.Search(query, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", query, err)
	}
	return filtered, nil
}

func writeJSON(v *viper.Viper, w io.Writer, result any) error {
	result, err := applyQuery(v, result)
	if err != nil {
		return err
	}
	data, err := getOutputJSON(v, result)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// readInput returns the contents of path, or of stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
