// chessboard creates, inspects and converts saved chess positions.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hailam/chessboard/internal/codec"
)

// Environment fallbacks for flags.
const (
	envFormat  = "CHESSBOARD_FORMAT"
	envNoColor = "NO_COLOR"
)

var errUsage = errors.New("usage")

type command struct {
	name  string
	usage string
	run   func(args []string, out io.Writer) error
}

var commands []command

func init() {
	commands = []command{
		{"new", "new [-o file] [-force] [-empty] [-format f]", cmdNew},
		{"show", "show [-format f] [-no-color] file", cmdShow},
		{"fen", "fen [-format f] file", cmdFEN},
		{"from-fen", "from-fen [-o file] [-force] [-format f] \"<fen>\"", cmdFromFEN},
		{"render", "render [-format f] [-size n] -o out.png file", cmdRender},
		{"view", "view [-format f] [-w] file", cmdView},
		{"import-pgn", "import-pgn [-o file] [-force] [-format f] game.pgn", cmdImportPGN},
		{"store", "store save|load|list|delete|set-format ...", cmdStore},
	}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("chessboard: ")

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(args[1:], out)
		}
	}
	return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: chessboard <command> [flags]")
	for _, c := range commands {
		fmt.Fprintf(w, "  %s\n", c.usage)
	}
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// formatFlag registers -format with the environment as fallback.
func formatFlag(fs *flag.FlagSet) *string {
	return fs.String("format", os.Getenv(envFormat), "file format: tagged or legacy")
}

func resolveFormat(s string) (codec.Format, error) {
	return codec.ParseFormat(s)
}

// configureColor turns colored output off for -no-color, NO_COLOR or a
// non-terminal writer.
func configureColor(noColor bool, out io.Writer) {
	if noColor || os.Getenv(envNoColor) != "" || out != io.Writer(os.Stdout) {
		color.NoColor = true
	}
}

func oneArg(fs *flag.FlagSet, what string) (string, error) {
	if fs.NArg() != 1 || strings.TrimSpace(fs.Arg(0)) == "" {
		return "", fmt.Errorf("expected %s: %w", what, errUsage)
	}
	return fs.Arg(0), nil
}
