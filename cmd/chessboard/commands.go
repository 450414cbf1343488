package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/codec"
	"github.com/hailam/chessboard/internal/game"
	"github.com/hailam/chessboard/internal/interop"
	"github.com/hailam/chessboard/internal/render"
	"github.com/hailam/chessboard/internal/view"
)

func cmdNew(args []string, out io.Writer) error {
	fs := newFlagSet("new")
	output := fs.String("o", "game.chs", "output file")
	force := fs.Bool("force", false, "overwrite an existing file")
	empty := fs.Bool("empty", false, "create an empty board instead of the opening position")
	format := formatFlag(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	f, err := resolveFormat(*format)
	if err != nil {
		return err
	}

	var b *board.Board
	if *empty {
		b, err = board.New()
	} else {
		b, err = board.NewStart()
	}
	if err != nil {
		return err
	}

	if err := codec.Save(*output, b, *force, codec.WithFormat(f)); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s (%s)\n", *output, f)
	return nil
}

// loadArg parses the common [-format f] file arguments and loads the board.
func loadArg(fs *flag.FlagSet, format *string, args []string) (*board.Board, codec.Format, error) {
	if err := fs.Parse(args); err != nil {
		return nil, 0, fmt.Errorf("%v: %w", err, errUsage)
	}
	path, err := oneArg(fs, "a board file")
	if err != nil {
		return nil, 0, err
	}
	f, err := resolveFormat(*format)
	if err != nil {
		return nil, 0, err
	}
	b, err := codec.Load(path, codec.WithFormat(f))
	return b, f, err
}

func cmdShow(args []string, out io.Writer) error {
	fs := newFlagSet("show")
	format := formatFlag(fs)
	noColor := fs.Bool("no-color", false, "disable colored output")
	b, _, err := loadArg(fs, format, args)
	if err != nil {
		return err
	}
	configureColor(*noColor, out)
	printBoard(out, b)
	return nil
}

func cmdFEN(args []string, out io.Writer) error {
	fs := newFlagSet("fen")
	format := formatFlag(fs)
	b, _, err := loadArg(fs, format, args)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, b.FEN())
	return nil
}

func cmdFromFEN(args []string, out io.Writer) error {
	fs := newFlagSet("from-fen")
	output := fs.String("o", "game.chs", "output file")
	force := fs.Bool("force", false, "overwrite an existing file")
	format := formatFlag(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	fen, err := oneArg(fs, "a FEN string")
	if err != nil {
		return err
	}
	f, err := resolveFormat(*format)
	if err != nil {
		return err
	}

	b, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	if err := codec.Save(*output, b, *force, codec.WithFormat(f)); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s (%d pieces)\n", *output, b.PieceCount())
	return nil
}

func cmdRender(args []string, out io.Writer) error {
	fs := newFlagSet("render")
	format := formatFlag(fs)
	size := fs.Int("size", 64, "square size in pixels")
	output := fs.String("o", "", "output PNG file")
	b, _, err := loadArg(fs, format, args)
	if err != nil {
		return err
	}
	if *output == "" {
		return fmt.Errorf("render needs -o: %w", errUsage)
	}

	file, err := os.Create(*output)
	if err != nil {
		return err
	}
	if err := render.NewRenderer(*size).WritePNG(file, b); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", *output)
	return nil
}

func cmdView(args []string, out io.Writer) error {
	fs := newFlagSet("view")
	format := formatFlag(fs)
	write := fs.Bool("w", false, "write the board back to the file on exit")
	b, f, err := loadArg(fs, format, args)
	if err != nil {
		return err
	}
	path := fs.Arg(0)

	session, err := game.NewSession(b)
	if err != nil {
		return err
	}

	if err := runViewer(session); err != nil {
		return err
	}

	if *write {
		if err := session.Save(path, true, codec.WithFormat(f)); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", path)
	}
	return nil
}

// newScreen is replaced in tests.
var newScreen = tcell.NewScreen

func runViewer(session *game.Session) error {
	screen, err := newScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	view.NewViewer(screen, session).Run()
	return nil
}

func cmdImportPGN(args []string, out io.Writer) error {
	fs := newFlagSet("import-pgn")
	output := fs.String("o", "game.chs", "output file")
	force := fs.Bool("force", false, "overwrite an existing file")
	format := formatFlag(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	path, err := oneArg(fs, "a PGN file")
	if err != nil {
		return err
	}
	f, err := resolveFormat(*format)
	if err != nil {
		return err
	}

	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	b, err := interop.ImportPGN(in)
	if err != nil {
		return err
	}
	if err := codec.Save(*output, b, *force, codec.WithFormat(f)); err != nil {
		return err
	}
	log.Printf("imported %s: %s to move", path, b.MovesNext())
	fmt.Fprintf(out, "wrote %s\n", *output)
	return nil
}
