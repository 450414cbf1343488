package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/hailam/chessboard/internal/codec"
	"github.com/hailam/chessboard/internal/storage"
)

// openStore is replaced in tests.
var openStore = storage.NewStorage

func cmdStore(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("store needs a subcommand: %w", errUsage)
	}

	var sub func(*storage.Storage, *storage.Preferences, []string, io.Writer) error
	switch args[0] {
	case "save":
		sub = storeSave
	case "load":
		sub = storeLoad
	case "list":
		sub = storeList
	case "delete":
		sub = storeDelete
	case "set-format":
		sub = storeSetFormat
	default:
		return fmt.Errorf("unknown store command %q: %w", args[0], errUsage)
	}

	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	prefs, err := s.LoadPreferences()
	if err != nil {
		return err
	}
	return sub(s, prefs, args[1:], out)
}

// storeFormat resolves -format, falling back to the stored preference.
func storeFormat(flagValue string, prefs *storage.Preferences) (codec.Format, error) {
	if flagValue == "" {
		flagValue = prefs.Format
	}
	return resolveFormat(flagValue)
}

func storeSave(s *storage.Storage, prefs *storage.Preferences, args []string, out io.Writer) error {
	fs := newFlagSet("store save")
	name := fs.String("name", "", "board name (generated when empty)")
	format := formatFlag(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	path, err := oneArg(fs, "a board file")
	if err != nil {
		return err
	}
	f, err := storeFormat(*format, prefs)
	if err != nil {
		return err
	}

	b, err := codec.Load(path, codec.WithFormat(f))
	if err != nil {
		return err
	}
	stored, err := s.SaveBoard(*name, b)
	if err != nil {
		return err
	}

	prefs.LastBoard = stored
	if err := s.SavePreferences(prefs); err != nil {
		return err
	}
	fmt.Fprintf(out, "stored %s as %s\n", path, stored)
	return nil
}

func storeLoad(s *storage.Storage, prefs *storage.Preferences, args []string, out io.Writer) error {
	fs := newFlagSet("store load")
	name := fs.String("name", "", "board name (defaults to the last stored board)")
	output := fs.String("o", "", "output file")
	force := fs.Bool("force", false, "overwrite an existing file")
	format := formatFlag(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	if *output == "" || fs.NArg() != 0 {
		return fmt.Errorf("store load needs -o: %w", errUsage)
	}
	f, err := storeFormat(*format, prefs)
	if err != nil {
		return err
	}

	if *name == "" {
		*name = prefs.LastBoard
	}
	if *name == "" {
		return fmt.Errorf("no board name given and none stored yet: %w", errUsage)
	}

	b, err := s.LoadBoard(*name)
	if err != nil {
		return err
	}
	if err := codec.Save(*output, b, *force, codec.WithFormat(f)); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s to %s (%s)\n", *name, *output, f)
	return nil
}

func storeList(s *storage.Storage, prefs *storage.Preferences, args []string, out io.Writer) error {
	if len(args) != 0 {
		return fmt.Errorf("store list takes no arguments: %w", errUsage)
	}
	infos, err := s.List()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintln(out, "no stored boards")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSAVED\tTO MOVE\tPIECES\tALIVE")
	for _, info := range infos {
		name := info.Name
		if name == prefs.LastBoard {
			name += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", name,
			info.SavedAt.Format(time.DateTime), info.MovesNext, info.Pieces, info.Alive)
	}
	return tw.Flush()
}

func storeDelete(s *storage.Storage, prefs *storage.Preferences, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("store delete needs a name: %w", errUsage)
	}
	name := args[0]
	if err := s.Delete(name); err != nil {
		return err
	}
	if prefs.LastBoard == name {
		prefs.LastBoard = ""
		if err := s.SavePreferences(prefs); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "deleted %s\n", name)
	return nil
}

func storeSetFormat(s *storage.Storage, prefs *storage.Preferences, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("store set-format needs a format: %w", errUsage)
	}
	f, err := resolveFormat(args[0])
	if err != nil {
		return err
	}
	prefs.Format = f.String()
	if err := s.SavePreferences(prefs); err != nil {
		return err
	}
	fmt.Fprintf(out, "default format is now %s\n", f)
	return nil
}
