package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/codec"
)

// Storage keys
const (
	keyPreferences = "preferences"
	prefixBoard    = "board/"
	prefixMeta     = "meta/"
)

var (
	// ErrNotFound is returned when no board is stored under a name.
	ErrNotFound = errors.New("board not found")
	// ErrInvalidName rejects names that are empty or contain '/' or NUL.
	ErrInvalidName = errors.New("invalid board name")
)

// Preferences stores user settings for the command line tool.
type Preferences struct {
	Format    string    `json:"format"`
	LastBoard string    `json:"last_board"`
	Updated   time.Time `json:"updated"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		Format: codec.DefaultFormat.String(),
	}
}

// BoardInfo describes a stored board without decoding it.
type BoardInfo struct {
	Name      string      `json:"name"`
	SavedAt   time.Time   `json:"saved_at"`
	MovesNext board.Color `json:"moves_next"`
	Pieces    int         `json:"pieces"`
	Alive     int         `json:"alive"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the default data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens or creates a database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GenerateName returns a random readable board name.
func GenerateName() string {
	return petname.Generate(2, "-")
}

func validName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\x00") {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}

// SaveBoard stores b under name, replacing any board already stored
// there. An empty name is replaced by a generated one. The name used is
// returned.
func (s *Storage) SaveBoard(name string, b *board.Board) (string, error) {
	if name == "" {
		name = GenerateName()
	}
	if err := validName(name); err != nil {
		return "", err
	}

	data, err := codec.Marshal(b, codec.FormatTagged)
	if err != nil {
		return "", err
	}

	info := BoardInfo{
		Name:      name,
		SavedAt:   time.Now(),
		MovesNext: b.MovesNext(),
	}
	for _, p := range b.Pieces() {
		info.Pieces++
		if p.IsAlive() {
			info.Alive++
		}
	}
	meta, err := json.Marshal(info)
	if err != nil {
		return "", err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(prefixBoard+name), data); err != nil {
			return err
		}
		return txn.Set([]byte(prefixMeta+name), meta)
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// LoadBoard returns the board stored under name.
func (s *Storage) LoadBoard(name string) (*board.Board, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	var b *board.Board
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixBoard + name))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%q: %w", name, ErrNotFound)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			b, err = codec.Unmarshal(val, codec.FormatTagged)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// List returns the stored boards sorted by name.
func (s *Storage) List() ([]BoardInfo, error) {
	var infos []BoardInfo

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(prefixMeta)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var info BoardInfo
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &info)
			})
			if err != nil {
				return err
			}
			infos = append(infos, info)
		}
		return nil
	})

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, err
}

// Delete removes the board stored under name.
func (s *Storage) Delete(name string) error {
	if err := validName(name); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(prefixBoard + name))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%q: %w", name, ErrNotFound)
		}
		if err != nil {
			return err
		}
		if err := txn.Delete([]byte(prefixBoard + name)); err != nil {
			return err
		}
		return txn.Delete([]byte(prefixMeta + name))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.Updated = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}
