package storage

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/zstd"
)

// ErrClosed is returned by a journal after Close.
var ErrClosed = errors.New("storage: journal closed")

// Entry kinds
const (
	KindCommand = "command"
	KindSearch  = "search"
	KindGame    = "game"
)

var entryPrefix = []byte("entry/")

// Entry is one journal record. Command entries carry only Input; search
// entries describe the position searched and what was played.
type Entry struct {
	Time    time.Time     `json:"time"`
	Kind    string        `json:"kind"`
	Input   string        `json:"input,omitempty"`
	FEN     string        `json:"fen,omitempty"`
	Side    string        `json:"side,omitempty"`
	Depth   int           `json:"depth,omitempty"`
	Threads int           `json:"threads,omitempty"`
	Value   int           `json:"value"`
	Move    string        `json:"move,omitempty"`
	Best    []string      `json:"best,omitempty"`
	Nodes   uint64        `json:"nodes,omitempty"`
	Elapsed time.Duration `json:"elapsed,omitempty"`
}

// Journal is an append-only log of entries in time order. Values are JSON
// compressed with zstd.
type Journal struct {
	mu      sync.Mutex
	db      *badger.DB
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	seq     uint64
	closed  bool
}

// OpenJournal opens or creates the journal database in dir.
func OpenJournal(dir string) (*Journal, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory returns a journal that lives only as long as the process.
func OpenInMemory() (*Journal, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Journal, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	db, err := badger.Open(opts)
	if err != nil {
		encoder.Close()
		decoder.Close()
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return &Journal{db: db, encoder: encoder, decoder: decoder}, nil
}

// Close closes the database. Later calls are no-ops.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	j.decoder.Close()
	err := j.encoder.Close()
	if dbErr := j.db.Close(); dbErr != nil {
		return dbErr
	}
	return err
}

// Record appends e. A zero Time is replaced with the current time.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrClosed
	}
	j.seq++
	key := entryKey(e.Time, j.seq)
	value := j.encoder.EncodeAll(data, nil)

	return j.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Recent returns up to n entries, newest first.
func (j *Journal) Recent(n int) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil, ErrClosed
	}

	var entries []Entry
	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = entryPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		seek := append(append([]byte{}, entryPrefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(entryPrefix) && len(entries) < n; it.Next() {
			var e Entry
			if err := it.Item().Value(func(val []byte) error {
				data, err := j.decoder.DecodeAll(val, nil)
				if err != nil {
					return fmt.Errorf("decode entry: %w", err)
				}
				return json.Unmarshal(data, &e)
			}); err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return nil
	})

	return entries, err
}

// entryKey orders entries by time, then by insertion within one journal.
func entryKey(t time.Time, seq uint64) []byte {
	key := make([]byte, len(entryPrefix)+16)
	n := copy(key, entryPrefix)
	binary.BigEndian.PutUint64(key[n:], uint64(t.UnixNano()))
	binary.BigEndian.PutUint64(key[n+8:], seq)
	return key
}
