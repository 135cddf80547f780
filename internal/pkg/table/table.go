// Package table implements a keyed multimap ledger mirrored to a CSV file.
//
// A Table groups the data rows of a file by their key column into ordered
// record sequences. Keys iterate in first-insertion order: the order in which
// they first appeared in the file, followed by keys inserted since. Every
// mutating call rewrites the whole file before returning.
package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Codec maps between one CSV row and a keyed record.
type Codec[R any] interface {
	// Header returns the column names written as the first row.
	Header() []string
	// Decode splits a data row into its key and record.
	Decode(row []string) (string, R, error)
	// Encode renders one (key, record) pair as a data row.
	Encode(key string, record R) []string
}

// Entry is one key with its records.
type Entry[R any] struct {
	Key     string
	Records []R
}

// Table is an in-memory ledger backed by a single CSV file.
// It is not safe for concurrent use; callers hold their own lock around
// read-modify-persist sequences.
type Table[R any] struct {
	path  string
	codec Codec[R]
	order []string
	rows  map[string][]R
}

// New creates an empty table bound to path. Call Load to read the file.
func New[R any](path string, codec Codec[R]) *Table[R] {
	return &Table[R]{
		path:  path,
		codec: codec,
		rows:  make(map[string][]R),
	}
}

// Path returns the backing file path.
func (t *Table[R]) Path() string {
	return t.path
}

// Load replaces the in-memory ledger with the contents of the backing file.
// The header row is skipped. A missing or empty file, a row with the wrong
// number of columns, or a row the codec rejects fails with apperrors.ErrStorage
// and leaves the current ledger untouched.
func (t *Table[R]) Load() error {
	file, err := os.Open(t.path)
	if err != nil {
		return apperrors.NewStorageError(t.path, err)
	}
	defer file.Close()

	buffered := bufio.NewReader(file)
	if prefix, _ := buffered.Peek(len(utf8BOM)); bytes.Equal(prefix, utf8BOM) {
		buffered.Discard(len(utf8BOM))
	}

	order, rows, err := t.read(buffered)
	if err != nil {
		return apperrors.NewStorageError(t.path, err)
	}

	t.order = order
	t.rows = rows
	return nil
}

func (t *Table[R]) read(r io.Reader) ([]string, map[string][]R, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(t.codec.Header())

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("missing header row")
		}
		return nil, nil, err
	}

	var order []string
	rows := make(map[string][]R)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		key, record, err := t.codec.Decode(row)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		if _, seen := rows[key]; !seen {
			order = append(order, key)
		}
		rows[key] = append(rows[key], record)
	}

	return order, rows, nil
}

// Persist rewrites the backing file from the in-memory ledger: header first,
// then one row per (key, record) pair in ledger order. The rows are written to
// a temporary file in the same directory which is then renamed over the
// existing file, so a crash leaves either the old or the new file.
func (t *Table[R]) Persist() error {
	if err := WriteFileAtomic(t.path, t.write); err != nil {
		return apperrors.NewStorageError(t.path, err)
	}
	return nil
}

// WriteFileAtomic writes a file through a temporary sibling that is renamed
// over path once write succeeds.
func WriteFileAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (t *Table[R]) write(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.codec.Header()); err != nil {
		return err
	}
	for _, key := range t.order {
		for _, record := range t.rows[key] {
			if err := writer.Write(t.codec.Encode(key, record)); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// Has reports whether key is present.
func (t *Table[R]) Has(key string) bool {
	_, ok := t.rows[key]
	return ok
}

// Get returns a copy of the records stored under key.
func (t *Table[R]) Get(key string) ([]R, bool) {
	records, ok := t.rows[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(records), true
}

// Keys returns the keys in ledger order.
func (t *Table[R]) Keys() []string {
	return slices.Clone(t.order)
}

// Len returns the number of keys.
func (t *Table[R]) Len() int {
	return len(t.order)
}

// RecordCount returns the number of records across all keys.
func (t *Table[R]) RecordCount() int {
	n := 0
	for _, records := range t.rows {
		n += len(records)
	}
	return n
}

// Snapshot returns a deep copy of the ledger in key order.
func (t *Table[R]) Snapshot() []Entry[R] {
	entries := make([]Entry[R], 0, len(t.order))
	for _, key := range t.order {
		entries = append(entries, Entry[R]{Key: key, Records: slices.Clone(t.rows[key])})
	}
	return entries
}

// Insert adds records under a new key and persists. It fails with
// apperrors.ErrResourceAlreadyExists if the key is present; callers delete
// first to replace.
func (t *Table[R]) Insert(key string, records ...R) error {
	if err := validateKey(key, records); err != nil {
		return err
	}
	if t.Has(key) {
		return apperrors.NewAlreadyExistsError(fmt.Sprintf("key %q already exists", key))
	}

	t.order = append(t.order, key)
	t.rows[key] = slices.Clone(records)
	return t.Persist()
}

// Update applies fn to the first record under key for which match returns
// true, then persists. Nothing changes when the key or a matching record is
// absent; the call then fails with apperrors.ErrResourceNotFound.
func (t *Table[R]) Update(key string, match func(R) bool, fn func(*R)) error {
	records, ok := t.rows[key]
	if !ok {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("key %q not found", key))
	}

	for i := range records {
		if match(records[i]) {
			fn(&records[i])
			return t.Persist()
		}
	}
	return apperrors.NewResourceNotFoundError(fmt.Sprintf("no matching record under key %q", key))
}

// UpdateAll applies fn to every record under key, then persists.
func (t *Table[R]) UpdateAll(key string, fn func(*R)) error {
	records, ok := t.rows[key]
	if !ok {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("key %q not found", key))
	}
	for i := range records {
		fn(&records[i])
	}
	return t.Persist()
}

// Replace swaps the whole record sequence of an existing key, keeping its
// position in ledger order, then persists.
func (t *Table[R]) Replace(key string, records ...R) error {
	if err := validateKey(key, records); err != nil {
		return err
	}
	if !t.Has(key) {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("key %q not found", key))
	}

	t.rows[key] = slices.Clone(records)
	return t.Persist()
}

// Delete removes key and all of its records, then persists.
func (t *Table[R]) Delete(key string) error {
	if !t.Has(key) {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("key %q not found", key))
	}

	delete(t.rows, key)
	t.order = slices.DeleteFunc(t.order, func(k string) bool { return k == key })
	return t.Persist()
}

func validateKey[R any](key string, records []R) error {
	if strings.TrimSpace(key) == "" {
		return apperrors.NewValidationError("key cannot be empty")
	}
	if len(records) == 0 {
		return apperrors.NewValidationError(fmt.Sprintf("no records given for key %q", key))
	}
	return nil
}

// TrimBOM removes a leading UTF-8 byte order mark, as written by spreadsheet
// tools and by "utf-8-sig" encoders.
func TrimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}
