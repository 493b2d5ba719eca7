// Package store persists small JSON documents on local disk and defines
// the error taxonomy shared by the prompt library and the stack store.
//
// Documents are meant to be hand-edited, so reads are lenient: strict JSON
// is tried first, then Hjson (comments, unquoted keys, trailing commas),
// then a repair pass for damaged input such as unclosed brackets. Writes
// are always strict, indented JSON replaced atomically via a temp file
// and rename, so a crash mid-write never leaves a torn document behind.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// ReadFile loads the document at path into v. It reports false with a nil
// error when the file does not exist, leaving v untouched. An empty or
// whitespace-only file is treated the same as a missing one.
func ReadFile(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, &StorageError{Op: "read", Path: path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}
	if err := Decode(data, v); err != nil {
		return false, &StorageError{Op: "decode", Path: path, Err: err}
	}
	return true, nil
}

// Decode parses data into v, falling back to Hjson and then JSON repair
// when the input is not strict JSON. The fallbacks only apply to input
// that opens with an object or array, and a repair that salvages nothing
// is an error, so unrelated bytes never decode as an empty document.
func Decode(data []byte, v any) error {
	strictErr := json.Unmarshal(data, v)
	if strictErr == nil {
		return nil
	}
	if !looksLikeDocument(data) {
		return fmt.Errorf("parse document: %w", strictErr)
	}

	var generic any
	if err := hjson.Unmarshal(data, &generic); err == nil {
		if normalized, err := json.Marshal(generic); err == nil {
			if err := json.Unmarshal(normalized, v); err == nil {
				return nil
			}
		}
	}

	if repaired, err := jsonrepair.RepairJSON(string(data)); err == nil {
		var salvaged any
		if err := json.Unmarshal([]byte(repaired), &salvaged); err == nil && !isEmpty(salvaged) {
			if err := json.Unmarshal([]byte(repaired), v); err == nil {
				return nil
			}
		}
	}

	return fmt.Errorf("parse document: %w", strictErr)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func looksLikeDocument(data []byte) bool {
	data = bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	return len(data) > 0 && (data[0] == '{' || data[0] == '[')
}

func isEmpty(v any) bool {
	switch v := v.(type) {
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return true
	}
}

// WriteFile encodes v as indented JSON and atomically replaces path with
// it. The parent directory is created if needed. On any failure the
// previous file content is left in place and the temp file is removed.
func WriteFile(path string, v any) (err error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Path: path, Err: err}
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err = tmp.Sync(); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err = tmp.Chmod(0o644); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err = os.Rename(tmpName, path); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}
