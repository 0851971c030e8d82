package checkpoint

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
	"github.com/zeebo/blake3"

	"github.com/spacemeshos/go-pallets/common/types"
	"github.com/spacemeshos/go-pallets/hash"
)

// RecoveryFile is written to a temporary file and moved to its path on Save, so
// readers never see a partial checkpoint. Everything written is also hashed, Save
// returns the checksum of the file.
type RecoveryFile struct {
	file   afero.File
	buf    *bufio.Writer
	hasher *blake3.Hasher
	w      io.Writer
	path   string
}

// NewRecoveryFile prepares a checkpoint file. It fails if the file already exists.
func NewRecoveryFile(fs afero.Fs, path string) (*RecoveryFile, error) {
	if _, err := fs.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: file already exist %v", os.ErrExist, path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %v: %w", path, err)
	}
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create dst dir %v: %w", dir, err)
	}
	tmp, err := afero.TempFile(fs, dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("%w: create tmp file", err)
	}
	rf := &RecoveryFile{
		file:   tmp,
		buf:    bufio.NewWriter(tmp),
		hasher: hash.GetHasher(),
		path:   path,
	}
	rf.w = io.MultiWriter(rf.buf, rf.hasher)
	return rf, nil
}

// Write implements io.Writer.
func (rf *RecoveryFile) Write(p []byte) (int, error) {
	return rf.w.Write(p)
}

// Save flushes the data, renames the temporary file to the checkpoint path and
// returns the checksum of the content. On failure the temporary file is dropped
// and a checkpoint that appeared at the path in the meantime is kept.
func (rf *RecoveryFile) Save(fs afero.Fs) (types.Hash32, error) {
	var checksum types.Hash32
	rf.hasher.Sum(checksum[:0])
	hash.PutHasher(rf.hasher)
	rf.hasher = nil

	if err := rf.save(fs); err != nil {
		return checksum, errors.Join(err, rf.Abort(fs))
	}
	return checksum, nil
}

func (rf *RecoveryFile) save(fs afero.Fs) error {
	if err := rf.buf.Flush(); err != nil {
		return fmt.Errorf("flush tmp file: %w", err)
	}
	if err := rf.file.Sync(); err != nil {
		return fmt.Errorf("%w: sync tmp file", err)
	}
	if err := rf.file.Close(); err != nil {
		return fmt.Errorf("%w: close tmp file", err)
	}
	if _, err := fs.Stat(rf.path); err == nil {
		return fmt.Errorf("%w: file already exist %v", os.ErrExist, rf.path)
	}
	if err := fs.Rename(rf.file.Name(), rf.path); err != nil {
		return fmt.Errorf("%w: rename tmp file %v to %v", err, rf.file.Name(), rf.path)
	}
	return nil
}

// Abort drops the temporary file. The checkpoint path is left untouched.
func (rf *RecoveryFile) Abort(fs afero.Fs) error {
	if rf.hasher != nil {
		hash.PutHasher(rf.hasher)
		rf.hasher = nil
	}
	rf.file.Close()
	if err := fs.Remove(rf.file.Name()); err != nil {
		return fmt.Errorf("remove tmp file %v: %w", rf.file.Name(), err)
	}
	return nil
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString(schemaFile, Schema)
})

// ValidateSchema checks data against Schema.
func ValidateSchema(data []byte) error {
	sch, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile checkpoint json schema: %w", err)
	}
	var v any
	if err = json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal checkpoint data: %w", err)
	}
	if err = sch.Validate(v); err != nil {
		return fmt.Errorf("validate checkpoint data: %w", err)
	}
	return nil
}
