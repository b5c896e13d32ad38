package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/oclaw/supportreq/common"
	"github.com/oclaw/supportreq/types"
)

type fsRecordStorage struct {
	dirPath string
}

func NewFsRecordStorage(dirPath string) (RecordStorage, error) {
	storage := &fsRecordStorage{
		dirPath: dirPath,
	}
	if err := os.MkdirAll(storage.dirPath, os.ModePerm); common.IgnoreErr(err, os.ErrExist) != nil {
		return nil, err
	}

	return storage, nil
}

func (st *fsRecordStorage) recordPath(id types.RecordID) (string, error) {
	if len(id) == 0 {
		return "", types.ErrEmptyRecordID
	}
	// ids are used as file names
	if strings.ContainsAny(string(id), `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid record id '%s'", id)
	}
	return path.Join(st.dirPath, fmt.Sprintf("%s.json", id)), nil
}

func (st *fsRecordStorage) Store(_ context.Context, rec *types.SupportRecord) error {
	filePath, err := st.recordPath(rec.RecordID)
	if err != nil {
		return err
	}

	marshaled, err := json.MarshalIndent(rec, "", " ")
	if err != nil {
		return err
	}

	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write(marshaled)
	return err
}

func (st *fsRecordStorage) Get(_ context.Context, id types.RecordID) (*types.SupportRecord, error) {
	filePath, err := st.recordPath(id)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, types.ErrRecordNotFound
		}
		return nil, err
	}
	defer file.Close()

	var rec types.SupportRecord
	if err := json.NewDecoder(file).Decode(&rec); err != nil {
		return nil, err
	}

	return &rec, nil
}
