package storage

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"io"
	"os"
	"path"

	"github.com/dronemarket/catalog/pkg/catalog"
	"github.com/dronemarket/catalog/pkg/common/jsoncompat"
)

const snapshotFile = "catalog.gob.gz"

// DiskStorage persists catalog state under a single directory so the
// service can restart without refetching the feed.
type DiskStorage struct {
	Path string
}

func NewDiskStorage(basePath string) *DiskStorage {
	return &DiskStorage{Path: basePath}
}

// GetFileName returns the final path and the temporary path writes go
// through before the rename.
func (d *DiskStorage) GetFileName(name string) (string, string) {
	fileName := path.Join(d.Path, name)
	return fileName, fileName + ".tmp"
}

func (d *DiskStorage) SaveSnapshot(s *catalog.Snapshot) error {
	return d.SaveGzippedGob(s, snapshotFile)
}

func (d *DiskStorage) LoadSnapshot() (*catalog.Snapshot, error) {
	s := &catalog.Snapshot{}
	if err := d.LoadGzippedGob(s, snapshotFile); err != nil {
		return nil, err
	}
	return s, nil
}

func (d *DiskStorage) HasSnapshot() bool {
	name, _ := d.GetFileName(snapshotFile)
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}

func (d *DiskStorage) SaveGzippedGob(data any, filename string) error {
	fileName, tmpFileName := d.GetFileName(filename)
	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}
	defer file.Close()

	zipWriter := gzip.NewWriter(file)
	enc := gob.NewEncoder(zipWriter)
	if err = enc.Encode(data); err != nil {
		zipWriter.Close()
		return err
	}
	if err = zipWriter.Close(); err != nil {
		return err
	}
	return os.Rename(tmpFileName, fileName)
}

func (d *DiskStorage) LoadGzippedGob(data any, filename string) error {
	name, _ := d.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	dec := gob.NewDecoder(zipReader)
	if err = dec.Decode(data); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (d *DiskStorage) SaveJson(data any, name string) error {
	fileName, tmpFileName := d.GetFileName(name)
	bytes, err := jsoncompat.Marshal(data)
	if err != nil {
		return err
	}
	if err = os.WriteFile(tmpFileName, bytes, 0644); err != nil {
		return err
	}
	return os.Rename(tmpFileName, fileName)
}

func (d *DiskStorage) LoadJson(data any, name string) error {
	fileName, _ := d.GetFileName(name)
	bytes, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}
	return jsoncompat.Unmarshal(bytes, data)
}
