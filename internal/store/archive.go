// Package store archives the scenes of a render as gzipped JSON lines.
package store

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/san-kum/fepmorph/internal/anim"
	"github.com/san-kum/fepmorph/internal/scene"
)

const ArchiveName = "frames.jsonl.gz"

type FrameRecord struct {
	Index    int                `json:"index"`
	Lambda   float64            `json:"lambda"`
	Channels map[string]float64 `json:"channels"`
	Scene    *scene.Scene       `json:"scene"`
}

// ArchiveWriter is a FrameObserver that appends every frame to a gzip
// stream. Close must be called to flush it.
type ArchiveWriter struct {
	file *os.File
	gz   *gzip.Writer
	enc  *json.Encoder
}

func NewArchiveWriter(path string) (*ArchiveWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	gz, err := gzip.NewWriterLevel(f, gzip.BestCompression)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &ArchiveWriter{file: f, gz: gz, enc: json.NewEncoder(gz)}, nil
}

func (a *ArchiveWriter) OnFrame(ctx context.Context, f anim.Frame) error {
	rec := FrameRecord{
		Index:    f.Index,
		Lambda:   f.Lambda,
		Channels: make(map[string]float64, len(f.Channels)),
		Scene:    f.Scene,
	}
	for _, ch := range f.Channels {
		rec.Channels[ch.Name] = ch.Value
	}
	return a.enc.Encode(rec)
}

func (a *ArchiveWriter) Close() error {
	return errors.Join(a.gz.Close(), a.file.Close())
}

// ReadArchive decodes every frame of an archive.
func ReadArchive(path string) ([]FrameRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	var out []FrameRecord
	dec := json.NewDecoder(gz)
	for {
		var rec FrameRecord
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
		out = append(out, rec)
	}
}
