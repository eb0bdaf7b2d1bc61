package main

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/automoto/lodis-galaga/assets"
	"github.com/disintegration/imaging"
)

// Result describes one sprite file.
type Result struct {
	Name     string
	Missing  bool
	Err      error
	OldW     int
	OldH     int
	NewW     int
	NewH     int
	OldBytes int64
	NewBytes int64
}

// Savings is the percentage of bytes saved.
func (r Result) Savings() float64 {
	if r.OldBytes == 0 {
		return 0
	}
	return float64(r.OldBytes-r.NewBytes) / float64(r.OldBytes) * 100
}

// Optimize resizes <dir>/<name>.png for every sprite in defs to the
// sprite's size with Lanczos resampling and rewrites it in place.
func Optimize(dir string, defs []assets.SpriteDef, backup bool) []Result {
	out := make([]Result, 0, len(defs))
	for _, def := range defs {
		out = append(out, optimizeOne(dir, def, backup))
	}
	return out
}

func optimizeOne(dir string, def assets.SpriteDef, backup bool) Result {
	r := Result{Name: def.Name + ".png", NewW: def.W, NewH: def.H}
	path := filepath.Join(dir, r.Name)

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		r.Missing = true
		return r
	}
	if err != nil {
		r.Err = err
		return r
	}
	r.OldBytes = info.Size()

	img, err := imaging.Open(path)
	if err != nil {
		r.Err = fmt.Errorf("decode: %w", err)
		return r
	}
	b := img.Bounds()
	r.OldW, r.OldH = b.Dx(), b.Dy()

	if backup {
		if err := copyFile(path, filepath.Join(dir, "originals", r.Name)); err != nil {
			r.Err = fmt.Errorf("backup: %w", err)
			return r
		}
	}

	resized := imaging.Resize(img, def.W, def.H, imaging.Lanczos)
	if err := imaging.Save(resized, path, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		r.Err = fmt.Errorf("save: %w", err)
		return r
	}
	if info, err := os.Stat(path); err == nil {
		r.NewBytes = info.Size()
	}
	return r
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
