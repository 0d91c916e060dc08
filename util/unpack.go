package util

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Unpacker turns a package file into an unpacked tree under dest.
type Unpacker interface {
	Unpack(ctx context.Context, archive, dest string) error
}

// Unpacker names accepted by NewUnpacker.
const (
	UnpackerNative = "native"
	UnpackerTar    = "tar"
)

// NewUnpacker returns the unpacker registered under name.
func NewUnpacker(name string) (Unpacker, error) {
	switch name {
	case "", UnpackerNative:
		return NativeUnpacker{}, nil
	case UnpackerTar:
		return TarUnpacker{Binary: "tar"}, nil
	}
	return nil, fmt.Errorf("unknown unpacker %q (want %q or %q)", name, UnpackerNative, UnpackerTar)
}

// NativeUnpacker reads the gzip-compressed tar stream in process. Only
// directories and regular files are written.
type NativeUnpacker struct{}

func (NativeUnpacker) Unpack(ctx context.Context, archive, dest string) error {
	f, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnpack, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnpack, archive, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: reading tar entry: %w", ErrUnpack, err)
		}

		name := filepath.Clean(filepath.FromSlash(hdr.Name))
		if name == "." {
			continue
		}
		if !filepath.IsLocal(name) {
			return fmt.Errorf("%w: entry %q: %w", ErrUnpack, hdr.Name, ErrUnsafePath)
		}
		target := filepath.Join(dest, name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr); err != nil {
				return fmt.Errorf("%w: entry %q: %w", ErrUnpack, hdr.Name, err)
			}
		}
	}
}

func writeEntry(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// TarUnpacker shells out to a tar binary.
type TarUnpacker struct {
	Binary string
}

func (t TarUnpacker) Unpack(ctx context.Context, archive, dest string) error {
	bin := t.Binary
	if bin == "" {
		bin = "tar"
	}
	cmd := exec.CommandContext(ctx, bin, "zxf", archive, "-C", dest)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%w: %s", ErrUnpack, msg)
	}
	return nil
}
