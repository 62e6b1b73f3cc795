package convert

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"winterroom/internal/utils"
)

// FileEntry is one file in a .pkg bundle. Offset is relative to the end of
// the entry table.
type FileEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// maxPkgString bounds version and file-name lengths read from a bundle.
const maxPkgString = 4096

func readPkgString(r io.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	if size > maxPkgString {
		return "", fmt.Errorf("string length %d exceeds %d", size, maxPkgString)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadPkgIndex reads the version and entry table of a bundle. The reader is
// left positioned at the start of the data section.
func ReadPkgIndex(r io.Reader) (string, []FileEntry, error) {
	version, err := readPkgString(r)
	if err != nil {
		return "", nil, fmt.Errorf("read version: %w", err)
	}

	var fileCount uint32
	if err := binary.Read(r, binary.LittleEndian, &fileCount); err != nil {
		return "", nil, fmt.Errorf("read file count: %w", err)
	}

	entries := make([]FileEntry, 0, min(fileCount, 1<<16))
	for i := uint32(0); i < fileCount; i++ {
		name, err := readPkgString(r)
		if err != nil {
			return "", nil, fmt.Errorf("read entry %d: %w", i, err)
		}
		var pos [2]uint32
		if err := binary.Read(r, binary.LittleEndian, &pos); err != nil {
			return "", nil, fmt.Errorf("read entry %d: %w", i, err)
		}
		entries = append(entries, FileEntry{Name: name, Offset: pos[0], Size: pos[1]})
	}
	return version, entries, nil
}

// ExtractPkg unpacks a .pkg bundle into outputDir.
func ExtractPkg(pkgPath, outputDir string) error {
	utils.Debug("Unpacker: Opening package %s", pkgPath)
	f, err := os.Open(pkgPath)
	if err != nil {
		return err
	}
	defer f.Close()

	version, entries, err := ReadPkgIndex(f)
	if err != nil {
		return fmt.Errorf("%s: %w", pkgPath, err)
	}
	utils.Debug("Unpacker: Package Version: %s, File Count: %d", version, len(entries))

	dataStart, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	for i, entry := range entries {
		if i%10 == 0 || i == len(entries)-1 {
			utils.Debug("Unpacker: Extracting file %d/%d: %s", i+1, len(entries), entry.Name)
		}

		destPath, err := entryPath(outputDir, entry.Name)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return err
		}

		section := io.NewSectionReader(f, dataStart+int64(entry.Offset), int64(entry.Size))
		if err := writeEntry(destPath, section, int64(entry.Size)); err != nil {
			return fmt.Errorf("extract %s: %w", entry.Name, err)
		}
	}

	utils.Info("Unpacked %d files from %s", len(entries), pkgPath)
	return nil
}

// entryPath keeps bundle entries inside outputDir.
func entryPath(outputDir, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid entry name %q", name)
	}
	return filepath.Join(outputDir, clean), nil
}

func writeEntry(path string, r io.Reader, size int64) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.CopyN(out, r, size); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// BulkConvertTextures converts every packed texture under root to PNG in the
// converted cache, running at most workers decodes at once. Failed textures
// are logged and skipped; the returned count covers successful conversions.
func BulkConvertTextures(ctx context.Context, root string, workers int) (int, error) {
	utils.Info("Starting bulk texture conversion in parallel...")
	var converted atomic.Int32

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if path != root && filepath.Base(path) == "converted" {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".tex" && ext != ".dds" {
			return nil
		}

		g.Go(func() error {
			if _, err := ConvertFile(path); err != nil {
				utils.Error("Failed to convert %s: %v", path, err)
				return nil
			}
			converted.Add(1)
			return nil
		})
		return nil
	})

	waitErr := g.Wait()
	count := int(converted.Load())
	utils.Info("Bulk conversion finished. Processed %d textures.", count)

	if walkErr != nil {
		return count, fmt.Errorf("walk %s: %w", root, walkErr)
	}
	return count, waitErr
}
