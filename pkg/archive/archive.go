// Package archive provides archive extraction with a two-tier fallback, since
// no single extraction path reliably covers every format a remote source may serve.
package archive

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/glorpus-work/kiara-onboarding/pkg/errors"
	"github.com/glorpus-work/kiara-onboarding/pkg/fsutil"
	"github.com/mholt/archives"
)

// Manager handles archive extraction operations.
type Manager struct{}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// ExtractAll extracts all files from an archive into destDir. The
// filesystem-based method is attempted first; on failure the archive is
// re-read with format identification and streaming extraction, which also
// covers compression-only files. If both attempts fail, the returned error
// carries both underlying causes.
func (am *Manager) ExtractAll(ctx context.Context, archivePath, destDir string) error {
	if err := os.MkdirAll(destDir, fsutil.DirModeDefault); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	fsErr := am.extractFileSystem(ctx, archivePath, destDir)
	if fsErr == nil {
		return nil
	}

	streamErr := am.extractStream(ctx, archivePath, destDir)
	if streamErr == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", pkgerrors.ErrExtractionFailed, stderrors.Join(fsErr, streamErr))
}

// extractFileSystem walks the archive through the archives filesystem
// abstraction and writes every entry to destDir.
func (am *Manager) extractFileSystem(ctx context.Context, archivePath, destDir string) error {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return fmt.Errorf("failed to open archive file: %w", err)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	// A FileFS means no archive format was recognized; the walk would at best
	// copy the input byte-for-byte. Compression-only inputs are handled by the
	// streaming tier instead.
	if _, ok := fsys.(archives.FileFS); ok {
		return fmt.Errorf("no archive format recognized for %s", filepath.Base(archivePath))
	}

	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return am.extractEntry(fsys, path, destDir, d)
	})
}

// extractStream identifies the format from the file header and extracts via
// the streaming interface. Compression-only formats decompress to a single file.
func (am *Manager) extractStream(ctx context.Context, archivePath, destDir string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive file: %w", err)
	}
	defer func() { _ = file.Close() }()

	format, input, err := archives.Identify(ctx, filepath.Base(archivePath), file)
	if err != nil {
		return fmt.Errorf("failed to identify archive format: %w", err)
	}

	if extractor, ok := format.(archives.Extractor); ok {
		return extractor.Extract(ctx, input, func(_ context.Context, info archives.FileInfo) error {
			return am.writeStreamEntry(info, destDir)
		})
	}

	if decompressor, ok := format.(archives.Decompressor); ok {
		return am.decompressSingleFile(decompressor, input, archivePath, destDir)
	}

	return fmt.Errorf("format %s supports neither extraction nor decompression", format.Extension())
}

// extractEntry processes a single archive entry from the filesystem walk.
func (am *Manager) extractEntry(fsys fs.FS, path, destDir string, d fs.DirEntry) error {
	// Skip the root directory
	if path == "." {
		return nil
	}

	targetPath := filepath.Join(destDir, path)

	if d.IsDir() {
		return os.MkdirAll(targetPath, fsutil.DirModeDefault)
	}

	info, err := d.Info()
	if err != nil {
		return fmt.Errorf("failed to get file info for %s: %w", path, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return am.writeSymlink(fsys, path, targetPath)
	}

	return am.writeRegularFile(fsys, path, targetPath, info)
}

// writeStreamEntry writes one entry delivered by the streaming extractor.
func (am *Manager) writeStreamEntry(info archives.FileInfo, destDir string) error {
	targetPath := filepath.Join(destDir, filepath.FromSlash(info.NameInArchive))

	if info.IsDir() {
		return os.MkdirAll(targetPath, fsutil.DirModeDefault)
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), fsutil.DirModeDefault); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", info.NameInArchive, err)
	}

	if info.LinkTarget != "" {
		_ = os.Remove(targetPath)
		return os.Symlink(info.LinkTarget, targetPath)
	}

	src, err := info.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", info.NameInArchive, err)
	}
	defer func() { _ = src.Close() }()

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = fsutil.FileModeDefault
	}
	dst, err := fsutil.CreateFilePerm(targetPath, perm)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", targetPath, err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy entry %s: %w", info.NameInArchive, err)
	}
	return nil
}

// decompressSingleFile handles compression-only inputs (e.g. a plain .gz),
// writing the decompressed payload as one file named after the input minus
// its compression extension.
func (am *Manager) decompressSingleFile(decomp archives.Decompressor, input io.Reader, archivePath, destDir string) error {
	reader, err := decomp.OpenReader(input)
	if err != nil {
		return fmt.Errorf("failed to open decompressor: %w", err)
	}
	defer func() { _ = reader.Close() }()

	name := filepath.Base(archivePath)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}

	dst, err := fsutil.CreateFilePerm(filepath.Join(destDir, name), fsutil.FileModeDefault)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", name, err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, reader); err != nil {
		return fmt.Errorf("failed to decompress %s: %w", name, err)
	}
	return nil
}

// writeSymlink creates a symlink at targetPath with contents from the archive entry at path.
func (am *Manager) writeSymlink(fsys fs.FS, path, targetPath string) error {
	linkTarget, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read symlink %s: %w", path, err)
	}
	defer func() { _ = linkTarget.Close() }()

	targetBytes, err := io.ReadAll(linkTarget)
	if err != nil {
		return fmt.Errorf("failed to read symlink target %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), fsutil.DirModeDefault); err != nil {
		return fmt.Errorf("failed to create parent directory for symlink %s: %w", path, err)
	}

	// Remove existing file/symlink if it exists
	_ = os.Remove(targetPath)

	return os.Symlink(string(targetBytes), targetPath)
}

// writeRegularFile writes a regular file from the archive entry to targetPath and preserves metadata.
func (am *Manager) writeRegularFile(fsys fs.FS, path, targetPath string, info fs.FileInfo) error {
	srcFile, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", path, err)
	}
	defer func() { _ = srcFile.Close() }()

	if err := os.MkdirAll(filepath.Dir(targetPath), fsutil.DirModeDefault); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", path, err)
	}

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = fsutil.FileModeDefault
	}
	dstFile, err := fsutil.CreateFilePerm(targetPath, perm)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", targetPath, err)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file %s: %w", path, err)
	}

	if err := os.Chtimes(targetPath, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to set modification time for %s: %w", targetPath, err)
	}
	return nil
}
