// Package archive locates the zip archive embedded in the injector's
// self-extracting installer and unpacks downloaded shader collections.
package archive

import (
	"archive/zip"
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cozysoft/reshader/pkg/errors"
	"github.com/cozysoft/reshader/pkg/logging"
)

// zipSignature is the zip local-file-header magic number
var zipSignature = [4]byte{0x50, 0x4B, 0x03, 0x04}

// FindZipOffset scans r for the zip local-file-header signature and
// returns the offset of its first byte. The scan advances one byte at a
// time; the reader is buffered so the byte stride does not translate into
// one syscall per byte. Returns a NoArchive error when the stream ends
// without a match.
func FindZipOffset(r io.Reader) (int64, error) {
	br := bufio.NewReader(r)

	var window [4]byte
	if _, err := io.ReadFull(br, window[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, errors.New(errors.ErrNoArchive, "installer had no embedded zip archive")
		}
		return 0, errors.Wrap(err, errors.ErrFileAccess, "failed to read installer")
	}

	var offset int64
	for {
		if window == zipSignature {
			return offset, nil
		}
		b, err := br.ReadByte()
		if err == io.EOF {
			return 0, errors.New(errors.ErrNoArchive, "installer had no embedded zip archive")
		}
		if err != nil {
			return 0, errors.Wrap(err, errors.ErrFileAccess, "failed to read installer")
		}
		copy(window[:], window[1:])
		window[3] = b
		offset++
	}
}

// ExtractEntry locates the embedded archive in the installer at path and
// returns the bytes of the named entry.
func ExtractEntry(path, entryName string) ([]byte, error) {
	log := logging.GetLogger("archive")

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to open installer %s", path)
	}
	defer func() { _ = f.Close() }()

	offset, err := FindZipOffset(f)
	if err != nil {
		return nil, err
	}
	log.Debug().Int64("offset", offset).Str("path", path).Msg("Found embedded archive")

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat installer %s", path)
	}

	// the archive reader starts at the signature, not after it
	section := io.NewSectionReader(f, offset, info.Size()-offset)
	zr, err := zip.NewReader(section, info.Size()-offset)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrZipRead, "unable to read installer's embedded zip")
	}

	for _, entry := range zr.File {
		if entry.Name != entryName {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrZipRead, "unable to open entry %s", entryName)
		}
		defer func() { _ = rc.Close() }()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrZipExtract, "unable to extract entry %s", entryName)
		}
		return data, nil
	}

	return nil, errors.Newf(errors.ErrEntryNotFound, "%s not found in installer archive", entryName).
		WithDetail("entry", entryName)
}

// Unpack extracts the zip at zipPath into destDir and returns the name of
// the archive's root directory. When the archive has no single top-level
// directory, one named after the archive file itself is synthesized and
// all entries are placed under it.
func Unpack(zipPath, destDir string) (string, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrZipRead, "unable to read zip file %s", zipPath)
	}
	defer func() { _ = zr.Close() }()

	rootDir := commonRoot(zr.File)
	synthesized := rootDir == ""
	if synthesized {
		rootDir = filepath.Base(zipPath)
		if err := os.MkdirAll(filepath.Join(destDir, rootDir), 0755); err != nil {
			return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", rootDir)
		}
	}

	for _, entry := range zr.File {
		name := entry.Name
		if synthesized {
			name = filepath.Join(rootDir, name)
		}

		outPath := filepath.Join(destDir, name)
		if !strings.HasPrefix(outPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return "", errors.Newf(errors.ErrZipExtract, "zip entry %s escapes destination", entry.Name)
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(outPath, 0755); err != nil {
				return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", outPath)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(outPath))
		}
		if err := extractFile(entry, outPath); err != nil {
			return "", err
		}
	}

	return rootDir, nil
}

// commonRoot returns the top-level directory shared by every entry, or ""
// when the entries do not share one.
func commonRoot(entries []*zip.File) string {
	root := ""
	for _, entry := range entries {
		segment, _, found := strings.Cut(entry.Name, "/")
		if !found || segment == "" {
			return ""
		}
		if root == "" {
			root = segment
		} else if segment != root {
			return ""
		}
	}
	return root
}

func extractFile(entry *zip.File, outPath string) error {
	rc, err := entry.Open()
	if err != nil {
		return errors.Wrapf(err, errors.ErrZipRead, "unable to open entry %s", entry.Name)
	}
	defer func() { _ = rc.Close() }()

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "failed to create %s", outPath)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, rc); err != nil {
		return errors.Wrapf(err, errors.ErrZipExtract, "unable to extract entry %s", entry.Name)
	}
	return nil
}
