package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/campuswatt/campuswatt/internal/models"
)

// artifactFiles lists every artifact the manifest covers, in manifest order.
// The manifest itself is excluded; it is written last.
var artifactFiles = []string{
	CleanedDataFile,
	DailyFile,
	WeeklyFile,
	SummaryCSVFile,
	SummaryTextFile,
	WorkbookFile,
	SummaryPDFFile,
	DashboardFile,
}

// WriteManifest fills the manifest's file list with the name, size and
// SHA-256 of every artifact present in the output directory, then writes
// manifest.json. Written last so a manifest on disk implies a complete run.
func (w *Writer) WriteManifest(manifest models.RunManifest) error {
	for _, name := range artifactFiles {
		entry, err := describeFile(w.Path(name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return err
		}
		entry.Name = name
		manifest.Files = append(manifest.Files, entry)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	path := w.Path(ManifestFile)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	w.logger.Debug("Wrote manifest", "path", path, "artifacts", len(manifest.Files))
	return nil
}

func describeFile(path string) (models.OutputFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.OutputFile{}, err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return models.OutputFile{}, fmt.Errorf("failed to checksum %s: %w", path, err)
	}

	return models.OutputFile{
		Size:   size,
		SHA256: hex.EncodeToString(h.Sum(nil)),
	}, nil
}
