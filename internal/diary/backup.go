package diary

import (
	"os"

	"sdd/internal/diary/interfaces"
	"sdd/internal/providers"
)

// BackupExt is appended to the blob path for the compressed snapshot.
const BackupExt = ".zst"

// BackupManager keeps a zstd-compressed snapshot of the diary blob next to
// it, and can rebuild a missing blob from that snapshot at startup.
type BackupManager struct {
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewBackupManager(compressor interfaces.CompressorInterface, logger providers.Logger) *BackupManager {
	return &BackupManager{
		compressor: compressor,
		logger:     logger,
	}
}

// SaveBackup snapshots the blob at filePath. A missing blob means there is
// nothing to snapshot and is not an error.
func (b *BackupManager) SaveBackup(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	compressed, err := b.compressor.Compress(data)
	if err != nil {
		return err
	}

	return atomicWrite(filePath+BackupExt, compressed)
}

// RestorePrimary rebuilds the blob from the snapshot when the blob itself is
// gone. An existing blob always wins; a missing snapshot is a no-op.
func (b *BackupManager) RestorePrimary(filePath string) error {
	if _, err := os.Stat(filePath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	compressed, err := os.ReadFile(filePath + BackupExt)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	data, err := b.compressor.Decompress(compressed)
	if err != nil {
		return err
	}

	b.logger.Warnf(providers.TypeApp, "Diary blob missing, restoring %s from snapshot", filePath)
	return atomicWrite(filePath, data)
}

func (b *BackupManager) Close() {
	b.compressor.Close()
}

func atomicWrite(fileName string, data []byte) error {
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
