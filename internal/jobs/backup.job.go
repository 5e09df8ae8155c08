package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"meeplelog/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

const backupFilePrefix = "meeplelog-backup-"

// BackupJob writes the full export document to a timestamped file and prunes
// snapshots beyond the retention count. Failures are logged by the scheduler;
// they never take the app down.
type BackupJob struct {
	transfer  *services.TransferService
	dir       string
	retention int
	log       logger.Logger
	schedule  services.Schedule
}

func NewBackupJob(
	transfer *services.TransferService,
	dir string,
	retention int,
	schedule services.Schedule,
) *BackupJob {
	log := logger.New("backupJob")
	log.Info("Creating new backup job", "dir", dir, "retention", retention)

	return &BackupJob{
		transfer:  transfer,
		dir:       dir,
		retention: retention,
		log:       log,
		schedule:  schedule,
	}
}

func (j *BackupJob) Name() string {
	return "DailyCollectionBackup"
}

func (j *BackupJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return log.Err("failed to create backup directory", err, "dir", j.dir)
	}

	doc := j.transfer.Export()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return log.Err("failed to marshal backup document", err)
	}

	name := fmt.Sprintf("%s%s.json", backupFilePrefix, time.Now().UTC().Format("20060102-150405"))
	path := filepath.Join(j.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return log.Err("failed to write backup file", err, "path", path)
	}

	log.Info("Backup written", "path", path, "games", len(doc.Games), "sessions", len(doc.Sessions))

	if err := j.prune(); err != nil {
		return err
	}

	return nil
}

func (j *BackupJob) Schedule() services.Schedule {
	return j.schedule
}

// prune deletes the oldest snapshots once more than retention exist. The
// timestamped names sort chronologically.
func (j *BackupJob) prune() error {
	log := j.log.Function("prune")

	entries, err := os.ReadDir(j.dir)
	if err != nil {
		return log.Err("failed to read backup directory", err, "dir", j.dir)
	}

	var backups []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), backupFilePrefix) &&
			strings.HasSuffix(entry.Name(), ".json") {
			backups = append(backups, entry.Name())
		}
	}

	if len(backups) <= j.retention {
		return nil
	}

	sort.Strings(backups)
	for _, name := range backups[:len(backups)-j.retention] {
		path := filepath.Join(j.dir, name)
		if err := os.Remove(path); err != nil {
			log.Warn("failed to remove old backup", "path", path, "error", err)
			continue
		}
		log.Info("Pruned old backup", "path", path)
	}

	return nil
}
