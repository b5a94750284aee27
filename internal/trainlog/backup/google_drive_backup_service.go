package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"path/filepath"
	"time"

	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/internal/trainlog"
	"github.com/2beens/gymcoach/pkg"

	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	rootBackupsFolderName = "gymcoach-trainlog-backup"
	entriesFileChunkSize  = 500 // number of training entries in one backup file
)

type entriesSource interface {
	UserIDs(ctx context.Context) ([]string, error)
	ListAllForUser(ctx context.Context, userID string) ([]trainlog.Entry, error)
}

// GoogleDriveBackupService exports the complete training log to google
// drive, one dated folder per run, one (chunked) JSON file per user.
// Runs from the standalone backup binary, never from the request path.
type GoogleDriveBackupService struct {
	entries         entriesSource
	service         *drive.Service
	backupsFolderId string

	// the main service listens on this unix socket and feeds the
	// backup run stats into its prometheus registry
	socketAddrDir  string
	socketFileName string
}

type NewServiceParams struct {
	CredentialsJson []byte
	Entries         entriesSource
	SocketAddrDir   string
	SocketFileName  string
}

func NewGoogleDriveBackupService(ctx context.Context, params NewServiceParams) (*GoogleDriveBackupService, error) {
	// https://github.com/googleapis/google-api-go-client/blob/master/drive/v3/drive-gen.go
	driveService, err := drive.NewService(ctx, option.WithCredentialsJSON(params.CredentialsJson))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve drive client: %w", err)
	}

	rootFolderQuery := fmt.Sprintf("mimeType = 'application/vnd.google-apps.folder' and trashed = false and name = '%s'", rootBackupsFolderName)
	rootFolderList, err := driveService.
		Files.List().
		Q(rootFolderQuery).
		Fields("files(id, name)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve files: %w", err)
	}

	backupsFolderId := ""
	if len(rootFolderList.Files) == 1 {
		rbf := rootFolderList.Files[0]
		log.Printf("root backups folder found, %s: %s", rbf.Name, rbf.Id)
		backupsFolderId = rbf.Id
	} else if len(rootFolderList.Files) == 0 {
		log.Println("root backups folder not found, will recreate")
	} else {
		rbf := rootFolderList.Files[0]
		log.Printf("attention: found %d root backups folders, will take the first one: %s", len(rootFolderList.Files), rbf.Id)
		backupsFolderId = rbf.Id
	}

	s := &GoogleDriveBackupService{
		entries:        params.Entries,
		service:        driveService,
		socketAddrDir:  params.SocketAddrDir,
		socketFileName: params.SocketFileName,
	}

	if backupsFolderId == "" {
		backupsFolderId, err = s.createFolder(rootBackupsFolderName, "")
		if err != nil {
			return nil, fmt.Errorf("failed to create root backups folder: %w", err)
		}
		log.Printf("new root backups folder created: %s", backupsFolderId)
	}

	s.backupsFolderId = backupsFolderId

	return s, nil
}

// DoBackup exports the training log of every known user into a new
// dated folder. Every run is a full export, the log is small enough.
func (s *GoogleDriveBackupService) DoBackup(ctx context.Context, baseTime time.Time) (err error) {
	ctx, span := tracing.GlobalBackupTracer.Start(ctx, "backup.trainlog.dobackup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	begin := time.Now()

	userIDs, err := s.entries.UserIDs(ctx)
	if err != nil {
		return fmt.Errorf("get user ids: %w", err)
	}
	if len(userIDs) == 0 {
		log.Println("no users with training entries, nothing to backup")
		return nil
	}

	runFolderName := fmt.Sprintf("trainlog-%d-%d-%d", baseTime.Day(), baseTime.Month(), baseTime.Year())
	runFolderId, err := s.getOrCreateRunFolder(runFolderName)
	if err != nil {
		return fmt.Errorf("get/create run folder %s: %w", runFolderName, err)
	}

	totalEntries := 0
	for _, userID := range userIDs {
		entries, err := s.entries.ListAllForUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("get entries for %s: %w", userID, err)
		}
		if len(entries) == 0 {
			continue
		}

		if err := s.backupUserEntries(userID, entries, runFolderId); err != nil {
			return fmt.Errorf("backup entries for %s: %w", userID, err)
		}

		totalEntries += len(entries)
	}

	span.SetAttributes(attribute.Int("backup.users", len(userIDs)))
	span.SetAttributes(attribute.Int("backup.entries", totalEntries))
	log.Printf("backup run %s done, %d entries of %d users", runFolderName, totalEntries, len(userIDs))

	trySendMetrics(begin, totalEntries, s.socketAddrDir, s.socketFileName)

	return nil
}

func (s *GoogleDriveBackupService) getOrCreateRunFolder(runFolderName string) (string, error) {
	runFolderQuery := fmt.Sprintf(
		"'%s' in parents and mimeType = 'application/vnd.google-apps.folder' and trashed = false and name = '%s'",
		s.backupsFolderId, runFolderName,
	)
	runFolderList, err := s.service.
		Files.List().
		Q(runFolderQuery).
		Fields("files(id, name)").
		Do()
	if err != nil {
		return "", err
	}

	if len(runFolderList.Files) > 0 {
		return runFolderList.Files[0].Id, nil
	}

	return s.createFolder(runFolderName, s.backupsFolderId)
}

func (s *GoogleDriveBackupService) createFolder(name, parentId string) (string, error) {
	folderMeta := &drive.File{
		Name:     name,
		MimeType: "application/vnd.google-apps.folder",
	}
	if parentId != "" {
		folderMeta.Parents = []string{parentId}
	}

	folderRes, err := s.service.
		Files.Create(folderMeta).
		Fields("id").
		Do()
	if err != nil {
		return "", err
	}

	if pId, err := s.updateFilePermission(folderRes.Id); err != nil {
		return folderRes.Id, fmt.Errorf("failed to create additional permission for folder %s: %s", name, err)
	} else {
		log.Printf("permission %s created for folder %s [%s]", pId, name, folderRes.Id)
	}

	return folderRes.Id, nil
}

func (s *GoogleDriveBackupService) backupUserEntries(userID string, entries []trainlog.Entry, runFolderId string) error {
	chunks := len(entries) / entriesFileChunkSize
	fromIndex, toIndex := 0, entriesFileChunkSize
	if len(entries)%entriesFileChunkSize > 0 {
		chunks++
	}

	if len(entries) < entriesFileChunkSize {
		toIndex = len(entries)
	}

	for i := 1; i <= chunks; i++ {
		nextFileName := fmt.Sprintf("%s_%d.json", userID, i)
		nextEntries := entries[fromIndex:toIndex]

		nextEntriesJson, err := json.Marshal(nextEntries)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal entries: %w", nextFileName, err)
		}

		log.Printf("%s: creating file with %d training entries [from %d to %d] ...", nextFileName, len(nextEntries), fromIndex, toIndex)
		fileMeta := &drive.File{
			Name: nextFileName,
			// https://developers.google.com/drive/api/v3/mime-types
			MimeType: "application/vnd.google-apps.file",
			Parents:  []string{runFolderId},
		}

		nextBackupChunkFile, err := s.service.
			Files.Create(fileMeta).
			Fields("id, parents").
			Media(bytes.NewReader(nextEntriesJson)).
			Do()
		if err != nil {
			return fmt.Errorf("%s: failed to create entries backup file: %w", nextFileName, err)
		}

		permissionId, err := s.updateFilePermission(nextBackupChunkFile.Id)
		if err != nil {
			return fmt.Errorf("%s: failed to create additional permission: %s", nextFileName, err)
		}

		log.Printf("%s: backup file [permission %s] saved: %s", nextFileName, permissionId, nextBackupChunkFile.Id)

		fromIndex = toIndex
		toIndex = toIndex + entriesFileChunkSize
		if toIndex >= len(entries) {
			toIndex = len(entries)
		}
	}

	return nil
}

func (s *GoogleDriveBackupService) updateFilePermission(fileId string) (string, error) {
	permission := &drive.Permission{
		EmailAddress: "lazar.dusan.veliki@gmail.com",
		Type:         "user",
		Role:         "reader",
	}

	createdPermission, err := s.service.Permissions.
		Create(fileId, permission).
		Do()
	if err != nil {
		return "", err
	}

	return createdPermission.Id, nil
}

// trySendMetrics reports the finished run to the main service over its
// unix socket, see BackupUnixSocketListenerSetup. Best effort, the
// backup itself already succeeded by the time this runs.
func trySendMetrics(beginTimestamp time.Time, entriesCount int, socketAddrDir, socketFileName string) {
	socket := filepath.Join(socketAddrDir, socketFileName)
	conn, err := net.Dial("unix", socket)
	if err != nil {
		log.Printf("backup metrics not sent, dial unix socket %s: %s", socket, err)
		return
	}
	defer func() { _ = conn.Close() }()

	message := fmt.Sprintf(
		"entries-count::%d||duration::%f",
		entriesCount, time.Since(beginTimestamp).Seconds(),
	)
	if _, err := conn.Write([]byte(message)); err != nil {
		log.Printf("backup metrics, write to unix socket: %s", err)
		return
	}

	buf := make([]byte, 64)
	n, err := conn.Read(buf)
	if err != nil {
		log.Printf("backup metrics, read response: %s", err)
		return
	}

	log.Printf("backup metrics sent, response: %s", pkg.BytesToString(buf[:n]))
}
