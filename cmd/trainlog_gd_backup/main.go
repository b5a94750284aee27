package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/2beens/gymcoach/internal/db"
	"github.com/2beens/gymcoach/internal/trainlog"
	"github.com/2beens/gymcoach/internal/trainlog/backup"
	"github.com/2beens/gymcoach/pkg"
	"gopkg.in/natefinch/lumberjack.v2"
)

// training log google drive backup cmd

func main() {
	credentialsFile := flag.String(
		"gd-creds",
		"./lazar-dusan-veliki-drive-credentials.json",
		"lazar dusan google drive credentials json",
	)
	logsPath := flag.String("logs-path", "/var/log/gymcoach-backend/trainlog-backup.log", "backup logs file path (empty for stdout)")
	dbHost := flag.String("db-host", "localhost", "postgres host")
	dbPort := flag.String("db-port", "5432", "postgres port")
	dbName := flag.String("db-name", "gymcoach", "postgres database name")
	socketAddrDir := flag.String("socket-addr-dir", "/tmp/gymcoach", "dir of the unix socket where the main service listens for backup stats")
	socketFileName := flag.String("socket-file-name", "trainlog-backup.sock", "file name of the unix socket where the main service listens for backup stats")

	flag.Parse()

	loggingSetup(*logsPath)

	log.Println("staring trainlog backup ...")

	if *credentialsFile == "" {
		log.Fatalln("google drive credentials json not specified")
	}
	if exists, err := pkg.PathExists(*credentialsFile, false); err != nil {
		log.Fatalf("check credentials file: %s", err)
	} else if !exists {
		log.Fatalf("google drive credentials json not found at %s", *credentialsFile)
	}

	// lazar.dusan.veliki@gmail.com // stara sifra
	credentialsFileBytes, err := os.ReadFile(*credentialsFile)
	if err != nil {
		log.Fatalf("unable to read client secret file: %v", err)
	}

	ctx := context.Background()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         *dbHost,
		DBPort:         *dbPort,
		DBName:         *dbName,
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("failed to create db pool: %s", err)
	}
	defer dbPool.Close()

	s, err := backup.NewGoogleDriveBackupService(ctx, backup.NewServiceParams{
		CredentialsJson: credentialsFileBytes,
		Entries:         trainlog.NewRepo(dbPool),
		SocketAddrDir:   *socketAddrDir,
		SocketFileName:  *socketFileName,
	})
	if err != nil {
		log.Fatalf("failed to create google drive backup service: %s", err)
	}

	if err := s.DoBackup(ctx, time.Now()); err != nil {
		log.Fatalf("%+v", err)
	}
}

func loggingSetup(logFileName string) {
	if logFileName == "" {
		log.SetOutput(os.Stdout)
		return
	}

	if !strings.HasSuffix(logFileName, ".log") {
		logFileName += ".log"
	}

	log.SetOutput(&lumberjack.Logger{
		Filename:  logFileName,
		MaxSize:   50,    // megabytes
		LocalTime: false, // false -> use UTC
		Compress:  true,  // disabled by default
		// comment out MaxBackups and MaxAge, as I want to retain rotated log files indefinitely for now
		//MaxBackups: 30,
		//MaxAge:     730,   //days
	})
}
