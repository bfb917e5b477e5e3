package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/cichowlasp/s3-demo/internal/config"
	"github.com/cichowlasp/s3-demo/internal/logs"
	"github.com/cichowlasp/s3-demo/internal/queue"
	"github.com/cichowlasp/s3-demo/internal/storage"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// seed is a small dev tool that gives the console something to show:
// uploads sample files to the bucket and publishes sample notification
// envelopes to the log queue.
func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Populate the demo bucket and log queue with sample data",
		Commands: []*cli.Command{
			{
				Name:  "files",
				Usage: "Upload every file from a directory to the bucket",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dir",
						Usage:   "Directory containing files to upload",
						Value:   "./testdata",
						EnvVars: []string{"SEED_FILES_DIR"},
					},
				},
				Action: seedFiles,
			},
			{
				Name:  "logs",
				Usage: "Publish sample log notifications to the queue",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "count",
						Usage: "Number of notifications to publish",
						Value: 10,
					},
				},
				Action: seedLogs,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func seedFiles(c *cli.Context) error {
	cfg := config.Load()

	store, err := storage.NewS3Client(storage.S3Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Bucket:    cfg.S3.Bucket,
		Region:    cfg.S3.Region,
		UseSSL:    cfg.S3.UseSSL,
	})
	if err != nil {
		return err
	}

	dir := c.String("dir")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}

	uploaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}

		info, err := f.Stat()
		if err != nil {
			f.Close()
			return err
		}

		err = store.UploadObject(c.Context, entry.Name(), f, info.Size(), "application/octet-stream")
		f.Close()
		if err != nil {
			return err
		}

		log.Printf("uploaded %s (%d bytes)", entry.Name(), info.Size())
		uploaded++
	}

	log.Printf("done, %d file(s) uploaded", uploaded)
	return nil
}

var sampleEvents = []map[string]any{
	{"level": "info", "message": "Processed upload event", "lambdaFunction": "upload-processor", "requestId": "req-upload-1"},
	{"level": "warn", "message": "Object close to size limit", "lambdaFunction": "upload-processor", "requestId": "req-upload-2"},
	{"level": "error", "message": "Failed to generate thumbnail", "lambdaFunction": "thumbnailer", "requestId": "req-thumb-1"},
	{"message": "Bucket inventory refreshed", "lambdaFunction": "inventory", "requestId": "req-inv-1"},
	{"message": "Upstream timeout, retrying", "lambdaFunction": "notifier", "requestId": "req-notify-1"},
}

func seedLogs(c *cli.Context) error {
	cfg := config.Load()
	if cfg.Queue.URL == "" {
		return fmt.Errorf("SQS_QUEUE_URL must be set to seed logs")
	}

	q, err := queue.NewSQSQueue(c.Context, cfg.Queue.URL, cfg.Queue.Region)
	if err != nil {
		return err
	}

	count := c.Int("count")
	for i := 0; i < count; i++ {
		payload := sampleEvents[rand.Intn(len(sampleEvents))]

		body, err := logs.Encode(payload, time.Now())
		if err != nil {
			return err
		}
		if err := q.Send(c.Context, body); err != nil {
			return err
		}
	}

	log.Printf("published %d notification(s)", count)
	return nil
}
