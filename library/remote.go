package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/aouyang1/theframe/util"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	mapset "github.com/deckarep/golang-set/v2"
)

const remoteSyncTimeout = 30 * time.Minute

type s3API interface {
	s3.ListObjectsV2APIClient
	manager.DownloadAPIClient
}

// RemoteSync mirrors an S3 bucket into the cloud folder of the library.
type RemoteSync struct {
	client   s3API
	s3Bucket string
	interval time.Duration

	outputPath string

	scanner *Scanner
}

func NewRemoteSync(ctx context.Context, profile, bucket, libraryRoot string, interval time.Duration, scanner *Scanner) (*RemoteSync, error) {
	if profile == "" {
		return nil, errors.New("no aws profile provided")
	}
	if bucket == "" {
		return nil, errors.New("no s3 bucket provided")
	}

	// Load the Shared AWS Configuration (~/.aws/config)
	ctxCfg, cancelCfg := context.WithTimeout(ctx, 3*time.Second)
	cfg, err := config.LoadDefaultConfig(
		ctxCfg,
		config.WithSharedConfigProfile(profile),
	)
	cancelCfg()
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newRemoteSync(s3.NewFromConfig(cfg), bucket, libraryRoot, interval, scanner)
}

func newRemoteSync(client s3API, bucket, libraryRoot string, interval time.Duration, scanner *Scanner) (*RemoteSync, error) {
	outputPath := filepath.Join(libraryRoot, cloudDir)
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return nil, fmt.Errorf("create cloud directory: %w", err)
	}
	return &RemoteSync{
		client:     client,
		s3Bucket:   bucket,
		interval:   interval,
		outputPath: outputPath,
		scanner:    scanner,
	}, nil
}

func (r *RemoteSync) getLocalFiles() (mapset.Set[string], error) {
	dirs, err := os.ReadDir(r.outputPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read directory, %s, %w", r.outputPath, err)
	}

	localFiles := mapset.NewSet[string]()
	for dir := range slices.Values(dirs) {
		if dir.IsDir() || !util.IsSupported(dir.Name()) {
			continue
		}
		localFiles.Add(dir.Name())
	}
	return localFiles, nil
}

func (r *RemoteSync) getRemoteFiles(ctx context.Context) (mapset.Set[string], error) {
	remoteFiles := mapset.NewSet[string]()
	paginator := s3.NewListObjectsV2Paginator(r.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(r.s3Bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list s3 objects: %w", err)
		}
		for object := range slices.Values(page.Contents) {
			name := aws.ToString(object.Key)
			// nested keys would escape the flat mirror
			if filepath.Base(name) != name || !util.IsSupported(name) {
				continue
			}
			remoteFiles.Add(name)
		}
	}

	if remoteFiles.Cardinality() == 0 {
		slog.Info("no remote files found")
	}
	return remoteFiles, nil
}

func (r *RemoteSync) downloadObject(ctx context.Context, name string) error {
	downloader := manager.NewDownloader(r.client)

	dst := filepath.Join(r.outputPath, name)
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to create file for s3 download, %s, %w", name, err)
	}
	defer f.Close()

	if _, err := downloader.Download(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(r.s3Bucket),
		Key:    aws.String(name),
	}); err != nil {
		os.Remove(dst)
		return fmt.Errorf("unable to download object from s3, %s, %w", name, err)
	}
	return nil
}

// SyncFolder downloads new objects, removes local copies of deleted ones, and rescans the
// library when anything changed.
func (r *RemoteSync) SyncFolder(ctx context.Context) error {
	localFiles, err := r.getLocalFiles()
	if err != nil {
		return err
	}

	remoteFiles, err := r.getRemoteFiles(ctx)
	if err != nil {
		return err
	}

	toDelete := localFiles.Difference(remoteFiles).ToSlice()
	toDownload := remoteFiles.Difference(localFiles).ToSlice()
	if len(toDelete) > 0 {
		slog.Info("deleting local files", "count", len(toDelete), "names", toDelete)
		for name := range slices.Values(toDelete) {
			if err := os.Remove(filepath.Join(r.outputPath, name)); err != nil {
				slog.Warn("unable to remove local file", "name", name, "error", err)
			}
		}
	}
	if len(toDownload) > 0 {
		slog.Info("adding files", "count", len(toDownload), "names", toDownload)
		for name := range slices.Values(toDownload) {
			if err := r.downloadObject(ctx, name); err != nil {
				slog.Warn("error while downloading s3 object", "name", name, "error", err)
			}
		}
	}

	if (len(toDelete) > 0 || len(toDownload) > 0) && r.scanner != nil {
		r.scanner.Scan()
	}
	return nil
}

func (r *RemoteSync) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		syncCtx, cancel := context.WithTimeout(ctx, remoteSyncTimeout)
		if err := r.SyncFolder(syncCtx); err != nil {
			slog.Warn("error while syncing with remote", "error", err)
		}
		cancel()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
