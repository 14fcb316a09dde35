package blob

import (
	"context"
	"fmt"

	"github.com/itchan-dev/forum/shared/config"
)

// NewFromConfig creates the snapshot backend selected by snapshot.backend.
func NewFromConfig(ctx context.Context, cfg *config.Config) (Store, error) {
	snap := cfg.Public.Snapshot
	switch snap.Backend {
	case config.SnapshotMemory:
		return NewMemory(), nil
	case config.SnapshotFile:
		return NewFile(snap.Path)
	case config.SnapshotRedis:
		if snap.Redis.URL == "" {
			return nil, fmt.Errorf("redis snapshot backend requires snapshot.redis.url to be set")
		}
		return NewRedis(snap.Redis.URL, snap.Redis.Key)
	case config.SnapshotS3:
		if snap.S3.Endpoint == "" || snap.S3.Bucket == "" {
			return nil, fmt.Errorf("s3 snapshot backend requires snapshot.s3.endpoint and snapshot.s3.bucket to be set")
		}
		return NewS3(snap.S3.Endpoint, cfg.Private.S3AccessKey, cfg.Private.S3SecretKey, snap.S3.UseSSL, snap.S3.Bucket, snap.S3.Object)
	case config.SnapshotPg:
		connStr := ConnString(snap.Pg.Host, snap.Pg.Port, snap.Pg.User, cfg.Private.PgPassword, snap.Pg.Dbname)
		return NewPg(ctx, connStr, snap.Pg.Name)
	default:
		return nil, fmt.Errorf("unknown snapshot backend: %s", snap.Backend)
	}
}
