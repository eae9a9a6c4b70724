package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/profilekeeper/internal/flagx"
	"github.com/dmitrijs2005/profilekeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept both
// "30s"-style strings and integer nanoseconds. Pointer fields distinguish
// "absent" from an explicit zero value.
type JsonConfig struct {
	EndpointAddrHTTP  string          `json:"endpoint_addr_http"`
	DatabaseDSN       string          `json:"database_dsn"`
	DBMaxOpenConns    int             `json:"db_max_open_conns"`
	DBMaxIdleConns    int             `json:"db_max_idle_conns"`
	DBConnMaxLifetime *timex.Duration `json:"db_conn_max_lifetime"`
	AssetBackend      string          `json:"asset_backend"`
	UploadsDir        string          `json:"uploads_dir"`
	MaxPictureSize    int64           `json:"max_picture_size"`
	BcryptCost        int             `json:"bcrypt_cost"`
	CompensateOrphans *bool           `json:"compensate_orphans"`
	S3RootUser        string          `json:"s3_root_user"`
	S3RootPassword    string          `json:"s3_root_password"`
	S3Bucket          string          `json:"s3_bucket"`
	S3Region          string          `json:"s3_region"`
	S3BaseEndpoint    string          `json:"s3_base_endpoint"`
	ShutdownTimeout   *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the file named by -c/-config onto config.
// Without the flag nothing is loaded. Fields missing from the file keep
// their current values.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.AssetBackend, c.AssetBackend)
	setString(&config.UploadsDir, c.UploadsDir)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.DBMaxOpenConns != 0 {
		config.DBMaxOpenConns = c.DBMaxOpenConns
	}
	if c.DBMaxIdleConns != 0 {
		config.DBMaxIdleConns = c.DBMaxIdleConns
	}
	if c.MaxPictureSize != 0 {
		config.MaxPictureSize = c.MaxPictureSize
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.DBConnMaxLifetime != nil {
		config.DBConnMaxLifetime = c.DBConnMaxLifetime.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.CompensateOrphans != nil {
		config.CompensateOrphans = *c.CompensateOrphans
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
