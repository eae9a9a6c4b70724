package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/profilekeeper/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-m", "-k", "-f", "-o", "-u", "-p", "-b", "-g", "-e"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g. ":8000")
//	-d string   PostgreSQL DSN
//	-m int      max open DB connections
//	-k string   asset backend: local | s3
//	-f string   uploads directory for the local backend
//	-o bool     delete the user record when the picture write fails (use -o=false to disable)
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g. "http://127.0.0.1:9000/")
//
// Args are filtered with flagx.FilterArgs first, so -c/-env and flags owned
// by other layers do not cause parse errors here.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.DBMaxOpenConns, "m", config.DBMaxOpenConns, "max open database connections")
	fs.StringVar(&config.AssetBackend, "k", config.AssetBackend, "asset backend (local|s3)")
	fs.StringVar(&config.UploadsDir, "f", config.UploadsDir, "uploads directory")
	fs.BoolVar(&config.CompensateOrphans, "o", config.CompensateOrphans, "delete user record when picture write fails")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	return nil
}
