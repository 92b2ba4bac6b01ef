package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/notely/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-l string     environment: local, dev or prod
//	-a string     HTTP bind address (e.g. ":8080")
//	-r string     gRPC health bind address (e.g. ":50051")
//	-d string     PostgreSQL DSN
//	-t duration   HTTP read/write timeout
//	-i duration   HTTP idle timeout
//	-u string     S3 root user
//	-p string     S3 root password
//	-b string     S3 bucket name
//	-g string     S3 region
//	-e string     S3 base endpoint
//	-w string     public base URL for stored pictures
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-l", "-a", "-r", "-d", "-t", "-i", "-u", "-p", "-b", "-g", "-e", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Env, "l", config.Env, "environment (local, dev, prod)")
	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "r", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.DurationVar(&config.HTTPTimeout, "t", config.HTTPTimeout, "HTTP read/write timeout")
	fs.DurationVar(&config.HTTPIdleTimeout, "i", config.HTTPIdleTimeout, "HTTP idle timeout")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.PublicBaseURL, "w", config.PublicBaseURL, "public base URL for stored pictures")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
