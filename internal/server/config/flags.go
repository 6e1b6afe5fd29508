package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/recipex/internal/flagx"
)

var serverFlags = []string{"-a", "-H", "-d", "-s", "-t", "-w", "-l", "-v", "-R", "-x", "-u", "-p", "-b", "-g", "-e"}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-H string   HTTP gateway bind address, empty disables the gateway
//	-d string   PostgreSQL DSN or "memory"
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-w string   comma-separated caller emails allowed to use the API
//	-l string   log backend: slog, zap or zerolog
//	-v string   log level: debug, info, warn or error
//	-R string   Redis address for domain events, empty disables publishing
//	-x string   Redis stream name
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// os.Args is first filtered to the flags above with flagx.FilterArgs so the
// -c/-config flag and foreign flags do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.EndpointAddrHTTP, "H", config.EndpointAddrHTTP, "address and port to run HTTP gateway")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	allowed := fs.String("w", strings.Join(config.AllowedCallers, ","), "allowed caller emails, comma-separated")

	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend (slog|zap|zerolog)")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.StringVar(&config.RedisAddr, "R", config.RedisAddr, "redis address for events")
	fs.StringVar(&config.EventsStream, "x", config.EventsStream, "redis stream for events")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.AllowedCallers = flagx.SplitList(*allowed)
}
