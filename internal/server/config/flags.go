package config

import (
	"flag"
	"os"
	"time"

	"github.com/ipeonte/usernotes/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      session token validity, minutes
//	-q int      "api" capability: max calls per window
//	-w int      "api" capability: window, seconds
//	-l int      "login" capability: max calls per window
//	-o int      "login" capability: window, seconds
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers and converted to time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-q", "-w", "-l", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionTokenValidity := fs.Int("t", int(config.SessionTokenValidity.Minutes()), "session_token_validity (in minutes)")

	fs.IntVar(&config.APIRateLimit, "q", config.APIRateLimit, "api rate limit (calls per window)")
	apiRateWindow := fs.Int("w", int(config.APIRateWindow.Seconds()), "api rate window (in seconds)")

	fs.IntVar(&config.LoginRateLimit, "l", config.LoginRateLimit, "login rate limit (calls per window)")
	loginRateWindow := fs.Int("o", int(config.LoginRateWindow.Seconds()), "login rate window (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTokenValidity = time.Duration(*sessionTokenValidity) * time.Minute
	config.APIRateWindow = time.Duration(*apiRateWindow) * time.Second
	config.LoginRateWindow = time.Duration(*loginRateWindow) * time.Second
}
