package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a ops HTTP server address in format [host]:[port]
//	-d database DSN
//	-driver database driver name (sqlite3 or pgx)
//	-token bot API token
//	-poll-timeout bot long-polling timeout (e.g., "30s")
//	-link-url protected link revealed after verification
//	-link-title label of the link button
//	-cooldown access cooldown window (e.g., "5m")
//	-captcha-length number of characters in a challenge
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var databaseDriver string
	var botToken string
	var pollTimeout time.Duration
	var linkURL string
	var linkTitle string
	var cooldown time.Duration
	var captchaLength int
	var jsonConfigPath string

	flag.Var(&serverAddress, "a", "Ops HTTP address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&databaseDriver, "driver", "", "Database driver (sqlite3 or pgx)")
	flag.StringVar(&botToken, "token", "", "Bot API token")
	flag.DurationVar(&pollTimeout, "poll-timeout", 0, "Bot long-polling timeout (e.g., 30s)")
	flag.StringVar(&linkURL, "link-url", "", "Protected link URL")
	flag.StringVar(&linkTitle, "link-title", "", "Protected link button label")
	flag.DurationVar(&cooldown, "cooldown", 0, "Access cooldown window (e.g., 5m)")
	flag.IntVar(&captchaLength, "captcha-length", 0, "Challenge text length")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			LinkURL:   linkURL,
			LinkTitle: linkTitle,
		},
		Bot: Bot{
			Token:       botToken,
			PollTimeout: pollTimeout,
		},
		Captcha: Captcha{
			Length: captchaLength,
		},
		Access: Access{
			Cooldown: cooldown,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
