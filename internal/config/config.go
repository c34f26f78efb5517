package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Galaxy Training Network catalog
	GTNBaseURL string

	// EOSC provider portal
	EOSCBaseURL string
	EOSCUser    string
	EOSCPass    string

	// Local workspace root (snapshots, failures, validated output)
	WorkspaceDir string

	// Optional SFTP drop for the validated bundle
	SFTPHost      string
	SFTPPort      int
	SFTPUser      string
	SFTPPass      string
	SFTPRemoteDir string
}

func Load() Config {
	return Config{
		// GTN
		GTNBaseURL: getenv("GTN_BASE_URL", "https://training.galaxyproject.org/training-material"),

		// EOSC
		EOSCBaseURL: getenv("EOSC_BASE_URL", "https://api.eosc-portal.eu"),
		EOSCUser:    os.Getenv("EOSC_USERNAME"),
		EOSCPass:    os.Getenv("EOSC_PASSWORD"),

		// Workspace
		WorkspaceDir: getenv("WORKSPACE_DIR", "."),

		// SFTP
		SFTPHost:      os.Getenv("SFTP_HOST"),
		SFTPPort:      getenvInt("SFTP_PORT", 22),
		SFTPUser:      os.Getenv("SFTP_USER"),
		SFTPPass:      os.Getenv("SFTP_PASS"),
		SFTPRemoteDir: getenv("SFTP_REMOTE_DIR", "/"),
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
