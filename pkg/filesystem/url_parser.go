package filesystem

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Root is a parsed walk root: a local directory or a directory on an SFTP host.
type Root struct {
	Remote bool

	// Path is the directory to walk, local or remote.
	Path string

	// SFTP endpoint, set when Remote is true
	Host string
	Port int
	User string
}

// String returns the root in the form it was given.
func (r Root) String() string {
	if !r.Remote {
		return r.Path
	}

	if r.Path == "." {
		return fmt.Sprintf("sftp://%s@%s:%d", r.User, r.Host, r.Port)
	}

	return fmt.Sprintf("sftp://%s@%s:%d/%s", r.User, r.Host, r.Port, r.Path)
}

// ParseRoot parses a root argument, detecting whether it names an SFTP directory.
// SFTP roots have the format: sftp://user@host:port/path/to/dir
// Port is optional (defaults to 22)
// Examples:
//   - sftp://joe@nas.local/music           (music under the home directory)
//   - sftp://joe@nas.local:2222//srv/music (absolute /srv/music)
//   - /home/joe/Music                      (local path)
func ParseRoot(arg string) (Root, error) {
	if strings.HasPrefix(arg, "sftp://") {
		return parseSFTPRoot(arg)
	}

	if arg == "" {
		return Root{}, fmt.Errorf("root path is required") //nolint:err113,perfsprint // Validation message
	}

	return Root{Path: arg}, nil
}

// parseSFTPRoot parses an SFTP URL into its components.
func parseSFTPRoot(sftpURL string) (Root, error) {
	u, err := url.Parse(sftpURL) //nolint:varnamelen // u is idiomatic for URL
	if err != nil {
		return Root{}, fmt.Errorf("invalid SFTP URL: %w", err)
	}

	if u.User == nil || u.User.Username() == "" {
		return Root{}, fmt.Errorf("SFTP URL must include username (sftp://user@host/path)") //nolint:err113,perfsprint,lll // URL validation with format guidance
	}

	host := u.Hostname()
	if host == "" {
		return Root{}, fmt.Errorf("SFTP URL must include host") //nolint:err113,perfsprint // URL validation error
	}

	port := DefaultSSHPort
	if portStr := u.Port(); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil || p <= 0 || p > 65535 {
			return Root{}, fmt.Errorf("invalid port number: %s", portStr) //nolint:err113 // Carries the port
		}
		port = p
	}

	// sftp://user@host/path  → relative to home directory (strip leading /)
	// sftp://user@host//path → absolute path /path (strip one /)
	// sftp://user@host       → home directory (.)
	remotePath := u.Path
	switch {
	case remotePath == "" || remotePath == "/":
		remotePath = "."
	case strings.HasPrefix(remotePath, "//"):
		remotePath = remotePath[1:]
	default:
		remotePath = strings.TrimPrefix(remotePath, "/")
	}

	return Root{
		Remote: true,
		Path:   remotePath,
		Host:   host,
		Port:   port,
		User:   u.User.Username(),
	}, nil
}
