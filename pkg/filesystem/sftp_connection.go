package filesystem

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// DefaultSSHPort is used when a root URL does not name a port.
const DefaultSSHPort = 22

// DefaultDialTimeout bounds the TCP and SSH handshake.
const DefaultDialTimeout = 15 * time.Second

// ErrNoAuthMethods is returned when neither the SSH agent nor a default key is usable.
var ErrNoAuthMethods = errors.New("no SSH authentication methods available (tried SSH agent and default keys)")

// ConnectOptions describes an SFTP endpoint.
type ConnectOptions struct {
	Host string
	Port int
	User string

	// KnownHostsFile enables host key verification. Empty disables it.
	KnownHostsFile string

	// Timeout bounds connection setup. Zero uses DefaultDialTimeout.
	Timeout time.Duration
}

// SFTPConnection holds an active SSH/SFTP connection.
type SFTPConnection struct {
	sshClient  *ssh.Client
	sftpClient *sftp.Client
	host       string
	port       int
	user       string
}

// Connect establishes an SSH connection and opens an SFTP session.
// It authenticates with the SSH agent and the default SSH keys.
func Connect(opts ConnectOptions) (*SFTPConnection, error) {
	authMethods := getSSHAuthMethods()
	if len(authMethods) == 0 {
		return nil, ErrNoAuthMethods
	}

	hostKeyCallback, err := hostKeyCallback(opts.KnownHostsFile)
	if err != nil {
		return nil, err
	}

	port := opts.Port
	if port == 0 {
		port = DefaultSSHPort
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultDialTimeout
	}

	config := &ssh.ClientConfig{
		User:            opts.User,
		Auth:            authMethods,
		HostKeyCallback: hostKeyCallback,
		Timeout:         timeout,
	}

	addr := net.JoinHostPort(opts.Host, strconv.Itoa(port))

	sshClient, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("SSH connection failed: %w", err)
	}

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		_ = sshClient.Close()
		return nil, fmt.Errorf("SFTP session creation failed: %w", err)
	}

	return &SFTPConnection{
		sshClient:  sshClient,
		sftpClient: sftpClient,
		host:       opts.Host,
		port:       port,
		user:       opts.User,
	}, nil
}

// Client returns the underlying SFTP client.
func (c *SFTPConnection) Client() *sftp.Client {
	return c.sftpClient
}

// Close closes the SFTP session and SSH connection.
func (c *SFTPConnection) Close() error {
	var firstErr error

	if c.sftpClient != nil {
		if err := c.sftpClient.Close(); err != nil {
			firstErr = err
		}
		c.sftpClient = nil
	}

	if c.sshClient != nil {
		if err := c.sshClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		c.sshClient = nil
	}

	return firstErr
}

// String returns user@host:port.
func (c *SFTPConnection) String() string {
	return fmt.Sprintf("%s@%s", c.user, net.JoinHostPort(c.host, strconv.Itoa(c.port)))
}

// hostKeyCallback verifies against knownHostsFile, or accepts any key when it is empty.
func hostKeyCallback(knownHostsFile string) (ssh.HostKeyCallback, error) {
	if knownHostsFile == "" {
		return ssh.InsecureIgnoreHostKey(), nil //nolint:gosec // Verification is opt-in via --known-hosts
	}

	callback, err := knownhosts.New(knownHostsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load known hosts from %s: %w", knownHostsFile, err)
	}

	return callback, nil
}

// getSSHAuthMethods returns SSH authentication methods in priority order:
// 1. SSH agent
// 2. Default SSH keys
func getSSHAuthMethods() []ssh.AuthMethod {
	var authMethods []ssh.AuthMethod

	if agentAuth := trySSHAgent(); agentAuth != nil {
		authMethods = append(authMethods, agentAuth)
	}

	authMethods = append(authMethods, tryDefaultSSHKeys()...)

	return authMethods
}

// trySSHAgent attempts to connect to the SSH agent.
func trySSHAgent() ssh.AuthMethod {
	socket := os.Getenv("SSH_AUTH_SOCK")
	if socket == "" {
		return nil
	}

	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil
	}

	agentClient := agent.NewClient(conn)

	return ssh.PublicKeysCallback(agentClient.Signers)
}

// tryDefaultSSHKeys loads unencrypted keys from the default locations.
func tryDefaultSSHKeys() []ssh.AuthMethod {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	sshDir := filepath.Join(homeDir, ".ssh")
	keyFiles := []string{
		filepath.Join(sshDir, "id_ed25519"),
		filepath.Join(sshDir, "id_rsa"),
		filepath.Join(sshDir, "id_ecdsa"),
	}

	var authMethods []ssh.AuthMethod

	for _, keyPath := range keyFiles {
		keyData, err := os.ReadFile(keyPath)
		if err != nil {
			continue
		}

		// Password-protected keys are skipped
		signer, err := ssh.ParsePrivateKey(keyData)
		if err != nil {
			continue
		}

		authMethods = append(authMethods, ssh.PublicKeys(signer))
	}

	return authMethods
}
