// Package transport fetches raw command output from old switches.
//
// Connections try SSH first and fall back to Telnet, recording which
// method succeeded. Authentication failures never fall back: retrying
// bad credentials over Telnet only locks accounts.
package transport

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/stackshift-net/stackshift/pkg/util"
)

// Method identifies how a switch was reached.
type Method string

const (
	MethodSSH    Method = "SSH"
	MethodTelnet Method = "Telnet"
)

// Options configures connection behaviour.
type Options struct {
	// SSHPort and TelnetPort default to 22 and 23.
	SSHPort    int
	TelnetPort int

	// ConnectTimeout bounds each connection attempt (default 15s, kept
	// short so the Telnet fallback starts quickly).
	ConnectTimeout time.Duration

	// ReadTimeout bounds each command's output read (default 60s).
	ReadTimeout time.Duration
}

func (o *Options) defaults() {
	if o.SSHPort <= 0 {
		o.SSHPort = 22
	}
	if o.TelnetPort <= 0 {
		o.TelnetPort = 23
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = 15 * time.Second
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = 60 * time.Second
	}
}

// Client is a live connection to one switch. It satisfies the collector's
// Source contract.
type Client struct {
	host   string
	method Method
	con    *console
}

// Dial connects to a switch, SSH first with Telnet fallback. On success,
// terminal pagination is disabled so multi-screen command output arrives
// in one read.
func Dial(ctx context.Context, host, username, password string, opts Options) (*Client, error) {
	opts.defaults()
	log := util.WithHost(host)

	log.Debugf("trying SSH connection")
	con, sshErr := dialSSH(ctx, host, username, password, opts)
	if sshErr == nil {
		log.Infof("SSH connection established")
		c := &Client{host: host, method: MethodSSH, con: con}
		c.disablePagination()
		return c, nil
	}
	if isAuthError(sshErr) {
		log.Errorf("authentication failed: %v", sshErr)
		return nil, fmt.Errorf("%s: %w", host, util.ErrAuthFailed)
	}

	log.Warnf("SSH failed (%v), trying Telnet", sshErr)
	con, telnetErr := dialTelnet(ctx, host, username, password, opts)
	if telnetErr == nil {
		log.Infof("Telnet connection established")
		c := &Client{host: host, method: MethodTelnet, con: con}
		c.disablePagination()
		return c, nil
	}
	if isAuthError(telnetErr) {
		log.Errorf("authentication failed: %v", telnetErr)
		return nil, fmt.Errorf("%s: %w", host, util.ErrAuthFailed)
	}

	return nil, &util.ConnectError{Host: host, SSHError: sshErr, TelnetError: telnetErr}
}

// Method reports which connection method succeeded.
func (c *Client) Method() string {
	return string(c.method)
}

// Run executes a command and returns its output with the echoed command
// and trailing prompt stripped.
func (c *Client) Run(cmd string) (string, error) {
	util.WithHost(c.host).Debugf("executing: %s", cmd)
	out, err := c.con.Run(cmd)
	if err != nil {
		return "", fmt.Errorf("command %q on %s: %w", cmd, c.host, err)
	}
	return out, nil
}

// InterfaceBrief fetches the brief interface listing.
func (c *Client) InterfaceBrief() (string, error) {
	return c.Run("display interface brief")
}

// InterfaceConfig fetches the running configuration of one interface.
func (c *Client) InterfaceConfig(name string) (string, error) {
	return c.Run("display current-configuration interface " + name)
}

// Close terminates the connection.
func (c *Client) Close() error {
	util.WithHost(c.host).Debugf("disconnecting")
	return c.con.Close()
}

func (c *Client) disablePagination() {
	if _, err := c.con.Run("screen-length disable"); err != nil {
		util.WithHost(c.host).Warnf("could not disable pagination: %v", err)
	}
}

// dialSSH opens an interactive shell session with a PTY. Commands run
// through the shell rather than per-command exec channels because switch
// SSH servers often only speak the interactive path, and pagination state
// must persist across commands.
func dialSSH(ctx context.Context, host, username, password string, opts Options) (*console, error) {
	config := &ssh.ClientConfig{
		User:            username,
		Auth:            []ssh.AuthMethod{ssh.Password(password)},
		Timeout:         opts.ConnectTimeout,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	addr := net.JoinHostPort(host, fmt.Sprintf("%d", opts.SSHPort))
	dialer := net.Dialer{Timeout: opts.ConnectTimeout}
	nc, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	conn, chans, reqs, err := ssh.NewClientConn(nc, addr, config)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("SSH handshake %s: %w", addr, err)
	}
	client := ssh.NewClient(conn, chans, reqs)

	session, err := client.NewSession()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("SSH session: %w", err)
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err := session.RequestPty("vt100", 512, 80, modes); err != nil {
		session.Close()
		client.Close()
		return nil, fmt.Errorf("request pty: %w", err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()
		client.Close()
		return nil, err
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		client.Close()
		return nil, err
	}
	if err := session.Shell(); err != nil {
		session.Close()
		client.Close()
		return nil, fmt.Errorf("start shell: %w", err)
	}

	// Session pipes carry no deadlines of their own; read timeouts are
	// enforced on the raw TCP conn underneath the SSH transport. A fired
	// deadline kills the connection, which is the right outcome for a
	// switch that accepted the session and then went silent.
	con := newConsole(stdout, stdin, nc, opts.ReadTimeout, func() error {
		session.Close()
		return client.Close()
	})

	// Consume the login banner up to the first prompt.
	if _, err := con.expect(promptRe); err != nil {
		con.Close()
		return nil, fmt.Errorf("waiting for prompt: %w", err)
	}

	return con, nil
}

func isAuthError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "unable to authenticate") ||
		strings.Contains(msg, "authentication failed")
}
