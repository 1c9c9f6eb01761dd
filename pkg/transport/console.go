package transport

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// promptRe matches a switch CLI prompt at the end of output: user view
// "<Sysname>" or system view "[Sysname]".
var promptRe = regexp.MustCompile(`(?m)^[<\[][\w\-./:]+[>\]]\s*$`)

// deadliner is implemented by net.Conn. Both paths supply one: Telnet
// hands over its connection directly, SSH hands over the TCP conn under
// the session, so a silent device always trips the read timeout.
type deadliner interface {
	SetReadDeadline(t time.Time) error
}

// console drives a prompt-based CLI over any byte stream. The same
// expect loop serves the SSH shell channel and the Telnet connection.
type console struct {
	r        io.Reader
	w        io.Writer
	deadline deadliner
	timeout  time.Duration
	closeFn  func() error
}

func newConsole(r io.Reader, w io.Writer, d deadliner, timeout time.Duration, closeFn func() error) *console {
	return &console{r: r, w: w, deadline: d, timeout: timeout, closeFn: closeFn}
}

// expect reads until the accumulated output matches re, and returns
// everything read up to and including the match.
func (c *console) expect(re *regexp.Regexp) (string, error) {
	var buf strings.Builder
	chunk := make([]byte, 4096)

	for {
		if c.deadline != nil {
			c.deadline.SetReadDeadline(time.Now().Add(c.timeout))
		}
		n, err := c.r.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			if re.MatchString(buf.String()) {
				return buf.String(), nil
			}
		}
		if err != nil {
			return buf.String(), fmt.Errorf("reading console output: %w", err)
		}
	}
}

// sendLine writes a command terminated by newline.
func (c *console) sendLine(s string) error {
	_, err := io.WriteString(c.w, s+"\n")
	return err
}

// Run sends a command and returns its output with the echoed command
// line and the trailing prompt removed.
func (c *console) Run(cmd string) (string, error) {
	if err := c.sendLine(cmd); err != nil {
		return "", err
	}

	raw, err := c.expect(promptRe)
	if err != nil {
		return "", err
	}

	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	// Drop the trailing prompt line.
	if len(lines) > 0 && promptRe.MatchString(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	// Drop the command echo if the device repeated it.
	if len(lines) > 0 && strings.Contains(lines[0], cmd) {
		lines = lines[1:]
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\r\n "), nil
}

// Close shuts the underlying stream down.
func (c *console) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}
