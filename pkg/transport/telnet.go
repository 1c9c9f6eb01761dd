package transport

import (
	"context"
	"fmt"
	"io"
	"net"
	"regexp"
	"strings"
)

// Telnet protocol bytes (RFC 854).
const (
	telnetIAC  = 255
	telnetDont = 254
	telnetDo   = 253
	telnetWont = 252
	telnetWill = 251
)

var (
	loginRe    = regexp.MustCompile(`(?i)(username|login)\s*:\s*$`)
	passwordRe = regexp.MustCompile(`(?i)password\s*:\s*$`)
	// After login either a prompt appears or the device re-asks for
	// credentials, which means they were rejected.
	loginResultRe = regexp.MustCompile(`(?m)^[<\[][\w\-./:]+[>\]]\s*$|(?i)(password|username|login)\s*:\s*$|(?i)error`)
)

// dialTelnet connects on the Telnet port and drives the login dialogue.
func dialTelnet(ctx context.Context, host, username, password string, opts Options) (*console, error) {
	addr := net.JoinHostPort(host, fmt.Sprintf("%d", opts.TelnetPort))
	dialer := net.Dialer{Timeout: opts.ConnectTimeout}
	nc, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	tio := &telnetIO{conn: nc}
	con := newConsole(tio, tio, nc, opts.ReadTimeout, nc.Close)

	if err := login(con, username, password); err != nil {
		nc.Close()
		return nil, err
	}
	return con, nil
}

func login(con *console, username, password string) error {
	if _, err := con.expect(loginRe); err != nil {
		return fmt.Errorf("waiting for login prompt: %w", err)
	}
	if err := con.sendLine(username); err != nil {
		return err
	}

	if _, err := con.expect(passwordRe); err != nil {
		return fmt.Errorf("waiting for password prompt: %w", err)
	}
	if err := con.sendLine(password); err != nil {
		return err
	}

	result, err := con.expect(loginResultRe)
	if err != nil {
		return fmt.Errorf("waiting for shell prompt: %w", err)
	}
	if !promptRe.MatchString(result) {
		return fmt.Errorf("telnet authentication failed")
	}
	return nil
}

// telnetIO wraps a TCP connection, answering option negotiation inline
// and stripping protocol bytes from the data stream. Every offered
// option is refused: the switch CLI works fine in the base NVT mode.
type telnetIO struct {
	conn net.Conn
	buf  []byte
}

func (t *telnetIO) Read(p []byte) (int, error) {
	for {
		if len(t.buf) == 0 {
			raw := make([]byte, len(p))
			n, err := t.conn.Read(raw)
			if n > 0 {
				t.buf = t.strip(raw[:n])
			}
			if err != nil {
				return copy(p, t.buf), err
			}
		}
		if len(t.buf) > 0 {
			n := copy(p, t.buf)
			t.buf = t.buf[n:]
			return n, nil
		}
	}
}

func (t *telnetIO) Write(p []byte) (int, error) {
	// Escape any literal IAC bytes in outgoing data.
	if strings.IndexByte(string(p), telnetIAC) < 0 {
		return t.conn.Write(p)
	}
	var out []byte
	for _, b := range p {
		out = append(out, b)
		if b == telnetIAC {
			out = append(out, telnetIAC)
		}
	}
	if _, err := t.conn.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}

// strip removes IAC sequences from data, sending refusals for every
// negotiation request.
func (t *telnetIO) strip(data []byte) []byte {
	var out []byte
	for i := 0; i < len(data); i++ {
		if data[i] != telnetIAC {
			out = append(out, data[i])
			continue
		}
		if i+1 >= len(data) {
			break
		}
		switch data[i+1] {
		case telnetIAC:
			out = append(out, telnetIAC)
			i++
		case telnetDo, telnetDont:
			if i+2 < len(data) {
				t.conn.Write([]byte{telnetIAC, telnetWont, data[i+2]})
			}
			i += 2
		case telnetWill, telnetWont:
			if i+2 < len(data) {
				t.conn.Write([]byte{telnetIAC, telnetDont, data[i+2]})
			}
			i += 2
		default:
			i++
		}
	}
	return out
}

var _ io.ReadWriter = (*telnetIO)(nil)
