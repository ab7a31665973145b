package cat

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/radioburst/catpower/internal/ui"
)

// RejectedSentinel is the universal rejection response of the CAT
// protocol, returned by the device for any command it cannot serve.
const RejectedSentinel = "?;"

// Commander is the request/response interface of a CAT connection.
type Commander interface {
	// SendCommand writes the given ";"-terminated ASCII command. If a
	// response is expected, frames are read until one starts with
	// expectedPrefix or equals the rejection sentinel; non-matching
	// frames are discarded. The matching frame is returned with
	// expectedPrefix and expectedSuffix stripped and surrounding
	// whitespace trimmed. A rejected command yields ("", nil).
	// Socket faults, including read timeouts, are transport errors.
	SendCommand(command string, expectedPrefix string, expectedSuffix string, expectResponse bool) (string, error)
	Close() error
}

// Channel is a Commander over a single exclusive TCP connection.
// It is not safe for concurrent use; the protocol assumes strict
// request/response alternation without pipelining.
type Channel struct {
	conn        net.Conn
	scanner     *bufio.Scanner
	readTimeout time.Duration
}

// Connect opens a TCP connection to the device at the given address and
// port. Connection refusal, name resolution failure and dial timeout
// all surface as a transport error.
func Connect(address string, port int, connectTimeout time.Duration, readTimeout time.Duration) (*Channel, error) {
	target := net.JoinHostPort(address, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", target, connectTimeout)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", target, err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Split(splitFrames)

	return &Channel{
		conn:        conn,
		scanner:     scanner,
		readTimeout: readTimeout,
	}, nil
}

func (c *Channel) SendCommand(command string, expectedPrefix string, expectedSuffix string, expectResponse bool) (string, error) {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.readTimeout)); err != nil {
		return "", err
	}
	if _, err := c.conn.Write([]byte(command)); err != nil {
		return "", fmt.Errorf("sending command %q: %w", command, err)
	}
	ui.Debug("Sent command: %s", command)

	if !expectResponse {
		return "", nil
	}

	// keep reading frames until one matches; an unresponsive device
	// blocks until the read deadline expires
	for {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return "", err
		}
		if !c.scanner.Scan() {
			err := c.scanner.Err()
			if err == nil {
				err = io.EOF
			}
			return "", fmt.Errorf("reading response for %q: %w", command, err)
		}
		response := strings.TrimSpace(c.scanner.Text())
		ui.Debug("Received response: %s", response)

		if strings.HasPrefix(response, expectedPrefix) || response == RejectedSentinel {
			processed := strings.TrimSpace(
				strings.TrimSuffix(strings.TrimPrefix(response, expectedPrefix), expectedSuffix))
			if processed == RejectedSentinel {
				ui.Warning("Device rejected command: %s", command)
				return "", nil
			}
			return processed, nil
		}
		ui.Debug("Response %q didn't start with expected prefix %q", response, expectedPrefix)
	}
}

func (c *Channel) Close() error {
	return c.conn.Close()
}

// splitFrames is a bufio.SplitFunc yielding one ";"-terminated frame at
// a time, including the terminator, with leading whitespace skipped.
func splitFrames(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isSpace(data[start]) {
		start++
	}
	for i := start; i < len(data); i++ {
		if data[i] == ';' {
			return i + 1, data[start : i+1], nil
		}
	}
	if atEOF {
		if len(data) > start {
			return len(data), data[start:], nil
		}
		return len(data), nil, nil
	}
	return start, nil, nil
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}
