package net

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Client is a terminal REPL attached to one seat of a served match.
type Client struct {
	conn *websocket.Conn
	out  io.Writer

	mu   sync.Mutex
	view *MatchView
}

// MatchURL builds the websocket URL for a seat. serverURL may use the
// http(s) or ws(s) scheme.
func MatchURL(serverURL, matchID, playerID string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "http", "":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws/matches/" + url.PathEscape(matchID)
	q := u.Query()
	q.Set("player", playerID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Join connects to a match on a server and runs the REPL until the user
// quits, the match ends or the connection drops.
func Join(ctx context.Context, serverURL, matchID, playerID string, in io.Reader, out io.Writer) error {
	target, err := MatchURL(serverURL, matchID, playerID)
	if err != nil {
		return err
	}
	return JoinURL(ctx, target, in, out)
}

// JoinURL is Join for a complete seat URL, such as the one encoded in an
// invite QR code.
func JoinURL(ctx context.Context, target string, in io.Reader, out io.Writer) error {
	conn, _, err := websocket.Dial(ctx, target, nil)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.CloseNow()

	fmt.Fprintln(out, "Connected. Type help for commands.")
	c := &Client{conn: conn, out: out}
	err = c.run(ctx, in)
	conn.Close(websocket.StatusNormalClosure, "")
	return err
}

func (c *Client) run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- c.readLoop(ctx)
		cancel()
	}()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case err := <-done:
			return err
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			msg, err := ParseCommand(line, c.current())
			switch {
			case errors.Is(err, ErrQuit):
				return nil
			case errors.Is(err, ErrShowState):
				c.mu.Lock()
				RenderView(c.out, c.view)
				c.mu.Unlock()
				continue
			case err != nil:
				fmt.Fprintln(c.out, err)
				continue
			}
			if err := wsjson.Write(ctx, c.conn, msg); err != nil {
				return fmt.Errorf("send action: %w", err)
			}
		}
	}
}

// readLoop renders every server message. It returns nil once a terminal
// state has been shown.
func (c *Client) readLoop(ctx context.Context) error {
	for {
		var msg ServerMessage
		if err := wsjson.Read(ctx, c.conn, &msg); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}

		c.mu.Lock()
		switch msg.Type {
		case MsgError:
			fmt.Fprintf(c.out, "error: %s\n", msg.Error)
		case MsgState:
			if msg.Result != nil && msg.Action != "" {
				if msg.Result.Applied {
					fmt.Fprintf(c.out, "> %s\n", msg.Action)
				} else {
					fmt.Fprintf(c.out, "> %s rejected: %s\n", msg.Action, msg.Result.Reason)
				}
			}
			c.view = msg.State
			RenderView(c.out, msg.State)
		}
		terminal := c.view != nil && c.view.Terminal
		c.mu.Unlock()

		if terminal {
			return nil
		}
	}
}

func (c *Client) current() *MatchView {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == nil {
		return &MatchView{}
	}
	return c.view
}
