package ws

import (
	"time"

	"github.com/gorilla/websocket"
)

const readDeadline = 60 * time.Second

type client struct {
	ws   *websocket.Conn
	send chan []byte
	feed *Feed
}

// readPump discards inbound frames; its job is noticing the peer went away.
func (c *client) readPump() {
	defer c.cleanup()
	c.ws.SetReadLimit(512)
	c.ws.SetReadDeadline(time.Now().Add(readDeadline))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	for msg := range c.send {
		if err := c.write(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.write(websocket.CloseMessage, []byte{})
}

func (c *client) ping() error {
	return c.write(websocket.PingMessage, []byte("ping"))
}

func (c *client) write(messageType int, data []byte) error {
	c.ws.SetWriteDeadline(time.Now().Add(c.feed.writeTimeout))
	return c.ws.WriteMessage(messageType, data)
}

func (c *client) cleanup() {
	c.feed.remove(c)
	close(c.send)
	_ = c.ws.Close()
}
