package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	mdnet "github.com/peterkuimelis/mythduel/internal/net"
)

const (
	defaultQRSize = 256
	maxQRSize     = 1024
)

// handleInvite returns a QR code PNG of a seat's websocket URL. The second
// player's seat is used unless ?seat=0 is given.
func (s *Server) handleInvite(c *gin.Context) {
	m, err := s.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	seat := 1
	if v := c.Query("seat"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "seat must be 0 or 1"})
			return
		}
		seat = n
	}
	size := defaultQRSize
	if v := c.Query("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxQRSize {
			size = n
		}
	}

	url, err := mdnet.MatchURL(s.baseURL(c), m.ID, m.Players[seat].ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("X-Join-URL", url)
	c.Data(http.StatusOK, "image/png", png)
}

// baseURL is the configured public URL, or one derived from the request.
func (s *Server) baseURL(c *gin.Context) string {
	if s.publicURL != "" {
		return s.publicURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
