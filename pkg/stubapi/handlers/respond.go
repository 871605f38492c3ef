package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// Envelope selects how successful responses are shaped.
type Envelope string

const (
	// EnvelopeInline puts payload fields next to "success"
	EnvelopeInline Envelope = "inline"
	// EnvelopeWrapped nests the payload under "data"
	EnvelopeWrapped Envelope = "wrapped"
	// EnvelopeMixed alternates between the two on every response
	EnvelopeMixed Envelope = "mixed"
)

func ParseEnvelope(s string) (Envelope, error) {
	switch e := Envelope(s); e {
	case EnvelopeInline, EnvelopeWrapped, EnvelopeMixed:
		return e, nil
	case "":
		return EnvelopeInline, nil
	}
	return "", fmt.Errorf("unknown envelope %q (want inline, wrapped or mixed)", s)
}

// Responder writes success bodies in the configured envelope.
type Responder struct {
	mode Envelope
	n    atomic.Uint64
}

func NewResponder(mode Envelope) *Responder {
	return &Responder{mode: mode}
}

func (r *Responder) wrap() bool {
	switch r.mode {
	case EnvelopeWrapped:
		return true
	case EnvelopeMixed:
		return r.n.Add(1)%2 == 0
	default:
		return false
	}
}

// Fields answers with a set of named payload fields.
func (r *Responder) Fields(c *gin.Context, status int, fields gin.H) {
	if r.wrap() {
		c.JSON(status, gin.H{"success": true, "data": fields})
		return
	}
	out := gin.H{"success": true}
	for k, v := range fields {
		out[k] = v
	}
	c.JSON(status, out)
}

// Object answers with a single entity, bare or under "data".
func (r *Responder) Object(c *gin.Context, status int, v interface{}) {
	if r.wrap() {
		c.JSON(status, gin.H{"success": true, "data": v})
		return
	}
	c.JSON(status, v)
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// queryInt reads a non-negative integer query parameter.
func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return n, nil
}

func badRequest(c *gin.Context, err error) {
	fail(c, http.StatusBadRequest, err.Error())
}
