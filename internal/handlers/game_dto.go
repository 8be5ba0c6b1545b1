package handlers

import (
	"github.com/gorilla/schema"

	"github.com/tobz1000/mines/internal/protocol"
)

var queryDecoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

// ParseStatusRequest reads a status request from query parameters, for
// clients polling with GET.
func ParseStatusRequest(src map[string][]string) (protocol.StatusRequest, error) {
	var req protocol.StatusRequest
	err := queryDecoder.Decode(&req, src)
	return req, err
}
