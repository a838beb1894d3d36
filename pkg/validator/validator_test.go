package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type link struct {
	Addr string `mapstructure:"addr" validate:"required,hostname_port"`
}

type settings struct {
	Link   link   `mapstructure:"link"`
	Digest string `mapstructure:"digest" validate:"oneof=sha256 blake3"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(&settings{Link: link{Addr: "127.0.0.1:9999"}, Digest: "sha256"}))

	err := Struct(&settings{Link: link{Addr: "nowhere"}, Digest: "md5"})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), `link.addr must be host:port, got "nowhere"`)
		assert.Contains(t, err.Error(), `digest must be one of [sha256 blake3], got "md5"`)
	}

	err = Struct(&settings{Digest: "blake3"})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "link.addr is required")
	}
}
