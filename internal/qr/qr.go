// Package qr renders subscription links as QR codes for phones.
package qr

import (
	"errors"
	"net/url"

	"github.com/skip2/go-qrcode"
)

const DefaultSize = 256

type Generator struct {
	Size  int
	Level qrcode.RecoveryLevel
}

func NewGenerator() *Generator {
	return &Generator{Size: DefaultSize, Level: qrcode.Medium}
}

// PNG encodes an absolute http(s) URL.
func (g *Generator) PNG(link string) ([]byte, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "webcal") {
		return nil, errors.New("qr: link must be an absolute http(s) or webcal URL")
	}
	return qrcode.Encode(u.String(), g.Level, g.Size)
}

// SubscriptionURL turns the public base URL into the webcal link of the feed.
func SubscriptionURL(baseURL, path, token string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", errors.New("qr: base URL has no host")
	}
	u.Scheme = "webcal"
	u.Path = path
	if token != "" {
		u.RawQuery = url.Values{"token": {token}}.Encode()
	}
	return u.String(), nil
}
