package tableqr

import (
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Size is the edge length of rendered codes in pixels.
const Size = 300

// Payload is the menu URL a table's code points to.
func Payload(baseURL, restaurantID, tableNumber string) string {
	q := url.Values{}
	q.Set("restaurant", restaurantID)
	q.Set("table", tableNumber)
	return fmt.Sprintf("%s/menu?%s", strings.TrimRight(baseURL, "/"), q.Encode())
}

// PNG renders payload as a high recovery QR code.
func PNG(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.High, Size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// Filename is the download name for a table's code.
func Filename(tableNumber string) string {
	return fmt.Sprintf("QR-%s.png", tableNumber)
}
