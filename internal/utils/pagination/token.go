package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Page is a resolved limit/offset window.
type Page struct {
	Limit  int
	Offset int
}

// EncodeOffsetToken creates an opaque token for the given offset.
func EncodeOffsetToken(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte("o:" + strconv.Itoa(offset)))
}

// DecodeOffsetToken parses a token produced by EncodeOffsetToken.
func DecodeOffsetToken(token string) (int, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	s := string(decodedBytes)
	if len(s) < 3 || s[:2] != "o:" {
		return 0, fmt.Errorf("invalid pagination token format (prefix)")
	}
	offset, err := strconv.Atoi(s[2:])
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid pagination token format (offset)")
	}
	return offset, nil
}

// ParsePage resolves the raw limit and token query values. An empty limit means
// DefaultLimit; limits above MaxLimit are clamped.
func ParsePage(rawLimit, token string) (Page, error) {
	page := Page{Limit: DefaultLimit}
	if rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil || limit <= 0 {
			return Page{}, fmt.Errorf("invalid limit %q", rawLimit)
		}
		page.Limit = min(limit, MaxLimit)
	}
	if token != "" {
		offset, err := DecodeOffsetToken(token)
		if err != nil {
			return Page{}, err
		}
		page.Offset = offset
	}
	return page, nil
}

// NextToken returns the token for the page after p, or nil when fewer than
// p.Limit items were returned.
func NextToken(p Page, returned int) *string {
	if returned < p.Limit {
		return nil
	}
	t := EncodeOffsetToken(p.Offset + returned)
	return &t
}
