package websocket

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"unicode"
)

// ChannelAdmin is joined only by admin identities, and only through the handshake.
const ChannelAdmin = "admin:all"

// MaxUserIDLength bounds user ids in bytes.
const MaxUserIDLength = 256

var entityIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func UserChannel(userID string) string       { return "user:" + userID }
func OrderChannel(orderID string) string     { return "order:" + orderID }
func ProductChannel(productID string) string { return "product:" + productID }

// ValidEntityID reports whether id may be embedded in a channel name.
func ValidEntityID(id string) bool {
	return entityIDPattern.MatchString(id)
}

// ValidUserID reports whether id may name a user channel. Any printable id
// is accepted (emails, dotted ids, "auth0|..." subjects); empty, over-long
// and control-character ids are not.
func ValidUserID(id string) bool {
	if id == "" || len(id) > MaxUserIDLength {
		return false
	}
	return !strings.ContainsFunc(id, unicode.IsControl)
}

// ParseEntityID extracts an id from a join/leave payload. Both a bare value
// ("O1" or 42) and an object carrying key ({"orderId": "O1"}) are accepted.
func ParseEntityID(raw json.RawMessage, key string) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", ErrInvalidEntityID
	}

	var id FlexString
	if raw[0] == '{' {
		var obj map[string]FlexString
		if err := json.Unmarshal(raw, &obj); err != nil {
			return "", ErrInvalidEntityID
		}
		id = obj[key]
	} else if err := json.Unmarshal(raw, &id); err != nil {
		return "", ErrInvalidEntityID
	}

	if !ValidEntityID(id.String()) {
		return "", ErrInvalidEntityID
	}
	return id.String(), nil
}
