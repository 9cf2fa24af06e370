package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const fieldSeparator = "|"

// EncodeMultiFieldToken creates an opaque token from any number of string fields.
func EncodeMultiFieldToken(fields ...string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(fields, fieldSeparator)))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), fieldSeparator), nil
}

// EncodeTransactionToken builds the keyset cursor for the transaction listing,
// which is ordered by (date, id).
func EncodeTransactionToken(date string, id int64) string {
	return EncodeMultiFieldToken(date, strconv.FormatInt(id, 10))
}

// DecodeTransactionToken parses a cursor created by EncodeTransactionToken.
func DecodeTransactionToken(token string) (string, int64, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return "", 0, err
	}
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, fmt.Errorf("invalid pagination token format (split)")
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid pagination token format (id parse): %w", err)
	}
	return parts[0], id, nil
}
