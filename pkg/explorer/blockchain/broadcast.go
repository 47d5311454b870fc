package blockchain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// BroadcastTransaction submits the given tx in hex format to the provider's
// mempool. On rejection the provider's error message is returned verbatim.
func (b *blockchain) BroadcastTransaction(txHex string) (string, error) {
	endpoint := fmt.Sprintf("%s/pushtx", b.apiURL)
	body := url.Values{"tx": []string{txHex}}.Encode()
	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}

	status, resp, err := b.post(endpoint, body, headers)
	if err != nil {
		return "", fmt.Errorf("error on broadcasting transaction: %s", err)
	}
	if !isOK(status) {
		return "", errors.New(strings.TrimSpace(resp))
	}

	return strings.TrimSpace(resp), nil
}
