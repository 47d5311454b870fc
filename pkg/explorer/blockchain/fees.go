package blockchain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/meridian-wallet/meridiand/pkg/explorer"
)

func (b *blockchain) GetFeeEstimates() (*explorer.FeeEstimates, error) {
	url := fmt.Sprintf("%s/v1/fees/recommended", b.feeAPIURL)

	status, resp, err := b.get(url)
	if err != nil {
		return nil, fmt.Errorf("error on retrieving fee estimates: %s", err)
	}
	if !isOK(status) {
		return nil, errors.New(resp)
	}

	estimates := &explorer.FeeEstimates{}
	if err := json.Unmarshal([]byte(resp), estimates); err != nil {
		return nil, fmt.Errorf("error on retrieving fee estimates: %s", err)
	}

	return estimates, nil
}
