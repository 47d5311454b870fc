package blockchain

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"

	"github.com/meridian-wallet/meridiand/pkg/circuitbreaker"
	"github.com/meridian-wallet/meridiand/pkg/explorer"
	"github.com/meridian-wallet/meridiand/pkg/httputil"
)

const defaultRequestsPerSecond = 10

var (
	// ErrNullAPIURL ...
	ErrNullAPIURL = errors.New("api url must not be null")
	// ErrNullFeeAPIURL ...
	ErrNullFeeAPIURL = errors.New("fee api url must not be null")
)

type blockchain struct {
	apiURL    string
	feeAPIURL string
	cb        *gobreaker.CircuitBreaker
	limiter   ratelimit.Limiter
}

// ServiceOpts is the struct given to the NewService method
type ServiceOpts struct {
	APIURL            string
	FeeAPIURL         string
	RequestsPerSecond int
}

func (o ServiceOpts) validate() error {
	if len(o.APIURL) <= 0 {
		return ErrNullAPIURL
	}
	if _, err := url.ParseRequestURI(o.APIURL); err != nil {
		return fmt.Errorf("invalid api url: %s", err)
	}
	if len(o.FeeAPIURL) <= 0 {
		return ErrNullFeeAPIURL
	}
	if _, err := url.ParseRequestURI(o.FeeAPIURL); err != nil {
		return fmt.Errorf("invalid fee api url: %s", err)
	}
	return nil
}

// NewService returns a chain-index client for a blockchain.info compatible
// API as an explorer.Service interface. Requests are paced by a leaky-bucket
// rate limiter and guarded by a circuit breaker.
func NewService(opts ServiceOpts) (explorer.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}

	return &blockchain{
		apiURL:    opts.APIURL,
		feeAPIURL: opts.FeeAPIURL,
		cb:        circuitbreaker.NewCircuitBreaker("blockchain"),
		limiter:   ratelimit.New(rps),
	}, nil
}

type httpResponse struct {
	status int
	body   string
}

func (b *blockchain) get(url string) (int, string, error) {
	b.limiter.Take()

	res, err := b.cb.Execute(func() (interface{}, error) {
		status, resp, err := httputil.NewHTTPRequest("GET", url, "", nil)
		if err != nil {
			return nil, err
		}
		return httpResponse{status, resp}, nil
	})
	if err != nil {
		return 0, "", err
	}

	r := res.(httpResponse)
	return r.status, r.body, nil
}

func (b *blockchain) post(
	url, body string, headers map[string]string,
) (int, string, error) {
	b.limiter.Take()

	res, err := b.cb.Execute(func() (interface{}, error) {
		status, resp, err := httputil.NewHTTPRequest("POST", url, body, headers)
		if err != nil {
			return nil, err
		}
		return httpResponse{status, resp}, nil
	})
	if err != nil {
		return 0, "", err
	}

	r := res.(httpResponse)
	return r.status, r.body, nil
}

func isOK(status int) bool {
	return status == http.StatusOK
}
