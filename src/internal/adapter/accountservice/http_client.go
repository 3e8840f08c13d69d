package accountservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/api-sage/fx-bank-teller/src/internal/config"
	"github.com/api-sage/fx-bank-teller/src/internal/domain"
	"github.com/api-sage/fx-bank-teller/src/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
)

const maxResponseBytes = 1 << 20

// statusError is a non-2xx answer from the account service.
type statusError struct {
	code int
}

func (e statusError) Error() string {
	return fmt.Sprintf("account service responded with status %d", e.code)
}

type lookupResponse struct {
	User *lookupUser `json:"user"`
}

// lookupUser keeps fields as pointers so absent keys leave the session account
// untouched. Amounts may arrive as JSON numbers or numeric strings.
type lookupUser struct {
	FirstName  *string          `json:"firstName"`
	LastName   *string          `json:"lastName"`
	Balance    *decimal.Decimal `json:"balance"`
	DailyLimit *decimal.Decimal `json:"dailyLimit"`
}

func (u lookupUser) patch() domain.ProfilePatch {
	var patch domain.ProfilePatch
	patch.FirstName = u.FirstName
	patch.LastName = u.LastName
	if u.Balance != nil {
		balance := u.Balance.IntPart()
		patch.Balance = &balance
	}
	if u.DailyLimit != nil {
		dailyLimit := u.DailyLimit.IntPart()
		patch.DailyLimit = &dailyLimit
	}
	return patch
}

// HTTPClient talks to a remote account service: GET /{pin} for lookups and GET /atm
// for transactions. Calls share one circuit breaker; client errors such as an unknown
// pin do not count against it.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewHTTPClient(baseURL string, client *http.Client, settings config.BreakerConfig) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	threshold := settings.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "account-service",
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			var status statusError
			if errors.As(err, &status) {
				return status.code < http.StatusInternalServerError
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("account service circuit breaker state change", logger.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})

	return &HTTPClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  client,
		breaker: breaker,
	}
}

func (c *HTTPClient) Lookup(ctx context.Context, pin string) (domain.ProfilePatch, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(pin)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		logger.Error("account service lookup failed", err, logger.Fields{"pin": pin})
		return domain.ProfilePatch{}, fmt.Errorf("%w: %w", domain.ErrLookupFailed, err)
	}

	var resp lookupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		logger.Error("account service lookup decode failed", err, nil)
		return domain.ProfilePatch{}, fmt.Errorf("%w: decode lookup response: %w", domain.ErrLookupFailed, err)
	}
	if resp.User == nil {
		return domain.ProfilePatch{}, fmt.Errorf("%w: response has no user", domain.ErrLookupFailed)
	}

	logger.Info("account service lookup success", nil)
	return resp.User.patch(), nil
}

func (c *HTTPClient) ProcessTransaction(ctx context.Context, tx domain.Transaction) error {
	query := url.Values{}
	query.Set("type", string(tx.Kind))
	query.Set("amount", strconv.FormatInt(tx.Amount, 10))
	endpoint := c.baseURL + "/atm?" + query.Encode()

	if _, err := c.get(ctx, endpoint); err != nil {
		logger.Error("account service transaction failed", err, logger.Fields{
			"type":   tx.Kind,
			"amount": tx.Amount,
		})
		return fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err)
	}

	logger.Info("account service transaction success", logger.Fields{
		"type":   tx.Kind,
		"amount": tx.Amount,
	})
	return nil
}

func (c *HTTPClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			// the url carries the pin on lookups
			var urlErr *url.Error
			if errors.As(err, &urlErr) {
				err = urlErr.Err
			}
			return nil, fmt.Errorf("call account service: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, fmt.Errorf("read account service response: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, statusError{code: resp.StatusCode}
		}

		return body, nil
	})
	if err != nil {
		return nil, err
	}

	return out.([]byte), nil
}
