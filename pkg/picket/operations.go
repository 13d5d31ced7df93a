package picket

import (
	"context"
	"net/url"

	"picketapi/pkg/metrics"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrMissingPathParam is returned when a value that goes into the request path is empty.
// No request is sent.
var ErrMissingPathParam = errors.New("picket: missing path parameter")

// DefaultLocale is the statement locale used when none is requested.
const DefaultLocale = "en-US"

// NonceOption customises a Nonce call.
type NonceOption func(Params)

// WithLocale sets the locale the signed statement is rendered in.
func WithLocale(locale string) NonceOption {
	return func(p Params) { p["locale"] = locale }
}

// Nonce requests a nonce and statement for walletAddress to sign.
func (c *Client) Nonce(ctx context.Context, chain, walletAddress string, opts ...NonceOption) (*NonceResult, error) {
	params := Params{
		"chain":          chain,
		"wallet_address": walletAddress,
		"locale":         DefaultLocale,
	}
	for _, opt := range opts {
		opt(params)
	}
	return call(ctx, c, "nonce", "auth/nonce", params, decodeNonceResult)
}

// AuthRequest is the input to Auth.
type AuthRequest struct {
	Chain         string
	WalletAddress string
	Signature     string
	// Requirements are the token gating requirements to check; nil means none.
	Requirements Params
	// Context is passed through to the API, e.g. the signed message context.
	Context Params
}

// Auth exchanges a signed nonce for an access token.
func (c *Client) Auth(ctx context.Context, req AuthRequest) (*AuthResult, error) {
	params := Params{
		"chain":          req.Chain,
		"wallet_address": req.WalletAddress,
		"signature":      req.Signature,
		"requirements":   orEmpty(req.Requirements),
		"context":        orEmpty(req.Context),
	}
	return call(ctx, c, "auth", "auth", params, decodeAuthResult)
}

// AuthzRequest is the input to Authz.
type AuthzRequest struct {
	AccessToken  string
	Requirements Params
	// Revalidate asks the API to re-check token balances on chain instead of trusting the token.
	Revalidate bool
}

// Authz re-authorizes an access token against updated requirements and returns a fresh token.
func (c *Client) Authz(ctx context.Context, req AuthzRequest) (*AuthResult, error) {
	params := Params{
		"access_token": req.AccessToken,
		"requirements": orEmpty(req.Requirements),
		"revalidate":   req.Revalidate,
	}
	return call(ctx, c, "authz", "authz", params, decodeAuthResult)
}

// Validate checks an access token, optionally against requirements, and returns its user.
func (c *Client) Validate(ctx context.Context, accessToken string, requirements Params) (*AuthorizedUser, error) {
	params := Params{
		"access_token": accessToken,
		"requirements": orEmpty(requirements),
	}
	return call(ctx, c, "validate", "auth/validate", params, decodeAuthorizedUser)
}

// TokenOwnership checks the tokens walletAddress holds on chain. extra is sent as the
// request body verbatim apart from key conversion, e.g. Params{"token_ids": []int{1, 2}}.
func (c *Client) TokenOwnership(ctx context.Context, chain, walletAddress string, extra Params) (*TokenOwnershipResult, error) {
	if chain == "" || walletAddress == "" {
		return nil, c.reject("tokenOwnership", errors.Wrap(ErrMissingPathParam, "chain and wallet address are required for token ownership"))
	}
	return call(ctx, c, "tokenOwnership", tokenOwnershipPath(chain, walletAddress), orEmpty(extra), decodeTokenOwnershipResult)
}

func tokenOwnershipPath(chain, walletAddress string) string {
	return "chains/" + url.PathEscape(chain) + "/wallets/" + url.PathEscape(walletAddress) + "/tokenOwnership"
}

// orEmpty returns p, or a fresh empty Params when p is nil.
func orEmpty(p Params) Params {
	if p == nil {
		return Params{}
	}
	return p
}

// reject records an operation that failed before anything was sent.
func (c *Client) reject(operation string, err error) error {
	c.metrics.Observe(operation, metrics.OutcomeInvalidRequest, 0)
	c.logger.Warn("Picket API call rejected",
		zap.String("operation", operation),
		zap.String("outcome", metrics.OutcomeInvalidRequest),
		zap.Error(err))
	return err
}
