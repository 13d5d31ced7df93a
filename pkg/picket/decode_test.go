package picket

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wire parses body the same way post does.
func wire(t *testing.T, body string) any {
	t.Helper()
	var data any
	require.NoError(t, json.Unmarshal([]byte(body), &data))
	return data
}

func TestDecodeNonceResult(t *testing.T) {
	result, err := decodeNonceResult(wire(t, `{"nonce":"nonce","statement":"statement","format":"format"}`))
	require.NoError(t, err)
	assert.Equal(t, &NonceResult{Nonce: "nonce", Statement: "statement", Format: "format"}, result)
}

func TestDecodeAuthorizedUser(t *testing.T) {
	user, err := decodeAuthorizedUser(wire(t, `{
		"chain": "chain",
		"walletAddress": "wallet_address",
		"displayAddress": "display_address",
		"tokenBalances": {"contract_address": {"balance": "balance"}}
	}`))
	require.NoError(t, err)
	assert.Equal(t, &AuthorizedUser{
		Chain:          "chain",
		WalletAddress:  "wallet_address",
		DisplayAddress: "display_address",
		TokenBalances:  TokenBalances{"contract_address": {"balance": "balance"}},
	}, user)
}

func TestDecodeAuthorizedUserDisplayName(t *testing.T) {
	user, err := decodeAuthorizedUser(wire(t, `{"chain":"c","walletAddress":"w","displayName":"dn","tokenBalances":{}}`))
	require.NoError(t, err)
	assert.Equal(t, "dn", user.DisplayAddress)

	user, err = decodeAuthorizedUser(wire(t, `{"chain":"c","walletAddress":"w","displayAddress":"da","displayName":"dn","tokenBalances":{}}`))
	require.NoError(t, err)
	assert.Equal(t, "da", user.DisplayAddress)
}

func TestDecodeAuthResult(t *testing.T) {
	result, err := decodeAuthResult(wire(t, `{
		"accessToken": "access_token",
		"user": {
			"chain": "chain",
			"walletAddress": "wallet_address",
			"displayAddress": "display_address",
			"tokenBalances": {"contract_address": {"balance": "balance"}}
		}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "access_token", result.AccessToken)
	assert.Equal(t, AuthorizedUser{
		Chain:          "chain",
		WalletAddress:  "wallet_address",
		DisplayAddress: "display_address",
		TokenBalances:  TokenBalances{"contract_address": {"balance": "balance"}},
	}, result.User)
}

func TestDecodeTokenOwnershipResult(t *testing.T) {
	result, err := decodeTokenOwnershipResult(wire(t, `{"allowed":true,"tokenBalances":{"contractAddress":{"balance":"balance"}}}`))
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Empty(t, result.WalletAddress)
	assert.Equal(t, TokenBalances{"contractAddress": {"balance": "balance"}}, result.TokenBalances)
}

func TestDecodeNumericBalances(t *testing.T) {
	result, err := decodeTokenOwnershipResult(wire(t, `{"allowed":true,"tokenBalances":{"c":{"1":1,"2":"2","3":1.5,"4":100000000000000000000000}}}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1": "1", "2": "2", "3": "1.5", "4": "100000000000000000000000"}, result.TokenBalances["c"])
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		desc  string
		body  string
		fn    func(any) error
		typ   string
		field string
	}{
		{
			desc:  "missing nonce",
			body:  `{"statement":"s","format":"f"}`,
			fn:    func(d any) error { _, err := decodeNonceResult(d); return err },
			typ:   "NonceResult",
			field: "nonce",
		},
		{
			desc:  "null required field",
			body:  `{"chain":null,"walletAddress":"w","tokenBalances":{}}`,
			fn:    func(d any) error { _, err := decodeAuthorizedUser(d); return err },
			typ:   "AuthorizedUser",
			field: "chain",
		},
		{
			desc:  "missing display address",
			body:  `{"chain":"c","walletAddress":"w","tokenBalances":{}}`,
			fn:    func(d any) error { _, err := decodeAuthorizedUser(d); return err },
			typ:   "AuthorizedUser",
			field: "displayAddress",
		},
		{
			desc:  "null display address",
			body:  `{"accessToken":"a","user":{"chain":"c","walletAddress":"w","displayAddress":null,"tokenBalances":{}}}`,
			fn:    func(d any) error { _, err := decodeAuthResult(d); return err },
			typ:   "AuthResult",
			field: "user.displayAddress",
		},
		{
			desc:  "null balance",
			body:  `{"allowed":true,"tokenBalances":{"c":{"1":null}}}`,
			fn:    func(d any) error { _, err := decodeTokenOwnershipResult(d); return err },
			typ:   "TokenOwnershipResult",
			field: "tokenBalances.c.1",
		},
		{
			desc:  "null contract balances",
			body:  `{"chain":"c","walletAddress":"w","displayAddress":"d","tokenBalances":{"c":null}}`,
			fn:    func(d any) error { _, err := decodeAuthorizedUser(d); return err },
			typ:   "AuthorizedUser",
			field: "tokenBalances.c",
		},
		{
			desc:  "missing access token",
			body:  `{"user":{"chain":"c","walletAddress":"w","tokenBalances":{}}}`,
			fn:    func(d any) error { _, err := decodeAuthResult(d); return err },
			typ:   "AuthResult",
			field: "accessToken",
		},
		{
			desc:  "user is not an object",
			body:  `{"accessToken":"a","user":"nobody"}`,
			fn:    func(d any) error { _, err := decodeAuthResult(d); return err },
			typ:   "AuthResult",
			field: "user",
		},
		{
			desc:  "missing allowed",
			body:  `{"tokenBalances":{}}`,
			fn:    func(d any) error { _, err := decodeTokenOwnershipResult(d); return err },
			typ:   "TokenOwnershipResult",
			field: "allowed",
		},
		{
			desc: "balance of wrong type",
			body: `{"allowed":true,"tokenBalances":{"c":{"1":true}}}`,
			fn:   func(d any) error { _, err := decodeTokenOwnershipResult(d); return err },
			typ:  "TokenOwnershipResult",
		},
		{
			desc: "not an object",
			body: `"just a string"`,
			fn:   func(d any) error { _, err := decodeNonceResult(d); return err },
			typ:  "NonceResult",
		},
	}

	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			err := c.fn(wire(t, c.body))

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr), "got %v", err)
			assert.Equal(t, c.typ, decodeErr.Type)
			assert.Equal(t, c.field, decodeErr.Field)
		})
	}
}

func TestDecodeMissingFieldUnwraps(t *testing.T) {
	_, err := decodeNonceResult(wire(t, `{}`))
	assert.ErrorIs(t, err, errMissingField)
	assert.EqualError(t, err, `picket: decode NonceResult: field "nonce": missing required field`)
}
