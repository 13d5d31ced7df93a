package picket

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// decodeObject copies a decoded JSON object into out, keyed by the json struct tags.
// Every key in required must be present and non-null.
func decodeObject(typeName string, data any, out any, required ...string) error {
	obj, ok := data.(map[string]any)
	if !ok {
		return &DecodeError{Type: typeName, Err: fmt.Errorf("expected JSON object, got %T", data)}
	}

	for _, key := range required {
		if v, ok := obj[key]; !ok || v == nil {
			return &DecodeError{Type: typeName, Field: key, Err: errMissingField}
		}
	}
	if field, ok := nullBalance(obj["tokenBalances"]); ok {
		return &DecodeError{Type: typeName, Field: field, Err: errMissingField}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return &DecodeError{Type: typeName, Err: err}
	}
	if err := decoder.Decode(obj); err != nil {
		return &DecodeError{Type: typeName, Err: err}
	}
	return nil
}

func decodeNonceResult(data any) (*NonceResult, error) {
	var result NonceResult
	if err := decodeObject("NonceResult", data, &result, "nonce", "statement", "format"); err != nil {
		return nil, err
	}
	return &result, nil
}

func decodeAuthorizedUser(data any) (*AuthorizedUser, error) {
	var user AuthorizedUser
	if err := decodeObject("AuthorizedUser", withDisplayAlias(data), &user, "chain", "walletAddress", "displayAddress", "tokenBalances"); err != nil {
		return nil, err
	}
	return &user, nil
}

// withDisplayAlias accepts displayName for a user object that has no displayAddress.
func withDisplayAlias(data any) any {
	obj, ok := data.(map[string]any)
	if !ok || obj["displayAddress"] != nil || obj["displayName"] == nil {
		return data
	}
	aliased := make(map[string]any, len(obj))
	for k, v := range obj {
		aliased[k] = v
	}
	aliased["displayAddress"] = obj["displayName"]
	return aliased
}

type authResultWire struct {
	AccessToken string `json:"accessToken"`
	User        any    `json:"user"`
}

func decodeAuthResult(data any) (*AuthResult, error) {
	var wire authResultWire
	if err := decodeObject("AuthResult", data, &wire, "accessToken", "user"); err != nil {
		return nil, err
	}

	user, err := decodeAuthorizedUser(wire.User)
	if err != nil {
		return nil, nestDecodeError("AuthResult", "user", err)
	}
	return &AuthResult{AccessToken: wire.AccessToken, User: *user}, nil
}

func decodeTokenOwnershipResult(data any) (*TokenOwnershipResult, error) {
	var result TokenOwnershipResult
	if err := decodeObject("TokenOwnershipResult", data, &result, "allowed", "tokenBalances"); err != nil {
		return nil, err
	}
	return &result, nil
}

// nullBalance reports the path of the first null leaf in a tokenBalances object.
func nullBalance(v any) (string, bool) {
	contracts, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	for contract, balances := range contracts {
		if balances == nil {
			return "tokenBalances." + contract, true
		}
		leaves, ok := balances.(map[string]any)
		if !ok {
			continue
		}
		for token, balance := range leaves {
			if balance == nil {
				return "tokenBalances." + contract + "." + token, true
			}
		}
	}
	return "", false
}

func nestDecodeError(parentType, field string, err error) error {
	inner, ok := err.(*DecodeError)
	if !ok {
		return &DecodeError{Type: parentType, Field: field, Err: err}
	}
	nested := field
	if inner.Field != "" {
		nested = field + "." + inner.Field
	}
	return &DecodeError{Type: parentType, Field: nested, Err: inner.Err}
}
