package picket

// Params is a set of request parameters. Keys use snake_case (or are already camelCase);
// they are converted to the API's camelCase form, recursively through nested maps, before sending.
type Params map[string]any

// TokenBalances maps a contract or collection identifier to token id => balance.
// Balances are kept as decimal strings so large values do not lose precision.
type TokenBalances map[string]map[string]string

// NonceResult is the message material a wallet must sign.
type NonceResult struct {
	Nonce     string `json:"nonce"`
	Statement string `json:"statement"`
	Format    string `json:"format"`
}

// AuthorizedUser is a verified wallet identity and its known token holdings.
type AuthorizedUser struct {
	Chain         string `json:"chain"`
	WalletAddress string `json:"walletAddress"`
	// DisplayAddress is the human-friendly name for the wallet (ENS name, shortened address).
	DisplayAddress string        `json:"displayAddress"`
	TokenBalances  TokenBalances `json:"tokenBalances"`
}

// AuthResult is an access token together with the user it was issued for.
type AuthResult struct {
	AccessToken string         `json:"accessToken"`
	User        AuthorizedUser `json:"user"`
}

// TokenOwnershipResult reports whether a wallet satisfies token ownership requirements.
type TokenOwnershipResult struct {
	Allowed       bool          `json:"allowed"`
	WalletAddress string        `json:"walletAddress"`
	TokenBalances TokenBalances `json:"tokenBalances"`
}
