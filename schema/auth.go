package schema

// Claims is the JWT claims document issued by the auth boundary.
// Token issuance and verification happen outside this module; the shape
// is shared so downstream services agree on the fields.
type Claims struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	DiscordID  string `json:"discord_id,omitempty"`
	Username   string `json:"username,omitempty"`
	GlobalName string `json:"global_name,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	Exp        int64  `json:"exp"`
	Iat        int64  `json:"iat"`
}

// OAuthProviderType identifies an OAuth identity provider.
type OAuthProviderType string

// Supported OAuth providers.
const (
	ProviderDiscord OAuthProviderType = "discord"
	ProviderGoogle  OAuthProviderType = "google"
	ProviderGitHub  OAuthProviderType = "github"
)

// String returns the lowercase wire form.
func (p OAuthProviderType) String() string {
	return string(p)
}

// OAuthInitiateResponse starts an OAuth flow.
type OAuthInitiateResponse struct {
	AuthURL string `json:"auth_url"`
}

// CallbackQuery is the provider redirect for a login flow.
type CallbackQuery struct {
	Code  string `json:"code"`
	State string `json:"state,omitempty"`
}

// AuthUserInfo is the authenticated user as the dashboard sees them.
type AuthUserInfo struct {
	ID         string `json:"id"`
	DiscordID  string `json:"discord_id,omitempty"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
}

// AuthResponse is a successful login: the issued token plus the user.
type AuthResponse struct {
	Token string       `json:"token"`
	User  AuthUserInfo `json:"user"`
}

// LinkDiscordQuery carries the handoff token when linking a Discord
// identity to an existing account.
type LinkDiscordQuery struct {
	Token string `json:"token,omitempty"`
}

// DeletionInitiateResponse starts the account-deletion confirmation flow.
type DeletionInitiateResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

// DeletionCallbackQuery is the provider redirect for a deletion flow.
type DeletionCallbackQuery struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

// APIKeyResponse is a stored API key summary. The key material itself
// is only ever returned once, at creation.
type APIKeyResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	KeyPreview string `json:"key_preview"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	LastUsed   string `json:"last_used,omitempty"`
	UsageCount int64  `json:"usage_count"`
}

// CreateAPIKeyRequest names a new API key.
type CreateAPIKeyRequest struct {
	Name string `json:"name"`
}

// CreateAPIKeyResponse returns a freshly minted key exactly once.
type CreateAPIKeyResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	FullKey    string `json:"full_key"`
	KeyPreview string `json:"key_preview"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	Warning    string `json:"warning"`
}

// DeleteAPIKeyResponse acknowledges a key deletion.
type DeleteAPIKeyResponse struct {
	Message string `json:"message"`
}
