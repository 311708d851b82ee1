package schema

// UserCountResponse reports the registered-user total.
type UserCountResponse struct {
	Count uint64 `json:"count"`
}
