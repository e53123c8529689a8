package storage

// Well-known keys.
const (
	KeyAccessToken = "access_token"
	KeyUserData    = "user_data"
	// KeyPhoneNumber is reserved; nothing writes it yet.
	KeyPhoneNumber = "phone_number"
)
