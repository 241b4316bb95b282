package constant

type ContextKey string

const AccountIDKey ContextKey = "accountID"

const (
	// Defaults applied when a registration omits the optional fields.
	DefaultPhoto = "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcRCoS1h0huK1B606Qb4j_hHmwGH8wPmvKLSKQ&usqp=CAU"
	DefaultBio   = "Hey there! I am using Chat Webapp."

	MaxBioLength = 300
)

const AccessTokenCookie = "accessToken"
