package globals

import "os"

var JwtSecret = loadSecret()

func loadSecret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("sabor_dev_secret") // set JWT_SECRET in production
}

// Context keys
type ContextKey string

const SessionKindKey ContextKey = "sessionKind"
const CredentialIDKey ContextKey = "credentialId"
