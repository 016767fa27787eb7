// internal/domain/user.go
package domain

// User represents a user record in the directory.
// PasswordHash holds the bcrypt output of the user's password and is never
// serialized into API responses.
type User struct {
	ID           int64  `db:"id" json:"id"`                  // Primary key, BIGSERIAL in DB
	UserName     string `db:"username" json:"userName"`      // Unique username, max 100 chars
	FullName     string `db:"full_name" json:"fullName"`     // Required, max 200 chars
	Email        string `db:"email" json:"email"`            // Required, lookup key for update/validate
	Mobile       string `db:"mobile" json:"mobile"`          // Optional free text
	Language     string `db:"language" json:"language"`      // Optional free text
	Culture      string `db:"culture" json:"culture"`        // Optional free text
	PasswordHash string `db:"password_hash" json:"-"`        // Hashed credential, never exposed
}

// NewUser creates a new User instance with the given fields and an
// already-hashed password credential.
func NewUser(userName, fullName, email, mobile, language, culture, passwordHash string) *User {
	return &User{
		UserName:     userName,
		FullName:     fullName,
		Email:        email,
		Mobile:       mobile,
		Language:     language,
		Culture:      culture,
		PasswordHash: passwordHash,
	}
}
