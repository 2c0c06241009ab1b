package mapper

import "github.com/Apurer/game-storefront/internal/domains/session/domain"

// Credentials is the body of POST /login.
type Credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Registration is the body of POST /register.
type Registration struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdate is the body of PUT /profile; omitted fields are unchanged.
type ProfileUpdate struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the signed-in visitor as shown to the browser. The token never
// leaves the server.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Status answers GET /login and GET /profile.
type Status struct {
	SignedIn bool  `json:"signedIn"`
	Loading  bool  `json:"loading"`
	User     *User `json:"user,omitempty"`
}

func FromSession(session *domain.Session) *User {
	if session == nil {
		return nil
	}
	return &User{Name: session.Name, Email: session.Email, Role: string(session.Role)}
}

func FromStatus(session *domain.Session, loading bool) Status {
	return Status{SignedIn: session != nil, Loading: loading, User: FromSession(session)}
}
