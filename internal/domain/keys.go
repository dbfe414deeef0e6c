package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
	KeyRequestID CtxKey = "RequestID"
)

const (
	RoleDeveloper = "developer"
	RoleRecruiter = "recruiter"
)

// Identity is the authenticated caller. It is resolved once per request by
// the auth middleware and passed explicitly into every usecase call.
type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsDeveloper() bool { return i.Role == RoleDeveloper }
func (i Identity) IsRecruiter() bool { return i.Role == RoleRecruiter }
