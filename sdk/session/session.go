package session

// Role is a role held by a console User.
type Role struct {
	ID       int64  `json:"id"`
	RoleCode string `json:"roleCode"`
	RoleName string `json:"roleName"`
}

// User is the identity of the console operator a Session belongs to.
type User struct {
	ID         int64  `json:"id"`
	EmployeeNo string `json:"employeeNo"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Status     int    `json:"status"`
	Roles      []Role `json:"roles"`
}

// Session is a point-in-time view of who is logged in. A Session is either
// fully authenticated (User and Token both present) or entirely empty; there
// is no partially authenticated state.
type Session struct {
	User            *User
	Token           string
	Permissions     []string
	IsAuthenticated bool
}

// copy returns a deep copy so that callers holding a snapshot can never
// mutate the Store's state.
func (s Session) copy() Session {
	c := Session{
		Token:           s.Token,
		IsAuthenticated: s.IsAuthenticated,
	}
	if s.User != nil {
		u := copyUser(*s.User)
		c.User = &u
	}
	if s.Permissions != nil {
		c.Permissions = append([]string{}, s.Permissions...)
	}
	return c
}

func copyUser(u User) User {
	if u.Roles != nil {
		u.Roles = append([]Role{}, u.Roles...)
	}
	return u
}
