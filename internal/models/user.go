// Package models defines the account record shared by the directory and
// session layers, and the partial-update type used by directory edits.
package models

// User is one account in the directory. ID is the canonical unique key for
// update, delete and session exclusion. Username is the credential lookup
// key for login. Permissions is an opaque role string the core does not
// interpret.
//
// The JSON tags define the serialized record shape persisted in the
// key-value store.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	Permissions string `json:"permissions"`
}

// UserPatch is a partial update: nil fields are preserved, non-nil fields
// override. The ID is never patched.
type UserPatch struct {
	Username    *string `json:"username,omitempty"`
	Password    *string `json:"password,omitempty"`
	Email       *string `json:"email,omitempty"`
	Permissions *string `json:"permissions,omitempty"`
}

// Apply merges the patch into u.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Permissions != nil {
		u.Permissions = *p.Permissions
	}
}

// IsEmpty reports whether the patch carries no fields.
func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Password == nil && p.Email == nil && p.Permissions == nil
}
