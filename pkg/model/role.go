package model

//go:generate go run github.com/dmarkham/enumer -type Role -trimprefix Role -transform lower -json -sql -output role_gen.go

// Role is the access level carried by a user's profile.
type Role int

const (
	RoleMember Role = iota
	RoleLibrarian
	RoleAdmin
)
