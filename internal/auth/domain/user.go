package domain

import "time"

type User struct {
	ID           string
	Firstname    string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Project struct {
	ID        string
	Name      string
	AdminID   string
	UserIDs   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasMember reports whether the given principal id is in the member set.
func (p *Project) HasMember(userID string) bool {
	for _, id := range p.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
