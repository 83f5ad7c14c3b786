package models

type UserRole string
type ProfileStatus string
type CreatorLevel string

const (
	UserRoleCreator   UserRole = "creator"
	UserRoleSupporter UserRole = "supporter"
	UserRoleAdmin     UserRole = "admin"

	ProfileStatusPending  ProfileStatus = "pending"
	ProfileStatusApproved ProfileStatus = "approved"
	ProfileStatusRejected ProfileStatus = "rejected"

	CreatorLevelNormal   CreatorLevel = "Normal"
	CreatorLevelVip      CreatorLevel = "Vip"
	CreatorLevelPlatinum CreatorLevel = "Platinum"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleCreator, UserRoleSupporter, UserRoleAdmin:
		return true
	}
	return false
}

func (s ProfileStatus) IsValid() bool {
	switch s {
	case ProfileStatusPending, ProfileStatusApproved, ProfileStatusRejected:
		return true
	}
	return false
}

// IsDecision - статусы, которые может выставить администратор
func (s ProfileStatus) IsDecision() bool {
	return s == ProfileStatusApproved || s == ProfileStatusRejected
}

func (l CreatorLevel) IsValid() bool {
	switch l {
	case CreatorLevelNormal, CreatorLevelVip, CreatorLevelPlatinum:
		return true
	}
	return false
}
