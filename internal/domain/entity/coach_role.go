package entity

// CoachRole 提问者视角枚举
type CoachRole string

const (
	CoachRoleCoach  CoachRole = "coach"
	CoachRolePlayer CoachRole = "player"
	CoachRoleParent CoachRole = "parent"
)

// Valid 判断是否为合法视角
func (r CoachRole) Valid() bool {
	switch r {
	case CoachRoleCoach, CoachRolePlayer, CoachRoleParent:
		return true
	}
	return false
}
