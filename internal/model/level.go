package model

// UserLevel orders accounts by privilege. When adding levels, insert new
// values directly and never change an existing one: levels are persisted.
type UserLevel int

const (
	// LevelAdmin can manage anything.
	LevelAdmin UserLevel = 1000
	// LevelManager can manage content except security settings.
	LevelManager UserLevel = 500
	// LevelInternal is an inner school user.
	LevelInternal UserLevel = 100
	// LevelPaid is an external paid user.
	LevelPaid UserLevel = 50
	// LevelGeneral is the default level for new accounts.
	LevelGeneral UserLevel = 1
	// LevelBlocked accounts cannot access the site.
	LevelBlocked UserLevel = -1000
)

// Permission is the minimum level required for an action.
type Permission = UserLevel

const (
	PermissionManageSite  Permission = LevelAdmin
	PermissionManageUser  Permission = LevelAdmin
	PermissionAccessSite  Permission = LevelGeneral
	PermissionAccessGroup Permission = LevelInternal
)

// CheckIsAllowed reports whether a user at the given level may perform an
// action guarded by the given permission.
func CheckIsAllowed(level UserLevel, permission Permission) bool {
	return level >= permission
}
