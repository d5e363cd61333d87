package user

// roleLevels orders roles by capability. Higher levels hold every
// permission of the levels below them.
var roleLevels = map[Role]int{
	RoleViewer:  1,
	RoleUser:    2,
	RoleManager: 3,
	RoleAdmin:   4,
}

// Level returns the role's permission level, 0 for unknown roles.
func (r Role) Level() int {
	return roleLevels[r]
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r.Level() > 0
}

// AtLeast reports whether r grants at minimum the capability of min.
func (r Role) AtLeast(min Role) bool {
	return r.Level() >= min.Level() && min.Level() > 0
}
