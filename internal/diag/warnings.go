package diag

// warningNames documents the stable, declaration-order assignment of
// warning codes (Open Question (c)): codes start at 1000 and are never
// renumbered, so an ignore-list entry written against one release stays
// valid against the next.
var warningNames = map[WarningCode]string{
	WarnDuplicateRuleOption: "duplicate-rule-option",
	WarnIntervalRange:       "interval-range",
}

func (c WarningCode) String() string {
	if name, ok := warningNames[c]; ok {
		return name
	}
	return "unknown-warning"
}

// WarningCodeFromString resolves a warning's stable name (as printed by
// WarningCode.String) back to its code, mirroring the original's
// WarningKind::from_str. ok is false for an unrecognized name.
func WarningCodeFromString(name string) (WarningCode, bool) {
	for code, n := range warningNames {
		if n == name {
			return code, true
		}
	}
	return 0, false
}
