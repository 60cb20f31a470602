package rules

// builtin is the rule set compiled into the dirlint binary. Rules never come
// from external configuration; changing the governed layout means changing
// this table and rebuilding.
var builtin = MustNewSet("root", []Def{
	{
		Name:         "root",
		RequiredDirs: []string{"folder1", "folder2", "folder3"},
		Children: []ChildDef{
			{Match: "folder1", Rule: "folder1"},
			{Match: "folder2", Rule: "folder2"},
			{Match: "folder3", Rule: "folder3"},
		},
	},
	{
		Name:         "folder1",
		RequiredDirs: []string{"pngs", "photos"},
		Children: []ChildDef{
			{Match: "pngs", Rule: "pngs"},
			{Match: "photos", Rule: "photos"},
		},
	},
	{
		Name:         "pngs",
		AllowedFiles: []string{"*.png"},
	},
	{
		Name:         "photos",
		AllowedFiles: []string{"*.(svg|jpg|png)"},
	},
	{
		Name:         "folder2",
		AllowedFiles: []string{"folder2-*.*"},
	},
	{
		Name:         "folder3",
		RequiredDirs: []string{"f3"},
		Children: []ChildDef{
			// The fixed f3 directory and every f3-<variant> sibling share one
			// rule; the literal name is excluded from the pattern sweep.
			{Match: "f3", Rule: "f3-scripts"},
			{Match: "f3-*", Rule: "f3-scripts"},
		},
	},
	{
		Name:         "f3-scripts",
		AllowedFiles: []string{"cmd-*.sh"},
	},
})

// Builtin returns the rule set compiled into the binary.
func Builtin() *Set {
	return builtin
}
