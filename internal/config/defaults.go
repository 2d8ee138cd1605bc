package config

const (
	// FileName is the optional config file looked up in the working directory.
	FileName = "taskhelp.yml"

	// EnvSearchDirs is a colon-separated list of search directories.
	EnvSearchDirs = "TASKHELP_SEARCH_DIRS"
	// EnvGroupPattern overrides the group marker pattern.
	EnvGroupPattern = "TASKHELP_GROUP_PATTERN"
	// EnvNoColor disables colored output when set to a truthy value.
	EnvNoColor = "TASKHELP_NO_COLOR"
	// EnvOutput selects the output format: json, compact, or text.
	EnvOutput = "TASKHELP_OUTPUT"
)
