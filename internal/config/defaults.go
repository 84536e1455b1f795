package config

const (
	// FileName is the name of the config file within the config directory.
	FileName = "config.yml"

	// DefaultDayWidth is the width of one day. Some charts use 2rem; both
	// are accepted.
	DefaultDayWidth = "30px"
	// DefaultSidebarWidth is the width of the task list.
	DefaultSidebarWidth = "16vw"
	// DefaultLeadDays is the number of days shown before the earliest task.
	DefaultLeadDays = 3
	// DefaultTrailDays is the number of days shown after the latest task.
	DefaultTrailDays = 0
	// DefaultRootFontPx is the size of 1rem.
	DefaultRootFontPx = 16.0

	// DefaultCellPx is the assumed width of a terminal column in pixels.
	DefaultCellPx = 10.0

	// DefaultEdgeThreshold is how close to an edge a drag has to come
	// before the timeline grows.
	DefaultEdgeThreshold = "50px"
	// DefaultExtendDays is how many days each extension adds.
	DefaultExtendDays = 5

	DefaultSVGWidth     = 1200
	DefaultSVGRowHeight = 32
)
