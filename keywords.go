package stack

// Option keywords shared by several modules.
const (
	kwCapacity    = "CAPACITY"
	kwExpansion   = "EXPANSION"
	kwNoCreate    = "NOCREATE"
	kwNonScaling  = "NONSCALING"
	kwItems       = "ITEMS"
	kwWeights     = "WEIGHTS"
	kwCompression = "COMPRESSION"
	kwOverride    = "OVERRIDE"
	kwLabels      = "LABELS"
	kwCount       = "COUNT"
	kwLimit       = "LIMIT"
	kwFilter      = "FILTER"
	kwWithCount   = "WITHCOUNT"
	kwReplace     = "REPLACE"
	kwNX          = "NX"
	kwXX          = "XX"
)
