package stakecore

const unknownVersion = "version unknown"

// Version and Commit are set at build time.
var Version = unknownVersion
var Commit string

func IsVersionKnown() bool {
	return Version != unknownVersion
}
