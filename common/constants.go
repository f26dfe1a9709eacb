package common

const (
	SrcFileExtension = ".cx"
	ProfileFileName  = "cx-build.toml"
	CXVersion        = "0.1.0"

	// DefaultEntryName is the function executed by `cxc run`.
	DefaultEntryName = "main"
)
