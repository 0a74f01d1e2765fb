package common

// version is overridden at build time via -ldflags "-X cclog/internal/common.version=...".
var version = "dev"

func GetVersion() string {
	return version
}
