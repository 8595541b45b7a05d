package config

// Version is the ulog binary version.
// Set at build time via: -ldflags "-X github.com/phersys/unifi-log-insight-sub001/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
