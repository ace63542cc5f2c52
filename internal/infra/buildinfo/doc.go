// Package buildinfo reports the version of the running binary.
//
// Version, Commit and BuildTime are injected at link time:
//
//	go build -ldflags "-X github.com/yndnr/respkv/internal/infra/buildinfo.Version=v0.1.0"
//
// Values left unset fall back to what the Go toolchain embedded in the
// binary (module version, VCS revision and time).
package buildinfo
