package types

// Version is the tugboat build version, overridable at link time:
//
//	go build -ldflags "-X github.com/tugboat-ci/tugboat/pkg/domain/types.Version=v1.2.3"
var Version = "dev"
