package pkg

import (
	"fmt"
)

var (
	GitTag    = ""
	GitCommit = ""
)

func Pointer[T interface{}](item T) *T {
	return &item
}

// UserAgent identifies ghcopy towards the APIs it talks to.
func UserAgent() string {
	version := GitTag
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("ghcopy/%s", version)
}
