package types

import "github.com/audiokit/audiofile/pkg/config"

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	Config *config.Config
}
