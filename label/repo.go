package label

import (
	"sync"

	"pvlkit/cfg"
	"pvlkit/util/logger"
	"pvlkit/util/tw"
)

// repo represents dependencies holder for this package
type repo struct {
	log *logger.Logger
	tw  tw.Writer
	cfg cfg.Root

	// out guards table writer and standard output shared by batch workers
	out *sync.Mutex
}

// NewRepo returns new dependencies holder for this package
func NewRepo(log *logger.Logger, tw tw.Writer, cfg cfg.Root) repo {
	return repo{log: log, tw: tw, cfg: cfg, out: &sync.Mutex{}}
}
