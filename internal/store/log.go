package store

import (
	"github.com/doctoolkit/tocloader/internal/toc"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("tocloader.store")

func (s *Store) logDependencyError(from, to toc.FilePath, err error) {
	log.Errorf("record dependency %s -> %s: %s", from.Path(), to.Path(), err)
}
