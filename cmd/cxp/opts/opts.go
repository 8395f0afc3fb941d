package opts

import (
	"github.com/walteh/cxp/pkg/clipboard"
	"github.com/walteh/cxp/pkg/config"
	"github.com/walteh/cxp/pkg/log"
	"github.com/walteh/cxp/pkg/operation"
)

// RootOpts contains shared options used by all commands. It is filled in
// once flags have been parsed.
type RootOpts struct {
	Config *config.Config
	Store  *clipboard.Store
	Logger *log.Logger
	Runner *operation.OperationRunner
}

// OperationOptions returns the options every operation is built from.
func (o *RootOpts) OperationOptions() operation.Options {
	return operation.Options{
		Store:  o.Store,
		Logger: o.Logger,
	}
}
