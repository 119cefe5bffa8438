// Package logging builds the process-wide structured logger
package logging

import (
	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"go.uber.org/zap"
)

// New returns an ectologger backed by zap. PrettyLogs switches to the
// human-readable development encoder for local use.
func New(prettyLogs bool) (ectologger.Logger, error) {
	var zlog *zap.Logger
	var err error
	if prettyLogs {
		zlog, err = zap.NewDevelopment()
	} else {
		zlog, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	return zapadapter.NewZapEctoLogger(zlog, nil), nil
}
