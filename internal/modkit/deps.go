package modkit

import (
	"ballotbox/internal/modkit/repokit"
	"ballotbox/internal/platform/config"
	"ballotbox/internal/platform/logger"
)

// Deps are the shared handles every module is built from
// PG and RDS stay nil when their backend is not configured
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	RDS repokit.KV
}
