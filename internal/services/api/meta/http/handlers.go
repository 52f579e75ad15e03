// Package http serves the /meta probes and pipeline facts
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"ballotbox/internal/adapters/workbook"
	"ballotbox/internal/core/ballot"
	"ballotbox/internal/core/timestamp"
	"ballotbox/internal/core/version"
	"ballotbox/internal/modkit/httpkit"
)

// probeTimeout bounds each readiness ping
const probeTimeout = 2 * time.Second

// Pinger is any backend that answers Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Status reports the ballot store kind and whether ballots are published
type Status func() (store string, hasData bool)

// Deps feed the meta routes; PG and RDS are nil when not configured
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	RDS         any
	Status      Status
}

// Register mounts health, ready, version, service and pipeline
func Register(r httpkit.Router, d Deps) {
	httpkit.Get(r, "/health", d.health)
	httpkit.Get(r, "/ready", d.ready)
	httpkit.Get(r, "/version", d.buildInfo)
	httpkit.Get(r, "/service", d.service)
	httpkit.Get(r, "/pipeline", d.pipeline)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"ballotbox-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"     example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck is one backend probe: ok, fail, skipped or unknown
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse rolls the checks up into ok, degraded or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse is name and uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"ballotbox-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// PipelineResponse is what ingestion accepts and whether ballots are published
type PipelineResponse struct {
	Store           string            `json:"store"            example:"memory"`
	HasData         bool              `json:"has_data"         example:"true"`
	RequiredColumns []string          `json:"required_columns" example:"Timestamp,Nama,Unit,Suara"`
	AcceptedTypes   []string          `json:"accepted_types"`
	TimestampLayout string            `json:"timestamp_layout" example:"02/01/2006 15:04:05"`
	Build           version.BuildInfo `json:"build"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (d Deps) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: d.ServiceName, Started: stamp(d.StartedAt), Now: stamp(time.Now())}, nil
}

func probe(ctx stdctx.Context, name string, backend any) ReadyCheck {
	c := ReadyCheck{Name: name, Status: "unknown"}
	switch p := backend.(type) {
	case nil:
		c.Status = "skipped"
	case Pinger:
		c.Status = "ok"
		if err := p.Ping(ctx); err != nil {
			c.Status, c.Error = "fail", err.Error()
		}
	}
	return c
}

// @Summary Readiness with backend pings
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (d Deps) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	out := ReadyResponse{Status: "ok", Now: stamp(time.Now())}
	out.Checks = []ReadyCheck{probe(ctx, "pg", d.PG), probe(ctx, "redis", d.RDS)}
	for _, c := range out.Checks {
		if c.Status == "fail" {
			out.Status = "fail"
			break
		}
		if c.Status == "unknown" {
			out.Status = "degraded"
		}
	}
	return out, nil
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (d Deps) buildInfo(*http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (d Deps) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    d.ServiceName,
		Started: stamp(d.StartedAt),
		Uptime:  int64(time.Since(d.StartedAt) / time.Second),
	}, nil
}

// @Summary Ingestion pipeline facts
// @Tags Meta
// @Produce json
// @Success 200 {object} PipelineResponse
// @Router /meta/pipeline [get]
func (d Deps) pipeline(*http.Request) (any, error) {
	out := PipelineResponse{
		RequiredColumns: ballot.RequiredColumns,
		AcceptedTypes:   []string{workbook.MIMEXLSX, workbook.MIMEXLS},
		TimestampLayout: timestamp.Layout,
		Build:           version.Info(),
	}
	if d.Status != nil {
		out.Store, out.HasData = d.Status()
	}
	return out, nil
}
