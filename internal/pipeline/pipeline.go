// Package pipeline wires the whole harvest: reset, fetch, classify, map,
// validate, route, deliver. Strictly sequential; every identity that enters
// mapping leaves with exactly one routed outcome.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"eosc-harvest/internal/catalog"
	"eosc-harvest/internal/config"
	"eosc-harvest/internal/delivery"
	"eosc-harvest/internal/domain"
	"eosc-harvest/internal/eosc"
	"eosc-harvest/internal/logging"
	"eosc-harvest/internal/router"
	"eosc-harvest/internal/sync"
	"eosc-harvest/internal/workspace"
)

type Pipeline struct {
	Cfg     config.Config
	WS      *workspace.Dir
	Catalog *catalog.Client
	EOSC    *eosc.Client
}

func New(cfg config.Config) *Pipeline {
	return &Pipeline{
		Cfg:     cfg,
		WS:      workspace.NewDir(cfg.WorkspaceDir),
		Catalog: catalog.New(cfg.GTNBaseURL),
		EOSC:    eosc.New(cfg.EOSCBaseURL),
	}
}

// Run executes one full harvest. Workspace and topic-index failures are
// fatal; everything after that is per-record.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.WS.Reset(); err != nil {
		return err
	}

	fetcher := &catalog.Fetcher{Client: p.Catalog, WS: p.WS}
	if err := fetcher.FetchAll(ctx); err != nil {
		return err
	}

	cs, err := sync.Classify(p.WS)
	if err != nil {
		return err
	}
	logging.WithFields(logrus.Fields{
		"new":     len(cs.New),
		"updated": len(cs.Updated),
	}).Info("change set computed")

	if err := p.process(ctx, cs.New, workspace.CategoryNew); err != nil {
		return err
	}
	if err := p.process(ctx, cs.Updated, workspace.CategoryUpdated); err != nil {
		return err
	}

	return p.deliver(ctx)
}

// process maps, validates and routes one category in FIFO order.
func (p *Pipeline) process(ctx context.Context, refs []sync.RecordRef, cat workspace.Category) error {
	if len(refs) == 0 {
		return nil
	}

	outcomes := make([]eosc.ValidationOutcome, 0, len(refs))
	for _, ref := range refs {
		outcomes = append(outcomes, p.validateOne(ctx, ref))
	}
	return router.Route(p.WS, outcomes, cat)
}

func (p *Pipeline) validateOne(ctx context.Context, ref sync.RecordRef) eosc.ValidationOutcome {
	data, err := p.WS.ReadRecord(workspace.Current, ref.Topic, ref.ID)
	if err != nil {
		// The snapshot file vanished or is unreadable. Keep the one-outcome
		// invariant: surface it as a mapping error for this identity.
		return eosc.ValidationOutcome{
			Kind:     eosc.KindMappingError,
			Identity: ref.ID,
			Topic:    ref.Topic,
			Message:  err.Error(),
		}
	}

	rec, err := domain.ParseRecord(data)
	if err != nil {
		return eosc.ValidationOutcome{
			Kind:     eosc.KindMappingError,
			Identity: ref.ID,
			Topic:    ref.Topic,
			Message:  err.Error(),
		}
	}

	return p.EOSC.Validate(ctx, eosc.Map(rec))
}

// deliver pushes a compressed bundle of the validated store to the partner
// SFTP drop. Skipped when SFTP is not configured; a delivery failure does not
// fail the run, the validated files are already on disk.
func (p *Pipeline) deliver(ctx context.Context) error {
	if p.Cfg.SFTPHost == "" {
		return nil
	}

	name := fmt.Sprintf("validated_eosc_jsons_%s.tar.br", time.Now().UTC().Format("20060102T150405"))
	bundlePath, err := delivery.BuildBundle(p.WS.ValidatedPath(), p.Cfg.WorkspaceDir, name)
	if err != nil {
		logging.WithField("error", err.Error()).Warn("bundle build failed, skipping delivery")
		return nil
	}

	cfg := delivery.SFTPConfig{
		Host:      p.Cfg.SFTPHost,
		Port:      p.Cfg.SFTPPort,
		User:      p.Cfg.SFTPUser,
		Pass:      p.Cfg.SFTPPass,
		RemoteDir: p.Cfg.SFTPRemoteDir,
	}
	if err := delivery.UploadFile(ctx, cfg, bundlePath, name); err != nil {
		logging.WithField("error", err.Error()).Warn("bundle delivery failed")
		return nil
	}

	logging.WithField("bundle", name).Info("validated bundle delivered")
	return nil
}
