package pipeline

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"eosc-harvest/internal/eosc"
	"eosc-harvest/internal/logging"
	"eosc-harvest/internal/workspace"
)

// Upload pushes the validated store to the portal: new resources are created
// (POST), updated ones replaced (PUT). Per-record failures are collected, not
// fatal.
func (p *Pipeline) Upload(ctx context.Context) (eosc.UploadReport, error) {
	var report eosc.UploadReport

	if err := p.uploadCategory(ctx, workspace.CategoryNew, &report); err != nil {
		return report, err
	}
	if err := p.uploadCategory(ctx, workspace.CategoryUpdated, &report); err != nil {
		return report, err
	}

	logging.WithFields(logrus.Fields{
		"created":       report.SuccessfulCreations,
		"create_failed": report.FailedCreations,
		"updated":       report.SuccessfulUpdates,
		"update_failed": report.FailedUpdates,
	}).Info("upload finished")
	return report, nil
}

func (p *Pipeline) uploadCategory(ctx context.Context, cat workspace.Category, report *eosc.UploadReport) error {
	ids, err := p.WS.ValidatedIDs(cat)
	if err != nil {
		return err
	}

	for _, id := range ids {
		body, err := p.WS.ReadValidated(cat, id)
		if err != nil {
			return err
		}

		if cat == workspace.CategoryNew {
			err = p.EOSC.CreateResource(ctx, body)
		} else {
			err = p.EOSC.UpdateResource(ctx, body)
		}

		if err != nil {
			report.Failures = append(report.Failures, fmt.Sprintf("%s: %v", id, err))
			if cat == workspace.CategoryNew {
				report.FailedCreations++
			} else {
				report.FailedUpdates++
			}
			logging.WithFields(logrus.Fields{
				"id":       id,
				"category": string(cat),
				"error":    err.Error(),
			}).Warn("resource upload failed")
			continue
		}

		if cat == workspace.CategoryNew {
			report.SuccessfulCreations++
		} else {
			report.SuccessfulUpdates++
		}
	}
	return nil
}
