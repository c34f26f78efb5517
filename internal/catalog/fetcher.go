package catalog

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"eosc-harvest/internal/domain"
	"eosc-harvest/internal/logging"
	"eosc-harvest/internal/workspace"
)

// Fetcher populates the current snapshot from the catalog API.
type Fetcher struct {
	Client *Client
	WS     workspace.Workspace
}

// FetchAll retrieves every topic's materials and persists each record under
// its composite identity. A failed topic index is fatal: a snapshot without a
// topic universe is meaningless. A single failed topic only costs that
// topic's records.
func (f *Fetcher) FetchAll(ctx context.Context) error {
	topics, err := f.Client.ListTopics(ctx)
	if err != nil {
		return err
	}

	total := 0
	for _, topic := range topics {
		records, err := f.Client.Materials(ctx, topic)
		if err != nil {
			logging.WithFields(logrus.Fields{
				"topic": topic,
				"error": err.Error(),
			}).Warn("topic fetch failed, skipping")
			continue
		}

		for _, rec := range records {
			if err := f.persist(topic, rec); err != nil {
				return err
			}
		}
		total += len(records)
		logging.WithFields(logrus.Fields{
			"topic":   topic,
			"records": len(records),
		}).Debug("topic fetched")
	}

	logging.WithFields(logrus.Fields{
		"topics":  len(topics),
		"records": total,
	}).Info("snapshot fetched")
	return nil
}

func (f *Fetcher) persist(topic string, rec domain.TrainingRecord) error {
	data, err := domain.CanonicalJSON(rec.Raw)
	if err != nil {
		return fmt.Errorf("catalog: persist %s: %w", rec.Identity(), err)
	}
	return f.WS.WriteRecord(topic, rec.Identity(), data)
}
