package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/wedlock-lab/mandap/pkg/domain/interfaces"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"github.com/wedlock-lab/mandap/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Collection names
	statusesCollection   = "group_statuses"
	dispatchesCollection = "dispatches"

	// Field names
	fieldCreatedAt = "created_at"
)

// statusDoc is the Firestore document shape for a group status
type statusDoc struct {
	GroupNumber int       `firestore:"group_number"`
	Status      string    `firestore:"status"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

// Firestore implements Repository interface with Firestore
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID string) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Fail fast on bad credentials; an empty collection is fine
	_, err = client.Collection(statusesCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore repository initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{
		client: client,
	}, nil
}

// GetStatus retrieves the queue status for a group, defaulting to waiting
func (f *Firestore) GetStatus(ctx context.Context, groupNumber types.GroupNumber) (types.QueueStatus, error) {
	doc, err := f.client.Collection(statusesCollection).Doc(groupNumber.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.QueueStatusWaiting, nil
		}
		return "", goerr.Wrap(err, "failed to get group status from firestore",
			goerr.V("groupNumber", groupNumber))
	}

	var d statusDoc
	if err := doc.DataTo(&d); err != nil {
		return "", goerr.Wrap(err, "failed to decode group status")
	}

	queueStatus, err := types.ParseQueueStatus(d.Status)
	if err != nil {
		return "", goerr.Wrap(err, "stored group status is invalid",
			goerr.V("groupNumber", groupNumber))
	}
	return queueStatus, nil
}

// SetStatus updates the queue status for a group
func (f *Firestore) SetStatus(ctx context.Context, groupNumber types.GroupNumber, queueStatus types.QueueStatus) error {
	if !queueStatus.IsValid() {
		return goerr.New("invalid queue status", goerr.V("status", queueStatus))
	}

	_, err := f.client.Collection(statusesCollection).Doc(groupNumber.String()).Set(ctx, statusDoc{
		GroupNumber: groupNumber.Int(),
		Status:      queueStatus.String(),
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to save group status to firestore",
			goerr.V("groupNumber", groupNumber))
	}
	return nil
}

// ListStatuses returns every recorded group status
func (f *Firestore) ListStatuses(ctx context.Context) (map[types.GroupNumber]types.QueueStatus, error) {
	statuses := make(map[types.GroupNumber]types.QueueStatus)

	iter := f.client.Collection(statusesCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate group statuses")
		}

		var d statusDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode group status",
				goerr.V("doc", doc.Ref.ID))
		}

		queueStatus, err := types.ParseQueueStatus(d.Status)
		if err != nil {
			// Skip corrupted documents rather than failing the whole list
			ctxlog.From(ctx).Warn("Skipping invalid stored status",
				"doc", doc.Ref.ID,
				"status", d.Status,
			)
			continue
		}
		statuses[types.GroupNumber(d.GroupNumber)] = queueStatus
	}

	return statuses, nil
}

// SaveDispatch saves a dispatch audit record
func (f *Firestore) SaveDispatch(ctx context.Context, record *model.DispatchRecord) error {
	if record == nil {
		return goerr.New("dispatch record is nil")
	}
	if record.ID == "" {
		return goerr.New("dispatch record ID is empty")
	}

	_, err := f.client.Collection(dispatchesCollection).Doc(record.ID.String()).Set(ctx, record)
	if err != nil {
		return goerr.Wrap(err, "failed to save dispatch record to firestore",
			goerr.V("dispatchID", record.ID))
	}
	return nil
}

// ListDispatches lists dispatch records, newest first
func (f *Firestore) ListDispatches(ctx context.Context, limit int) ([]*model.DispatchRecord, error) {
	query := f.client.Collection(dispatchesCollection).
		OrderBy(fieldCreatedAt, firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var records []*model.DispatchRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate dispatch records")
		}

		var record model.DispatchRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, goerr.Wrap(err, "failed to decode dispatch record",
				goerr.V("doc", doc.Ref.ID))
		}
		records = append(records, &record)
	}

	return records, nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	if err := f.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close firestore client")
	}
	return nil
}
