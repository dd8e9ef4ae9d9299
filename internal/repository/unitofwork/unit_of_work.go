package unitofwork

import (
	"context"

	"carenote-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConcernRepository() contract.ConcernRepository
	ConcernSnapshotRepository() contract.ConcernSnapshotRepository
	CareSummaryRepository() contract.CareSummaryRepository
	FollowUpStateRepository() contract.FollowUpStateRepository
	PatientRepository() contract.PatientRepository
	MessageLogRepository() contract.MessageLogRepository
}
