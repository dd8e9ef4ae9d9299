package unitofwork

import (
	"context"
	"fmt"

	"carenote-be/internal/repository/contract"
	"carenote-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // the active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) ConcernRepository() contract.ConcernRepository {
	return implementation.NewConcernRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ConcernSnapshotRepository() contract.ConcernSnapshotRepository {
	return implementation.NewConcernSnapshotRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CareSummaryRepository() contract.CareSummaryRepository {
	return implementation.NewCareSummaryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FollowUpStateRepository() contract.FollowUpStateRepository {
	return implementation.NewFollowUpStateRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PatientRepository() contract.PatientRepository {
	return implementation.NewPatientRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MessageLogRepository() contract.MessageLogRepository {
	return implementation.NewMessageLogRepository(u.getDB())
}
