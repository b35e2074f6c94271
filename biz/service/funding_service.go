package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tradex-hertz/biz/dal/kafka"
	"tradex-hertz/biz/dal/pg"
	"tradex-hertz/biz/model"
)

type FundingService struct {
	db      *gorm.DB
	funding *pg.FundingRepo
	audit   *pg.AuditRepo
	events  *kafka.Publisher
}

func NewFundingService(db *gorm.DB, events *kafka.Publisher) *FundingService {
	return &FundingService{
		db:      db,
		funding: pg.NewFundingRepo(db),
		audit:   pg.NewAuditRepo(db),
		events:  events,
	}
}

// SubmitDeposit 提交充值申请，pending 状态等待审核
func (s *FundingService) SubmitDeposit(userID uint, amount decimal.Decimal, method, reference string) (*model.Deposit, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	d := &model.Deposit{
		UserID:    userID,
		Amount:    amount,
		Method:    method,
		Reference: reference,
		Status:    model.FundingStatusPending,
	}
	if err := s.funding.CreateDeposit(d); err != nil {
		return nil, err
	}
	return d, nil
}

// SubmitWithdrawal 提交提现申请；提交时校验余额，审核时再校验一次
func (s *FundingService) SubmitWithdrawal(userID uint, amount decimal.Decimal, address, method string) (*model.Withdrawal, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrNotFound
	}
	if user.Balance.LessThan(amount) {
		return nil, ErrInsufficientFunds
	}
	w := &model.Withdrawal{
		UserID:  userID,
		Amount:  amount,
		Address: address,
		Method:  method,
		Status:  model.FundingStatusPending,
	}
	if err := s.funding.CreateWithdrawal(w); err != nil {
		return nil, err
	}
	return w, nil
}

// ListDeposits 查询充值申请
func (s *FundingService) ListDeposits(userID uint, status string, limit int) ([]model.Deposit, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.funding.ListDeposits(userID, status, limit)
}

// ListWithdrawals 查询提现申请
func (s *FundingService) ListWithdrawals(userID uint, status string, limit int) ([]model.Withdrawal, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.funding.ListWithdrawals(userID, status, limit)
}

// ReviewDeposit 审核充值：通过则状态流转与入账在同一事务提交
func (s *FundingService) ReviewDeposit(ctx context.Context, adminID, depositID uint, approve bool, note string) (*model.Deposit, error) {
	var reviewed *model.Deposit
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var d model.Deposit
		if err := tx.First(&d, depositID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if d.Status != model.FundingStatusPending {
			return ErrNotPending
		}

		now := time.Now()
		d.ReviewedBy = &adminID
		d.ReviewNote = note
		d.ReviewedAt = &now
		if !approve {
			d.Status = model.FundingStatusDeclined
			reviewed = &d
			return tx.Save(&d).Error
		}

		var user model.User
		if err := tx.First(&user, d.UserID).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.User{}).Where("id = ?", user.ID).
			Update("balance", user.Balance.Add(d.Amount)).Error; err != nil {
			return err
		}
		d.Status = model.FundingStatusApproved
		reviewed = &d
		return tx.Save(&d).Error
	})
	if err != nil {
		return nil, err
	}

	_ = s.audit.Append(adminID, "deposit.review", fmt.Sprintf("deposit:%d", depositID), reviewed.Status)
	s.events.Publish(ctx, kafka.TopicFunding, fmt.Sprintf("deposit-%d", depositID), reviewed)
	return reviewed, nil
}

// ReviewWithdrawal 审核提现：通过前按当前余额复核，状态流转与扣款同一事务。
// 申请时余额足够而审核时不足的，直接拒绝且不动余额。
func (s *FundingService) ReviewWithdrawal(ctx context.Context, adminID, withdrawalID uint, approve bool, note string) (*model.Withdrawal, error) {
	var reviewed *model.Withdrawal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var w model.Withdrawal
		if err := tx.First(&w, withdrawalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if w.Status != model.FundingStatusPending {
			return ErrNotPending
		}

		now := time.Now()
		w.ReviewedBy = &adminID
		w.ReviewNote = note
		w.ReviewedAt = &now
		if !approve {
			w.Status = model.FundingStatusDeclined
			reviewed = &w
			return tx.Save(&w).Error
		}

		var user model.User
		if err := tx.First(&user, w.UserID).Error; err != nil {
			return err
		}
		if user.Balance.LessThan(w.Amount) {
			return ErrInsufficientFunds
		}
		if err := tx.Model(&model.User{}).Where("id = ?", user.ID).
			Update("balance", user.Balance.Sub(w.Amount)).Error; err != nil {
			return err
		}
		w.Status = model.FundingStatusApproved
		reviewed = &w
		return tx.Save(&w).Error
	})
	if err != nil {
		return nil, err
	}

	_ = s.audit.Append(adminID, "withdrawal.review", fmt.Sprintf("withdrawal:%d", withdrawalID), reviewed.Status)
	s.events.Publish(ctx, kafka.TopicFunding, fmt.Sprintf("withdrawal-%d", withdrawalID), reviewed)
	return reviewed, nil
}
