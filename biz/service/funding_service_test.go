package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tradex-hertz/biz/model"
)

func TestDepositReviewApprove(t *testing.T) {
	db := newTestDB(t)
	funding := NewFundingService(db, nil)
	user := mustUser(t, db, "dep@example.com", dec("50"))
	admin := mustUser(t, db, "admin@example.com", dec("0"))

	d, err := funding.SubmitDeposit(user.ID, dec("100"), "bank", "ref-1")
	require.NoError(t, err)
	require.Equal(t, model.FundingStatusPending, d.Status)
	// pending 不入账
	require.True(t, userBalance(t, db, user.ID).Equal(dec("50")))

	reviewed, err := funding.ReviewDeposit(context.Background(), admin.ID, d.ID, true, "ok")
	require.NoError(t, err)
	require.Equal(t, model.FundingStatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	require.Equal(t, admin.ID, *reviewed.ReviewedBy)
	require.True(t, userBalance(t, db, user.ID).Equal(dec("150")))

	// 已审批的不允许再审
	_, err = funding.ReviewDeposit(context.Background(), admin.ID, d.ID, true, "again")
	require.ErrorIs(t, err, ErrNotPending)
	require.True(t, userBalance(t, db, user.ID).Equal(dec("150")))
}

func TestDepositReviewDecline(t *testing.T) {
	db := newTestDB(t)
	funding := NewFundingService(db, nil)
	user := mustUser(t, db, "dep2@example.com", dec("50"))
	admin := mustUser(t, db, "admin2@example.com", dec("0"))

	d, err := funding.SubmitDeposit(user.ID, dec("100"), "bank", "ref-2")
	require.NoError(t, err)

	reviewed, err := funding.ReviewDeposit(context.Background(), admin.ID, d.ID, false, "suspicious")
	require.NoError(t, err)
	require.Equal(t, model.FundingStatusDeclined, reviewed.Status)
	require.True(t, userBalance(t, db, user.ID).Equal(dec("50")))
}

func TestSubmitWithdrawalChecksBalance(t *testing.T) {
	db := newTestDB(t)
	funding := NewFundingService(db, nil)
	user := mustUser(t, db, "wd@example.com", dec("30"))

	_, err := funding.SubmitWithdrawal(user.ID, dec("100"), "addr", "crypto")
	require.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = funding.SubmitWithdrawal(user.ID, dec("-1"), "addr", "crypto")
	require.ErrorIs(t, err, ErrInvalidAmount)

	w, err := funding.SubmitWithdrawal(user.ID, dec("20"), "addr", "crypto")
	require.NoError(t, err)
	require.Equal(t, model.FundingStatusPending, w.Status)
	// pending 不扣款
	require.True(t, userBalance(t, db, user.ID).Equal(dec("30")))
}

func TestWithdrawalReviewRevalidates(t *testing.T) {
	db := newTestDB(t)
	funding := NewFundingService(db, nil)
	user := mustUser(t, db, "wd2@example.com", dec("100"))
	admin := mustUser(t, db, "admin3@example.com", dec("0"))

	w, err := funding.SubmitWithdrawal(user.ID, dec("80"), "addr", "crypto")
	require.NoError(t, err)

	// 申请后余额被消耗，审核时按当前余额复核
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).
		Update("balance", dec("40")).Error)

	_, err = funding.ReviewWithdrawal(context.Background(), admin.ID, w.ID, true, "")
	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.True(t, userBalance(t, db, user.ID).Equal(dec("40")))

	var still model.Withdrawal
	require.NoError(t, db.First(&still, w.ID).Error)
	require.Equal(t, model.FundingStatusPending, still.Status)
}

func TestWithdrawalReviewApprove(t *testing.T) {
	db := newTestDB(t)
	funding := NewFundingService(db, nil)
	user := mustUser(t, db, "wd3@example.com", dec("100"))
	admin := mustUser(t, db, "admin4@example.com", dec("0"))

	w, err := funding.SubmitWithdrawal(user.ID, dec("80"), "addr", "crypto")
	require.NoError(t, err)

	reviewed, err := funding.ReviewWithdrawal(context.Background(), admin.ID, w.ID, true, "")
	require.NoError(t, err)
	require.Equal(t, model.FundingStatusApproved, reviewed.Status)
	require.True(t, userBalance(t, db, user.ID).Equal(dec("20")))

	// 审核动作落审计日志
	var logs []model.AdminAuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	require.Equal(t, admin.ID, logs[0].AdminID)
}

func TestReviewMissingRequest(t *testing.T) {
	db := newTestDB(t)
	funding := NewFundingService(db, nil)
	admin := mustUser(t, db, "admin5@example.com", dec("0"))

	_, err := funding.ReviewDeposit(context.Background(), admin.ID, 999, true, "")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = funding.ReviewWithdrawal(context.Background(), admin.ID, 999, true, "")
	require.ErrorIs(t, err, ErrNotFound)
}
