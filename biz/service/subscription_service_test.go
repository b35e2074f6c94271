package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tradex-hertz/biz/model"
)

func TestSubscribe(t *testing.T) {
	db := newTestDB(t)
	subs := NewSubscriptionService(db)
	user := mustUser(t, db, "sub@example.com", dec("100"))

	plan := &model.SubscriptionPlan{Name: "pro", Price: dec("30"), DurationDays: 30}
	require.NoError(t, subs.SavePlan(plan))

	sub, err := subs.Subscribe(user.ID, plan.ID)
	require.NoError(t, err)
	require.Equal(t, model.SubscriptionActive, sub.Status)
	require.WithinDuration(t, time.Now().AddDate(0, 0, 30), sub.EndDate, time.Minute)
	require.True(t, userBalance(t, db, user.ID).Equal(dec("70")))
}

func TestSubscribeInsufficientFunds(t *testing.T) {
	db := newTestDB(t)
	subs := NewSubscriptionService(db)
	user := mustUser(t, db, "sub2@example.com", dec("10"))

	plan := &model.SubscriptionPlan{Name: "pro", Price: dec("30"), DurationDays: 30}
	require.NoError(t, subs.SavePlan(plan))

	_, err := subs.Subscribe(user.ID, plan.ID)
	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.True(t, userBalance(t, db, user.ID).Equal(dec("10")))

	_, err = subs.Subscribe(user.ID, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSavePlanValidation(t *testing.T) {
	subs := NewSubscriptionService(newTestDB(t))
	require.ErrorIs(t, subs.SavePlan(&model.SubscriptionPlan{Name: "bad", Price: dec("-1"), DurationDays: 30}), ErrInvalidAmount)
	require.ErrorIs(t, subs.SavePlan(&model.SubscriptionPlan{Name: "bad", Price: dec("1"), DurationDays: 0}), ErrInvalidAmount)
	require.ErrorIs(t, subs.DeletePlan(999), ErrNotFound)
}

func TestListByUserLapsesExpired(t *testing.T) {
	db := newTestDB(t)
	subs := NewSubscriptionService(db)
	user := mustUser(t, db, "sub3@example.com", dec("0"))

	old := &model.UserSubscription{
		UserID:    user.ID,
		PlanID:    1,
		StartDate: time.Now().AddDate(0, 0, -40),
		EndDate:   time.Now().AddDate(0, 0, -10),
		Status:    model.SubscriptionActive,
	}
	require.NoError(t, db.Create(old).Error)

	rows, err := subs.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, model.SubscriptionExpired, rows[0].Status)

	var stored model.UserSubscription
	require.NoError(t, db.First(&stored, old.ID).Error)
	require.Equal(t, model.SubscriptionExpired, stored.Status)
}
