package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adviseline/advisory-scheduler/internal/apperr"
	domain "github.com/adviseline/advisory-scheduler/internal/domain/appointment"
)

func TestConfirm_AdminConfirmsPending(t *testing.T) {
	store := newFakeStore()
	ap := seed(store, domain.StatusPendingReview, 7)

	uc := NewConfirmAppointment(store, &fakeNotifier{}, &fakeAudit{}, nil)
	date := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)

	updated, err := uc.Execute(context.Background(), domain.ActorAdmin, 42, ap.ID, &date)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	if updated.Status != string(domain.StatusConfirmed) {
		t.Fatalf("expected CONFIRMED, got %s", updated.Status)
	}
	if updated.ConfirmedDate == nil || !updated.ConfirmedDate.Equal(date) {
		t.Fatalf("confirmed date not persisted: %v", updated.ConfirmedDate)
	}
	if updated.AdminID == nil || *updated.AdminID != 42 {
		t.Fatal("acting admin not recorded")
	}
}

func TestConfirm_ClientCannotConfirmPending(t *testing.T) {
	store := newFakeStore()
	ap := seed(store, domain.StatusPendingReview, 7)

	uc := NewConfirmAppointment(store, &fakeNotifier{}, &fakeAudit{}, nil)

	_, err := uc.Execute(context.Background(), domain.ActorClient, 7, ap.ID, nil)
	if !apperr.IsInvalidTransition(err) {
		t.Fatalf("expected InvalidTransition, got %v", err)
	}
	if len(store.writeOps) != 0 {
		t.Fatal("store must not be written on illegal transition")
	}
}

func TestConfirm_OwnershipEnforced(t *testing.T) {
	store := newFakeStore()
	ap := seed(store, domain.StatusRescheduled, 7)

	uc := NewConfirmAppointment(store, &fakeNotifier{}, &fakeAudit{}, nil)

	_, err := uc.Execute(context.Background(), domain.ActorClient, 99, ap.ID, nil)
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected Unauthorized for foreign client, got %v", err)
	}
}

func TestCancelThenConfirmFails(t *testing.T) {
	store := newFakeStore()
	ap := seed(store, domain.StatusPendingReview, 7)

	notifier := &fakeNotifier{}
	confirmUC := NewConfirmAppointment(store, notifier, &fakeAudit{}, nil)
	cancelUC := NewCancelAppointment(store, notifier, &fakeAudit{}, nil)
	cancelUC.now = func() time.Time { return fixedNow }

	if _, err := confirmUC.Execute(context.Background(), domain.ActorAdmin, 42, ap.ID, nil); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := cancelUC.Execute(context.Background(), domain.ActorAdmin, 42, ap.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	_, err := confirmUC.Execute(context.Background(), domain.ActorAdmin, 42, ap.ID, nil)
	if !apperr.IsInvalidTransition(err) {
		t.Fatalf("confirm after cancel: expected InvalidTransition, got %v", err)
	}
}

func TestCancel_AdminCancelOfConfirmedDispatchesRefund(t *testing.T) {
	store := newFakeStore()
	ap := seed(store, domain.StatusConfirmed, 7)
	confirmed := fixedNow.Add(48 * time.Hour)
	ap.ConfirmedDate = &confirmed
	store.put(ap)

	notifier := &fakeNotifier{}
	uc := NewCancelAppointment(store, notifier, &fakeAudit{}, nil)
	uc.now = func() time.Time { return fixedNow }

	if _, err := uc.Execute(context.Background(), domain.ActorAdmin, 42, ap.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if !notifier.has(domain.EventCancelled) {
		t.Fatal("cancelled event not dispatched")
	}
	if !notifier.has(domain.EventRefundRequired) {
		t.Fatal("refund event not dispatched for admin cancel of confirmed appointment")
	}
}

func TestRescheduleThenClientAccept(t *testing.T) {
	store := newFakeStore()
	ap := seed(store, domain.StatusPendingReview, 7)
	requested := ap.RequestedDate

	notifier := &fakeNotifier{}
	proposeUC := NewProposeReschedule(store, notifier, &fakeAudit{})
	proposeUC.now = func() time.Time { return fixedNow }
	confirmUC := NewConfirmAppointment(store, notifier, &fakeAudit{}, nil)

	suggested := fixedNow.Add(96 * time.Hour)
	mid, err := proposeUC.Execute(context.Background(), 42, ap.ID, suggested)
	if err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	if mid.Status != string(domain.StatusRescheduled) {
		t.Fatalf("expected RESCHEDULED, got %s", mid.Status)
	}
	if !mid.RequestedDate.Equal(requested) {
		t.Fatal("requested date changed during negotiation")
	}

	final, err := confirmUC.Execute(context.Background(), domain.ActorClient, 7, ap.ID, nil)
	if err != nil {
		t.Fatalf("client accept failed: %v", err)
	}
	if final.Status != string(domain.StatusConfirmed) {
		t.Fatalf("expected CONFIRMED, got %s", final.Status)
	}
	if final.ConfirmedDate == nil || !final.ConfirmedDate.Equal(suggested) {
		t.Fatalf("accept should confirm the suggested date, got %v", final.ConfirmedDate)
	}
}

func TestReject(t *testing.T) {
	store := newFakeStore()
	ap := seed(store, domain.StatusPendingReview, 7)

	uc := NewRejectAppointment(store, &fakeNotifier{}, &fakeAudit{})
	uc.now = func() time.Time { return fixedNow }

	updated, err := uc.Execute(context.Background(), 42, ap.ID)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if updated.Status != string(domain.StatusRejected) {
		t.Fatalf("expected REJECTED, got %s", updated.Status)
	}
}

func TestComplete_PastConfirmedOnly(t *testing.T) {
	store := newFakeStore()
	ap := seed(store, domain.StatusConfirmed, 7)
	past := fixedNow.Add(-3 * time.Hour)
	ap.ConfirmedDate = &past
	store.put(ap)

	uc := NewCompleteAppointment(store, &fakeNotifier{}, &fakeAudit{})
	uc.now = func() time.Time { return fixedNow }

	updated, err := uc.Execute(context.Background(), domain.ActorAdmin, 42, ap.ID)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if updated.Status != string(domain.StatusCompleted) {
		t.Fatalf("expected COMPLETED, got %s", updated.Status)
	}
}

func TestEdit_ResetsToPending(t *testing.T) {
	store := newFakeStore()
	ap := seed(store, domain.StatusRescheduled, 7)
	suggested := fixedNow.Add(96 * time.Hour)
	ap.SuggestedDate = &suggested
	store.put(ap)

	uc := NewEditAppointment(store, &fakeNotifier{}, &fakeAudit{}, nil)
	uc.now = func() time.Time { return fixedNow }

	updated, err := uc.Execute(context.Background(), 7, ap.ID, domain.EditInput{
		Title:         "Revised session",
		RequestedDate: fixedNow.Add(120 * time.Hour),
		DurationMin:   30,
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if updated.Status != string(domain.StatusPendingReview) {
		t.Fatalf("expected PENDING_ADMIN_REVIEW after edit, got %s", updated.Status)
	}
	if updated.SuggestedDate != nil {
		t.Fatal("edit should clear the pending suggestion")
	}
}

func TestMarkPaid_FromWebhook(t *testing.T) {
	store := newFakeStore()
	ap := seed(store, domain.StatusPendingPayment, 7)

	uc := NewMarkPaid(store, &fakeNotifier{}, &fakeAudit{})

	updated, err := uc.Execute(context.Background(), ap.ID)
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if updated.Status != string(domain.StatusPendingReview) {
		t.Fatalf("expected PENDING_ADMIN_REVIEW, got %s", updated.Status)
	}
}

func TestConfirm_OnAnotherDayInvalidatesBothDays(t *testing.T) {
	store := newFakeStore()
	ap := seed(store, domain.StatusPendingReview, 7)
	requestedDay := ap.RequestedDate

	avail := &fakeAvail{}
	uc := NewConfirmAppointment(store, &fakeNotifier{}, &fakeAudit{}, avail)

	confirmedDate := requestedDay.Add(72 * time.Hour)
	if _, err := uc.Execute(context.Background(), domain.ActorAdmin, 42, ap.ID, &confirmedDate); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	if !avail.invalidatedDay(confirmedDate) {
		t.Fatal("confirmed day not invalidated")
	}
	if !avail.invalidatedDay(requestedDay) {
		t.Fatal("originally requested day still cached after the move")
	}
}

func TestEdit_MovedDayInvalidatesBothDays(t *testing.T) {
	store := newFakeStore()
	ap := seed(store, domain.StatusPendingReview, 7)
	requestedDay := ap.RequestedDate

	avail := &fakeAvail{}
	uc := NewEditAppointment(store, &fakeNotifier{}, &fakeAudit{}, avail)
	uc.now = func() time.Time { return fixedNow }

	moved := requestedDay.Add(48 * time.Hour)
	if _, err := uc.Execute(context.Background(), 7, ap.ID, domain.EditInput{
		Title:         "Portfolio review",
		RequestedDate: moved,
		DurationMin:   60,
	}); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	if !avail.invalidatedDay(moved) || !avail.invalidatedDay(requestedDay) {
		t.Fatal("both the old day and the new day must be invalidated")
	}
}

func TestStaleWriteRejected(t *testing.T) {
	store := newFakeStore()
	ap := seed(store, domain.StatusPendingReview, 7)

	// Two actors load the same snapshot; the second write carries a
	// previous status that no longer matches.
	first, _ := store.GetByID(context.Background(), ap.ID)
	second, _ := store.GetByID(context.Background(), ap.ID)

	if err := domain.Confirm(first, domain.ActorAdmin, nil); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := store.Confirm(context.Background(), first, domain.StatusPendingReview); err != nil {
		t.Fatalf("first write failed: %v", err)
	}

	if err := domain.Reject(second, domain.ActorAdmin, fixedNow); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	_, err := store.Reject(context.Background(), second, domain.StatusPendingReview)
	if !apperr.IsStaleState(err) {
		t.Fatalf("expected StaleState for outdated write, got %v", err)
	}
}
