package appointment

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/adviseline/advisory-scheduler/internal/apperr"
	"github.com/adviseline/advisory-scheduler/internal/models"
)

var testNow = time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

func pendingAppointment() *models.Appointment {
	return &models.Appointment{
		ID:            uuid.New(),
		Title:         "Tax planning session",
		Status:        string(StatusPendingReview),
		RequestedDate: testNow.Add(48 * time.Hour),
		DurationMin:   60,
		UserID:        7,
	}
}

func TestValidateNew_DurationTooShort(t *testing.T) {
	err := ValidateNew("Session", testNow.Add(time.Hour), 10, testNow)
	if !apperr.IsBusiness(err, "duration_too_short") {
		t.Fatalf("expected duration_too_short, got %v", err)
	}
}

func TestValidateNew_DateInPast(t *testing.T) {
	err := ValidateNew("Session", testNow.Add(-time.Hour), 30, testNow)
	if !apperr.IsBusiness(err, "date_in_past") {
		t.Fatalf("expected date_in_past, got %v", err)
	}
}

func TestConfirm_AdminWithExplicitDate(t *testing.T) {
	ap := pendingAppointment()
	date := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)

	if err := Confirm(ap, ActorAdmin, &date); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if ap.Status != string(StatusConfirmed) {
		t.Fatalf("expected CONFIRMED, got %s", ap.Status)
	}
	if ap.ConfirmedDate == nil || !ap.ConfirmedDate.Equal(date) {
		t.Fatalf("confirmed date not set to explicit date: %v", ap.ConfirmedDate)
	}
}

func TestConfirm_AdminDefaultsToRequestedDate(t *testing.T) {
	ap := pendingAppointment()

	if err := Confirm(ap, ActorAdmin, nil); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if ap.ConfirmedDate == nil || !ap.ConfirmedDate.Equal(ap.RequestedDate) {
		t.Fatalf("confirmed date should default to requested date, got %v", ap.ConfirmedDate)
	}
}

func TestCancelThenConfirmFails(t *testing.T) {
	ap := pendingAppointment()
	if err := Confirm(ap, ActorAdmin, nil); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	if _, err := Cancel(ap, ActorClient, testNow); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if ap.Status != string(StatusCancelled) {
		t.Fatalf("expected CANCELLED, got %s", ap.Status)
	}

	err := Confirm(ap, ActorAdmin, nil)
	if !apperr.IsInvalidTransition(err) {
		t.Fatalf("confirm after cancel should be InvalidTransition, got %v", err)
	}
}

func TestRescheduleNegotiation(t *testing.T) {
	ap := pendingAppointment()
	requested := ap.RequestedDate
	suggested := testNow.Add(96 * time.Hour)

	if err := ProposeReschedule(ap, ActorAdmin, suggested, testNow); err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	if ap.Status != string(StatusRescheduled) {
		t.Fatalf("expected RESCHEDULED, got %s", ap.Status)
	}
	if ap.SuggestedDate == nil || !ap.SuggestedDate.Equal(suggested) {
		t.Fatalf("suggested date not recorded: %v", ap.SuggestedDate)
	}
	if !ap.RequestedDate.Equal(requested) {
		t.Fatal("requested date must stay untouched during negotiation")
	}

	// Client accepts the suggestion.
	if err := Confirm(ap, ActorClient, nil); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if ap.Status != string(StatusConfirmed) {
		t.Fatalf("expected CONFIRMED after accept, got %s", ap.Status)
	}
	if ap.ConfirmedDate == nil || !ap.ConfirmedDate.Equal(suggested) {
		t.Fatalf("accept should confirm the suggested date, got %v", ap.ConfirmedDate)
	}
}

func TestAdminCancelOfConfirmedEmitsRefund(t *testing.T) {
	ap := pendingAppointment()
	if err := Confirm(ap, ActorAdmin, nil); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	ev, err := Cancel(ap, ActorAdmin, testNow)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if ev == nil || ev.Kind != EventRefundRequired {
		t.Fatalf("expected RefundRequired event, got %+v", ev)
	}
	if ev.AppointmentID != ap.ID {
		t.Fatal("refund event should carry the appointment id")
	}
}

func TestClientCancelEmitsNoRefund(t *testing.T) {
	ap := pendingAppointment()
	if err := Confirm(ap, ActorAdmin, nil); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	ev, err := Cancel(ap, ActorClient, testNow)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if ev != nil {
		t.Fatalf("client cancel should not request a refund, got %+v", ev)
	}
}

func TestEditResetsNegotiation(t *testing.T) {
	ap := pendingAppointment()
	suggested := testNow.Add(96 * time.Hour)
	if err := ProposeReschedule(ap, ActorAdmin, suggested, testNow); err != nil {
		t.Fatalf("propose failed: %v", err)
	}

	in := EditInput{
		Title:         "Updated session",
		Description:   "new scope",
		RequestedDate: testNow.Add(120 * time.Hour),
		DurationMin:   45,
	}
	if err := Edit(ap, ActorClient, in, testNow); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	if ap.Status != string(StatusPendingReview) {
		t.Fatalf("edit should reset to PENDING_ADMIN_REVIEW, got %s", ap.Status)
	}
	if ap.SuggestedDate != nil {
		t.Fatal("edit should discard the pending suggestion")
	}
	if ap.Title != in.Title || ap.DurationMin != 45 {
		t.Fatal("edit did not apply the revision")
	}
}

func TestComplete(t *testing.T) {
	ap := pendingAppointment()
	past := testNow.Add(-2 * time.Hour)
	if err := Confirm(ap, ActorAdmin, &past); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	if err := Complete(ap, ActorSystem, testNow); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if ap.Status != string(StatusCompleted) {
		t.Fatalf("expected COMPLETED, got %s", ap.Status)
	}
}

func TestComplete_RejectsFutureAppointment(t *testing.T) {
	ap := pendingAppointment()
	if err := Confirm(ap, ActorAdmin, nil); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	err := Complete(ap, ActorAdmin, testNow)
	if !apperr.IsBusiness(err, "not_finished") {
		t.Fatalf("expected not_finished, got %v", err)
	}
}

func TestMarkPaid(t *testing.T) {
	ap := pendingAppointment()
	ap.Status = string(StatusPendingPayment)

	if err := MarkPaid(ap); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if ap.Status != string(StatusPendingReview) {
		t.Fatalf("expected PENDING_ADMIN_REVIEW after payment, got %s", ap.Status)
	}

	if err := MarkPaid(ap); !apperr.IsInvalidTransition(err) {
		t.Fatalf("double payment callback should be InvalidTransition, got %v", err)
	}
}
