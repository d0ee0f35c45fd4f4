// Package verification owns the profile-verification workflow: student
// submissions land in the mirror view, the scanner promotes them into
// reviewable requests, and admin approve/reject decisions fan back out to the
// mirror keys the rest of the platform reads.
package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub/pkg/models"
	"github.com/mentorhub/mentorhub/pkg/repository"
)

var (
	ErrRequestNotFound = errors.New("verification request not found")
	ErrReasonRequired  = errors.New("rejection reason is required")
)

// Mirror key conventions. The status key is the discovery channel for new
// submissions; the verified keys exist for older readers of the user blob.
const (
	statusKeyPrefix    = "verificationStatus-"
	documentKeyPrefix  = "verificationDocument-"
	rejectionKeyPrefix = "rejectionDetails-"

	placeholderDocument = "profile-document"
)

func StatusKey(email string) string    { return statusKeyPrefix + email }
func DocumentKey(email string) string  { return documentKeyPrefix + email }
func RejectionKey(email string) string { return rejectionKeyPrefix + email }
func verifiedKeys(email string) []string {
	return []string{"userVerified-" + email, "user-" + email + "-verified"}
}

// RejectionDetails is the JSON value stored under rejectionDetails-<email>.
type RejectionDetails struct {
	Reason string `json:"reason"`
	Date   string `json:"date"`
}

type Reconciler struct {
	requests repository.VerificationRepo
	mirror   repository.MirrorRepo
	logger   *slog.Logger
	newID    func() string
}

func NewReconciler(vr repository.VerificationRepo, mr repository.MirrorRepo, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{requests: vr, mirror: mr, logger: logger, newID: uuid.NewString}
}

// Submit records a student-side submission: the mirror status goes to pending
// and the uploaded document reference is kept for the scanner to pick up.
func (r *Reconciler) Submit(ctx context.Context, email, document string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}

	if document != "" {
		if err := r.mirror.SetKey(ctx, DocumentKey(email), document); err != nil {
			return fmt.Errorf("store document reference: %w", err)
		}
	}
	if err := r.mirror.SetKey(ctx, StatusKey(email), models.VerificationPending); err != nil {
		return fmt.Errorf("mark submission pending: %w", err)
	}
	return nil
}

// ScanForNewSubmissions promotes every pending mirror entry that has no
// pending request yet into a new request record. It is the only path that
// creates requests from student submissions, and running it twice with no
// intervening change creates nothing the second time. Returns how many
// requests were created.
func (r *Reconciler) ScanForNewSubmissions(ctx context.Context) (int, error) {
	entries, err := r.mirror.ListByPrefix(ctx, statusKeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("scan mirror: %w", err)
	}

	created := 0
	for key, value := range entries {
		if value != models.VerificationPending {
			continue
		}
		email := strings.TrimPrefix(key, statusKeyPrefix)

		pending, err := r.requests.HasPendingForEmail(ctx, email)
		if err != nil {
			return created, fmt.Errorf("check pending request for %s: %w", email, err)
		}
		if pending {
			continue
		}

		document, err := r.mirror.GetKey(ctx, DocumentKey(email))
		if err != nil {
			return created, fmt.Errorf("read document reference for %s: %w", email, err)
		}
		if document == "" {
			document = placeholderDocument
		}

		req := &models.VerificationRequest{
			ID:           r.newID(),
			StudentEmail: email,
			Document:     document,
			Status:       models.VerificationPending,
			SubmittedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if err := r.requests.CreateRequest(ctx, req); err != nil {
			return created, fmt.Errorf("create request for %s: %w", email, err)
		}
		created++
		r.logger.Info("verification request created from submission",
			slog.String("request_id", req.ID), slog.String("email", email))
	}

	return created, nil
}

// Approve marks the request approved and fans the verified status out to the
// mirror keys. Mirror write failures after the request update are logged, not
// rolled back.
func (r *Reconciler) Approve(ctx context.Context, requestID string) error {
	req, err := r.requests.GetRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("load request %s: %w", requestID, err)
	}
	if req == nil {
		return ErrRequestNotFound
	}

	req.Status = models.VerificationApproved
	req.RejectionReason = ""
	if err := r.requests.UpdateRequest(ctx, req); err != nil {
		return fmt.Errorf("approve request %s: %w", requestID, err)
	}

	email := req.StudentEmail
	if err := r.mirror.SetKey(ctx, StatusKey(email), models.VerificationVerified); err != nil {
		r.logger.Error("mirror status write failed after approval", slog.String("email", email), slog.Any("err", err))
	}
	for _, key := range verifiedKeys(email) {
		if err := r.mirror.SetKey(ctx, key, "true"); err != nil {
			r.logger.Error("mirror verified-flag write failed", slog.String("key", key), slog.Any("err", err))
		}
	}

	return nil
}

// Reject marks the request rejected with the given reason and records the
// rejection in the mirror. The verified flags are deliberately left alone.
func (r *Reconciler) Reject(ctx context.Context, requestID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}

	req, err := r.requests.GetRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("load request %s: %w", requestID, err)
	}
	if req == nil {
		return ErrRequestNotFound
	}

	req.Status = models.VerificationRejected
	req.RejectionReason = reason
	if err := r.requests.UpdateRequest(ctx, req); err != nil {
		return fmt.Errorf("reject request %s: %w", requestID, err)
	}

	email := req.StudentEmail
	if err := r.mirror.SetKey(ctx, StatusKey(email), models.VerificationRejected); err != nil {
		r.logger.Error("mirror status write failed after rejection", slog.String("email", email), slog.Any("err", err))
	}
	details, _ := json.Marshal(RejectionDetails{Reason: reason, Date: time.Now().UTC().Format(time.RFC3339)})
	if err := r.mirror.SetKey(ctx, RejectionKey(email), string(details)); err != nil {
		r.logger.Error("mirror rejection-details write failed", slog.String("email", email), slog.Any("err", err))
	}

	return nil
}

// StatusForEmail merges the request history and the mirror into one effective
// status. The newest request wins; the mirror covers submissions the scanner
// has not promoted yet; absence means unverified.
func (r *Reconciler) StatusForEmail(ctx context.Context, email string) (string, error) {
	history, err := r.requests.ListRequestsByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("list requests for %s: %w", email, err)
	}
	if len(history) > 0 {
		switch history[0].Status {
		case models.VerificationApproved:
			return models.VerificationVerified, nil
		case models.VerificationRejected:
			return models.VerificationRejected, nil
		default:
			return models.VerificationPending, nil
		}
	}

	mirrored, err := r.mirror.GetKey(ctx, StatusKey(email))
	if err != nil {
		return "", fmt.Errorf("read mirror status for %s: %w", email, err)
	}
	if mirrored == "" {
		return models.VerificationNone, nil
	}
	return mirrored, nil
}
